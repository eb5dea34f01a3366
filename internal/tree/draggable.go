package tree

import (
	"unicode/utf8"

	"github.com/dbnav/object-browser/internal/models"
)

// DragHandler builds the text dropped into an editor for a node. It returns
// either a plain string or a models.DragPayload.
type DragHandler func(data *models.NodeData, n *Node) any

func (t *Tree) RegisterDraggableType(typ string, fn DragHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.draggables[typ] = fn
}

func (t *Tree) RegisterDraggableTypes(handlers map[string]DragHandler) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for typ, fn := range handlers {
		t.draggables[typ] = fn
	}
}

func (t *Tree) GetDraggable(typ string) (DragHandler, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	fn, ok := t.draggables[typ]
	return fn, ok
}

// DragPayload runs the handler registered for the node's type. A plain
// string result puts the cursor after the last character.
func (t *Tree) DragPayload(n *Node) (models.DragPayload, bool) {
	data, ok := n.Data()
	if !ok || data == nil {
		return models.DragPayload{}, false
	}
	fn, ok := t.GetDraggable(data.Type)
	if !ok {
		return models.DragPayload{}, false
	}

	switch v := fn(data, n).(type) {
	case string:
		end := utf8.RuneCountInString(v)
		return models.DragPayload{Text: v, Cur: models.Cursor{From: end, To: end}}, true
	case models.DragPayload:
		return v, true
	case *models.DragPayload:
		if v == nil {
			return models.DragPayload{}, false
		}
		return *v, true
	default:
		return models.DragPayload{}, false
	}
}
