package tree

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/util"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
	"github.com/dbnav/object-browser/pkg/event"
)

// TreeEvent is the payload of every <namespace>:tree:<name> event.
type TreeEvent struct {
	Tree string
	Path string
	Node *Node
	Drag *models.DragPayload
}

// Tree is the operation surface used by api handlers and services. It ties
// a Store to the Renderer showing it.
type Tree struct {
	namespace string
	store     *Store
	renderer  Renderer
	bus       *event.Bus

	mu         sync.RWMutex
	draggables map[string]DragHandler
}

func New(namespace string, store *Store, renderer Renderer, bus *event.Bus) *Tree {
	t := &Tree{
		namespace:  namespace,
		store:      store,
		renderer:   renderer,
		bus:        bus,
		draggables: make(map[string]DragHandler),
	}
	store.setHandle(store.RootPath(), renderer.Root())
	renderer.Subscribe(t.onRenderEvent)
	return t
}

func (t *Tree) Namespace() string { return t.namespace }

func (t *Tree) Store() *Store { return t.store }

func (t *Tree) Renderer() Renderer { return t.renderer }

// EventName returns the bus name under which renderer event name is published.
func (t *Tree) EventName(name string) string {
	return fmt.Sprintf("%s:tree:%s", t.namespace, name)
}

// Reset drops every node and the renderer's cached state and starts over
// from an empty root.
func (t *Tree) Reset(ctx context.Context) error {
	root := t.renderer.Root()
	t.store.Init(t.store.RootPath())
	t.store.setHandle(t.store.RootPath(), root)
	if err := t.renderer.Unload(ctx, root); err != nil {
		return srvErrors.NewUpstreamRejectionError("reset", err)
	}
	return nil
}

// AddNode inserts a node through the store and shows it when the renderer
// already displays the children of its parent.
func (t *Tree) AddNode(ctx context.Context, parentPath, newPath string, raw models.RawRow) (*Node, error) {
	n, err := t.store.AddNode(parentPath, newPath, raw)
	if err != nil {
		return nil, err
	}
	if n.Handle() != nil {
		return n, nil
	}

	parent := n.Parent()
	if parent == nil || parent.Handle() == nil {
		return n, nil
	}
	if err := t.renderer.Insert(ctx, parent.Handle(), n.Path()); err != nil {
		return nil, srvErrors.NewUpstreamRejectionError("add", err)
	}
	return n, nil
}

// RemoveNode detaches the node at path and drops whatever the renderer kept
// for its subtree.
func (t *Tree) RemoveNode(ctx context.Context, path string) error {
	n := t.store.FindNode(path)
	if n == nil {
		return srvErrors.NewNodeNotFoundError(path)
	}
	h := n.Handle()
	if !t.store.RemoveNode(n.Path()) {
		return srvErrors.NewInvalidOperationError("remove", fmt.Sprintf("%q cannot be removed", n.Path()))
	}
	if h == nil {
		return nil
	}
	if err := t.renderer.Remove(ctx, h); err != nil {
		return srvErrors.NewUpstreamRejectionError("remove", err)
	}
	return nil
}

func (t *Tree) FindNode(path string) *Node {
	return t.store.FindNode(path)
}

// FindNodeByHandle translates a renderer handle into a node.
func (t *Tree) FindNodeByHandle(h Handle) *Node {
	if h == nil {
		return nil
	}
	p, ok := t.renderer.PathOf(h)
	if !ok {
		return nil
	}
	return t.store.FindNode(p)
}

func (t *Tree) IsOpen(n *Node) bool {
	h := n.Handle()
	return h != nil && t.renderer.IsOpen(h)
}

func (t *Tree) Select(ctx context.Context, n *Node) error {
	return t.delegate(ctx, "select", n, t.renderer.SetActiveFile)
}

func (t *Tree) Deselect(ctx context.Context, n *Node) error {
	return t.delegate(ctx, "deselect", n, t.renderer.Deselect)
}

func (t *Tree) Open(ctx context.Context, n *Node) error {
	return t.delegate(ctx, "open", n, t.renderer.OpenDirectory)
}

func (t *Tree) Close(ctx context.Context, n *Node) error {
	return t.delegate(ctx, "close", n, t.renderer.CloseDirectory)
}

func (t *Tree) Toggle(ctx context.Context, n *Node) error {
	return t.delegate(ctx, "toggle", n, t.renderer.ToggleDirectory)
}

// Refresh re-reads the children of n. A node without children has its
// cached state dropped first, otherwise the renderer would answer from its
// cache and never fetch.
func (t *Tree) Refresh(ctx context.Context, n *Node) error {
	h := n.Handle()
	if h == nil {
		return nil
	}
	if t.store.childCount(n) == 0 {
		t.store.invalidate(n)
		if err := t.renderer.Unload(ctx, h); err != nil {
			return srvErrors.NewUpstreamRejectionError("refresh", err)
		}
	}
	if err := t.renderer.Refresh(ctx, h); err != nil {
		return srvErrors.NewUpstreamRejectionError("refresh", err)
	}
	return nil
}

func (t *Tree) unload(ctx context.Context, n *Node) error {
	t.store.clearChildren(n)
	h := n.Handle()
	if h == nil {
		return nil
	}
	if err := t.renderer.Unload(ctx, h); err != nil {
		return srvErrors.NewUpstreamRejectionError("unload", err)
	}
	return nil
}

// delegate runs a renderer operation on n. Nodes the renderer never showed
// are skipped.
func (t *Tree) delegate(ctx context.Context, op string, n *Node, fn func(context.Context, Handle) error) error {
	if n == nil {
		return srvErrors.NewInvalidOperationError(op, "no node")
	}
	h := n.Handle()
	if h == nil {
		zap.S().Named("tree").Debugw("node has no handle", "op", op, "path", n.Path())
		return nil
	}
	if err := fn(ctx, h); err != nil {
		return srvErrors.NewUpstreamRejectionError(op, err)
	}
	return nil
}

// FindNodeWithToggle walks segments from the root, opening every directory
// on the way, and returns the node at the end of the path. It stops as soon
// as no child leads towards the target.
func (t *Tree) FindNodeWithToggle(ctx context.Context, segments []string) (*Node, error) {
	target := util.SegmentsToPath(segments)
	if target == "" {
		return nil, srvErrors.NewInvalidOperationError("locate", "empty path")
	}

	n := t.store.Root()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if n.Path() == target {
			return n, nil
		}
		if !util.IsPathPrefix(n.Path(), target) {
			return nil, srvErrors.NewNodeNotFoundError(target)
		}

		if err := n.Open(ctx, t, false); err != nil {
			return nil, err
		}

		var next *Node
		for _, c := range t.store.ReadNode(ctx, n.Path()) {
			if util.IsPathPrefix(c.Path(), target) {
				next = c
				break
			}
		}
		if next == nil {
			return nil, srvErrors.NewNodeNotFoundError(target)
		}
		n = next
	}
}

func (t *Tree) GetTreeNodeHierarchy(n *Node) models.Hierarchy {
	return t.store.TypedAncestry(n)
}

func (t *Tree) GetTreeNodeHierarchyByPath(path string) models.Hierarchy {
	return t.store.TypedAncestryByPath(path)
}

func (t *Tree) onRenderEvent(e RenderEvent) {
	n := t.store.FindNode(e.Path)
	if e.Name == EventAdded {
		n = t.store.setHandle(e.Path, e.Handle)
	}

	payload := TreeEvent{Tree: t.namespace, Path: e.Path, Node: n}
	if e.Name == EventDragStart && n != nil {
		if drag, ok := t.DragPayload(n); ok {
			payload.Drag = &drag
		}
	}

	if t.bus != nil {
		t.bus.Publish(event.Event{Name: t.EventName(e.Name), Data: payload})
	}
}
