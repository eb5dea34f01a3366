package tree

import (
	"encoding/json"
	"fmt"
	"html"
	"maps"
	"strconv"

	"golang.org/x/text/unicode/norm"

	"github.com/dbnav/object-browser/internal/models"
)

// canonical keys are lifted out of the attribute map into NodeData fields.
var canonicalKeys = []string{"id", "_type", "_id", "label", "_label", "inode", "connected", "is_collection", "type"}

// normalize builds the stored form of a raw row. raw is left untouched; a nil
// raw yields nil (an explicitly empty node).
func normalize(raw models.RawRow, reg *Registry) *models.NodeData {
	if raw == nil {
		return nil
	}

	attrs := maps.Clone(map[string]any(raw))
	for _, k := range canonicalKeys {
		delete(attrs, k)
	}

	d := &models.NodeData{
		ID:         stringify(raw["id"]),
		Type:       stringify(raw["_type"]),
		ObjectID:   stringify(raw["_id"]),
		Inode:      truthy(raw["inode"]),
		Attributes: attrs,
	}

	label := stringify(raw["label"])
	if label == "" {
		label = d.ID
	}
	d.RawLabel = norm.NFC.String(label)
	d.Label = html.EscapeString(d.RawLabel)

	if v, ok := raw["connected"]; ok && v != nil {
		c := truthy(v)
		d.Connected = &c
	}

	d.IsCollection = reg.IsCollection(d.Type)
	if d.Inode {
		d.Kind = models.NodeKindDirectory
	} else {
		d.Kind = models.NodeKindFile
	}

	return d
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return fmt.Sprint(t)
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != "" && t != "false" && t != "0"
	case json.Number:
		return t.String() != "0"
	case float64:
		return t != 0
	case int:
		return t != 0
	default:
		return true
	}
}
