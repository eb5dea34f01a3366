package models

import (
	"encoding/json"
	"maps"
)

// RawRow is a domain row as decoded from the node API, before normalization.
type RawRow map[string]any

type NodeKind string

const (
	NodeKindDirectory NodeKind = "directory"
	NodeKindFile      NodeKind = "file"
)

// NodeData is the normalized domain payload of a tree node. Values are never
// shared with the raw row they were built from.
type NodeData struct {
	ID           string
	Type         string
	ObjectID     string
	Label        string // escaped, safe to render
	RawLabel     string
	Inode        bool
	Connected    *bool
	IsCollection bool
	Kind         NodeKind
	Attributes   map[string]any
}

// Clone returns a copy that does not share the attribute map or the
// connected pointer.
func (d *NodeData) Clone() *NodeData {
	if d == nil {
		return nil
	}
	c := *d
	c.Attributes = maps.Clone(d.Attributes)
	if d.Connected != nil {
		v := *d.Connected
		c.Connected = &v
	}
	return &c
}

// IsDisconnected reports whether the row explicitly says it is not connected.
func (d *NodeData) IsDisconnected() bool {
	return d != nil && d.Connected != nil && !*d.Connected
}

// Fields flattens the row into the attribute map shape used by the node API.
func (d *NodeData) Fields() map[string]any {
	if d == nil {
		return nil
	}
	f := make(map[string]any, len(d.Attributes)+8)
	maps.Copy(f, d.Attributes)
	f["id"] = d.ID
	f["_type"] = d.Type
	f["_id"] = d.ObjectID
	f["label"] = d.Label
	f["_label"] = d.RawLabel
	f["inode"] = d.Inode
	f["is_collection"] = d.IsCollection
	f["type"] = string(d.Kind)
	if d.Connected != nil {
		f["connected"] = *d.Connected
	}
	return f
}

func (d *NodeData) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Fields())
}

// TypeInfo describes a domain type registered in the tree.
type TypeInfo struct {
	HasID          bool   `yaml:"hasId" json:"hasId"`
	IsCollection   bool   `yaml:"is_collection" json:"is_collection"`
	CollectionType string `yaml:"collection_type" json:"collection_type,omitempty"`
	Connectable    bool   `yaml:"connectable" json:"connectable"`
}

// AncestorEntry is one level of a typed hierarchy projection.
type AncestorEntry struct {
	Data     *NodeData
	Priority int
}

func (a AncestorEntry) MarshalJSON() ([]byte, error) {
	f := a.Data.Fields()
	if f == nil {
		f = map[string]any{}
	}
	f["priority"] = a.Priority
	return json.Marshal(f)
}

// Hierarchy maps a type name to the closest ancestor of that type.
type Hierarchy map[string]AncestorEntry

type Cursor struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DragPayload is the text dropped into an editor when a node is dragged.
type DragPayload struct {
	Text string `json:"text"`
	Cur  Cursor `json:"cur"`
}
