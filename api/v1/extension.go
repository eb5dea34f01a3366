package v1

import (
	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/tree"
)

// NewNodeFromModel converts a tree node to an api Node.
func NewNodeFromModel(n *tree.Node, open bool) Node {
	node := Node{
		ID:        n.ID(),
		Path:      n.Path(),
		Inode:     n.IsDirectory(),
		Open:      open,
		HasParent: n.HasParent(),
	}

	data, loaded := n.Data()
	node.Loaded = loaded
	if data != nil {
		node.Label = data.Label
		node.Type = data.Type
		node.Data = data.Fields()
	}
	return node
}

func NewNodeListFromModel(path string, nodes []*tree.Node, isOpen func(*tree.Node) bool) NodeListResponse {
	resp := NodeListResponse{
		Path:  path,
		Nodes: make([]Node, 0, len(nodes)),
		Total: len(nodes),
	}
	for _, n := range nodes {
		resp.Nodes = append(resp.Nodes, NewNodeFromModel(n, isOpen(n)))
	}
	return resp
}

func (s *TreeState) FromModel(m models.TreeState) {
	s.Tree = string(m.Tree)
	s.Expanded = m.Expanded
	if s.Expanded == nil {
		s.Expanded = []string{}
	}
	s.Selected = m.Selected
	s.UpdatedAt = m.UpdatedAt
}

// RawRow turns request data into the raw row stored by the tree. A missing
// body yields an explicitly empty node.
func RawRow(data map[string]any) models.RawRow {
	if data == nil {
		return nil
	}
	return models.RawRow(data)
}
