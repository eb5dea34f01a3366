package tree

import (
	"github.com/dbnav/object-browser/internal/models"
)

const (
	typePartition = "partition"
	typeTable     = "table"
)

// TypedAncestry projects n and its ancestors onto a map keyed by type name.
// Only identity-bearing types are recorded and the closest node of a type
// wins. Priority is 0 for the first recorded entry and decreases by one for
// each further entry. A partition above the starting node is recorded as a
// table, so the starting partition and its parent table do not collide.
func (s *Store) TypedAncestry(n *Node) models.Hierarchy {
	result := models.Hierarchy{}
	if n == nil {
		return result
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n.store != s || !s.attachedLocked(n) {
		return result
	}

	priority := 0
	distance := 0
	for item := n; item != nil; item = item.parent {
		if item.data != nil && s.registry.HasID(item.data.Type) {
			typ := projectedType(item.data.Type, distance)
			if _, seen := result[typ]; !seen {
				result[typ] = models.AncestorEntry{
					Data:     item.data.Clone(),
					Priority: priority,
				}
				priority--
			}
		}
		distance++
	}

	return result
}

// TypedAncestryByPath is TypedAncestry for the node at path; an unknown
// path yields an empty map.
func (s *Store) TypedAncestryByPath(path string) models.Hierarchy {
	return s.TypedAncestry(s.FindNode(path))
}

func projectedType(typ string, distance int) string {
	if typ == typePartition && distance > 0 {
		return typeTable
	}
	return typ
}
