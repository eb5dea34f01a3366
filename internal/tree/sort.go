package tree

import (
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortKey is what a Comparator sees of a node.
type SortKey struct {
	ID        string
	Label     string
	Directory bool
}

// Comparator orders two siblings the way strings.Compare does.
type Comparator func(a, b SortKey) int

// NaturalOrder puts directories before files and orders siblings of the same
// kind by label, case and accent insensitive, with digit runs compared by
// numeric value ("db2" < "db10").
func NaturalOrder(tag language.Tag) Comparator {
	var mu sync.Mutex
	col := collate.New(tag, collate.Loose, collate.Numeric)

	return func(a, b SortKey) int {
		if a.Directory != b.Directory {
			if a.Directory {
				return -1
			}
			return 1
		}
		mu.Lock()
		defer mu.Unlock()
		return col.CompareString(a.Label, b.Label)
	}
}

func sortKeyLocked(n *Node) SortKey {
	k := SortKey{ID: n.id, Label: n.id}
	if n.data != nil {
		k.Label = n.data.RawLabel
		k.Directory = n.data.Inode
	}
	return k
}
