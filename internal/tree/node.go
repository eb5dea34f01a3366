package tree

import (
	"context"
	"slices"

	"github.com/dbnav/object-browser/internal/models"
)

// Handle is the rendering collaborator's reference to a node. It is opaque
// to the tree.
type Handle any

// Node is one entry of the hierarchy. All fields are guarded by the owning
// store's lock; callers only see copies.
type Node struct {
	store *Store

	id   string
	path string

	data   *models.NodeData
	loaded bool

	children []*Node
	parent   *Node
	handle   Handle

	// gen changes whenever the children are discarded, so that a fetch
	// started before the change can tell its result is stale.
	gen uint64
}

func (n *Node) ID() string { return n.id }

func (n *Node) Path() string { return n.path }

// Data returns a copy of the node's domain row. ok is false when the node was
// never loaded; a nil row with ok set means the backend sent no attributes.
func (n *Node) Data() (*models.NodeData, bool) {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	if !n.loaded {
		return nil, false
	}
	return n.data.Clone(), true
}

func (n *Node) Children() []*Node {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	return slices.Clone(n.children)
}

func (n *Node) HasParent() bool {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	return n.parent != nil
}

func (n *Node) Parent() *Node {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	return n.parent
}

func (n *Node) Handle() Handle {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	return n.handle
}

// IsDirectory reports whether the node is a container. The root always is.
func (n *Node) IsDirectory() bool {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	return n.parent == nil || (n.data != nil && n.data.Inode)
}

// Ancestor walks strictly upward and returns the first ancestor matching pred.
func (n *Node) Ancestor(pred func(*Node) bool) *Node {
	for _, a := range n.ancestors() {
		if pred(a) {
			return a
		}
	}
	return nil
}

// AnyFamilyMember reports whether pred holds for n or any of its ancestors.
func (n *Node) AnyFamilyMember(pred func(*Node) bool) bool {
	return pred(n) || n.Ancestor(pred) != nil
}

// ancestors snapshots the parent chain so predicates run without the lock.
func (n *Node) ancestors() []*Node {
	n.store.mu.RLock()
	defer n.store.mu.RUnlock()
	var out []*Node
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p)
	}
	return out
}

// Unload drops the children so that the next read fetches them again, and
// releases the renderer's cached state for the subtree.
func (n *Node) Unload(ctx context.Context, t *Tree) error {
	return t.unload(ctx, n)
}

// Reload unloads the node, collapses it and selects it again so that
// listeners of the selection refresh. Nodes the renderer does not know are
// left alone.
func (n *Node) Reload(ctx context.Context, t *Tree) error {
	if n.Handle() == nil {
		return nil
	}
	if err := n.Unload(ctx, t); err != nil {
		return err
	}
	if err := t.Close(ctx, n); err != nil {
		return err
	}
	if err := t.Deselect(ctx, n); err != nil {
		return err
	}
	return t.Select(ctx, n)
}

// Open expands the node unless it already is open. With suppressIfNoHandle
// a node that has not been rendered yet is silently skipped.
func (n *Node) Open(ctx context.Context, t *Tree, suppressIfNoHandle bool) error {
	if t.IsOpen(n) {
		return nil
	}
	if suppressIfNoHandle && n.Handle() == nil {
		return nil
	}
	return t.Open(ctx, n)
}
