package tree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/util"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
	"github.com/dbnav/object-browser/pkg/notify"
	"github.com/dbnav/object-browser/pkg/scheduler"
)

const (
	defaultRootURL      = "nodes/"
	defaultFetchTimeout = 30 * time.Second
)

// Fetcher reads the raw children rows behind a relative node api url.
type Fetcher interface {
	FetchChildren(ctx context.Context, rel string) ([]models.RawRow, error)
}

// Store owns one tree of nodes. It is the only place where nodes are
// created, changed or removed.
type Store struct {
	mu       sync.RWMutex
	root     *Node
	rootPath string
	nextGen  uint64

	registry     *Registry
	fetcher      Fetcher
	scheduler    *scheduler.Scheduler[[]models.RawRow]
	notifier     notify.Notifier
	compare      Comparator
	rootURL      string
	fetchTimeout time.Duration

	loads singleflight.Group
}

type StoreOption func(*Store)

func WithRegistry(r *Registry) StoreOption {
	return func(s *Store) {
		s.registry = r
	}
}

func WithScheduler(sched *scheduler.Scheduler[[]models.RawRow]) StoreOption {
	return func(s *Store) {
		s.scheduler = sched
	}
}

func WithNotifier(n notify.Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = n
	}
}

// WithComparator sorts the children returned by ReadNode. Stored order is
// never changed.
func WithComparator(c Comparator) StoreOption {
	return func(s *Store) {
		s.compare = c
	}
}

// WithRootURL sets the url used to list the children of the root.
func WithRootURL(rel string) StoreOption {
	return func(s *Store) {
		s.rootURL = rel
	}
}

func WithFetchTimeout(d time.Duration) StoreOption {
	return func(s *Store) {
		if d > 0 {
			s.fetchTimeout = d
		}
	}
}

func NewStore(rootPath string, fetcher Fetcher, opts ...StoreOption) *Store {
	s := &Store{
		fetcher:      fetcher,
		registry:     DefaultRegistry(),
		notifier:     notify.NewLogNotifier(nil),
		rootURL:      defaultRootURL,
		fetchTimeout: defaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Init(rootPath)
	return s
}

// Init replaces the whole tree with an empty root container at rootPath.
func (s *Store) Init(rootPath string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rootPath = rootPath
	s.root = &Node{
		store: s,
		id:    rootPath,
		path:  rootPath,
		gen:   s.newGenLocked(),
	}

	zap.S().Named("node_store").Debugw("store initialized", "root", rootPath)
}

func (s *Store) Root() *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.root
}

func (s *Store) RootPath() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rootPath
}

func (s *Store) Registry() *Registry {
	return s.registry
}

// FindNode returns the node at path, or nil. An empty path or the root
// sentinel resolve to the root.
func (s *Store) FindNode(path string) *Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findLocked(path)
}

func (s *Store) findLocked(path string) *Node {
	if path == "" || path == s.rootPath {
		return s.root
	}
	return findIn(s.root, path)
}

// findIn skips every subtree whose own path is not a prefix of the target.
func findIn(n *Node, path string) *Node {
	if n.path == path {
		return n
	}
	if !util.IsPathPrefix(n.path, path) {
		return nil
	}
	for _, c := range n.children {
		if found := findIn(c, path); found != nil {
			return found
		}
	}
	return nil
}

// AddNode normalizes raw and inserts it as a child of parentPath. Adding a
// path that already exists updates and returns the existing node.
func (s *Store) AddNode(parentPath, newPath string, raw models.RawRow) (*Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := s.findLocked(parentPath)
	if parent == nil {
		return nil, srvErrors.NewNodeNotFoundError(parentPath)
	}

	dir, id := util.SplitPath(newPath)
	if id == "" {
		return nil, srvErrors.NewInvalidOperationError("add", fmt.Sprintf("path %q has no id", newPath))
	}
	if dir != parent.path {
		return nil, srvErrors.NewInvalidOperationError("add", fmt.Sprintf("path %q is not a child of %q", newPath, parent.path))
	}

	return s.addLocked(parent, id, raw), nil
}

func (s *Store) addLocked(parent *Node, id string, raw models.RawRow) *Node {
	data := normalize(raw, s.registry)

	for _, c := range parent.children {
		if c.id == id {
			c.data = data
			c.loaded = true
			return c
		}
	}

	n := &Node{
		store:  s,
		id:     id,
		path:   util.JoinPath(parent.path, id),
		data:   data,
		loaded: true,
		parent: parent,
		gen:    s.newGenLocked(),
	}
	parent.children = append(parent.children, n)
	return n
}

// UpdateNode replaces the domain row of the node at path.
func (s *Store) UpdateNode(path string, raw models.RawRow) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findLocked(path)
	if n == nil {
		return false
	}
	n.data = normalize(raw, s.registry)
	n.loaded = true
	return true
}

// RemoveNode detaches the node at path from its parent and drops its children.
func (s *Store) RemoveNode(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := s.findLocked(path)
	if n == nil || n.parent == nil {
		return false
	}

	idx := slices.Index(n.parent.children, n)
	if idx < 0 {
		return false
	}
	n.parent.children = slices.Delete(n.parent.children, idx, idx+1)
	n.parent = nil
	n.children = nil
	n.gen = s.newGenLocked()
	return true
}

// ReadNode returns the children of path, fetching them from the node api on
// first use. It never fails: load errors are reported to the notifier and an
// empty slice is returned.
func (s *Store) ReadNode(ctx context.Context, path string) []*Node {
	log := zap.S().Named("node_store")

	s.mu.RLock()
	n := s.findLocked(path)
	if n == nil {
		s.mu.RUnlock()
		log.Debugw("read of unknown node", "path", path)
		return []*Node{}
	}
	if len(n.children) > 0 {
		out := s.sortedLocked(n.children)
		s.mu.RUnlock()
		return out
	}
	if s.skipLoadLocked(n) {
		s.mu.RUnlock()
		log.Debugw("node is not connected, skip loading children", "path", path)
		return []*Node{}
	}
	rel, ok := s.childrenURLLocked(n)
	gen := n.gen
	s.mu.RUnlock()

	if !ok {
		log.Debugw("cannot compute children url", "path", path)
		return []*Node{}
	}

	key := fmt.Sprintf("%s#%d", path, gen)
	ch := s.loads.DoChan(key, func() (any, error) {
		return s.load(n, gen, rel), nil
	})

	select {
	case r := <-ch:
		return r.Val.([]*Node)
	case <-ctx.Done():
		log.Debugw("read abandoned", "path", path, "error", ctx.Err())
		return []*Node{}
	}
}

func (s *Store) load(n *Node, gen uint64, rel string) []*Node {
	log := zap.S().Named("node_store")

	rows, err := s.fetch(rel)
	if err != nil {
		log.Errorw("failed to load node children", "path", n.path, "url", rel, "error", err)
		s.notifier.Error(fmt.Sprintf("Error retrieving details for the node %q: %v", n.path, err))
		return []*Node{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n.gen != gen || !s.attachedLocked(n) {
		log.Debugw("discard stale children", "path", n.path, "rows", len(rows))
		return []*Node{}
	}

	for _, raw := range rows {
		id := stringify(raw["id"])
		if id == "" {
			log.Warnw("skip child without id", "path", n.path, "row", raw)
			continue
		}
		s.addLocked(n, id, raw)
	}

	log.Debugw("children loaded", "path", n.path, "count", len(n.children))
	return s.sortedLocked(n.children)
}

func (s *Store) fetch(rel string) ([]models.RawRow, error) {
	work := func(ctx context.Context) ([]models.RawRow, error) {
		ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
		defer cancel()
		return s.fetcher.FetchChildren(ctx, rel)
	}

	if s.scheduler == nil {
		return work(context.Background())
	}
	return s.scheduler.AddWork(work).Wait(context.Background())
}

func (s *Store) skipLoadLocked(n *Node) bool {
	return n.data.IsDisconnected() && s.registry.Connectable(n.data.Type)
}

// childrenURLLocked builds the node api url listing the children of n:
//
//	root                 nodes/
//	collection           <collection type>/nodes/<ids>/
//	any other node       <type>/children/<ids>
//
// where <ids> is the _id (or id when missing) of every identity-bearing node
// from the top down to n.
func (s *Store) childrenURLLocked(n *Node) (string, bool) {
	if n == s.root {
		return s.rootURL, true
	}
	if n.data == nil || n.data.Type == "" {
		return "", false
	}

	var ids []string
	for p := n; p != nil && p.parent != nil; p = p.parent {
		if p.data != nil && s.registry.HasID(p.data.Type) {
			ids = append(ids, cmp.Or(p.data.ObjectID, p.data.ID))
		}
	}
	slices.Reverse(ids)
	chain := strings.Join(ids, "/")

	if n.data.IsCollection {
		typ := n.data.Type
		if info, ok := s.registry.Lookup(typ); ok && info.CollectionType != "" {
			typ = info.CollectionType
		}
		if chain == "" {
			return typ + "/nodes/", true
		}
		return fmt.Sprintf("%s/nodes/%s/", typ, chain), true
	}

	return fmt.Sprintf("%s/children/%s", n.data.Type, chain), true
}

func (s *Store) attachedLocked(n *Node) bool {
	top := n
	for top.parent != nil {
		top = top.parent
	}
	return top == s.root
}

func (s *Store) sortedLocked(children []*Node) []*Node {
	out := slices.Clone(children)
	if s.compare == nil {
		return out
	}
	slices.SortStableFunc(out, func(a, b *Node) int {
		return s.compare(sortKeyLocked(a), sortKeyLocked(b))
	})
	return out
}

// clearChildren empties n so that the next read fetches again.
func (s *Store) clearChildren(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.children = nil
	n.gen = s.newGenLocked()
}

// invalidate marks in-flight loads of n as stale without touching children.
func (s *Store) invalidate(n *Node) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.gen = s.newGenLocked()
}

func (s *Store) setHandle(path string, h Handle) *Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.findLocked(path)
	if n != nil {
		n.handle = h
	}
	return n
}

func (s *Store) childCount(n *Node) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(n.children)
}

func (s *Store) newGenLocked() uint64 {
	s.nextGen++
	return s.nextGen
}
