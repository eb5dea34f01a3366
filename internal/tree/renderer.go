package tree

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/dbnav/object-browser/internal/util"
)

// Renderer events re-dispatched by the tree as <namespace>:tree:<name>.
const (
	EventAdded      = "added"
	EventLoaded     = "loaded"
	EventBeforeOpen = "beforeopen"
	EventOpened     = "opened"
	EventClosed     = "closed"
	EventSelected   = "selected"
	EventDeselected = "deselected"
	EventDragStart  = "dragstart"
	EventCopied     = "copied"
	EventHovered    = "hovered"
)

// RenderEvent is emitted by a Renderer for a node it shows.
type RenderEvent struct {
	Name   string
	Handle Handle
	Path   string
}

// Renderer is the widget painting the tree. Its asynchronous operations
// report failures as errors which the tree propagates unchanged.
type Renderer interface {
	Root() Handle
	Unload(ctx context.Context, h Handle) error
	ToggleDirectory(ctx context.Context, h Handle) error
	OpenDirectory(ctx context.Context, h Handle) error
	CloseDirectory(ctx context.Context, h Handle) error
	SetActiveFile(ctx context.Context, h Handle) error
	Deselect(ctx context.Context, h Handle) error
	Refresh(ctx context.Context, h Handle) error
	Insert(ctx context.Context, parent Handle, path string) error
	Remove(ctx context.Context, h Handle) error
	IsOpen(h Handle) bool
	PathOf(h Handle) (string, bool)
	Subscribe(fn func(RenderEvent))
}

// PathHandle is the handle used by the headless renderer: the node path.
type PathHandle string

// Loader is the part of the store the headless renderer reads from.
type Loader interface {
	ReadNode(ctx context.Context, path string) []*Node
	FindNode(path string) *Node
}

// Headless is a Renderer without a screen. It keeps the open, loaded and
// active state a widget would keep and emits the same events, which makes the
// tree usable from the api server and the cli.
type Headless struct {
	mu       sync.Mutex
	rootPath string
	loader   Loader
	open     map[string]bool
	loaded   map[string]bool
	seen     map[string]bool
	active   string
	subs     []func(RenderEvent)
}

func NewHeadless(rootPath string, loader Loader) *Headless {
	return &Headless{
		rootPath: rootPath,
		loader:   loader,
		open:     make(map[string]bool),
		loaded:   make(map[string]bool),
		seen:     make(map[string]bool),
	}
}

func (h *Headless) Root() Handle {
	return PathHandle(h.rootPath)
}

func (h *Headless) Subscribe(fn func(RenderEvent)) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subs = append(h.subs, fn)
}

func (h *Headless) PathOf(handle Handle) (string, bool) {
	p, ok := handle.(PathHandle)
	return string(p), ok
}

func (h *Headless) IsOpen(handle Handle) bool {
	p, ok := h.PathOf(handle)
	if !ok {
		return false
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open[p]
}

func (h *Headless) OpenDirectory(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.emit(RenderEvent{Name: EventBeforeOpen, Handle: handle, Path: p})
	if err := h.materialize(ctx, p); err != nil {
		return err
	}

	h.mu.Lock()
	h.open[p] = true
	h.mu.Unlock()

	h.emit(RenderEvent{Name: EventOpened, Handle: handle, Path: p})
	return nil
}

func (h *Headless) CloseDirectory(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	delete(h.open, p)
	h.mu.Unlock()

	h.emit(RenderEvent{Name: EventClosed, Handle: handle, Path: p})
	return nil
}

func (h *Headless) ToggleDirectory(ctx context.Context, handle Handle) error {
	if h.IsOpen(handle) {
		return h.CloseDirectory(ctx, handle)
	}
	return h.OpenDirectory(ctx, handle)
}

func (h *Headless) SetActiveFile(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	h.active = p
	h.mu.Unlock()

	h.emit(RenderEvent{Name: EventSelected, Handle: handle, Path: p})
	return nil
}

func (h *Headless) Deselect(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	if h.active == p {
		h.active = ""
	}
	h.mu.Unlock()

	h.emit(RenderEvent{Name: EventDeselected, Handle: handle, Path: p})
	return nil
}

// Unload forgets everything cached for the subtree under handle.
func (h *Headless) Unload(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range []map[string]bool{h.open, h.loaded, h.seen} {
		for k := range m {
			if k != p && util.IsPathPrefix(p, k) {
				delete(m, k)
			}
		}
	}
	delete(h.open, p)
	delete(h.loaded, p)
	return nil
}

// Refresh re-reads the children of handle. A directory already loaded is
// served from the cache.
func (h *Headless) Refresh(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	return h.materialize(ctx, p)
}

// Insert shows path under parent if the children of parent are displayed.
// Otherwise the next open of parent picks it up.
func (h *Headless) Insert(ctx context.Context, parent Handle, path string) error {
	pp, err := h.path(parent)
	if err != nil {
		return err
	}
	h.mu.Lock()
	shown := h.loaded[pp]
	if shown {
		h.seen[path] = true
	}
	h.mu.Unlock()

	if shown {
		h.emit(RenderEvent{Name: EventAdded, Handle: PathHandle(path), Path: path})
	}
	return nil
}

// Remove forgets handle together with its subtree.
func (h *Headless) Remove(ctx context.Context, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, m := range []map[string]bool{h.open, h.loaded, h.seen} {
		for k := range m {
			if util.IsPathPrefix(p, k) {
				delete(m, k)
			}
		}
	}
	if h.active != "" && util.IsPathPrefix(p, h.active) {
		h.active = ""
	}
	return nil
}

// Emit lets callers raise pointer-driven events (dragstart, copied, hovered).
func (h *Headless) Emit(name string, handle Handle) error {
	p, err := h.path(handle)
	if err != nil {
		return err
	}
	h.emit(RenderEvent{Name: name, Handle: handle, Path: p})
	return nil
}

// OpenPaths lists the expanded directories, shallowest first.
func (h *Headless) OpenPaths() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, 0, len(h.open))
	for p := range h.open {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b string) int {
		if c := cmp.Compare(len(a), len(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return out
}

func (h *Headless) Active() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.active
}

func (h *Headless) materialize(ctx context.Context, p string) error {
	h.mu.Lock()
	cached := h.loaded[p]
	h.mu.Unlock()

	var children []*Node
	if cached {
		n := h.loader.FindNode(p)
		if n == nil {
			return errUnknownHandle(p)
		}
		children = n.Children()
	} else {
		children = h.loader.ReadNode(ctx, p)
		h.mu.Lock()
		h.loaded[p] = true
		h.mu.Unlock()
	}

	// a node replaced in the store comes back without a handle
	unbound := make(map[*Node]bool, len(children))
	for _, c := range children {
		unbound[c] = c.Handle() == nil
	}

	var added []*Node
	h.mu.Lock()
	for _, c := range children {
		if !h.seen[c.Path()] || unbound[c] {
			h.seen[c.Path()] = true
			added = append(added, c)
		}
	}
	h.mu.Unlock()

	for _, c := range added {
		h.emit(RenderEvent{Name: EventAdded, Handle: PathHandle(c.Path()), Path: c.Path()})
	}
	if !cached {
		h.emit(RenderEvent{Name: EventLoaded, Handle: PathHandle(p), Path: p})
	}
	return nil
}

func (h *Headless) path(handle Handle) (string, error) {
	p, ok := h.PathOf(handle)
	if !ok {
		return "", errUnknownHandle(handle)
	}
	return p, nil
}

func (h *Headless) emit(e RenderEvent) {
	h.mu.Lock()
	subs := slices.Clone(h.subs)
	h.mu.Unlock()
	for _, fn := range subs {
		fn(e)
	}
}

func errUnknownHandle(h any) error {
	return fmt.Errorf("unknown handle %v", h)
}
