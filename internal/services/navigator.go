package services

import (
	"context"
	"fmt"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/dbnav/object-browser/internal/config"
	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/tree"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
	"github.com/dbnav/object-browser/pkg/event"
	"github.com/dbnav/object-browser/pkg/nodes"
	"github.com/dbnav/object-browser/pkg/notify"
	"github.com/dbnav/object-browser/pkg/scheduler"
)

// Navigator owns the browser and preferences trees. Each tree has its own
// store and renderer; they share the fetch scheduler, the type registry and
// the event bus.
type Navigator struct {
	trees     map[models.TreeName]*tree.Tree
	renderers map[models.TreeName]*tree.Headless
	scheduler *scheduler.Scheduler[[]models.RawRow]
	bus       *event.Bus
}

// NewNavigator builds one tree per node api configured in cfg.
func NewNavigator(cfg config.Browser, auth config.Authentication, bus *event.Bus) (*Navigator, error) {
	registry := tree.DefaultRegistry()
	if cfg.TypesFile != "" {
		if err := registry.LoadFile(cfg.TypesFile); err != nil {
			return nil, err
		}
	}

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", cfg.Locale, err)
	}

	browserClient, err := nodes.NewClient(cfg.URL, nodes.WithJWTFile(auth.JWTFilePath))
	if err != nil {
		return nil, err
	}
	prefsClient, err := nodes.NewClient(cfg.PreferencesURL, nodes.WithJWTFile(auth.JWTFilePath))
	if err != nil {
		return nil, err
	}

	sched := scheduler.NewScheduler[[]models.RawRow](cfg.NumWorkers)
	opts := []tree.StoreOption{
		tree.WithRegistry(registry),
		tree.WithScheduler(sched),
		tree.WithNotifier(notify.NewLogNotifier(bus)),
		tree.WithComparator(tree.NaturalOrder(tag)),
		tree.WithFetchTimeout(cfg.FetchTimeout),
	}

	n := NewNavigatorWithFetchers(map[models.TreeName]TreeSource{
		models.TreeBrowser:     {RootPath: cfg.RootPath, Fetcher: browserClient},
		models.TreePreferences: {RootPath: cfg.PreferencesRootPath, Fetcher: prefsClient},
	}, bus, opts...)
	n.scheduler = sched

	if cfg.WaitReady > 0 {
		zap.S().Named("navigator").Infow("waiting for the node api", "url", cfg.URL, "max_wait", cfg.WaitReady)
		if err := browserClient.WaitReady(context.Background(), cfg.WaitReady); err != nil {
			n.Close()
			return nil, fmt.Errorf("node api at %s is not ready: %w", cfg.URL, err)
		}
	}

	return n, nil
}

// TreeSource is where a tree's root lives and how its children are fetched.
type TreeSource struct {
	RootPath string
	Fetcher  tree.Fetcher
}

// NewNavigatorWithFetchers builds the trees over the given fetchers.
func NewNavigatorWithFetchers(sources map[models.TreeName]TreeSource, bus *event.Bus, opts ...tree.StoreOption) *Navigator {
	n := &Navigator{
		trees:     make(map[models.TreeName]*tree.Tree, len(sources)),
		renderers: make(map[models.TreeName]*tree.Headless, len(sources)),
		bus:       bus,
	}

	for name, src := range sources {
		store := tree.NewStore(src.RootPath, src.Fetcher, opts...)
		renderer := tree.NewHeadless(src.RootPath, store)
		t := tree.New(string(name), store, renderer, bus)
		if name == models.TreeBrowser {
			t.RegisterDraggableTypes(browserDraggables())
		}
		n.trees[name] = t
		n.renderers[name] = renderer
		zap.S().Named("navigator").Infow("tree created", "tree", name, "root", src.RootPath)
	}

	return n
}

// Tree returns the named tree or a not found error.
func (n *Navigator) Tree(name string) (*tree.Tree, error) {
	t, ok := n.trees[models.TreeName(name)]
	if !ok {
		return nil, srvErrors.NewTreeNotFoundError(name)
	}
	return t, nil
}

func (n *Navigator) Renderer(name models.TreeName) (*tree.Headless, bool) {
	r, ok := n.renderers[name]
	return r, ok
}

// Names lists the trees in a stable order.
func (n *Navigator) Names() []models.TreeName {
	names := make([]models.TreeName, 0, len(n.trees))
	for name := range n.trees {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (n *Navigator) Bus() *event.Bus {
	return n.bus
}

// Close stops the fetch workers. Pending reads resolve empty.
func (n *Navigator) Close() {
	if n.scheduler != nil {
		n.scheduler.Close()
	}
}
