package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/dbnav/object-browser/internal/models"
	"github.com/dbnav/object-browser/internal/store"
	"github.com/dbnav/object-browser/internal/util"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
)

const saveMaxElapsed = 10 * time.Second

// TreeStateService remembers which nodes were expanded and selected in each
// tree and brings them back after a restart.
type TreeStateService struct {
	store    *store.Store
	nav      *Navigator
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewTreeStateService(st *store.Store, nav *Navigator, interval time.Duration) *TreeStateService {
	return &TreeStateService{
		store:    st,
		nav:      nav,
		interval: interval,
	}
}

// Save snapshots the open and active paths of every tree.
func (s *TreeStateService) Save(ctx context.Context) error {
	for _, name := range s.nav.Names() {
		r, ok := s.nav.Renderer(name)
		if !ok {
			continue
		}
		state := &models.TreeState{
			Tree:     name,
			Expanded: r.OpenPaths(),
			Selected: r.Active(),
		}

		_, err := backoff.Retry(ctx, func() (struct{}, error) {
			return struct{}{}, s.store.TreeState().Save(ctx, state)
		},
			backoff.WithBackOff(backoff.NewExponentialBackOff()),
			backoff.WithMaxElapsedTime(saveMaxElapsed),
		)
		if err != nil {
			return fmt.Errorf("failed to save state of tree %s: %w", name, err)
		}
	}
	return nil
}

// TreeStateListParams filters the saved states. Zero values mean no filter.
type TreeStateListParams struct {
	Trees []models.TreeName
	Limit uint64
}

// List returns the saved states ordered by tree name.
func (s *TreeStateService) List(ctx context.Context, params TreeStateListParams) ([]models.TreeState, error) {
	opts := []store.ListOption{store.WithDefaultSort()}
	if len(params.Trees) > 0 {
		opts = append(opts, store.ByTrees(params.Trees...))
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	return s.store.TreeState().List(ctx, opts...)
}

// Restore reopens the saved paths of every tree, shallowest first, and
// selects the saved node. Paths that no longer exist are skipped.
func (s *TreeStateService) Restore(ctx context.Context) error {
	log := zap.S().Named("tree_state")

	for _, name := range s.nav.Names() {
		state, err := s.store.TreeState().Get(ctx, name)
		if srvErrors.IsResourceNotFoundError(err) {
			continue
		}
		if err != nil {
			return err
		}

		t, err := s.nav.Tree(string(name))
		if err != nil {
			return err
		}
		root := t.Store().RootPath()

		restored := 0
		for _, p := range state.Expanded {
			segments := util.PathToSegments(root, p)
			if segments == nil {
				continue
			}
			n, err := t.FindNodeWithToggle(ctx, segments)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				log.Debugw("expanded path is gone", "tree", name, "path", p, "error", err)
				continue
			}
			if err := n.Open(ctx, t, true); err != nil {
				return err
			}
			restored++
		}

		if segments := util.PathToSegments(root, state.Selected); state.Selected != "" && segments != nil {
			if n, err := t.FindNodeWithToggle(ctx, segments); err == nil {
				if err := t.Select(ctx, n); err != nil {
					return err
				}
			} else {
				log.Debugw("selected path is gone", "tree", name, "path", state.Selected, "error", err)
			}
		}

		log.Infow("tree state restored", "tree", name, "expanded", restored, "saved", len(state.Expanded), "selected", state.Selected)
	}
	return nil
}

// Start saves the state every interval until Stop is called.
func (s *TreeStateService) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx, s.done)
}

// Stop ends the save loop after a last snapshot.
func (s *TreeStateService) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (s *TreeStateService) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	log := zap.S().Named("tree_state")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			saveCtx, cancel := context.WithTimeout(context.Background(), saveMaxElapsed)
			if err := s.Save(saveCtx); err != nil {
				log.Warnw("failed to save tree state on stop", "error", err)
			}
			cancel()
			return
		case <-ticker.C:
			if err := s.Save(ctx); err != nil {
				log.Warnw("failed to save tree state", "error", err)
			}
		}
	}
}
