package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/dbnav/object-browser/internal/models"
	srvErrors "github.com/dbnav/object-browser/pkg/errors"
)

// TreeStateStore persists the expanded and selected paths of each tree.
type TreeStateStore struct {
	db QueryInterceptor
}

func NewTreeStateStore(db QueryInterceptor) *TreeStateStore {
	return &TreeStateStore{db: db}
}

func (s *TreeStateStore) Get(ctx context.Context, tree models.TreeName) (*models.TreeState, error) {
	states, err := s.List(ctx, ByTrees(tree))
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, srvErrors.NewTreeStateNotFoundError(string(tree))
	}
	return &states[0], nil
}

// Save stores or replaces the state of state.Tree.
func (s *TreeStateStore) Save(ctx context.Context, state *models.TreeState) error {
	expanded := state.Expanded
	if expanded == nil {
		expanded = []string{}
	}
	data, err := json.Marshal(expanded)
	if err != nil {
		return fmt.Errorf("failed to encode expanded paths: %w", err)
	}

	_, err = s.db.ExecContext(ctx, queryUpsertTreeState, string(state.Tree), string(data), state.Selected)
	return err
}

func (s *TreeStateStore) Delete(ctx context.Context, tree models.TreeName) error {
	_, err := s.db.ExecContext(ctx, queryDeleteTreeState, string(tree))
	return err
}

func (s *TreeStateStore) List(ctx context.Context, opts ...ListOption) ([]models.TreeState, error) {
	builder := sq.Select("tree", "expanded", "selected", "updated_at").From("tree_state")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var states []models.TreeState
	for rows.Next() {
		var (
			state    models.TreeState
			tree     string
			expanded string
			selected sql.NullString
		)
		if err := rows.Scan(&tree, &expanded, &selected, &state.UpdatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(expanded), &state.Expanded); err != nil {
			return nil, fmt.Errorf("failed to decode expanded paths of %s: %w", tree, err)
		}
		state.Tree = models.TreeName(tree)
		state.Selected = selected.String
		states = append(states, state)
	}

	return states, rows.Err()
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByTrees(trees ...models.TreeName) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(trees) == 0 {
			return b
		}
		names := make([]string, 0, len(trees))
		for _, t := range trees {
			names = append(names, string(t))
		}
		return b.Where(sq.Eq{"tree": names})
	}
}

func UpdatedSince(t time.Time) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Where(sq.GtOrEq{"updated_at": t})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithDefaultSort() ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.OrderBy("tree")
	}
}

// WithSort orders by save time, newest first when desc is set.
func WithSort(desc bool) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if desc {
			return b.OrderBy("updated_at DESC", "tree")
		}
		return b.OrderBy("updated_at ASC", "tree")
	}
}
