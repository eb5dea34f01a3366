// Package store implements the local persistence layer of the navigator.
//
// The tree model itself lives in memory (internal/tree). What survives a
// restart is kept in a DuckDB database: for each tree, the paths the user had
// expanded and the selected node, so that the browser can be reopened where
// it was left.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                         Store (facade)                          │
//	├─────────────────────────────────────────────────────────────────┤
//	│                        TreeStateStore                           │
//	│                              ▼                                  │
//	│                    QueryInterceptor (debug log)                 │
//	│                              ▼                                  │
//	│                          tree_state                             │
//	└─────────────────────────────────────────────────────────────────┘
//
// Tables created by migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬─────────────────────────────────────────────┐
//	│  Table             │  Purpose                                    │
//	├────────────────────┼─────────────────────────────────────────────┤
//	│  tree_state        │  Expanded paths and selection per tree      │
//	│  schema_migrations │  Migration version tracking                 │
//	└────────────────────┴─────────────────────────────────────────────┘
//
// # Initialization Flow
//
//	db, _ := store.NewDB(path)     // ":memory:" for tests
//	migrations.Run(ctx, db)        // creates tree_state
//	s := store.NewStore(db)
//
// # TreeStateStore
//
// Schema:
//
//	tree_state (
//	    tree VARCHAR PRIMARY KEY,
//	    expanded VARCHAR NOT NULL DEFAULT '[]',   -- json array of paths
//	    selected VARCHAR,
//	    created_at TIMESTAMP,
//	    updated_at TIMESTAMP
//	)
//
// Methods:
//   - Get(ctx, tree) → *models.TreeState, ResourceNotFoundError when absent
//   - Save(ctx, state) → error (UPSERT, refreshes updated_at)
//   - Delete(ctx, tree) → error
//   - List(ctx, opts...) → []models.TreeState
//
// List uses the functional options pattern; each ListOption modifies the
// squirrel SelectBuilder:
//
//	states, err := s.TreeState().List(ctx,
//	    store.ByTrees(models.TreeBrowser, models.TreePreferences),
//	    store.UpdatedSince(time.Now().Add(-24*time.Hour)),
//	    store.WithSort(true),
//	    store.WithLimit(10),
//	)
//
// # QueryInterceptor
//
// Every statement goes through a QueryInterceptor which logs the query, its
// arguments and its duration at debug level.
package store
