// Package services implements the layer between the HTTP handlers and the
// navigation trees.
//
// # Service Dependency Graph
//
//	Handlers (HTTP endpoints)
//	    │
//	    ▼
//	┌──────────────────────────────────────────────────────────┐
//	│  Navigator                     TreeStateService          │
//	│   ├── browser tree    ◄──────── Save / Restore           │
//	│   └── preferences tree          │                        │
//	└───────┬─────────────────────────┼────────────────────────┘
//	        │                         │
//	        ▼                         ▼
//	  tree.Store + tree.Headless   store.TreeStateStore (DuckDB)
//	        │
//	        ▼
//	  nodes.Client → node api, fetched through the scheduler
//
// # Navigator
//
// The Navigator owns one tree per node api. Every tree gets its own store
// and headless renderer; the trees share the type registry, the fetch
// scheduler, the notifier and the event bus.
//
//	nav, err := services.NewNavigator(cfg.Browser, cfg.Auth, bus)
//	t, err := nav.Tree("browser")
//	children := t.Store().ReadNode(ctx, "/browser/srv1")
//
// Tests and embedders can build trees over any tree.Fetcher:
//
//	nav := services.NewNavigatorWithFetchers(map[models.TreeName]services.TreeSource{
//	    models.TreeBrowser: {RootPath: "/browser", Fetcher: fetcher},
//	}, bus)
//
// The browser tree registers drag handlers for database objects:
//
//	┌──────────────────────────────────────┬─────────────────────────────┐
//	│ Types                                │ Dropped text                │
//	├──────────────────────────────────────┼─────────────────────────────┤
//	│ schema, catalog, database, role,     │ name                        │
//	│ column                               │                             │
//	│ table, partition, view, mview,       │ schema.name                 │
//	│ sequence, type, domain               │                             │
//	│ function, procedure                  │ schema.name(), cursor in () │
//	└──────────────────────────────────────┴─────────────────────────────┘
//
// Identifiers that are not plain lower-case are double-quoted.
//
// # TreeStateService
//
// Remembers the open paths and the active node of every tree.
//
//	┌─────────┬──────────────────────────────────────────────────────┐
//	│ Save    │ snapshot of OpenPaths and Active per tree, retried   │
//	│         │ with exponential backoff                             │
//	│ Restore │ FindNodeWithToggle on every saved path, then select; │
//	│         │ paths that no longer exist are skipped               │
//	│ Start   │ Save every interval                                  │
//	│ Stop    │ stop the loop after a last Save                      │
//	└─────────┴──────────────────────────────────────────────────────┘
package services
