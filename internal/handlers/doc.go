// Package handlers implements the HTTP API layer of the object browser.
//
// Handlers expose the navigation trees over a RESTful API. They delegate to
// the tree facade and the services layer, and only deal with request
// parsing, error mapping and model-to-API conversion.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Tree lookup by name                                          │
//	│  - Node lookup by ?path=                                        │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│        Navigator (trees) │ TreeStateService (persistence)       │
//	└─────────────────────────────────────────────────────────────────┘
//
// # API Endpoints
//
// Tree Endpoints (trees.go):
//
//	┌────────┬─────────────────────────────┬──────────────────────────────────┐
//	│ Method │ Endpoint                    │ Description                      │
//	├────────┼─────────────────────────────┼──────────────────────────────────┤
//	│ GET    │ /trees                      │ List tree names                  │
//	│ GET    │ /trees/{tree}/nodes         │ Children of ?path=, lazy loaded  │
//	│ POST   │ /trees/{tree}/nodes         │ Add a node under a parent        │
//	│ GET    │ /trees/{tree}/node          │ Single node                      │
//	│ PUT    │ /trees/{tree}/node          │ Replace node data                │
//	│ DELETE │ /trees/{tree}/node          │ Remove node and subtree, not root│
//	│ POST   │ /trees/{tree}/node/{action} │ open, close, toggle, select,     │
//	│        │                             │ deselect, refresh, reload,       │
//	│        │                             │ unload                           │
//	│ GET    │ /trees/{tree}/hierarchy     │ Typed ancestry of ?path=         │
//	│ POST   │ /trees/{tree}/locate        │ Open every ancestor of a path    │
//	│ GET    │ /trees/{tree}/drag          │ Drag payload of ?path=           │
//	│ POST   │ /trees/{tree}/reset         │ Drop every loaded node           │
//	└────────┴─────────────────────────────┴──────────────────────────────────┘
//
// When ?path= is omitted the tree root is used.
//
// Tree State Endpoints (tree_state.go):
//
//	┌────────┬──────────────┬───────────────────────────────────────────┐
//	│ Method │ Endpoint     │ Description                               │
//	├────────┼──────────────┼───────────────────────────────────────────┤
//	│ GET    │ /tree-states │ Saved states, ?tree= and ?limit= filters  │
//	│ POST   │ /tree-states │ Save every tree now                       │
//	└────────┴──────────────┴───────────────────────────────────────────┘
//
// Both answer 503 when persistence is disabled.
//
// # Error Handling
//
//	┌──────────────────────────────┬─────────────┐
//	│ Error                        │ HTTP Status │
//	├──────────────────────────────┼─────────────┤
//	│ ResourceNotFoundError        │ 404         │
//	│ InvalidOperationError        │ 409         │
//	│ UpstreamRejectionError       │ 502         │
//	│ malformed body or parameter  │ 400         │
//	│ anything else                │ 500         │
//	└──────────────────────────────┴─────────────┘
//
// Error bodies are v1.ErrorResponse:
//
//	{"error": "node \"/browser/srv9\" not found"}
//
// # Logging
//
// Handlers log through zap.S().Named("tree_handler") and
// zap.S().Named("tree_state_handler"). Internal errors are logged at error
// level, client errors at debug level.
package handlers
