// Package tree implements the lazily loaded object hierarchy behind the
// database browser and the preferences panel.
//
// # Architecture Overview
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│                               Tree                                   │
//	│  AddNode/RemoveNode, Select/Open/Close/Toggle/Refresh, locate, drag  │
//	│                                                                      │
//	│   ┌──────────────────┐   render events   ┌────────────────────────┐  │
//	│   │     Renderer     │ ────────────────► │  <ns>:tree:<event> bus │  │
//	│   │ (Headless, ...)  │                   └────────────────────────┘  │
//	│   └────────┬─────────┘                                               │
//	│            │ ReadNode                                                │
//	│   ┌────────▼──────────────────────────────────────────────────────┐  │
//	│   │                            Store                              │  │
//	│   │  FindNode / AddNode / UpdateNode / RemoveNode / ReadNode      │  │
//	│   │  TypedAncestry                                                │  │
//	│   └────────┬──────────────────────────────────────┬───────────────┘  │
//	│            │ singleflight per path                │ Registry         │
//	│   ┌────────▼─────────┐                   ┌────────▼───────────────┐  │
//	│   │    Scheduler     │ ─── Fetcher ────► │      node api          │  │
//	│   └──────────────────┘                   └────────────────────────┘  │
//	└──────────────────────────────────────────────────────────────────────┘
//
// # Paths
//
// Every node is addressed by a slash separated path. The root carries the
// tree's sentinel (/browser, /preferences) and every other node has the path
// of its parent followed by its own id. FindNode only descends into subtrees
// whose path is a prefix of the target.
//
// # Loading
//
// ReadNode is the only place where the network is touched. A node whose
// children are known answers from memory. Otherwise the children url is
// derived from the node type and the _id chain of its identity-bearing
// ancestors:
//
//	root                 nodes/
//	collection           <collection type>/nodes/<ids>/
//	any other node       <type>/children/<ids>
//
// Concurrent reads of the same node share one fetch. Unload, Remove and
// Refresh move the node to a new load generation; a fetch finishing under an
// old generation is dropped. Servers and databases reported as not connected
// are never fetched.
//
// Nodes inserted or removed by callers go through Tree.AddNode and
// Tree.RemoveNode so the renderer shows the new node under a displayed parent
// and forgets the open and selected state of a removed subtree. The Store
// methods of the same name only change the hierarchy.
//
// Load failures never reach the caller: they are logged, sent to the
// notifier and answered with an empty list.
//
// # Node data
//
// Rows coming from the api are normalized into models.NodeData copies. The
// label is NFC normalized and html escaped; the unescaped form is kept as
// RawLabel. Node.Data distinguishes a node never loaded (ok == false) from a
// node added with no row (nil, true).
//
// # Typed ancestry
//
// TypedAncestry walks from a node to the root and keeps the closest node of
// each identity-bearing type:
//
//	/browser/sg1/srv1/db1/sch1/tbl1/part1
//
//	partition -> part1   priority  0
//	table     -> tbl1    priority -1
//	schema    -> sch1    priority -2
//	database  -> db1     priority -3
//	server    -> srv1    priority -4
//	server_group -> sg1  priority -5
//
// A partition above the starting node is reported as a table.
package tree
