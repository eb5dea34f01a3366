// Package scheduler implements a typed worker pool for executing async work
// with futures.
//
// The tree store submits every node-children fetch to a Scheduler, which
// bounds the number of concurrent requests sent to the node API regardless
// of how many api clients expand nodes at the same time.
//
// # Architecture Overview
//
//	┌─────────────────────────────────────────────────────────────────────┐
//	│                           Scheduler                                 │
//	│                                                                     │
//	│  ┌──────────────┐      ┌──────────────┐      ┌──────────────┐       │
//	│  │   Worker 1   │      │   Worker 2   │      │   Worker N   │       │
//	│  └──────────────┘      └──────────────┘      └──────────────┘       │
//	│         ▲                     ▲                     ▲               │
//	│         └─────────────────────┼─────────────────────┘               │
//	│                        ┌──────┴──────┐                              │
//	│                        │  dispatch() │                              │
//	│                        └──────┬──────┘                              │
//	│  ┌────────────────────────────┴────────────────────────────┐        │
//	│  │                      Work Queue                         │        │
//	│  └─────────────────────────────────────────────────────────┘        │
//	│                               ▲                                     │
//	│                        AddWork(fn)                                  │
//	└─────────────────────────────────────────────────────────────────────┘
//
// # Futures
//
// AddWork returns a Future immediately:
//
//   - C() receives exactly one Result{Data, Err} when the work completes
//   - Stop() cancels the context passed to the work function
//   - Wait(ctx) blocks for the result; if ctx ends first the work is
//     stopped and ctx.Err() is returned
//
// After Close, AddWork still returns a Future; its result carries
// context.Canceled.
//
// # Panics
//
// A panicking work function does not take the pool down: the panic is logged,
// reported as the future's error and the worker goes back to the pool.
//
// # Shutdown
//
// Close cancels the main context so every running work sees ctx.Done(),
// resolves queued work with context.Canceled, waits for in-flight work and
// stops the event loop. It is idempotent.
//
// # Usage Example
//
//	sched := scheduler.NewScheduler[[]models.RawRow](4)
//	defer sched.Close()
//
//	future := sched.AddWork(func(ctx context.Context) ([]models.RawRow, error) {
//	    return client.FetchChildren(ctx, "server/children/1/2")
//	})
//
//	rows, err := future.Wait(ctx)
//	if err != nil {
//	    // report the load failure
//	}
package scheduler
