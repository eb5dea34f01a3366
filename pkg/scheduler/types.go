package scheduler

import (
	"context"
)

// Work is a unit of work run by a pool worker. ctx is canceled when the
// future is stopped or the scheduler closes.
type Work[T any] func(ctx context.Context) (T, error)

type Result[T any] struct {
	Data T
	Err  error
}

// Future is the pending result of a Work. It resolves exactly once.
type Future[T any] struct {
	result chan Result[T]
	cancel context.CancelFunc
}

func newFuture[T any](result chan Result[T], cancel context.CancelFunc) *Future[T] {
	return &Future[T]{result: result, cancel: cancel}
}

func (f *Future[T]) C() <-chan Result[T] {
	return f.result
}

// Stop cancels the context of the work. The future still resolves.
func (f *Future[T]) Stop() {
	f.cancel()
}

// Wait blocks until the work completes or ctx is done. When ctx wins the
// work is stopped and ctx's error is returned.
func (f *Future[T]) Wait(ctx context.Context) (T, error) {
	select {
	case r := <-f.result:
		return r.Data, r.Err
	case <-ctx.Done():
		f.Stop()
		var zero T
		return zero, ctx.Err()
	}
}
