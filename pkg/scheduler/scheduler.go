package scheduler

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

type job[T any] struct {
	fn     Work[T]
	ctx    context.Context
	cancel context.CancelFunc
	result chan Result[T]
}

func (j job[T]) resolve(r Result[T]) {
	j.result <- r
	j.cancel()
}

// Scheduler runs work on a fixed number of workers. Work beyond that waits
// in a FIFO queue.
type Scheduler[T any] struct {
	submit chan job[T]
	free   chan struct{}
	closed chan struct{}
	done   chan struct{}

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	once   sync.Once

	idle    int
	pending []job[T]
}

// NewScheduler starts a pool of size workers. At least one worker is
// always started.
func NewScheduler[T any](size int) *Scheduler[T] {
	size = max(size, 1)
	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler[T]{
		submit: make(chan job[T]),
		free:   make(chan struct{}, size),
		closed: make(chan struct{}),
		done:   make(chan struct{}),
		ctx:    ctx,
		cancel: cancel,
		idle:   size,
	}
	go s.loop()
	return s
}

// AddWork queues w and returns immediately. After Close the future resolves
// with context.Canceled.
func (s *Scheduler[T]) AddWork(w Work[T]) *Future[T] {
	ctx, cancel := context.WithCancel(s.ctx)
	j := job[T]{fn: w, ctx: ctx, cancel: cancel, result: make(chan Result[T], 1)}

	select {
	case s.submit <- j:
	case <-s.closed:
		j.resolve(Result[T]{Err: context.Canceled})
	}
	return newFuture(j.result, cancel)
}

// Close cancels running work, resolves queued work with context.Canceled
// and waits for the workers. It is idempotent.
func (s *Scheduler[T]) Close() {
	s.once.Do(func() {
		s.cancel()
		close(s.closed)
		<-s.done
	})
}

func (s *Scheduler[T]) loop() {
	defer close(s.done)
	for {
		select {
		case j := <-s.submit:
			s.pending = append(s.pending, j)
		case <-s.free:
			s.idle++
		case <-s.closed:
			for _, j := range s.pending {
				j.resolve(Result[T]{Err: context.Canceled})
			}
			s.pending = nil
			s.wg.Wait()
			return
		}
		s.dispatch()
	}
}

func (s *Scheduler[T]) dispatch() {
	for s.idle > 0 && len(s.pending) > 0 {
		j := s.pending[0]
		s.pending = s.pending[1:]
		s.idle--
		s.wg.Add(1)
		go s.run(j)
	}
}

func (s *Scheduler[T]) run(j job[T]) {
	defer func() {
		if rec := recover(); rec != nil {
			zap.S().Named("scheduler").Errorw("work panicked", "panic", rec)
			j.resolve(Result[T]{Err: fmt.Errorf("worker panicked: %v", rec)})
		}
		s.free <- struct{}{}
		s.wg.Done()
	}()

	v, err := j.fn(j.ctx)
	j.resolve(Result[T]{Data: v, Err: err})
}
