package scheduler_test

import (
	"context"
	"errors"
	"runtime"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/dbnav/object-browser/pkg/scheduler"
)

var _ = Describe("Scheduler", func() {
	var s *scheduler.Scheduler[any]

	AfterEach(func() {
		if s != nil {
			s.Close()
		}
	})

	Describe("AddWork", func() {
		It("should add work and return a future", func() {
			s = scheduler.NewScheduler[any](1)

			work := func(ctx context.Context) (any, error) {
				return "done", nil
			}

			future := s.AddWork(work)
			Expect(future).NotTo(BeNil())

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("done"))
		})
	})

	Describe("Panics", func() {
		It("should report a panicking work as an error and keep serving", func() {
			s = scheduler.NewScheduler[any](1)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				panic("boom")
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(ContainSubstring("boom")))

			next := s.AddWork(func(ctx context.Context) (any, error) {
				return "still alive", nil
			})
			Eventually(next.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal("still alive"))
		})

		It("should start one worker when asked for none", func() {
			s = scheduler.NewScheduler[any](0)

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return 1, nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 2*time.Second).Should(Receive(&result))
			Expect(result.Data).To(Equal(1))
		})
	})

	Describe("Run work", func() {
		It("should execute multiple work items", func() {
			s = scheduler.NewScheduler[any](2)

			results := make(chan int, 3)
			for i := range 3 {
				idx := i
				work := func(ctx context.Context) (any, error) {
					results <- idx
					return idx, nil
				}
				s.AddWork(work)
			}

			Eventually(func() int {
				return len(results)
			}, 2*time.Second, 100*time.Millisecond).Should(Equal(3))
		})
	})

	Describe("Cancel work", func() {
		It("should cancel work via future.Stop()", func() {
			s = scheduler.NewScheduler[any](1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			future := s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			future.Stop()

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})

		It("should cancel work when scheduler is closed", func() {
			s = scheduler.NewScheduler[any](1)

			cancelled := make(chan bool, 1)
			work := func(ctx context.Context) (any, error) {
				select {
				case <-ctx.Done():
					cancelled <- true
					return nil, ctx.Err()
				case <-time.After(5 * time.Second):
					return "completed", nil
				}
			}

			s.AddWork(work)
			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(cancelled, 2*time.Second).Should(Receive(BeTrue()))
		})
	})

	Describe("Goroutine cleanup", func() {
		It("should not leak goroutines after Close under load", func() {
			base := runtime.NumGoroutine()
			s = scheduler.NewScheduler[any](4)

			work := func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}

			for i := 0; i < 200; i++ {
				s.AddWork(work)
			}

			time.Sleep(100 * time.Millisecond)
			s.Close()
			s = nil // prevent AfterEach from closing again

			Eventually(func() int {
				return runtime.NumGoroutine()
			}, 5*time.Second, 100*time.Millisecond).Should(BeNumerically("<=", base+10))
		})
	})

	Describe("Close behavior", func() {
		It("should return canceled when AddWork is called after Close", func() {
			s = scheduler.NewScheduler[any](1)
			s.Close()

			future := s.AddWork(func(ctx context.Context) (any, error) {
				return "done", nil
			})

			var result scheduler.Result[any]
			Eventually(future.C(), 1*time.Second).Should(Receive(&result))
			Expect(result.Err).To(MatchError(context.Canceled))
		})

		It("should wait for in-flight work to finish on Close", func() {
			s = scheduler.NewScheduler[any](1)

			started := make(chan struct{})
			unblock := make(chan struct{})
			work := func(ctx context.Context) (any, error) {
				close(started)
				<-unblock
				return "done", nil
			}

			s.AddWork(work)
			Eventually(started, 1*time.Second).Should(BeClosed())

			closeDone := make(chan struct{})
			go func() {
				s.Close()
				close(closeDone)
			}()

			Consistently(closeDone, 200*time.Millisecond).ShouldNot(BeClosed())
			close(unblock)
			Eventually(closeDone, 1*time.Second).Should(BeClosed())
			s = nil // prevent AfterEach from closing again
		})
	})
})

var _ = Describe("Scheduler shutdown", func() {
	// Given a single busy worker and a second work waiting in the queue
	// When the scheduler is closed
	// Then the waiting work is resolved with context.Canceled
	It("should cancel queued work on close", func() {
		s := scheduler.NewScheduler[any](1)
		started := make(chan struct{})

		busy := s.AddWork(func(ctx context.Context) (any, error) {
			close(started)
			<-ctx.Done()
			return nil, ctx.Err()
		})
		Eventually(started).Should(BeClosed())
		queued := s.AddWork(func(ctx context.Context) (any, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return "never", nil
		})

		s.Close()

		var result scheduler.Result[any]
		Eventually(queued.C(), 2*time.Second).Should(Receive(&result))
		Expect(result.Err).To(MatchError(context.Canceled))
		Eventually(busy.C(), 2*time.Second).Should(Receive(&result))
		Expect(result.Err).To(MatchError(context.Canceled))
	})
})

var _ = Describe("Typed results", func() {
	type row map[string]any

	var s *scheduler.Scheduler[[]row]

	BeforeEach(func() {
		s = scheduler.NewScheduler[[]row](2)
	})

	AfterEach(func() {
		s.Close()
	})

	// Given a work returning rows
	// When we wait for it
	// Then the rows come back without a type assertion
	It("should return the typed data from Wait", func() {
		// Arrange
		future := s.AddWork(func(ctx context.Context) ([]row, error) {
			return []row{{"id": "srv1"}, {"id": "srv2"}}, nil
		})

		// Act
		rows, err := future.Wait(context.Background())

		// Assert
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(2))
		Expect(rows[1]).To(HaveKeyWithValue("id", "srv2"))
	})

	It("should return the work error from Wait", func() {
		future := s.AddWork(func(ctx context.Context) ([]row, error) {
			return nil, errors.New("connection refused")
		})

		_, err := future.Wait(context.Background())

		Expect(err).To(MatchError("connection refused"))
	})

	// Given a work that never finishes on its own
	// When the waiting context expires
	// Then Wait returns the context error and the work is stopped
	It("should stop the work when the caller gives up", func() {
		// Arrange
		stopped := make(chan struct{})
		future := s.AddWork(func(ctx context.Context) ([]row, error) {
			<-ctx.Done()
			close(stopped)
			return nil, ctx.Err()
		})
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		// Act
		_, err := future.Wait(ctx)

		// Assert
		Expect(err).To(MatchError(context.DeadlineExceeded))
		Eventually(stopped, time.Second).Should(BeClosed())
	})

	// Given two workers
	// When four works are queued
	// Then at most two run at the same time
	It("should bound the number of concurrent works", func() {
		// Arrange
		var running, peak atomic.Int32
		release := make(chan struct{})
		futures := make([]*scheduler.Future[[]row], 0, 4)

		// Act
		for range 4 {
			futures = append(futures, s.AddWork(func(ctx context.Context) ([]row, error) {
				n := running.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				<-release
				running.Add(-1)
				return nil, nil
			}))
		}
		Eventually(running.Load).Should(Equal(int32(2)))
		Consistently(running.Load, 100*time.Millisecond).Should(Equal(int32(2)))
		close(release)

		// Assert
		for _, f := range futures {
			_, err := f.Wait(context.Background())
			Expect(err).NotTo(HaveOccurred())
		}
		Expect(peak.Load()).To(Equal(int32(2)))
	})
})
