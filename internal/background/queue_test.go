package background_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/edge-worker/internal/background"
	"github.com/angeloszaimis/edge-worker/pkg/logger"
)

var _ = Describe("Queue", func() {
	var (
		queue  *background.Queue
		ctx    context.Context
		cancel context.CancelFunc
	)

	BeforeEach(func() {
		ctx, cancel = context.WithCancel(context.Background())
		queue = background.NewQueue(8, 2, logger.Discard())
	})

	AfterEach(func() {
		cancel()
	})

	Describe("WaitUntil", func() {
		It("should run submitted tasks", func() {
			queue.Start(ctx)
			done := make(chan string, 1)

			queue.WaitUntil(func(context.Context) (any, error) {
				done <- "ran"
				return nil, nil
			})

			Eventually(done).Should(Receive(Equal("ran")))
		})

		It("should not block while the queue is not started", func() {
			queue.WaitUntil(func(context.Context) (any, error) { return nil, nil })
			Expect(queue.Pending()).To(Equal(1))
		})

		It("should drop tasks when the buffer is full", func() {
			small := background.NewQueue(1, 1, logger.Discard())
			var ran atomic.Int32

			for i := 0; i < 3; i++ {
				small.WaitUntil(func(context.Context) (any, error) {
					ran.Add(1)
					return nil, nil
				})
			}
			Expect(small.Pending()).To(Equal(1))

			small.Start(ctx)
			Eventually(ran.Load).Should(Equal(int32(1)))
			Consistently(ran.Load, 50*time.Millisecond).Should(Equal(int32(1)))
		})

		It("should ignore nil tasks", func() {
			queue.WaitUntil(nil)
			Expect(queue.Pending()).To(BeZero())
		})

		It("should swallow task errors and panics", func() {
			queue.Start(ctx)
			done := make(chan struct{})

			queue.WaitUntil(func(context.Context) (any, error) { return nil, errors.New("boom") })
			queue.WaitUntil(func(context.Context) (any, error) { panic("boom") })
			queue.WaitUntil(func(context.Context) (any, error) {
				close(done)
				return nil, nil
			})

			Eventually(done).Should(BeClosed())
		})
	})

	Describe("shutdown", func() {
		It("should drain buffered tasks after cancellation", func() {
			var ran atomic.Int32
			for i := 0; i < 5; i++ {
				queue.WaitUntil(func(context.Context) (any, error) {
					ran.Add(1)
					return nil, nil
				})
			}

			queue.Start(ctx)
			cancel()

			waitCtx, waitCancel := context.WithTimeout(context.Background(), time.Second)
			defer waitCancel()
			Expect(queue.Wait(waitCtx)).To(Succeed())
			Expect(ran.Load()).To(Equal(int32(5)))
		})

		It("should hand tasks a context that survives shutdown", func() {
			seen := make(chan error, 1)
			queue.WaitUntil(func(taskCtx context.Context) (any, error) {
				seen <- taskCtx.Err()
				return nil, nil
			})

			queue.Start(ctx)
			cancel()

			Eventually(seen).Should(Receive(BeNil()))
		})

		It("should give up waiting when the deadline passes", func() {
			release := make(chan struct{})
			defer close(release)

			queue.Start(ctx)
			queue.WaitUntil(func(context.Context) (any, error) {
				<-release
				return nil, nil
			})
			Eventually(queue.Pending).Should(BeZero())
			cancel()

			waitCtx, waitCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer waitCancel()
			Expect(queue.Wait(waitCtx)).To(MatchError(context.DeadlineExceeded))
		})
	})
})
