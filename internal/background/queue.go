package background

import (
	"context"
	"log/slog"

	"github.com/sourcegraph/conc"
)

// Task is a unit of deferred work. Both its result and its error are
// discarded.
type Task func(ctx context.Context) (any, error)

type Queue struct {
	tasks   chan Task
	workers int
	logger  *slog.Logger
	wg      conc.WaitGroup
}

func NewQueue(size, workers int, logger *slog.Logger) *Queue {
	if workers < 1 {
		workers = 1
	}

	return &Queue{
		tasks:   make(chan Task, size),
		workers: workers,
		logger:  logger,
	}
}

// WaitUntil schedules task without waiting for it. When the buffer is full
// the task is dropped.
func (q *Queue) WaitUntil(task Task) {
	if task == nil {
		return
	}

	select {
	case q.tasks <- task:
	default:
	}
}

// Pending reports how many tasks are buffered and not yet picked up.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// Start launches the workers. Once ctx is done each worker drains what is
// left in the buffer and exits.
func (q *Queue) Start(ctx context.Context) {
	q.logger.Info("Background queue started", slog.Int("workers", q.workers))

	for i := 0; i < q.workers; i++ {
		q.wg.Go(func() {
			q.run(ctx)
		})
	}
}

// Wait blocks until all workers have exited or ctx is done.
func (q *Queue) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		q.logger.Info("Background queue stopped")
		return nil
	case <-ctx.Done():
		q.logger.Warn("Background queue did not drain in time", slog.Int("pending", q.Pending()))
		return ctx.Err()
	}
}

func (q *Queue) run(ctx context.Context) {
	taskCtx := context.WithoutCancel(ctx)

	for {
		select {
		case task := <-q.tasks:
			runTask(taskCtx, task)
		case <-ctx.Done():
			q.drain(taskCtx)
			return
		}
	}
}

func (q *Queue) drain(ctx context.Context) {
	for {
		select {
		case task := <-q.tasks:
			runTask(ctx, task)
		default:
			return
		}
	}
}

func runTask(ctx context.Context, task Task) {
	defer func() {
		_ = recover()
	}()

	_, _ = task(ctx)
}
