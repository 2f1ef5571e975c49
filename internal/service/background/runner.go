// Package background runs side effects that must not block or fail the request that triggered them.
package background

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const defaultTaskTimeout = 30 * time.Second

// Runner spawns detached tasks. A task keeps the values of the spawning context (trace and
// request ids) but not its cancellation, and its failure is only logged.
type Runner struct {
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewRunner(timeout time.Duration) *Runner {
	if timeout <= 0 {
		timeout = defaultTaskTimeout
	}
	return &Runner{timeout: timeout}
}

func (r *Runner) Go(ctx context.Context, name string, fn func(ctx context.Context) error) {
	taskCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.timeout)

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(taskCtx, "background task panicked",
					slog.String("task", name),
					slog.Any("panic", rec),
				)
			}
		}()

		if err := fn(taskCtx); err != nil {
			slog.ErrorContext(taskCtx, "background task failed",
				slog.String("task", name),
				slog.String("error", err.Error()),
			)
			return
		}

		slog.DebugContext(taskCtx, "background task completed", slog.String("task", name))
	}()
}

// Wait blocks until every spawned task has finished.
func (r *Runner) Wait() {
	r.wg.Wait()
}
