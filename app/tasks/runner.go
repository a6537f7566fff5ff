package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var _ TaskRunnerInterface = (*Runner)(nil)

type Runner struct {
	workerCount int
	taskTimeout time.Duration
}

func NewRunner(workerCount int, taskTimeout time.Duration) *Runner {
	return &Runner{
		workerCount: max(workerCount, 1),
		taskTimeout: taskTimeout,
	}
}

// Run executes tasks on a bounded pool of workers. Tasks that have not
// started when ctx is cancelled resolve to error outcomes.
func (r *Runner) Run(ctx context.Context, tasks []TaskInterface) []Outcome {
	outcomes := make([]Outcome, len(tasks))
	if len(tasks) == 0 {
		return outcomes
	}

	queue := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < min(r.workerCount, len(tasks)); i++ {
		wg.Add(1)
		go r.worker(ctx, i, tasks, outcomes, queue, &wg)
	}

enqueue:
	for i := range tasks {
		select {
		case queue <- i:
		case <-ctx.Done():
			for j := i; j < len(tasks); j++ {
				outcomes[j] = cancelled(tasks[j], ctx.Err())
			}
			slog.Debug("Runner cancelled, skipping remaining tasks", "skipped", len(tasks)-i)
			break enqueue
		}
	}
	close(queue)

	wg.Wait()
	return outcomes
}

func (r *Runner) worker(ctx context.Context, id int, tasks []TaskInterface, outcomes []Outcome, queue <-chan int, wg *sync.WaitGroup) {
	defer wg.Done()

	for i := range queue {
		if err := ctx.Err(); err != nil {
			outcomes[i] = cancelled(tasks[i], err)
			continue
		}
		outcomes[i] = r.executeTask(ctx, id, tasks[i])
	}
}

func (r *Runner) executeTask(ctx context.Context, workerID int, task TaskInterface) Outcome {
	task.Start()

	taskCtx := ctx
	if r.taskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(ctx, r.taskTimeout)
		defer cancel()
	}

	outcome := task.Execute(taskCtx)
	outcome.URL = task.GetFeedURL()

	if outcome.Status != StatusError && ctx.Err() != nil {
		outcome = cancelled(task, ctx.Err())
	}

	if outcome.Err != nil {
		slog.Warn("Worker task failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "feed", task.GetFeedURL(), "duration", task.GetDuration(), "error", outcome.Err)
	}

	return outcome
}

func cancelled(task TaskInterface, err error) Outcome {
	return Failed(task.GetFeedURL(), fmt.Errorf("task %s cancelled: %w", task.GetType(), err))
}
