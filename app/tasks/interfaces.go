package tasks

import "context"

// TaskRunnerInterface runs a batch of tasks and returns one Outcome per task,
// in the order the tasks were given.
//
//	runner := NewRunner(4, 30*time.Second)
//	outcomes := runner.Run(ctx, []TaskInterface{NewUpdateFeedTask(...)})
type TaskRunnerInterface interface {
	Run(ctx context.Context, tasks []TaskInterface) []Outcome
}
