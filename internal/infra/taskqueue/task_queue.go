package taskqueue

import "context"

//go:generate mockgen -source=task_queue.go -destination=mock.go -package=taskqueue

// TaskQueue schedules follow-up wake-ups that call back into the check endpoint.
// Registering a task whose name already exists succeeds without creating a second task.
type TaskQueue interface {
	RegisterWakeUp(ctx context.Context, task *WakeUpTask) (*TaskResponse, error)
	DeleteTask(ctx context.Context, taskName string) error
}
