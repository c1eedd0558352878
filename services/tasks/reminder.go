package tasks

import "github.com/hibiken/asynq"

const TypeReminderSweep = "reminder:sweep"

// NewSweepTask builds an asynq task that runs one reminder sweep. The task
// carries no payload: the handler reads the clock when it fires, so a task
// registered once with the scheduler never goes stale.
func NewSweepTask() *asynq.Task {
	return asynq.NewTask(TypeReminderSweep, nil)
}
