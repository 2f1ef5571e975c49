//go:build !gcloud

package config

// Validate accepts an empty PRIMIND_TASKS_URL; follow-up wake-ups are then disabled.
func (c *TaskQueueConfig) Validate() error {
	return nil
}
