//go:build gcloud

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// Validate requires the Cloud Tasks queue coordinates and an https check endpoint for wake-ups.
func (c *TaskQueueConfig) Validate() error {
	required := []struct {
		env   string
		value string
	}{
		{"GCLOUD_PROJECT_ID", c.GCloudProjectID},
		{"GCLOUD_LOCATION_ID", c.GCloudLocationID},
		{"GCLOUD_QUEUE_ID", c.GCloudQueueID},
		{"GCLOUD_TARGET_URL", c.GCloudTargetURL},
	}

	var missing []string
	for _, r := range required {
		if r.value == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrTaskQueueIncomplete, strings.Join(missing, ", "))
	}

	target, err := url.Parse(c.GCloudTargetURL)
	if err != nil || target.Scheme != "https" || target.Host == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTargetURL, c.GCloudTargetURL)
	}

	return nil
}
