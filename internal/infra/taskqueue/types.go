package taskqueue

import (
	"fmt"
	"strings"
	"time"
)

type WakeUpTask struct {
	UserID         string    `json:"user_id"`
	TargetDate     string    `json:"target_date"`
	FollowUpNumber int       `json:"follow_up_number"`
	ScheduleAt     time.Time `json:"-"`

	// Headers are forwarded with the callback request, e.g. trace context.
	Headers map[string]string `json:"-"`
}

// Name is deterministic per user, civil date and follow-up number.
func (t *WakeUpTask) Name() string {
	return TaskName(t.UserID, t.TargetDate, t.FollowUpNumber)
}

func TaskName(userID, targetDate string, followUpNumber int) string {
	return fmt.Sprintf("followup-%s-%s-%d", sanitizeTaskID(userID), sanitizeTaskID(targetDate), followUpNumber)
}

// sanitizeTaskID keeps the characters Cloud Tasks accepts in a task id.
func sanitizeTaskID(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, s)
}

type TaskResponse struct {
	Name          string    `json:"name"`
	ScheduleTime  time.Time `json:"schedule_time"`
	CreateTime    time.Time `json:"create_time"`
	AlreadyExists bool      `json:"already_exists"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
