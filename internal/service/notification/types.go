package notification

import (
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type Action string

const (
	ActionSent      Action = "sent"
	ActionFailed    Action = "failed"
	ActionSkipped   Action = "skipped"
	ActionDuplicate Action = "duplicate"
	ActionNone      Action = "none"
	ActionError     Action = "error"
)

// CheckResult describes what one check did for one user.
type CheckResult struct {
	UserID         string                  `json:"user_id"`
	Action         Action                  `json:"action"`
	Type           domain.NotificationType `json:"type,omitempty"`
	Reason         string                  `json:"reason,omitempty"`
	ReminderSlot   int                     `json:"reminder_slot,omitempty"`
	FollowUpNumber int                     `json:"follow_up_number,omitempty"`
	NotificationID string                  `json:"notification_id,omitempty"`
	Results        []domain.SendResult     `json:"results,omitempty"`
	Error          string                  `json:"error,omitempty"`
}

type BatchResult struct {
	CheckedAt time.Time      `json:"checked_at"`
	Processed int            `json:"processed"`
	Sent      int            `json:"sent"`
	Failed    int            `json:"failed"`
	Skipped   int            `json:"skipped"`
	Errors    int            `json:"errors"`
	Results   []*CheckResult `json:"results"`
}

// PayloadConfig holds the user-visible texts of the push payloads.
type PayloadConfig struct {
	MainTitle  string
	MainBody   string
	ChaseTitle string
	ChaseBody  string
	Icon       string
	ClickURL   string
}

type Config struct {
	Payload          PayloadConfig
	GuardTTL         time.Duration
	BatchConcurrency int
	ScheduleWakeUps  bool
}
