package domain

import "time"

type NotificationType string

const (
	NotificationTypeMainReminder  NotificationType = "main_reminder"
	NotificationTypeChaseReminder NotificationType = "chase_reminder"
	NotificationTypeCelebration   NotificationType = "celebration"
	NotificationTypeFollow        NotificationType = "follow"
)

func (t NotificationType) String() string {
	return string(t)
}

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationTypeMainReminder, NotificationTypeChaseReminder, NotificationTypeCelebration, NotificationTypeFollow:
		return true
	}
	return false
}

type NotificationResult string

const (
	NotificationResultSuccess NotificationResult = "success"
	NotificationResultFailed  NotificationResult = "failed"
	NotificationResultSkipped NotificationResult = "skipped"
)

func (r NotificationResult) String() string {
	return string(r)
}

// NotificationLog is one dispatch decision. EntryRecordedAt is filled later by correlation.
type NotificationLog struct {
	ID              string
	UserID          string
	Type            NotificationType
	SentAt          time.Time
	Result          NotificationResult
	ErrorMessage    *string
	EntryRecordedAt *time.Time
}

// ResponseLatency is the time between the notification and the entry it led to.
func (l *NotificationLog) ResponseLatency() (time.Duration, bool) {
	if l.EntryRecordedAt == nil {
		return 0, false
	}
	return l.EntryRecordedAt.Sub(l.SentAt), true
}
