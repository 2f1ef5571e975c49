package repository

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type reminderRecord struct {
	Time    *string `json:"time"`
	Enabled bool    `json:"enabled"`
}

type notificationSettingsRecord struct {
	UserID                  string                              `gorm:"primaryKey;size:64"`
	Enabled                 bool                                `gorm:"not null;default:false;index"`
	PrimaryTime             string                              `gorm:"size:5;not null"`
	Timezone                string                              `gorm:"size:64;not null"`
	ActiveDays              datatypes.JSONSlice[int]            `gorm:"not null"`
	FollowUpEnabled         bool                                `gorm:"not null;default:true"`
	FollowUpIntervalMinutes int                                 `gorm:"not null"`
	FollowUpMaxCount        int                                 `gorm:"not null"`
	Reminders               datatypes.JSONSlice[reminderRecord] `gorm:"not null"`
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

func (notificationSettingsRecord) TableName() string {
	return "notification_settings"
}

type notificationLogRecord struct {
	ID              string    `gorm:"primaryKey;size:36"`
	UserID          string    `gorm:"size:64;not null;index:idx_notification_logs_user_sent,priority:1"`
	Type            string    `gorm:"size:32;not null"`
	SentAt          time.Time `gorm:"not null;index:idx_notification_logs_user_sent,priority:2;index"`
	Result          string    `gorm:"size:16;not null"`
	ErrorMessage    *string   `gorm:"type:text"`
	EntryRecordedAt *time.Time
}

func (notificationLogRecord) TableName() string {
	return "notification_logs"
}

type pushSubscriptionRecord struct {
	ID        string  `gorm:"primaryKey;size:36"`
	UserID    string  `gorm:"size:64;not null;uniqueIndex:idx_push_subscriptions_user_endpoint,priority:1"`
	Endpoint  string  `gorm:"size:512;not null;uniqueIndex:idx_push_subscriptions_user_endpoint,priority:2"`
	P256dhKey string  `gorm:"size:255;not null"`
	AuthKey   string  `gorm:"size:255;not null"`
	UserAgent *string `gorm:"type:text"`
	CreatedAt time.Time
}

func (pushSubscriptionRecord) TableName() string {
	return "push_subscriptions"
}

type followUpCancellationRecord struct {
	ID          uint           `gorm:"primaryKey"`
	UserID      string         `gorm:"size:64;not null;uniqueIndex:idx_follow_up_cancellations_user_date,priority:1"`
	TargetDate  datatypes.Date `gorm:"not null;uniqueIndex:idx_follow_up_cancellations_user_date,priority:2"`
	CancelledAt time.Time      `gorm:"not null"`
}

func (followUpCancellationRecord) TableName() string {
	return "follow_up_cancellations"
}

// entryRecord maps the journal entries table of the surrounding product. Only the columns
// read by the notification engine are declared.
type entryRecord struct {
	ID        string         `gorm:"primaryKey;size:36"`
	UserID    string         `gorm:"size:64;not null;index:idx_entries_user_created,priority:1"`
	CreatedAt time.Time      `gorm:"index:idx_entries_user_created,priority:2"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (entryRecord) TableName() string {
	return "entries"
}

func allModels() []any {
	return []any{
		&notificationSettingsRecord{},
		&notificationLogRecord{},
		&pushSubscriptionRecord{},
		&followUpCancellationRecord{},
		&entryRecord{},
	}
}
