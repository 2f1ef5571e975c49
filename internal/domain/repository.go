package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=repository.go -destination=repository_mock.go -package=domain

type SettingsRepository interface {
	Get(ctx context.Context, userID string) (*NotificationSettings, error)
	Upsert(ctx context.Context, settings *NotificationSettings) error
	ListEnabled(ctx context.Context) ([]*NotificationSettings, error)
}

type NotificationLogRepository interface {
	Create(ctx context.Context, log *NotificationLog) error
	ListSentBetween(ctx context.Context, userID string, start, end time.Time) ([]*NotificationLog, error)
	SetEntryRecordedAt(ctx context.Context, userID string, start, end, entryRecordedAt time.Time) (int64, error)
	DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type SubscriptionRepository interface {
	Create(ctx context.Context, sub *PushSubscription) error
	ListByUser(ctx context.Context, userID string) ([]*PushSubscription, error)
	DeleteByEndpoint(ctx context.Context, userID, endpoint string) error
	DeleteByID(ctx context.Context, id string) error
}

type CancellationRepository interface {
	Create(ctx context.Context, cancellation *FollowUpCancellation) error
	Exists(ctx context.Context, userID, targetDate string) (bool, error)
}

// EntryRepository reads the journal entries owned by the surrounding product.
type EntryRepository interface {
	CountCreatedBetween(ctx context.Context, userID string, start, end time.Time) (int64, error)
}
