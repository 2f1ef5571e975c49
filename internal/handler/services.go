package handler

import (
	"context"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/cancellation"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/notification"
)

//go:generate mockgen -source=services.go -destination=services_mock.go -package=handler

type NotificationService interface {
	CheckAndSend(ctx context.Context, userID string, now time.Time) (*notification.CheckResult, error)
	CheckAndSendAll(ctx context.Context, now time.Time) (*notification.BatchResult, error)
	HandleEntryCreated(ctx context.Context, userID, entryID string, createdAt time.Time)
}

type CancellationService interface {
	Cancel(ctx context.Context, userID, targetDate string) (*cancellation.Result, error)
}

type LogPruner interface {
	PruneOlderThan(ctx context.Context, retentionDays int) (int64, error)
}

type SubscriptionRegistry interface {
	Register(ctx context.Context, userID string, desc domain.SubscriptionDescriptor) (*domain.PushSubscription, error)
	Unregister(ctx context.Context, userID, endpoint string) error
	List(ctx context.Context, userID string) ([]*domain.PushSubscription, error)
}

type SettingsService interface {
	Get(ctx context.Context, userID string) (*domain.NotificationSettings, error)
	Replace(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error)
	Patch(ctx context.Context, userID string, p domain.SettingsPatch) (*domain.NotificationSettings, error)
}
