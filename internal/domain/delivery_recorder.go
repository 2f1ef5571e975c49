package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=delivery_recorder.go -destination=delivery_recorder_mock.go -package=domain

// DispatchRecord summarises one fan-out for analytics.
type DispatchRecord struct {
	UserID        string
	Type          NotificationType
	Result        NotificationResult
	DispatchedAt  time.Time
	DeviceCount   int
	SuccessCount  int
	FailedCount   int
	RemovedCount  int
	FollowUpCount int
}

type DeliveryRecorder interface {
	RecordDispatch(ctx context.Context, record DispatchRecord) error
	Flush(ctx context.Context) error
	Close() error
}
