package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type notificationLogRepository struct {
	db *gorm.DB
}

func NewNotificationLogRepository(db *gorm.DB) domain.NotificationLogRepository {
	return &notificationLogRepository{db: db}
}

func (r *notificationLogRepository) Create(ctx context.Context, log *domain.NotificationLog) error {
	rec := &notificationLogRecord{
		ID:              log.ID,
		UserID:          log.UserID,
		Type:            log.Type.String(),
		SentAt:          log.SentAt.UTC(),
		Result:          log.Result.String(),
		ErrorMessage:    log.ErrorMessage,
		EntryRecordedAt: log.EntryRecordedAt,
	}
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *notificationLogRepository) ListSentBetween(ctx context.Context, userID string, start, end time.Time) ([]*domain.NotificationLog, error) {
	if !start.Before(end) {
		return nil, ErrInvalidTimestamp
	}

	var recs []notificationLogRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND sent_at >= ? AND sent_at < ?", userID, start.UTC(), end.UTC()).
		Order("sent_at").
		Find(&recs).Error
	if err != nil {
		return nil, err
	}

	out := make([]*domain.NotificationLog, 0, len(recs))
	for _, rec := range recs {
		out = append(out, &domain.NotificationLog{
			ID:              rec.ID,
			UserID:          rec.UserID,
			Type:            domain.NotificationType(rec.Type),
			SentAt:          rec.SentAt,
			Result:          domain.NotificationResult(rec.Result),
			ErrorMessage:    rec.ErrorMessage,
			EntryRecordedAt: rec.EntryRecordedAt,
		})
	}
	return out, nil
}

func (r *notificationLogRepository) SetEntryRecordedAt(ctx context.Context, userID string, start, end, entryRecordedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&notificationLogRecord{}).
		Where("user_id = ? AND sent_at >= ? AND sent_at < ? AND entry_recorded_at IS NULL", userID, start.UTC(), end.UTC()).
		Update("entry_recorded_at", entryRecordedAt.UTC())
	return res.RowsAffected, res.Error
}

func (r *notificationLogRepository) DeleteSentBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("sent_at < ?", cutoff.UTC()).
		Delete(&notificationLogRecord{})
	return res.RowsAffected, res.Error
}
