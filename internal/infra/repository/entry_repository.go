package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type entryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) domain.EntryRepository {
	return &entryRepository{db: db}
}

// CountCreatedBetween counts live entries; soft-deleted rows are excluded by gorm's default scope.
func (r *entryRepository) CountCreatedBetween(ctx context.Context, userID string, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entryRecord{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, start.UTC(), end.UTC()).
		Count(&count).Error
	return count, err
}
