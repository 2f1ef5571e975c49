package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type cancellationRepository struct {
	db *gorm.DB
}

func NewCancellationRepository(db *gorm.DB) domain.CancellationRepository {
	return &cancellationRepository{db: db}
}

func parseTargetDate(v string) (datatypes.Date, error) {
	t, err := time.Parse(domain.CivilDateLayout, v)
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("invalid target date %q: %w", v, err)
	}
	return datatypes.Date(t), nil
}

func (r *cancellationRepository) Create(ctx context.Context, c *domain.FollowUpCancellation) error {
	date, err := parseTargetDate(c.TargetDate)
	if err != nil {
		return err
	}

	rec := &followUpCancellationRecord{
		UserID:      c.UserID,
		TargetDate:  date,
		CancelledAt: c.CancelledAt.UTC(),
	}
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *cancellationRepository) Exists(ctx context.Context, userID, targetDate string) (bool, error) {
	date, err := parseTargetDate(targetDate)
	if err != nil {
		return false, err
	}

	var count int64
	err = r.db.WithContext(ctx).
		Model(&followUpCancellationRecord{}).
		Where("user_id = ? AND target_date = ?", userID, date).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
