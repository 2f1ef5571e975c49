package repository

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type settingsRepository struct {
	db *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) Get(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	var rec notificationSettingsRecord
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec.toDomain(), nil
}

func (r *settingsRepository) Upsert(ctx context.Context, settings *domain.NotificationSettings) error {
	rec := settingsRecordFromDomain(settings)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"enabled", "primary_time", "timezone", "active_days", "follow_up_enabled",
			"follow_up_interval_minutes", "follow_up_max_count", "reminders", "updated_at",
		}),
	}).Create(rec).Error
	return translateError(err)
}

func (r *settingsRepository) ListEnabled(ctx context.Context) ([]*domain.NotificationSettings, error) {
	var recs []notificationSettingsRecord
	if err := r.db.WithContext(ctx).Where("enabled = ?", true).Order("user_id").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.NotificationSettings, 0, len(recs))
	for i := range recs {
		out = append(out, recs[i].toDomain())
	}
	return out, nil
}

func settingsRecordFromDomain(s *domain.NotificationSettings) *notificationSettingsRecord {
	reminders := make(datatypes.JSONSlice[reminderRecord], 0, len(s.Reminders))
	for _, r := range s.Reminders {
		reminders = append(reminders, reminderRecord{Time: r.Time, Enabled: r.Enabled})
	}

	activeDays := s.ActiveDays
	if activeDays == nil {
		activeDays = []int{}
	}

	return &notificationSettingsRecord{
		UserID:                  s.UserID,
		Enabled:                 s.Enabled,
		PrimaryTime:             s.PrimaryTime,
		Timezone:                s.Timezone,
		ActiveDays:              activeDays,
		FollowUpEnabled:         s.FollowUpEnabled,
		FollowUpIntervalMinutes: s.FollowUpIntervalMinutes,
		FollowUpMaxCount:        s.FollowUpMaxCount,
		Reminders:               reminders,
		UpdatedAt:               s.UpdatedAt,
	}
}

func (rec *notificationSettingsRecord) toDomain() *domain.NotificationSettings {
	reminders := make([]domain.Reminder, 0, len(rec.Reminders))
	for _, r := range rec.Reminders {
		reminders = append(reminders, domain.Reminder{Time: r.Time, Enabled: r.Enabled})
	}

	return &domain.NotificationSettings{
		UserID:                  rec.UserID,
		Enabled:                 rec.Enabled,
		PrimaryTime:             rec.PrimaryTime,
		Timezone:                rec.Timezone,
		ActiveDays:              []int(rec.ActiveDays),
		FollowUpEnabled:         rec.FollowUpEnabled,
		FollowUpIntervalMinutes: rec.FollowUpIntervalMinutes,
		FollowUpMaxCount:        rec.FollowUpMaxCount,
		Reminders:               reminders,
		UpdatedAt:               rec.UpdatedAt,
	}
}
