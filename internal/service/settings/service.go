package settings

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

// Defaults overrides the built-in values used for users without stored settings.
type Defaults struct {
	Timezone                string
	FollowUpIntervalMinutes int
	FollowUpMaxCount        int
}

type Service struct {
	repo     domain.SettingsRepository
	defaults Defaults
	now      func() time.Time
}

func NewService(repo domain.SettingsRepository, defaults Defaults) *Service {
	return &Service{
		repo:     repo,
		defaults: defaults,
		now:      time.Now,
	}
}

func (s *Service) defaultsFor(userID string) *domain.NotificationSettings {
	out := domain.DefaultSettings(userID, s.defaults.Timezone)
	if s.defaults.FollowUpIntervalMinutes > 0 {
		out.FollowUpIntervalMinutes = s.defaults.FollowUpIntervalMinutes
	}
	if s.defaults.FollowUpMaxCount > 0 {
		out.FollowUpMaxCount = s.defaults.FollowUpMaxCount
	}
	return out
}

// Get returns the stored settings for userID, or the defaults when none are stored.
func (s *Service) Get(ctx context.Context, userID string) (*domain.NotificationSettings, error) {
	stored, err := s.repo.Get(ctx, userID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return s.defaultsFor(userID), nil
	}
	if err != nil {
		return nil, domain.StorageError("get notification settings", err)
	}
	return stored, nil
}

// Replace validates and stores settings as the complete configuration of its user.
func (s *Service) Replace(ctx context.Context, settings *domain.NotificationSettings) (*domain.NotificationSettings, error) {
	if err := settings.Normalize(); err != nil {
		return nil, err
	}
	settings.UpdatedAt = s.now().UTC()

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, domain.StorageError("upsert notification settings", err)
	}

	slog.InfoContext(ctx, "notification settings saved",
		slog.String("user_id", settings.UserID),
		slog.Bool("enabled", settings.Enabled),
		slog.String("primary_time", settings.PrimaryTime),
		slog.String("timezone", settings.Timezone),
	)
	return settings, nil
}

// Patch overrides only the fields named in p and stores the result.
func (s *Service) Patch(ctx context.Context, userID string, p domain.SettingsPatch) (*domain.NotificationSettings, error) {
	current, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Replace(ctx, current.Apply(p))
}

func (s *Service) ListEnabled(ctx context.Context) ([]*domain.NotificationSettings, error) {
	list, err := s.repo.ListEnabled(ctx)
	if err != nil {
		return nil, domain.StorageError("list enabled settings", err)
	}
	return list, nil
}
