package deliverylog

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/metrics"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

const DefaultRetentionDays = 90

type SettingsProvider interface {
	Get(ctx context.Context, userID string) (*domain.NotificationSettings, error)
}

type Service struct {
	repo     domain.NotificationLogRepository
	settings SettingsProvider
	window   *timewindow.Window
	metrics  *metrics.NotificationMetrics
	now      func() time.Time
}

func NewService(
	repo domain.NotificationLogRepository,
	settings SettingsProvider,
	window *timewindow.Window,
	notificationMetrics *metrics.NotificationMetrics,
) *Service {
	return &Service{
		repo:     repo,
		settings: settings,
		window:   window,
		metrics:  notificationMetrics,
		now:      time.Now,
	}
}

// NewLog builds an unsaved log row with a fresh id.
func (s *Service) NewLog(userID string, notificationType domain.NotificationType, result domain.NotificationResult, errorMessage string) *domain.NotificationLog {
	log := &domain.NotificationLog{
		ID:     uuid.NewString(),
		UserID: userID,
		Type:   notificationType,
		SentAt: s.now().UTC(),
		Result: result,
	}
	if errorMessage != "" {
		log.ErrorMessage = &errorMessage
	}
	return log
}

// Save persists a row built by NewLog.
func (s *Service) Save(ctx context.Context, log *domain.NotificationLog) error {
	if err := s.repo.Create(ctx, log); err != nil {
		return domain.StorageError("create notification log", err)
	}
	return nil
}

// Record is NewLog followed by Save, for rows whose id is not needed before they are stored.
func (s *Service) Record(ctx context.Context, userID string, notificationType domain.NotificationType, result domain.NotificationResult, errorMessage string) (*domain.NotificationLog, error) {
	log := s.NewLog(userID, notificationType, result, errorMessage)
	if err := s.Save(ctx, log); err != nil {
		return nil, err
	}
	return log, nil
}

// Correlate stamps entryCreatedAt on every uncorrelated log row sent during the same civil
// day in the user's timezone.
func (s *Service) Correlate(ctx context.Context, userID string, entryCreatedAt time.Time) (int64, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("load settings: %w", err)
	}

	start, end, err := s.window.DayBoundaries(settings.Timezone, entryCreatedAt)
	if err != nil {
		return 0, err
	}

	updated, err := s.repo.SetEntryRecordedAt(ctx, userID, start, end, entryCreatedAt.UTC())
	if err != nil {
		return 0, domain.StorageError("correlate notification logs", err)
	}

	slog.DebugContext(ctx, "notification logs correlated with entry",
		slog.String("user_id", userID),
		slog.Int64("updated", updated),
	)
	return updated, nil
}

// PruneOlderThan deletes log rows sent more than retentionDays ago. A non-positive value
// falls back to DefaultRetentionDays.
func (s *Service) PruneOlderThan(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}

	cutoff := s.now().UTC().AddDate(0, 0, -retentionDays)
	deleted, err := s.repo.DeleteSentBefore(ctx, cutoff)
	if err != nil {
		return 0, domain.StorageError("prune notification logs", err)
	}

	if s.metrics != nil {
		s.metrics.RecordLogsPruned(ctx, deleted)
	}

	slog.InfoContext(ctx, "notification logs pruned",
		slog.Int("retention_days", retentionDays),
		slog.Time("cutoff", cutoff),
		slog.Int64("deleted", deleted),
	)
	return deleted, nil
}
