package cancellation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/taskqueue"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

type SettingsProvider interface {
	Get(ctx context.Context, userID string) (*domain.NotificationSettings, error)
}

type Result struct {
	UserID           string `json:"user_id"`
	TargetDate       string `json:"target_date"`
	AlreadyCancelled bool   `json:"already_cancelled"`
}

type Service struct {
	repo      domain.CancellationRepository
	settings  SettingsProvider
	window    *timewindow.Window
	taskQueue taskqueue.TaskQueue
	now       func() time.Time
}

// NewService wires the cancellation marker store. taskQueue may be nil when follow-up
// wake-ups are not scheduled.
func NewService(
	repo domain.CancellationRepository,
	settings SettingsProvider,
	window *timewindow.Window,
	taskQueue taskqueue.TaskQueue,
) *Service {
	return &Service{
		repo:      repo,
		settings:  settings,
		window:    window,
		taskQueue: taskQueue,
		now:       time.Now,
	}
}

// Cancel stops the remaining follow-ups for userID on targetDate. An empty targetDate means
// today in the user's timezone. Cancelling the same day twice succeeds both times.
func (s *Service) Cancel(ctx context.Context, userID, targetDate string) (*Result, error) {
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if targetDate == "" {
		targetDate, err = s.window.CivilDate(settings.Timezone, s.now())
		if err != nil {
			return nil, err
		}
	} else if _, err := time.Parse(domain.CivilDateLayout, targetDate); err != nil {
		return nil, fmt.Errorf("%w: target date %q", domain.ErrInvalidSettings, targetDate)
	}

	result := &Result{UserID: userID, TargetDate: targetDate}

	err = s.repo.Create(ctx, &domain.FollowUpCancellation{
		UserID:      userID,
		TargetDate:  targetDate,
		CancelledAt: s.now().UTC(),
	})
	switch {
	case errors.Is(err, domain.ErrAlreadyExists):
		result.AlreadyCancelled = true
		slog.DebugContext(ctx, "follow-ups already cancelled",
			slog.String("user_id", userID),
			slog.String("target_date", targetDate),
		)
	case err != nil:
		return nil, domain.StorageError("create follow-up cancellation", err)
	default:
		slog.InfoContext(ctx, "follow-ups cancelled",
			slog.String("user_id", userID),
			slog.String("target_date", targetDate),
		)
	}

	s.deletePendingWakeUps(ctx, userID, targetDate, settings.FollowUpMaxCount)

	return result, nil
}

// deletePendingWakeUps drops queued wake-ups for the day. A wake-up that survives is
// harmless since the decision reads the cancellation marker.
func (s *Service) deletePendingWakeUps(ctx context.Context, userID, targetDate string, maxCount int) {
	if s.taskQueue == nil {
		return
	}

	for n := 1; n <= maxCount; n++ {
		name := taskqueue.TaskName(userID, targetDate, n)
		if err := s.taskQueue.DeleteTask(ctx, name); err != nil {
			slog.WarnContext(ctx, "failed to delete follow-up wake-up",
				slog.String("task_name", name),
				slog.String("error", err.Error()),
			)
		}
	}
}
