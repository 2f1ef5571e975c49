package notification

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/taskqueue"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/metrics"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/tracing"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/cancellation"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/decision"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/deliverylog"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/dispatch"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/schedule"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

const (
	defaultGuardTTL         = 26 * time.Hour
	defaultBatchConcurrency = 4
	minuteKeyLayout         = "200601021504"
)

type SettingsService interface {
	Get(ctx context.Context, userID string) (*domain.NotificationSettings, error)
	ListEnabled(ctx context.Context) ([]*domain.NotificationSettings, error)
}

type Dispatcher interface {
	SendToAllDevices(ctx context.Context, userID string, payload *domain.PushPayload) ([]domain.SendResult, error)
}

type FollowUpCanceller interface {
	Cancel(ctx context.Context, userID, targetDate string) (*cancellation.Result, error)
}

type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

type Service struct {
	settings   SettingsService
	engine     *decision.Engine
	calculator *schedule.Calculator
	window     *timewindow.Window
	dispatcher Dispatcher
	logs       *deliverylog.Service
	canceller  FollowUpCanceller
	guard      domain.DeliveryGuard
	recorder   domain.DeliveryRecorder
	taskQueue  taskqueue.TaskQueue
	runner     TaskRunner
	metrics    *metrics.NotificationMetrics
	cfg        Config
}

// NewService wires the check-and-send flow. guard, recorder and taskQueue are optional.
func NewService(
	settings SettingsService,
	engine *decision.Engine,
	calculator *schedule.Calculator,
	window *timewindow.Window,
	dispatcher Dispatcher,
	logs *deliverylog.Service,
	canceller FollowUpCanceller,
	guard domain.DeliveryGuard,
	recorder domain.DeliveryRecorder,
	taskQueue taskqueue.TaskQueue,
	runner TaskRunner,
	notificationMetrics *metrics.NotificationMetrics,
	cfg Config,
) *Service {
	if cfg.GuardTTL <= 0 {
		cfg.GuardTTL = defaultGuardTTL
	}
	if cfg.BatchConcurrency <= 0 {
		cfg.BatchConcurrency = defaultBatchConcurrency
	}

	return &Service{
		settings:   settings,
		engine:     engine,
		calculator: calculator,
		window:     window,
		dispatcher: dispatcher,
		logs:       logs,
		canceller:  canceller,
		guard:      guard,
		recorder:   recorder,
		taskQueue:  taskQueue,
		runner:     runner,
		metrics:    notificationMetrics,
		cfg:        cfg,
	}
}

// CheckAndSend evaluates userID at now and dispatches whatever is due: the primary
// reminder or a reminder slot first, otherwise the next follow-up.
func (s *Service) CheckAndSend(ctx context.Context, userID string, now time.Time) (*CheckResult, error) {
	ctx, span := tracing.StartCheckSpan(ctx, userID)
	defer span.End()

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if match, ok := s.engine.MatchReminder(settings, now); ok {
		return s.sendMain(ctx, settings, match, now)
	}

	d, settings, err := s.engine.ShouldSendFollowUp(ctx, userID, now)
	if s.metrics != nil && err == nil {
		s.metrics.RecordFollowUpDecision(ctx, d.Label())
	}
	if err != nil {
		slog.WarnContext(ctx, "follow-up decision failed, not sending",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	if !d.ShouldSend {
		return &CheckResult{
			UserID: userID,
			Action: ActionNone,
			Type:   domain.NotificationTypeChaseReminder,
			Reason: d.Reason.String(),
		}, nil
	}

	return s.sendFollowUp(ctx, settings, d, now)
}

func (s *Service) sendMain(ctx context.Context, settings *domain.NotificationSettings, match decision.ReminderMatch, now time.Time) (*CheckResult, error) {
	result := &CheckResult{
		UserID:       settings.UserID,
		Type:         domain.NotificationTypeMainReminder,
		ReminderSlot: match.Slot,
	}

	guardKey := fmt.Sprintf("main:%s:%s", settings.UserID, now.UTC().Format(minuteKeyLayout))
	if !s.acquire(ctx, guardKey) {
		result.Action = ActionDuplicate
		return result, nil
	}

	recorded, err := s.engine.ShouldSkipNotification(ctx, settings.UserID, now, settings.Timezone)
	if err != nil {
		s.release(ctx, guardKey)
		return nil, err
	}
	if recorded {
		log, err := s.logs.Record(ctx, settings.UserID, domain.NotificationTypeMainReminder, domain.NotificationResultSkipped, "")
		if err != nil {
			s.logWriteFailed(ctx, settings.UserID, domain.NotificationTypeMainReminder, err)
		} else {
			result.NotificationID = log.ID
		}
		result.Action = ActionSkipped
		result.Reason = decision.ReasonAlreadyRecorded.String()
		s.recordMetric(ctx, result)
		return result, nil
	}

	if err := s.dispatchAndLog(ctx, settings, result, 0); err != nil {
		s.release(ctx, guardKey)
		return nil, err
	}

	if result.Action == ActionSent && match.Slot == 0 {
		s.scheduleWakeUps(ctx, settings, now)
	}
	return result, nil
}

func (s *Service) sendFollowUp(ctx context.Context, settings *domain.NotificationSettings, d decision.FollowUpDecision, now time.Time) (*CheckResult, error) {
	result := &CheckResult{
		UserID:         settings.UserID,
		Type:           domain.NotificationTypeChaseReminder,
		FollowUpNumber: d.NextNumber,
	}

	// Keyed by the chain's day so a follow-up past midnight keeps the key of its primary.
	anchorDate := d.AnchorDate
	if anchorDate == "" {
		var err error
		if anchorDate, err = s.window.CivilDate(settings.Timezone, now); err != nil {
			return nil, err
		}
	}

	guardKey := fmt.Sprintf("chase:%s:%s:%d", settings.UserID, anchorDate, d.NextNumber)
	if !s.acquire(ctx, guardKey) {
		result.Action = ActionDuplicate
		return result, nil
	}

	if err := s.dispatchAndLog(ctx, settings, result, d.FollowUpCount+1); err != nil {
		s.release(ctx, guardKey)
		return nil, err
	}
	return result, nil
}

// dispatchAndLog fans the payload out and records the outcome. Only storage failures while
// reading subscriptions are returned; every delivery outcome ends up in result.
func (s *Service) dispatchAndLog(ctx context.Context, settings *domain.NotificationSettings, result *CheckResult, followUpCount int) error {
	log := s.logs.NewLog(settings.UserID, result.Type, domain.NotificationResultSuccess, "")
	result.NotificationID = log.ID

	start := time.Now()
	results, err := s.dispatcher.SendToAllDevices(ctx, settings.UserID, s.buildPayload(result.Type, log.ID))
	if s.metrics != nil {
		s.metrics.RecordDispatchDuration(ctx, result.Type.String(), time.Since(start))
	}

	var allFailed *domain.AllFailedError
	switch {
	case err == nil:
		result.Action = ActionSent
	case errors.As(err, &allFailed):
		results = allFailed.Results
		result.Action = ActionFailed
	case errors.Is(err, domain.ErrNoSubscriptions):
		result.Action = ActionFailed
	default:
		return err
	}

	result.Results = results
	if err != nil {
		result.Error = err.Error()
		log.Result = domain.NotificationResultFailed
		msg := err.Error()
		log.ErrorMessage = &msg
	}

	s.saveLog(ctx, log)
	s.recordMetric(ctx, result)
	s.recordDispatch(ctx, log, results, followUpCount)

	slog.InfoContext(ctx, "notification dispatched",
		slog.String("user_id", settings.UserID),
		slog.String("type", result.Type.String()),
		slog.String("action", string(result.Action)),
		slog.String("notification_id", log.ID),
		slog.Int("device_count", len(results)),
	)
	return nil
}

// saveLog persists a row whose id already went out in the payload. A failure never reaches
// the caller.
func (s *Service) saveLog(ctx context.Context, log *domain.NotificationLog) {
	if err := s.logs.Save(ctx, log); err != nil {
		s.logWriteFailed(ctx, log.UserID, log.Type, err)
	}
}

func (s *Service) logWriteFailed(ctx context.Context, userID string, notificationType domain.NotificationType, err error) {
	slog.ErrorContext(ctx, "failed to write notification log",
		slog.String("user_id", userID),
		slog.String("type", notificationType.String()),
		slog.String("error", err.Error()),
	)
}

func (s *Service) recordMetric(ctx context.Context, result *CheckResult) {
	if s.metrics != nil {
		s.metrics.RecordDispatch(ctx, result.Type.String(), string(result.Action))
	}
}

func (s *Service) recordDispatch(ctx context.Context, log *domain.NotificationLog, results []domain.SendResult, followUpCount int) {
	if s.recorder == nil {
		return
	}

	success, failed, removed := dispatch.Summarize(results)
	record := domain.DispatchRecord{
		UserID:        log.UserID,
		Type:          log.Type,
		Result:        log.Result,
		DispatchedAt:  log.SentAt,
		DeviceCount:   len(results),
		SuccessCount:  success,
		FailedCount:   failed,
		RemovedCount:  removed,
		FollowUpCount: followUpCount,
	}
	if err := s.recorder.RecordDispatch(ctx, record); err != nil {
		slog.WarnContext(ctx, "failed to record dispatch",
			slog.String("user_id", log.UserID),
			slog.String("error", err.Error()),
		)
	}
}

// acquire reports whether this tick owns key. Guard errors let the tick proceed.
func (s *Service) acquire(ctx context.Context, key string) bool {
	if s.guard == nil {
		return true
	}

	ok, err := s.guard.Acquire(ctx, key, s.cfg.GuardTTL)
	if err != nil {
		slog.WarnContext(ctx, "delivery guard unavailable, continuing",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return true
	}
	if !ok {
		slog.InfoContext(ctx, "notification already handled for this slot",
			slog.String("key", key),
		)
	}
	return ok
}

func (s *Service) release(ctx context.Context, key string) {
	if s.guard == nil {
		return
	}
	if err := s.guard.Release(ctx, key); err != nil {
		slog.WarnContext(ctx, "failed to release delivery guard",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// scheduleWakeUps queues one wake-up per follow-up of today's schedule.
func (s *Service) scheduleWakeUps(ctx context.Context, settings *domain.NotificationSettings, now time.Time) {
	if s.taskQueue == nil || !s.cfg.ScheduleWakeUps || !settings.FollowUpEnabled || s.runner == nil {
		return
	}

	sched, err := s.calculator.ForSettings(settings, now)
	if err != nil {
		slog.WarnContext(ctx, "cannot compute follow-up schedule",
			slog.String("user_id", settings.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	civilDate, err := s.window.CivilDate(settings.Timezone, now)
	if err != nil {
		return
	}

	headers := map[string]string{}
	tracing.InjectToHeaders(ctx, headers)

	for _, f := range sched.FollowUpTimes {
		task := &taskqueue.WakeUpTask{
			UserID:         settings.UserID,
			TargetDate:     civilDate,
			FollowUpNumber: f.FollowUpNumber,
			ScheduleAt:     f.ScheduledTime,
			Headers:        headers,
		}
		s.runner.Go(ctx, "register_follow_up_wake_up", func(ctx context.Context) error {
			_, err := s.taskQueue.RegisterWakeUp(ctx, task)
			return err
		})
	}
}

// CheckAndSendAll runs CheckAndSend for every user with reminders enabled. A failure for
// one user is reported in its result and does not stop the others.
func (s *Service) CheckAndSendAll(ctx context.Context, now time.Time) (*BatchResult, error) {
	users, err := s.settings.ListEnabled(ctx)
	if err != nil {
		return nil, err
	}

	results := make([]*CheckResult, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchConcurrency)
	for i, u := range users {
		g.Go(func() error {
			res, err := s.CheckAndSend(gctx, u.UserID, now)
			if err != nil {
				slog.ErrorContext(gctx, "check failed",
					slog.String("user_id", u.UserID),
					slog.String("error", err.Error()),
				)
				res = &CheckResult{UserID: u.UserID, Action: ActionError, Error: err.Error()}
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	batch := &BatchResult{
		CheckedAt: now.UTC(),
		Processed: len(results),
		Results:   results,
	}
	for _, r := range results {
		switch r.Action {
		case ActionSent:
			batch.Sent++
		case ActionFailed:
			batch.Failed++
		case ActionError:
			batch.Errors++
		case ActionSkipped, ActionDuplicate:
			batch.Skipped++
		}
	}

	slog.InfoContext(ctx, "batch check finished",
		slog.Int("processed", batch.Processed),
		slog.Int("sent", batch.Sent),
		slog.Int("failed", batch.Failed),
		slog.Int("skipped", batch.Skipped),
		slog.Int("errors", batch.Errors),
	)
	return batch, nil
}

// HandleEntryCreated reacts to a new journal entry. Cancelling the follow-ups of the entry's
// civil day and correlating that day's logs run as independent background tasks.
func (s *Service) HandleEntryCreated(ctx context.Context, userID, entryID string, createdAt time.Time) {
	slog.InfoContext(ctx, "entry created",
		slog.String("user_id", userID),
		slog.String("entry_id", entryID),
		slog.Time("created_at", createdAt),
	)

	s.runner.Go(ctx, "cancel_follow_ups", func(ctx context.Context) error {
		settings, err := s.settings.Get(ctx, userID)
		if err != nil {
			return err
		}
		targetDate, err := s.window.CivilDate(settings.Timezone, createdAt)
		if err != nil {
			return err
		}
		_, err = s.canceller.Cancel(ctx, userID, targetDate)
		return err
	})
	s.runner.Go(ctx, "correlate_notification_logs", func(ctx context.Context) error {
		_, err := s.logs.Correlate(ctx, userID, createdAt)
		return err
	})
}
