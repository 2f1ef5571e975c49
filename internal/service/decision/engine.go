package decision

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/schedule"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

// SettingsProvider returns the effective settings for a user, defaults included.
type SettingsProvider interface {
	Get(ctx context.Context, userID string) (*domain.NotificationSettings, error)
}

type Engine struct {
	window           *timewindow.Window
	calculator       *schedule.Calculator
	settings         SettingsProvider
	logRepo          domain.NotificationLogRepository
	entryRepo        domain.EntryRepository
	cancellationRepo domain.CancellationRepository
}

func NewEngine(
	window *timewindow.Window,
	calculator *schedule.Calculator,
	settings SettingsProvider,
	logRepo domain.NotificationLogRepository,
	entryRepo domain.EntryRepository,
	cancellationRepo domain.CancellationRepository,
) *Engine {
	return &Engine{
		window:           window,
		calculator:       calculator,
		settings:         settings,
		logRepo:          logRepo,
		entryRepo:        entryRepo,
		cancellationRepo: cancellationRepo,
	}
}

// IsTimeToSendPrimary reports whether now is exactly the primary minute on an active day.
func (e *Engine) IsTimeToSendPrimary(settings *domain.NotificationSettings, now time.Time) bool {
	if !settings.Enabled {
		return false
	}

	primary, err := domain.NormalizeHHMM(settings.PrimaryTime)
	if err != nil {
		slog.Warn("stored primary time is invalid",
			slog.String("user_id", settings.UserID),
			slog.String("primary_time", settings.PrimaryTime),
		)
		return false
	}

	return e.matchesAt(settings, now, primary)
}

// MatchReminder reports which configured time, if any, fires at now. The primary time
// wins over a reminder slot with the same minute.
func (e *Engine) MatchReminder(settings *domain.NotificationSettings, now time.Time) (ReminderMatch, bool) {
	if e.IsTimeToSendPrimary(settings, now) {
		return ReminderMatch{Slot: 0, Time: settings.PrimaryTime}, true
	}
	if !settings.Enabled {
		return ReminderMatch{}, false
	}

	for i, r := range settings.Reminders {
		if !r.Enabled || r.Time == nil {
			continue
		}
		slotTime, err := domain.NormalizeHHMM(*r.Time)
		if err != nil {
			continue
		}
		if e.matchesAt(settings, now, slotTime) {
			return ReminderMatch{Slot: i + 1, Time: slotTime}, true
		}
	}

	return ReminderMatch{}, false
}

func (e *Engine) matchesAt(settings *domain.NotificationSettings, now time.Time, hhmm string) bool {
	current, err := e.window.CurrentHHMM(settings.Timezone, now)
	if err != nil {
		slog.Warn("cannot evaluate reminder time",
			slog.String("user_id", settings.UserID),
			slog.String("error", err.Error()),
		)
		return false
	}
	if current != hhmm {
		return false
	}

	weekday, err := e.window.CurrentWeekday(settings.Timezone, now)
	if err != nil {
		return false
	}
	return settings.IsActiveOn(weekday)
}

// FollowUpAnchor returns the instant whose civil day owns the follow-up chain active at now.
// Before today's primary time, yesterday's chain stays active while its last follow-up falls
// on or after today's midnight.
func (e *Engine) FollowUpAnchor(settings *domain.NotificationSettings, now time.Time) (time.Time, error) {
	today, err := e.calculator.ForSettings(settings, now)
	if err != nil {
		return time.Time{}, err
	}
	if !now.Before(today.PrimaryTimestamp) {
		return now, nil
	}

	dayStart, _, err := e.window.DayBoundaries(settings.Timezone, now)
	if err != nil {
		return time.Time{}, err
	}
	previous := dayStart.Add(-time.Minute)

	yesterday, err := e.calculator.ForSettings(settings, previous)
	if err != nil {
		return time.Time{}, err
	}
	if n := len(yesterday.FollowUpTimes); n > 0 && !yesterday.FollowUpTimes[n-1].ScheduledTime.Before(dayStart) {
		return previous, nil
	}
	return now, nil
}

// EvaluateFollowUp runs the follow-up rule chain against the chain that owns now. The first
// failing rule decides the reason; an entry recorded for the chain outranks the count limit.
func (e *Engine) EvaluateFollowUp(in FollowUpInput) (FollowUpDecision, error) {
	s := in.Settings

	if !s.FollowUpEnabled {
		return FollowUpDecision{Reason: ReasonDisabled}, nil
	}
	if !s.Enabled {
		return FollowUpDecision{Reason: ReasonDisabled}, nil
	}

	anchor, err := e.FollowUpAnchor(s, in.Now)
	if err != nil {
		return FollowUpDecision{}, err
	}
	anchorDate, err := e.window.CivilDate(s.Timezone, anchor)
	if err != nil {
		return FollowUpDecision{}, err
	}
	weekday, err := e.window.CurrentWeekday(s.Timezone, anchor)
	if err != nil {
		return FollowUpDecision{}, err
	}
	if !s.IsActiveOn(weekday) {
		return FollowUpDecision{Reason: ReasonDisabled, AnchorDate: anchorDate}, nil
	}

	count := countChaseReminders(in.Logs)

	if in.HasRecorded {
		return FollowUpDecision{FollowUpCount: count, Reason: ReasonAlreadyRecorded, AnchorDate: anchorDate}, nil
	}

	if count >= s.FollowUpMaxCount {
		return FollowUpDecision{FollowUpCount: count, Reason: ReasonMaxCountReached, AnchorDate: anchorDate}, nil
	}

	sched, err := e.calculator.ForSettings(s, anchor)
	if err != nil {
		return FollowUpDecision{FollowUpCount: count, AnchorDate: anchorDate}, err
	}

	next := count + 1
	followUp, ok := sched.FollowUp(next)
	if !ok {
		return FollowUpDecision{FollowUpCount: count, Reason: ReasonMaxCountReached, AnchorDate: anchorDate}, nil
	}

	decision := FollowUpDecision{
		FollowUpCount: count,
		NextNumber:    next,
		ScheduledTime: followUp.ScheduledTime,
		AnchorDate:    anchorDate,
	}
	if in.Now.Before(followUp.ScheduledTime) {
		decision.Reason = ReasonNotTimeYet
		return decision, nil
	}

	decision.ShouldSend = true
	return decision, nil
}

// ShouldSendFollowUp loads the inputs for user and evaluates the follow-up rule chain.
// Any read failure yields a do-not-send decision together with the error.
func (e *Engine) ShouldSendFollowUp(ctx context.Context, userID string, now time.Time) (FollowUpDecision, *domain.NotificationSettings, error) {
	settings, err := e.settings.Get(ctx, userID)
	if err != nil {
		return FollowUpDecision{}, nil, fmt.Errorf("load settings: %w", err)
	}

	if !settings.FollowUpEnabled {
		return FollowUpDecision{Reason: ReasonDisabled}, settings, nil
	}

	anchor, err := e.FollowUpAnchor(settings, now)
	if err != nil {
		return FollowUpDecision{}, settings, err
	}

	// The window runs from the anchor day's start to the end of now's day, so a chain that
	// crossed midnight sees its own post-midnight rows.
	start, _, err := e.window.DayBoundaries(settings.Timezone, anchor)
	if err != nil {
		return FollowUpDecision{}, settings, err
	}
	_, end, err := e.window.DayBoundaries(settings.Timezone, now)
	if err != nil {
		return FollowUpDecision{}, settings, err
	}

	logs, err := e.logRepo.ListSentBetween(ctx, userID, start, end)
	if err != nil {
		return FollowUpDecision{}, settings, domain.StorageError("list notification logs", err)
	}
	logs, err = e.chainLogs(settings, anchor, logs)
	if err != nil {
		return FollowUpDecision{}, settings, err
	}

	recorded, err := e.hasRecordedOrCancelled(ctx, userID, settings.Timezone, anchor, now, start, end)
	if err != nil {
		return FollowUpDecision{FollowUpCount: countChaseReminders(logs)}, settings, err
	}

	decision, err := e.EvaluateFollowUp(FollowUpInput{
		Settings:    settings,
		Now:         now,
		Logs:        logs,
		HasRecorded: recorded,
	})
	return decision, settings, err
}

// chainLogs drops rows sent before the anchor day's primary time. Those belong to the
// previous day's chain when it ran past midnight.
func (e *Engine) chainLogs(settings *domain.NotificationSettings, anchor time.Time, logs []*domain.NotificationLog) ([]*domain.NotificationLog, error) {
	sched, err := e.calculator.ForSettings(settings, anchor)
	if err != nil {
		return nil, err
	}

	kept := make([]*domain.NotificationLog, 0, len(logs))
	for _, l := range logs {
		if l.Type == domain.NotificationTypeChaseReminder && l.SentAt.Before(sched.PrimaryTimestamp) {
			continue
		}
		kept = append(kept, l)
	}
	return kept, nil
}

// ShouldSkipNotification reports whether the user already has a live entry created within
// the civil day of now in timezone.
func (e *Engine) ShouldSkipNotification(ctx context.Context, userID string, now time.Time, timezone string) (bool, error) {
	start, end, err := e.window.DayBoundaries(timezone, now)
	if err != nil {
		return false, err
	}

	count, err := e.entryRepo.CountCreatedBetween(ctx, userID, start, end)
	if err != nil {
		return false, domain.StorageError("count entries", err)
	}

	return count > 0, nil
}

// hasRecordedOrCancelled looks for an entry in [start, end) and for a cancellation marker on
// the anchor date or on now's date.
func (e *Engine) hasRecordedOrCancelled(ctx context.Context, userID, timezone string, anchor, now, start, end time.Time) (bool, error) {
	count, err := e.entryRepo.CountCreatedBetween(ctx, userID, start, end)
	if err != nil {
		return false, domain.StorageError("count entries", err)
	}
	if count > 0 {
		return true, nil
	}

	if e.cancellationRepo == nil {
		return false, nil
	}

	anchorDate, err := e.window.CivilDate(timezone, anchor)
	if err != nil {
		return false, err
	}
	dates := []string{anchorDate}
	if today, err := e.window.CivilDate(timezone, now); err == nil && today != anchorDate {
		dates = append(dates, today)
	}

	for _, date := range dates {
		cancelled, err := e.cancellationRepo.Exists(ctx, userID, date)
		if err != nil {
			return false, domain.StorageError("check follow-up cancellation", err)
		}
		if cancelled {
			return true, nil
		}
	}
	return false, nil
}

func countChaseReminders(logs []*domain.NotificationLog) int {
	count := 0
	for _, l := range logs {
		if l.Type == domain.NotificationTypeChaseReminder {
			count++
		}
	}
	return count
}
