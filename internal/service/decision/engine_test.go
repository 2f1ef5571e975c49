package decision

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/schedule"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

type staticSettings struct {
	settings *domain.NotificationSettings
	err      error
}

func (s *staticSettings) Get(_ context.Context, _ string) (*domain.NotificationSettings, error) {
	return s.settings, s.err
}

func mustParse(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", v, err)
	}
	return ts
}

func tokyoSettings() *domain.NotificationSettings {
	s := domain.DefaultSettings("user-1", "Asia/Tokyo")
	s.Enabled = true
	s.PrimaryTime = "21:00"
	s.FollowUpEnabled = true
	s.FollowUpIntervalMinutes = 60
	s.FollowUpMaxCount = 2
	return s
}

// chaseLogs returns a 21:00 JST primary on 2024-01-15 followed by n hourly chase rows.
func chaseLogs(n int) []*domain.NotificationLog {
	primary := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	logs := []*domain.NotificationLog{{ID: "main", Type: domain.NotificationTypeMainReminder, SentAt: primary}}
	for i := 0; i < n; i++ {
		logs = append(logs, &domain.NotificationLog{
			Type:   domain.NotificationTypeChaseReminder,
			SentAt: primary.Add(time.Duration(i+1) * time.Hour),
		})
	}
	return logs
}

// lateSettings puts the chain across local midnight: 23:00 JST, then 00:30 and 02:00.
func lateSettings() *domain.NotificationSettings {
	s := tokyoSettings()
	s.PrimaryTime = "23:00"
	s.FollowUpIntervalMinutes = 90
	return s
}

func newTestEngine(settings SettingsProvider, logRepo domain.NotificationLogRepository, entryRepo domain.EntryRepository, cancellationRepo domain.CancellationRepository) *Engine {
	window := timewindow.New()
	return NewEngine(window, schedule.NewCalculator(window), settings, logRepo, entryRepo, cancellationRepo)
}

func TestIsTimeToSendPrimary(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)

	tests := []struct {
		name   string
		mutate func(s *domain.NotificationSettings)
		now    string
		want   bool
	}{
		{name: "exact minute", now: "2024-01-15T12:00:00Z", want: true},
		{name: "seconds within the minute", now: "2024-01-15T12:00:59Z", want: true},
		{name: "one minute late", now: "2024-01-15T12:01:00Z", want: false},
		{name: "one minute early", now: "2024-01-15T11:59:00Z", want: false},
		{
			name:   "disabled",
			mutate: func(s *domain.NotificationSettings) { s.Enabled = false },
			now:    "2024-01-15T12:00:00Z",
			want:   false,
		},
		{
			name:   "inactive weekday",
			mutate: func(s *domain.NotificationSettings) { s.ActiveDays = []int{0, 6} },
			now:    "2024-01-15T12:00:00Z",
			want:   false,
		},
		{
			name:   "unpadded stored time",
			mutate: func(s *domain.NotificationSettings) { s.PrimaryTime = "9:00" },
			now:    "2024-01-15T00:00:00Z",
			want:   true,
		},
		{
			name:   "invalid timezone",
			mutate: func(s *domain.NotificationSettings) { s.Timezone = "Bad/Zone" },
			now:    "2024-01-15T12:00:00Z",
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tokyoSettings()
			if tt.mutate != nil {
				tt.mutate(s)
			}
			if got := engine.IsTimeToSendPrimary(s, mustParse(t, tt.now)); got != tt.want {
				t.Errorf("IsTimeToSendPrimary() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMatchReminder(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)
	morning := "7:30"
	unset := domain.Reminder{Time: nil, Enabled: true}

	s := tokyoSettings()
	primary := "21:00"
	s.Reminders = []domain.Reminder{
		{Time: &primary, Enabled: true},
		unset,
		{Time: &morning, Enabled: true},
	}

	match, ok := engine.MatchReminder(s, mustParse(t, "2024-01-15T12:00:00Z"))
	if !ok || match.Slot != 0 {
		t.Errorf("primary minute: got %+v, %v; want slot 0", match, ok)
	}

	match, ok = engine.MatchReminder(s, mustParse(t, "2024-01-14T22:30:00Z"))
	if !ok || match.Slot != 3 || match.Time != "07:30" {
		t.Errorf("morning slot: got %+v, %v; want slot 3 at 07:30", match, ok)
	}

	s.Reminders[2].Enabled = false
	if _, ok := engine.MatchReminder(s, mustParse(t, "2024-01-14T22:30:00Z")); ok {
		t.Error("disabled slot must not match")
	}

	if _, ok := engine.MatchReminder(s, mustParse(t, "2024-01-15T03:00:00Z")); ok {
		t.Error("no configured time at 12:00 JST")
	}
}

func TestMatchReminder_DefaultSlotFollowsPrimaryChange(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)

	enabled := true
	morning := "08:00"
	s := domain.DefaultSettings("user-1", "Asia/Tokyo").Apply(domain.SettingsPatch{
		Enabled:     &enabled,
		PrimaryTime: &morning,
	})

	if _, ok := engine.MatchReminder(s, mustParse(t, "2024-01-15T12:00:00Z")); ok {
		t.Error("the former 21:00 primary must not fire through the default slot")
	}
	match, ok := engine.MatchReminder(s, mustParse(t, "2024-01-14T23:00:00Z"))
	if !ok || match.Slot != 0 {
		t.Errorf("got %+v, %v; want the 08:00 primary", match, ok)
	}
}

func TestEvaluateFollowUp(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)

	tests := []struct {
		name        string
		mutate      func(s *domain.NotificationSettings)
		now         string
		logs        []*domain.NotificationLog
		hasRecorded bool
		want        FollowUpDecision
	}{
		{
			name:   "follow-up disabled",
			mutate: func(s *domain.NotificationSettings) { s.FollowUpEnabled = false },
			now:    "2024-01-15T13:30:00Z",
			want:   FollowUpDecision{Reason: ReasonDisabled},
		},
		{
			name:   "reminders disabled",
			mutate: func(s *domain.NotificationSettings) { s.Enabled = false },
			now:    "2024-01-15T13:30:00Z",
			want:   FollowUpDecision{Reason: ReasonDisabled},
		},
		{
			name:   "inactive day",
			mutate: func(s *domain.NotificationSettings) { s.ActiveDays = []int{3} },
			now:    "2024-01-15T13:30:00Z",
			want:   FollowUpDecision{Reason: ReasonDisabled},
		},
		{
			name:        "recorded today wins over count",
			now:         "2024-01-15T15:30:00Z",
			logs:        chaseLogs(2),
			hasRecorded: true,
			want:        FollowUpDecision{FollowUpCount: 2, Reason: ReasonAlreadyRecorded},
		},
		{
			name:        "recorded today wins over elapsed time",
			now:         "2024-01-15T13:30:00Z",
			logs:        chaseLogs(0),
			hasRecorded: true,
			want:        FollowUpDecision{FollowUpCount: 0, Reason: ReasonAlreadyRecorded},
		},
		{
			name: "max count reached although another slot elapsed",
			now:  "2024-01-15T16:00:00Z",
			logs: chaseLogs(2),
			want: FollowUpDecision{FollowUpCount: 2, Reason: ReasonMaxCountReached},
		},
		{
			name: "before first follow-up",
			now:  "2024-01-15T12:30:00Z",
			logs: chaseLogs(0),
			want: FollowUpDecision{
				FollowUpCount: 0,
				Reason:        ReasonNotTimeYet,
				NextNumber:    1,
				ScheduledTime: mustParse(t, "2024-01-15T13:00:00Z"),
			},
		},
		{
			name: "first follow-up due",
			now:  "2024-01-15T13:00:00Z",
			logs: chaseLogs(0),
			want: FollowUpDecision{
				ShouldSend:    true,
				FollowUpCount: 0,
				NextNumber:    1,
				ScheduledTime: mustParse(t, "2024-01-15T13:00:00Z"),
			},
		},
		{
			name: "second follow-up not yet due",
			now:  "2024-01-15T13:30:00Z",
			logs: chaseLogs(1),
			want: FollowUpDecision{
				FollowUpCount: 1,
				Reason:        ReasonNotTimeYet,
				NextNumber:    2,
				ScheduledTime: mustParse(t, "2024-01-15T14:00:00Z"),
			},
		},
		{
			name: "second follow-up overdue",
			now:  "2024-01-15T14:45:00Z",
			logs: chaseLogs(1),
			want: FollowUpDecision{
				ShouldSend:    true,
				FollowUpCount: 1,
				NextNumber:    2,
				ScheduledTime: mustParse(t, "2024-01-15T14:00:00Z"),
			},
		},
		{
			name:   "zero max count",
			mutate: func(s *domain.NotificationSettings) { s.FollowUpMaxCount = 0 },
			now:    "2024-01-15T14:45:00Z",
			want:   FollowUpDecision{Reason: ReasonMaxCountReached},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tokyoSettings()
			if tt.mutate != nil {
				tt.mutate(s)
			}

			got, err := engine.EvaluateFollowUp(FollowUpInput{
				Settings:    s,
				Now:         mustParse(t, tt.now),
				Logs:        tt.logs,
				HasRecorded: tt.hasRecorded,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got.ShouldSend != tt.want.ShouldSend ||
				got.FollowUpCount != tt.want.FollowUpCount ||
				got.Reason != tt.want.Reason ||
				got.NextNumber != tt.want.NextNumber ||
				!got.ScheduledTime.Equal(tt.want.ScheduledTime) {
				t.Errorf("EvaluateFollowUp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFollowUpAnchor(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)

	tests := []struct {
		name     string
		settings *domain.NotificationSettings
		now      string
		want     string
	}{
		{
			name:     "after primary keeps today",
			settings: tokyoSettings(),
			now:      "2024-01-15T13:30:00Z",
			want:     "2024-01-15T13:30:00Z",
		},
		{
			name:     "before primary without crossing chain keeps today",
			settings: tokyoSettings(),
			now:      "2024-01-15T00:30:00Z",
			want:     "2024-01-15T00:30:00Z",
		},
		{
			name:     "before primary with crossing chain moves to yesterday",
			settings: lateSettings(),
			now:      "2024-01-15T15:30:00Z",
			want:     "2024-01-15T14:59:00Z",
		},
		{
			name: "no follow-ups keeps today",
			settings: func() *domain.NotificationSettings {
				s := lateSettings()
				s.FollowUpMaxCount = 0
				return s
			}(),
			now:  "2024-01-15T15:30:00Z",
			want: "2024-01-15T15:30:00Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := engine.FollowUpAnchor(tt.settings, mustParse(t, tt.now))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(mustParse(t, tt.want)) {
				t.Errorf("FollowUpAnchor() = %v, want %s", got, tt.want)
			}
		})
	}
}

func TestEvaluateFollowUp_ChainCrossingMidnight(t *testing.T) {
	engine := newTestEngine(nil, nil, nil, nil)

	tests := []struct {
		name string
		now  string
		logs int
		want FollowUpDecision
	}{
		{
			name: "first follow-up due at 00:30 JST",
			now:  "2024-01-15T15:30:00Z",
			want: FollowUpDecision{
				ShouldSend:    true,
				NextNumber:    1,
				ScheduledTime: mustParse(t, "2024-01-15T15:30:00Z"),
				AnchorDate:    "2024-01-15",
			},
		},
		{
			name: "first follow-up overdue",
			now:  "2024-01-15T18:30:00Z",
			want: FollowUpDecision{
				ShouldSend:    true,
				NextNumber:    1,
				ScheduledTime: mustParse(t, "2024-01-15T15:30:00Z"),
				AnchorDate:    "2024-01-15",
			},
		},
		{
			name: "second follow-up not yet due",
			now:  "2024-01-15T16:00:00Z",
			logs: 1,
			want: FollowUpDecision{
				FollowUpCount: 1,
				Reason:        ReasonNotTimeYet,
				NextNumber:    2,
				ScheduledTime: mustParse(t, "2024-01-15T17:00:00Z"),
				AnchorDate:    "2024-01-15",
			},
		},
		{
			name: "chain finished",
			now:  "2024-01-15T18:30:00Z",
			logs: 2,
			want: FollowUpDecision{FollowUpCount: 2, Reason: ReasonMaxCountReached, AnchorDate: "2024-01-15"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logs := make([]*domain.NotificationLog, 0, tt.logs)
			for i := 0; i < tt.logs; i++ {
				logs = append(logs, &domain.NotificationLog{Type: domain.NotificationTypeChaseReminder})
			}

			got, err := engine.EvaluateFollowUp(FollowUpInput{
				Settings: lateSettings(),
				Now:      mustParse(t, tt.now),
				Logs:     logs,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.ShouldSend != tt.want.ShouldSend ||
				got.FollowUpCount != tt.want.FollowUpCount ||
				got.Reason != tt.want.Reason ||
				got.NextNumber != tt.want.NextNumber ||
				got.AnchorDate != tt.want.AnchorDate ||
				!got.ScheduledTime.Equal(tt.want.ScheduledTime) {
				t.Errorf("EvaluateFollowUp() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFollowUpDecisionLabel(t *testing.T) {
	if got := (FollowUpDecision{ShouldSend: true}).Label(); got != ReasonDue {
		t.Errorf("Label() = %q, want %q", got, ReasonDue)
	}
	if got := (FollowUpDecision{Reason: ReasonNotTimeYet}).Label(); got != "not_time_yet" {
		t.Errorf("Label() = %q, want not_time_yet", got)
	}
}

func TestShouldSendFollowUp_AfterMidnight(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: lateSettings()}, logRepo, entryRepo, cancelRepo)

	now := mustParse(t, "2024-01-15T17:05:00Z") // 02:05 JST on the 16th
	windowStart := mustParse(t, "2024-01-14T15:00:00Z")
	windowEnd := mustParse(t, "2024-01-16T15:00:00Z")

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", windowStart, windowEnd).Return([]*domain.NotificationLog{
		// the chain of the 14th ran past midnight
		{Type: domain.NotificationTypeChaseReminder, SentAt: mustParse(t, "2024-01-14T15:30:00Z")},
		{Type: domain.NotificationTypeMainReminder, SentAt: mustParse(t, "2024-01-15T14:00:00Z")},
		{Type: domain.NotificationTypeChaseReminder, SentAt: mustParse(t, "2024-01-15T15:30:00Z")},
	}, nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", windowStart, windowEnd).Return(int64(0), nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(false, nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-16").Return(false, nil)

	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ShouldSend || got.NextNumber != 2 || got.FollowUpCount != 1 || got.AnchorDate != "2024-01-15" {
		t.Errorf("got %+v, want send of follow-up #2 for the chain of 2024-01-15", got)
	}
}

func TestShouldSendFollowUp_AfterMidnightCancelledByNewDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: lateSettings()}, logRepo, entryRepo, cancelRepo)

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(nil, nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(0), nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(false, nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-16").Return(true, nil)

	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-15T15:30:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShouldSend || got.Reason != ReasonAlreadyRecorded {
		t.Errorf("got %+v, want already_recorded", got)
	}
}

func TestShouldSendFollowUp_IgnoresPreviousChainRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: lateSettings()}, logRepo, entryRepo, cancelRepo)

	dayStart := mustParse(t, "2024-01-15T15:00:00Z")
	dayEnd := mustParse(t, "2024-01-16T15:00:00Z")

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", dayStart, dayEnd).Return([]*domain.NotificationLog{
		{Type: domain.NotificationTypeChaseReminder, SentAt: mustParse(t, "2024-01-15T15:30:00Z")},
		{Type: domain.NotificationTypeChaseReminder, SentAt: mustParse(t, "2024-01-15T17:00:00Z")},
		{Type: domain.NotificationTypeMainReminder, SentAt: mustParse(t, "2024-01-16T14:00:00Z")},
	}, nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", dayStart, dayEnd).Return(int64(0), nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-16").Return(false, nil)

	// 23:30 JST on the 16th, half an hour after that day's primary
	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-16T14:30:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShouldSend || got.Reason != ReasonNotTimeYet || got.FollowUpCount != 0 || got.NextNumber != 1 {
		t.Errorf("got %+v, want not_time_yet for follow-up #1 with no prior chase", got)
	}
}

func TestShouldSendFollowUp_EntryRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: tokyoSettings()}, logRepo, entryRepo, cancelRepo)

	now := mustParse(t, "2024-01-15T14:30:00Z")
	dayStart := mustParse(t, "2024-01-14T15:00:00Z")
	dayEnd := mustParse(t, "2024-01-15T15:00:00Z")

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", dayStart, dayEnd).Return(chaseLogs(1), nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", dayStart, dayEnd).Return(int64(1), nil)

	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShouldSend || got.Reason != ReasonAlreadyRecorded || got.FollowUpCount != 1 {
		t.Errorf("got %+v, want already_recorded with count 1", got)
	}
}

func TestShouldSendFollowUp_CancellationMarker(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: tokyoSettings()}, logRepo, entryRepo, cancelRepo)

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(chaseLogs(0), nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(0), nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(true, nil)

	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-15T13:30:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShouldSend || got.Reason != ReasonAlreadyRecorded {
		t.Errorf("got %+v, want already_recorded", got)
	}
}

func TestShouldSendFollowUp_Due(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	logRepo := domain.NewMockNotificationLogRepository(ctrl)
	entryRepo := domain.NewMockEntryRepository(ctrl)
	cancelRepo := domain.NewMockCancellationRepository(ctrl)
	engine := newTestEngine(&staticSettings{settings: tokyoSettings()}, logRepo, entryRepo, cancelRepo)

	logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(chaseLogs(0), nil)
	entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(0), nil)
	cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(false, nil)

	got, settings, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-15T13:05:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.ShouldSend || got.NextNumber != 1 {
		t.Errorf("got %+v, want send of follow-up #1", got)
	}
	if settings == nil || settings.UserID != "user-1" {
		t.Errorf("settings = %+v, want the loaded settings", settings)
	}
}

func TestShouldSendFollowUp_DisabledSkipsStorage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := tokyoSettings()
	s.FollowUpEnabled = false
	engine := newTestEngine(&staticSettings{settings: s},
		domain.NewMockNotificationLogRepository(ctrl),
		domain.NewMockEntryRepository(ctrl),
		domain.NewMockCancellationRepository(ctrl),
	)

	got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-15T13:05:00Z"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShouldSend || got.Reason != ReasonDisabled || got.FollowUpCount != 0 {
		t.Errorf("got %+v, want disabled with count 0", got)
	}
}

func TestShouldSendFollowUp_StorageErrorsDoNotSend(t *testing.T) {
	dbErr := errors.New("connection refused")

	tests := []struct {
		name  string
		setup func(logRepo *domain.MockNotificationLogRepository, entryRepo *domain.MockEntryRepository, cancelRepo *domain.MockCancellationRepository)
	}{
		{
			name: "log read fails",
			setup: func(logRepo *domain.MockNotificationLogRepository, _ *domain.MockEntryRepository, _ *domain.MockCancellationRepository) {
				logRepo.EXPECT().ListSentBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, dbErr)
			},
		},
		{
			name: "entry read fails",
			setup: func(logRepo *domain.MockNotificationLogRepository, entryRepo *domain.MockEntryRepository, _ *domain.MockCancellationRepository) {
				logRepo.EXPECT().ListSentBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(chaseLogs(0), nil)
				entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), dbErr)
			},
		},
		{
			name: "cancellation read fails",
			setup: func(logRepo *domain.MockNotificationLogRepository, entryRepo *domain.MockEntryRepository, cancelRepo *domain.MockCancellationRepository) {
				logRepo.EXPECT().ListSentBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(chaseLogs(0), nil)
				entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
				cancelRepo.EXPECT().Exists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, dbErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			logRepo := domain.NewMockNotificationLogRepository(ctrl)
			entryRepo := domain.NewMockEntryRepository(ctrl)
			cancelRepo := domain.NewMockCancellationRepository(ctrl)
			tt.setup(logRepo, entryRepo, cancelRepo)

			engine := newTestEngine(&staticSettings{settings: tokyoSettings()}, logRepo, entryRepo, cancelRepo)

			got, _, err := engine.ShouldSendFollowUp(context.Background(), "user-1", mustParse(t, "2024-01-15T13:05:00Z"))
			if !errors.Is(err, domain.ErrStorage) {
				t.Errorf("error = %v, want ErrStorage", err)
			}
			if got.ShouldSend {
				t.Error("a storage failure must not produce a send decision")
			}
		})
	}
}

func TestShouldSkipNotification(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	entryRepo := domain.NewMockEntryRepository(ctrl)
	engine := newTestEngine(nil, nil, entryRepo, nil)

	now := mustParse(t, "2025-12-18T23:00:00Z")
	start := mustParse(t, "2025-12-18T15:00:00Z")
	end := mustParse(t, "2025-12-19T15:00:00Z")

	gomock.InOrder(
		entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", start, end).Return(int64(0), nil),
		entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", start, end).Return(int64(3), nil),
	)

	skip, err := engine.ShouldSkipNotification(context.Background(), "user-1", now, "Asia/Tokyo")
	if err != nil || skip {
		t.Errorf("no entries: got %v, %v; want false, nil", skip, err)
	}

	skip, err = engine.ShouldSkipNotification(context.Background(), "user-1", now, "Asia/Tokyo")
	if err != nil || !skip {
		t.Errorf("entries present: got %v, %v; want true, nil", skip, err)
	}

	if _, err := engine.ShouldSkipNotification(context.Background(), "user-1", now, "Bad/Zone"); !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Errorf("bad timezone: error = %v, want ErrInvalidTimezone", err)
	}
}
