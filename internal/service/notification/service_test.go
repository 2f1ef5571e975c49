package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/taskqueue"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/background"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/cancellation"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/decision"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/deliverylog"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/schedule"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/settings"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

type fakeDispatcher struct {
	results  []domain.SendResult
	err      error
	payloads []*domain.PushPayload
}

func (f *fakeDispatcher) SendToAllDevices(_ context.Context, _ string, payload *domain.PushPayload) ([]domain.SendResult, error) {
	f.payloads = append(f.payloads, payload)
	return f.results, f.err
}

type cancelCall struct {
	userID     string
	targetDate string
}

type fakeCanceller struct {
	calls chan cancelCall
}

func (f *fakeCanceller) Cancel(_ context.Context, userID, targetDate string) (*cancellation.Result, error) {
	f.calls <- cancelCall{userID: userID, targetDate: targetDate}
	return &cancellation.Result{UserID: userID, TargetDate: targetDate}, nil
}

type fixture struct {
	settingsRepo *domain.MockSettingsRepository
	logRepo      *domain.MockNotificationLogRepository
	entryRepo    *domain.MockEntryRepository
	cancelRepo   *domain.MockCancellationRepository
	guard        *domain.MockDeliveryGuard
	recorder     *domain.MockDeliveryRecorder
	taskQueue    *taskqueue.MockTaskQueue
	dispatcher   *fakeDispatcher
	canceller    *fakeCanceller
	runner       *background.Runner
	svc          *Service
}

func newFixture(t *testing.T, ctrl *gomock.Controller) *fixture {
	t.Helper()

	f := &fixture{
		settingsRepo: domain.NewMockSettingsRepository(ctrl),
		logRepo:      domain.NewMockNotificationLogRepository(ctrl),
		entryRepo:    domain.NewMockEntryRepository(ctrl),
		cancelRepo:   domain.NewMockCancellationRepository(ctrl),
		guard:        domain.NewMockDeliveryGuard(ctrl),
		recorder:     domain.NewMockDeliveryRecorder(ctrl),
		taskQueue:    taskqueue.NewMockTaskQueue(ctrl),
		dispatcher: &fakeDispatcher{
			results: []domain.SendResult{{SubscriptionID: "sub-1", Success: true, StatusCode: 201}},
		},
		canceller: &fakeCanceller{calls: make(chan cancelCall, 1)},
		runner:    background.NewRunner(time.Second),
	}

	window := timewindow.New()
	calculator := schedule.NewCalculator(window)
	settingsSvc := settings.NewService(f.settingsRepo, settings.Defaults{Timezone: "Asia/Tokyo"})
	engine := decision.NewEngine(window, calculator, settingsSvc, f.logRepo, f.entryRepo, f.cancelRepo)
	logs := deliverylog.NewService(f.logRepo, settingsSvc, window, nil)

	f.svc = NewService(
		settingsSvc, engine, calculator, window, f.dispatcher, logs, f.canceller,
		f.guard, f.recorder, f.taskQueue, f.runner, nil,
		Config{
			Payload: PayloadConfig{
				MainTitle:  "Time to write",
				MainBody:   "How was your day?",
				ChaseTitle: "Still time",
				ChaseBody:  "A few lines are enough.",
				ClickURL:   "/new",
			},
			ScheduleWakeUps: true,
		},
	)
	return f
}

func enabledSettings() *domain.NotificationSettings {
	s := domain.DefaultSettings("user-1", "Asia/Tokyo")
	s.Enabled = true
	return s
}

var (
	primaryMinute = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC) // 21:00 JST
	followUpDue   = time.Date(2024, 1, 15, 13, 5, 0, 0, time.UTC) // 22:05 JST
)

func TestCheckAndSend_PrimarySent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), "main:user-1:202401151200", defaultGuardTTL).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(0), nil)

	var logged *domain.NotificationLog
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.NotificationLog) error {
		logged = l
		return nil
	})
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r domain.DispatchRecord) error {
		if r.DeviceCount != 1 || r.SuccessCount != 1 || r.Type != domain.NotificationTypeMainReminder {
			t.Errorf("dispatch record = %+v", r)
		}
		return nil
	})

	registered := make(chan int, 2)
	f.taskQueue.EXPECT().RegisterWakeUp(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, task *taskqueue.WakeUpTask) (*taskqueue.TaskResponse, error) {
		if task.TargetDate != "2024-01-15" {
			t.Errorf("TargetDate = %q", task.TargetDate)
		}
		want := primaryMinute.Add(time.Duration(task.FollowUpNumber) * time.Hour)
		if !task.ScheduleAt.Equal(want) {
			t.Errorf("wake-up %d at %v, want %v", task.FollowUpNumber, task.ScheduleAt, want)
		}
		registered <- task.FollowUpNumber
		return &taskqueue.TaskResponse{Name: task.Name()}, nil
	}).Times(2)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	f.runner.Wait()
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}

	if result.Action != ActionSent || result.Type != domain.NotificationTypeMainReminder {
		t.Errorf("result = %+v", result)
	}
	if logged == nil || logged.Result != domain.NotificationResultSuccess || logged.ID != result.NotificationID {
		t.Errorf("log = %+v, result id %q", logged, result.NotificationID)
	}
	if len(f.dispatcher.payloads) != 1 || f.dispatcher.payloads[0].Data.NotificationID != result.NotificationID {
		t.Error("payload must carry the log id as notificationId")
	}
	if f.dispatcher.payloads[0].Title != "Time to write" || f.dispatcher.payloads[0].Data.URL != "/new" {
		t.Errorf("payload = %+v", f.dispatcher.payloads[0])
	}
	if len(registered) != 2 {
		t.Errorf("registered %d wake-ups, want 2", len(registered))
	}
}

func TestCheckAndSend_PrimarySkippedWhenRecorded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.NotificationLog) error {
		if l.Result != domain.NotificationResultSkipped || l.Type != domain.NotificationTypeMainReminder {
			t.Errorf("log = %+v", l)
		}
		return nil
	})

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSkipped || result.Reason != "already_recorded" {
		t.Errorf("result = %+v", result)
	}
	if len(f.dispatcher.payloads) != 0 {
		t.Error("nothing must be dispatched")
	}
}

func TestCheckAndSend_DuplicateTick(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionDuplicate {
		t.Errorf("Action = %q, want duplicate", result.Action)
	}
	if len(f.dispatcher.payloads) != 0 {
		t.Error("a re-fired tick must not dispatch")
	}
}

func TestCheckAndSend_GuardErrorProceeds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	s := enabledSettings()
	s.FollowUpEnabled = false

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(s, nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("redis down"))
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	f.runner.Wait()
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSent {
		t.Errorf("Action = %q, want sent", result.Action)
	}
}

func TestCheckAndSend_StorageErrorDoesNotSend(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), "main:user-1:202401151200", gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("db down"))
	f.guard.EXPECT().Release(gomock.Any(), "main:user-1:202401151200").Return(nil)

	if _, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute); !errors.Is(err, domain.ErrStorage) {
		t.Errorf("error = %v, want ErrStorage", err)
	}
	if len(f.dispatcher.payloads) != 0 {
		t.Error("nothing must be dispatched after a read failure")
	}
}

func TestCheckAndSend_NoSubscriptionsIsLoggedAsFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)
	f.dispatcher.results = nil
	f.dispatcher.err = domain.ErrNoSubscriptions

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.NotificationLog) error {
		if l.Result != domain.NotificationResultFailed || l.ErrorMessage == nil {
			t.Errorf("log = %+v", l)
		}
		return nil
	})
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionFailed || result.Error == "" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckAndSend_LogWriteFailureIsAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	s := enabledSettings()
	s.FollowUpEnabled = false

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(s, nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).Return(errors.New("influx down"))

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSent {
		t.Errorf("Action = %q, want sent", result.Action)
	}
}

func TestCheckAndSend_FollowUpSent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil).AnyTimes()
	f.logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return([]*domain.NotificationLog{
		{Type: domain.NotificationTypeMainReminder, Result: domain.NotificationResultSuccess},
	}, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(false, nil)
	f.guard.EXPECT().Acquire(gomock.Any(), "chase:user-1:2024-01-15:1", gomock.Any()).Return(true, nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *domain.NotificationLog) error {
		if l.Type != domain.NotificationTypeChaseReminder || l.Result != domain.NotificationResultSuccess {
			t.Errorf("log = %+v", l)
		}
		return nil
	})
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r domain.DispatchRecord) error {
		if r.FollowUpCount != 1 {
			t.Errorf("FollowUpCount = %d, want 1", r.FollowUpCount)
		}
		return nil
	})

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", followUpDue)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSent || result.FollowUpNumber != 1 || result.Type != domain.NotificationTypeChaseReminder {
		t.Errorf("result = %+v", result)
	}
	if f.dispatcher.payloads[0].Title != "Still time" {
		t.Errorf("chase payload title = %q", f.dispatcher.payloads[0].Title)
	}
}

func TestCheckAndSend_FollowUpNotYetDue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil).AnyTimes()
	f.logRepo.EXPECT().ListSentBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.cancelRepo.EXPECT().Exists(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute.Add(30*time.Minute))
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionNone || result.Reason != "not_time_yet" {
		t.Errorf("result = %+v", result)
	}
}

func TestCheckAndSendAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	healthy := enabledSettings()
	healthy.FollowUpEnabled = false
	broken := domain.DefaultSettings("user-2", "Asia/Tokyo")
	broken.Enabled = true

	f.settingsRepo.EXPECT().ListEnabled(gomock.Any()).Return([]*domain.NotificationSettings{healthy, broken}, nil)
	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(healthy, nil)
	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-2").Return(nil, errors.New("db down"))
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).Return(nil)

	batch, err := f.svc.CheckAndSendAll(context.Background(), primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSendAll() error = %v", err)
	}
	if batch.Processed != 2 || batch.Sent != 1 || batch.Errors != 1 {
		t.Errorf("batch = %+v", batch)
	}
}

func TestHandleEntryCreated_RunsBothSideEffects(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	createdAt := time.Date(2024, 1, 15, 13, 30, 0, 0, time.UTC)
	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil).Times(2)
	f.logRepo.EXPECT().SetEntryRecordedAt(gomock.Any(), "user-1", gomock.Any(), gomock.Any(), createdAt).Return(int64(0), errors.New("db down"))

	ctx, cancel := context.WithCancel(context.Background())
	f.svc.HandleEntryCreated(ctx, "user-1", "entry-1", createdAt)
	cancel()
	f.runner.Wait()

	select {
	case call := <-f.canceller.calls:
		if call.userID != "user-1" {
			t.Errorf("cancelled for %q", call.userID)
		}
	default:
		t.Error("follow-ups were not cancelled although correlation failed")
	}
}

func TestHandleEntryCreated_CancelsTheEntryDay(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	// 23:50 JST on the 15th, delivered after local midnight
	createdAt := time.Date(2024, 1, 15, 14, 50, 0, 0, time.UTC)
	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil).Times(2)
	f.logRepo.EXPECT().SetEntryRecordedAt(gomock.Any(), "user-1", gomock.Any(), gomock.Any(), createdAt).Return(int64(1), nil)

	f.svc.HandleEntryCreated(context.Background(), "user-1", "entry-1", createdAt)
	f.runner.Wait()

	select {
	case call := <-f.canceller.calls:
		if call.targetDate != "2024-01-15" {
			t.Errorf("targetDate = %q, want 2024-01-15", call.targetDate)
		}
	default:
		t.Error("follow-ups were not cancelled")
	}
}

func TestCheckAndSend_FollowUpAfterMidnightKeepsChainKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	late := enabledSettings()
	late.PrimaryTime = "23:00"
	late.FollowUpIntervalMinutes = 90
	dueAt := time.Date(2024, 1, 15, 15, 30, 0, 0, time.UTC) // 00:30 JST on the 16th

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(late, nil).AnyTimes()
	f.logRepo.EXPECT().ListSentBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return([]*domain.NotificationLog{
		{Type: domain.NotificationTypeMainReminder, SentAt: time.Date(2024, 1, 15, 14, 0, 0, 0, time.UTC)},
	}, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
	f.cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-15").Return(false, nil)
	f.cancelRepo.EXPECT().Exists(gomock.Any(), "user-1", "2024-01-16").Return(false, nil)
	f.guard.EXPECT().Acquire(gomock.Any(), "chase:user-1:2024-01-15:1", gomock.Any()).Return(true, nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	f.recorder.EXPECT().RecordDispatch(gomock.Any(), gomock.Any()).Return(nil)

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", dueAt)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSent || result.FollowUpNumber != 1 {
		t.Errorf("result = %+v, want follow-up #1 sent", result)
	}
}

func TestCheckAndSend_SkippedLogWriteFailureIsAbsorbed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	f := newFixture(t, ctrl)

	f.settingsRepo.EXPECT().Get(gomock.Any(), "user-1").Return(enabledSettings(), nil)
	f.guard.EXPECT().Acquire(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
	f.entryRepo.EXPECT().CountCreatedBetween(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).Return(int64(1), nil)
	f.logRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

	result, err := f.svc.CheckAndSend(context.Background(), "user-1", primaryMinute)
	if err != nil {
		t.Fatalf("CheckAndSend() error = %v", err)
	}
	if result.Action != ActionSkipped || result.NotificationID != "" {
		t.Errorf("result = %+v, want skipped without a notification id", result)
	}
}
