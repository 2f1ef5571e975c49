package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	defaultTimezoneEnv         = "DEFAULT_TIMEZONE"
	followUpIntervalEnv        = "FOLLOW_UP_DEFAULT_INTERVAL_MINUTES"
	followUpMaxCountEnv        = "FOLLOW_UP_DEFAULT_MAX_COUNT"
	logRetentionDaysEnv        = "LOG_RETENTION_DAYS"
	retentionCronEnv           = "RETENTION_CRON"
	dispatchDeviceTimeoutEnv   = "DISPATCH_DEVICE_TIMEOUT"
	dispatchMaxConcurrencyEnv  = "DISPATCH_MAX_CONCURRENCY"
	triggerBatchConcurrencyEnv = "TRIGGER_BATCH_CONCURRENCY"
	deliveryGuardTTLEnv        = "DELIVERY_GUARD_TTL"
	scheduleWakeUpsEnv         = "SCHEDULE_FOLLOW_UP_WAKEUPS"

	defaultTimezone                = "Asia/Tokyo"
	defaultFollowUpIntervalMinutes = 60
	defaultFollowUpMaxCount        = 2
	defaultLogRetentionDays        = 90
	defaultRetentionCron           = "0 3 * * *"
	defaultDispatchDeviceTimeout   = 10 * time.Second
	defaultDispatchMaxConcurrency  = 8
	defaultTriggerBatchConcurrency = 4
	defaultDeliveryGuardTTL        = 26 * time.Hour
)

type PayloadConfig struct {
	MainTitle  string
	MainBody   string
	ChaseTitle string
	ChaseBody  string
	Icon       string
	ClickURL   string
}

type NotificationConfig struct {
	DefaultTimezone                string
	DefaultFollowUpIntervalMinutes int
	DefaultFollowUpMaxCount        int
	LogRetentionDays               int
	RetentionCron                  string
	DispatchDeviceTimeout          time.Duration
	DispatchMaxConcurrency         int
	TriggerBatchConcurrency        int
	DeliveryGuardTTL               time.Duration
	ScheduleWakeUps                bool
	Payload                        PayloadConfig
}

func LoadNotificationConfig() (*NotificationConfig, error) {
	maxCount := defaultFollowUpMaxCount
	if v := os.Getenv(followUpMaxCountEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMaxCount, v)
		}
		maxCount = parsed
	}

	return &NotificationConfig{
		DefaultTimezone:                envOrDefault(defaultTimezoneEnv, defaultTimezone),
		DefaultFollowUpIntervalMinutes: envPositiveInt(followUpIntervalEnv, defaultFollowUpIntervalMinutes),
		DefaultFollowUpMaxCount:        maxCount,
		LogRetentionDays:               envPositiveInt(logRetentionDaysEnv, defaultLogRetentionDays),
		RetentionCron:                  envOrDefault(retentionCronEnv, defaultRetentionCron),
		DispatchDeviceTimeout:          envDuration(dispatchDeviceTimeoutEnv, defaultDispatchDeviceTimeout),
		DispatchMaxConcurrency:         envPositiveInt(dispatchMaxConcurrencyEnv, defaultDispatchMaxConcurrency),
		TriggerBatchConcurrency:        envPositiveInt(triggerBatchConcurrencyEnv, defaultTriggerBatchConcurrency),
		DeliveryGuardTTL:               envDuration(deliveryGuardTTLEnv, defaultDeliveryGuardTTL),
		ScheduleWakeUps:                os.Getenv(scheduleWakeUpsEnv) != "false",
		Payload: PayloadConfig{
			MainTitle:  envOrDefault("NOTIFICATION_MAIN_TITLE", "Time to write"),
			MainBody:   envOrDefault("NOTIFICATION_MAIN_BODY", "How was your day? Leave a note before it slips away."),
			ChaseTitle: envOrDefault("NOTIFICATION_CHASE_TITLE", "Still a moment left"),
			ChaseBody:  envOrDefault("NOTIFICATION_CHASE_BODY", "A single line is enough to keep today on record."),
			Icon:       envOrDefault("NOTIFICATION_ICON", "/icons/icon-192x192.png"),
			ClickURL:   envOrDefault("NOTIFICATION_CLICK_URL", "/"),
		},
	}, nil
}

func (c *NotificationConfig) Validate() error {
	if _, err := time.LoadLocation(c.DefaultTimezone); err != nil || c.DefaultTimezone == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, c.DefaultTimezone)
	}
	if _, err := cron.ParseStandard(c.RetentionCron); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCron, err)
	}
	return nil
}
