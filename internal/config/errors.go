package config

import "errors"

var (
	ErrRedisAddrMissing    = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB      = errors.New("REDIS_DB must be a non-negative integer")
	ErrDatabaseDSNMissing  = errors.New("DATABASE_DSN is required")
	ErrUnsupportedDriver   = errors.New("DB_DRIVER must be postgres or mysql")
	ErrInvalidTimezone     = errors.New("DEFAULT_TIMEZONE must be a valid IANA timezone")
	ErrInvalidMaxCount     = errors.New("FOLLOW_UP_DEFAULT_MAX_COUNT must be a non-negative integer")
	ErrInvalidCron         = errors.New("RETENTION_CRON must be a valid cron expression")
	ErrVAPIDKeysMissing    = errors.New("VAPID_PUBLIC_KEY and VAPID_PRIVATE_KEY are required")
	ErrVAPIDSubjectMissing = errors.New("VAPID_SUBJECT is required")
	ErrTaskQueueIncomplete = errors.New("cloud tasks configuration is incomplete")
	ErrInvalidTargetURL    = errors.New("GCLOUD_TARGET_URL must be an absolute https URL")
)
