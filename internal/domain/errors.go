package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimezone    = errors.New("invalid timezone")
	ErrInvalidInterval    = errors.New("follow-up interval must be positive")
	ErrInvalidPrimaryTime = errors.New("primary time must be HH:mm")
	ErrInvalidSettings    = errors.New("invalid notification settings")
	ErrSettingsNotFound   = errors.New("notification settings not found")

	ErrNoSubscriptions      = errors.New("no push subscriptions registered")
	ErrAllFailed            = errors.New("push delivery failed on every device")
	ErrDuplicateEndpoint    = errors.New("push endpoint already registered")
	ErrSubscriptionNotFound = errors.New("push subscription not found")
	ErrInvalidSubscription  = errors.New("push subscription requires endpoint and keys")

	// ErrAlreadyExists is returned by repositories when a unique constraint rejects an insert.
	ErrAlreadyExists = errors.New("record already exists")
	ErrStorage       = errors.New("storage error")
)

// AllFailedError reports a dispatch in which no device accepted the payload.
type AllFailedError struct {
	Results []SendResult
}

func (e *AllFailedError) Error() string {
	return fmt.Sprintf("%s (%d devices)", ErrAllFailed.Error(), len(e.Results))
}

func (e *AllFailedError) Unwrap() error {
	return ErrAllFailed
}

// TransportError is a non-success answer from the push gateway.
type TransportError struct {
	StatusCode int
	Body       string
}

func (e *TransportError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("push gateway returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("push gateway returned status %d: %s", e.StatusCode, e.Body)
}

// StorageError wraps a repository failure so callers can match ErrStorage.
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
