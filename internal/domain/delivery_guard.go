package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=delivery_guard.go -destination=delivery_guard_mock.go -package=domain

// DeliveryGuard remembers which (user, slot) pairs were already dispatched so a re-fired
// trigger does not fan out twice. Acquire reports false when the key is already held.
type DeliveryGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}
