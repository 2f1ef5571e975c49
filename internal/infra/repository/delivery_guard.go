package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/tracing"
)

const (
	deliveryGuardKeyPrefix = "notification:guard:"

	defaultGuardTTL = 26 * time.Hour // outlives the civil day of any timezone
)

type guardRecord struct {
	Key        string    `json:"key"`
	AcquiredAt time.Time `json:"acquired_at"`
}

type deliveryGuard struct {
	client *redis.Client
	now    func() time.Time
}

func NewDeliveryGuard(client *redis.Client) domain.DeliveryGuard {
	return &deliveryGuard{
		client: client,
		now:    time.Now,
	}
}

func (g *deliveryGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	if key == "" {
		return false, ErrInvalidGuardKey
	}
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}

	redisKey := deliveryGuardKeyPrefix + key

	ctx, span := tracing.StartRedisOperationSpan(ctx, "setnx", redisKey)
	defer span.End()

	data, err := json.Marshal(guardRecord{Key: key, AcquiredAt: g.now().UTC()})
	if err != nil {
		return false, err
	}

	acquired, err := g.client.SetNX(ctx, redisKey, data, ttl).Result()
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	return acquired, nil
}

func (g *deliveryGuard) Release(ctx context.Context, key string) error {
	if key == "" {
		return ErrInvalidGuardKey
	}

	redisKey := deliveryGuardKeyPrefix + key

	ctx, span := tracing.StartRedisOperationSpan(ctx, "del", redisKey)
	defer span.End()

	return g.client.Del(ctx, redisKey).Err()
}
