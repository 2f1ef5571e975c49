package subscription

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type Registry struct {
	repo domain.SubscriptionRepository
	now  func() time.Time
}

func NewRegistry(repo domain.SubscriptionRepository) *Registry {
	return &Registry{
		repo: repo,
		now:  time.Now,
	}
}

// Register stores a device endpoint for userID. An endpoint that is already registered
// for the user yields domain.ErrDuplicateEndpoint, which callers treat as success.
func (r *Registry) Register(ctx context.Context, userID string, desc domain.SubscriptionDescriptor) (*domain.PushSubscription, error) {
	if strings.TrimSpace(desc.Endpoint) == "" || desc.Keys.P256dh == "" || desc.Keys.Auth == "" {
		return nil, domain.ErrInvalidSubscription
	}

	sub := &domain.PushSubscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		Endpoint:  desc.Endpoint,
		P256dhKey: desc.Keys.P256dh,
		AuthKey:   desc.Keys.Auth,
		UserAgent: desc.UserAgent,
		CreatedAt: r.now().UTC(),
	}

	if err := r.repo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			slog.DebugContext(ctx, "push endpoint already registered",
				slog.String("user_id", userID),
			)
			return nil, domain.ErrDuplicateEndpoint
		}
		return nil, domain.StorageError("create subscription", err)
	}

	slog.InfoContext(ctx, "push subscription registered",
		slog.String("user_id", userID),
		slog.String("subscription_id", sub.ID),
	)

	return sub, nil
}

// Unregister removes the endpoint for userID. Removing an unknown endpoint succeeds.
func (r *Registry) Unregister(ctx context.Context, userID, endpoint string) error {
	if err := r.repo.DeleteByEndpoint(ctx, userID, endpoint); err != nil {
		return domain.StorageError("delete subscription by endpoint", err)
	}
	return nil
}

// RemoveInvalid deletes a subscription the push service reported as gone.
func (r *Registry) RemoveInvalid(ctx context.Context, subscriptionID, reason string) error {
	if err := r.repo.DeleteByID(ctx, subscriptionID); err != nil {
		return domain.StorageError("delete subscription by id", err)
	}

	slog.InfoContext(ctx, "invalid push subscription removed",
		slog.String("subscription_id", subscriptionID),
		slog.String("reason", reason),
	)
	return nil
}

func (r *Registry) List(ctx context.Context, userID string) ([]*domain.PushSubscription, error) {
	subs, err := r.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.StorageError("list subscriptions", err)
	}
	return subs, nil
}
