package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type subscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) domain.SubscriptionRepository {
	return &subscriptionRepository{db: db}
}

func (r *subscriptionRepository) Create(ctx context.Context, sub *domain.PushSubscription) error {
	rec := &pushSubscriptionRecord{
		ID:        sub.ID,
		UserID:    sub.UserID,
		Endpoint:  sub.Endpoint,
		P256dhKey: sub.P256dhKey,
		AuthKey:   sub.AuthKey,
		UserAgent: sub.UserAgent,
		CreatedAt: sub.CreatedAt,
	}
	return translateError(r.db.WithContext(ctx).Create(rec).Error)
}

func (r *subscriptionRepository) ListByUser(ctx context.Context, userID string) ([]*domain.PushSubscription, error) {
	var recs []pushSubscriptionRecord
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&recs).Error; err != nil {
		return nil, err
	}

	out := make([]*domain.PushSubscription, 0, len(recs))
	for _, rec := range recs {
		out = append(out, &domain.PushSubscription{
			ID:        rec.ID,
			UserID:    rec.UserID,
			Endpoint:  rec.Endpoint,
			P256dhKey: rec.P256dhKey,
			AuthKey:   rec.AuthKey,
			UserAgent: rec.UserAgent,
			CreatedAt: rec.CreatedAt,
		})
	}
	return out, nil
}

// DeleteByEndpoint succeeds when nothing matches.
func (r *subscriptionRepository) DeleteByEndpoint(ctx context.Context, userID, endpoint string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND endpoint = ?", userID, endpoint).
		Delete(&pushSubscriptionRecord{}).Error
}

// DeleteByID succeeds when nothing matches.
func (r *subscriptionRepository) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&pushSubscriptionRecord{}).Error
}
