package domain

import "time"

type SubscriptionKeys struct {
	P256dh string `json:"p256dh"`
	Auth   string `json:"auth"`
}

// SubscriptionDescriptor is what a browser hands over when it registers for push.
type SubscriptionDescriptor struct {
	Endpoint  string           `json:"endpoint"`
	Keys      SubscriptionKeys `json:"keys"`
	UserAgent *string          `json:"user_agent,omitempty"`
}

type PushSubscription struct {
	ID        string
	UserID    string
	Endpoint  string
	P256dhKey string
	AuthKey   string
	UserAgent *string
	CreatedAt time.Time
}
