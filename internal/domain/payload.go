package domain

type PushPayload struct {
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Icon  string          `json:"icon,omitempty"`
	Data  PushPayloadData `json:"data"`
}

type PushPayloadData struct {
	URL            string           `json:"url"`
	Type           NotificationType `json:"type"`
	NotificationID string           `json:"notificationId"`
}

// SendResult is the outcome of delivering to one device.
// StatusCode is zero when the gateway was never reached.
type SendResult struct {
	SubscriptionID string `json:"subscription_id"`
	Success        bool   `json:"success"`
	StatusCode     int    `json:"status_code,omitempty"`
	Error          string `json:"error,omitempty"`
	ShouldRemove   bool   `json:"should_remove,omitempty"`
}
