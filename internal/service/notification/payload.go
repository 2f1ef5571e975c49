package notification

import (
	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

func (s *Service) buildPayload(notificationType domain.NotificationType, notificationID string) *domain.PushPayload {
	p := s.cfg.Payload

	title, body := p.MainTitle, p.MainBody
	if notificationType == domain.NotificationTypeChaseReminder {
		title, body = p.ChaseTitle, p.ChaseBody
	}

	return &domain.PushPayload{
		Title: title,
		Body:  body,
		Icon:  p.Icon,
		Data: domain.PushPayloadData{
			URL:            p.ClickURL,
			Type:           notificationType,
			NotificationID: notificationID,
		},
	}
}
