package webpush

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

const (
	defaultTTLSeconds = 24 * 60 * 60
	maxErrorBodyBytes = 512
)

type Options struct {
	// Subscriber is the VAPID contact, either a mailto address or an https URL.
	Subscriber      string
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	TTLSeconds      int
	Urgency         webpush.Urgency
	HTTPClient      *http.Client
}

// Transport sends encrypted Web Push messages signed with VAPID.
type Transport struct {
	opts Options
}

var _ domain.PushTransport = (*Transport)(nil)

func NewTransport(opts Options) *Transport {
	if opts.TTLSeconds <= 0 {
		opts.TTLSeconds = defaultTTLSeconds
	}
	if opts.Urgency == "" {
		opts.Urgency = webpush.UrgencyNormal
	}
	return &Transport{opts: opts}
}

// Send returns the push service status code. Non-2xx answers come back as *domain.TransportError.
func (t *Transport) Send(ctx context.Context, sub *domain.PushSubscription, payload []byte) (int, error) {
	target := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dhKey,
			Auth:   sub.AuthKey,
		},
	}

	options := &webpush.Options{
		Subscriber:      t.opts.Subscriber,
		VAPIDPublicKey:  t.opts.VAPIDPublicKey,
		VAPIDPrivateKey: t.opts.VAPIDPrivateKey,
		TTL:             t.opts.TTLSeconds,
		Urgency:         t.opts.Urgency,
	}
	if t.opts.HTTPClient != nil {
		options.HTTPClient = t.opts.HTTPClient
	}

	resp, err := webpush.SendNotificationWithContext(ctx, payload, target, options)
	if err != nil {
		return 0, fmt.Errorf("failed to send web push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return resp.StatusCode, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

// GenerateVAPIDKeys returns a fresh base64url-encoded key pair.
func GenerateVAPIDKeys() (publicKey, privateKey string, err error) {
	privateKey, publicKey, err = webpush.GenerateVAPIDKeys()
	if err != nil {
		return "", "", fmt.Errorf("failed to generate VAPID keys: %w", err)
	}
	return publicKey, privateKey, nil
}
