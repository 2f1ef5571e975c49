package config

import (
	"os"
	"strconv"
)

const defaultWebPushTTLSeconds = 24 * 60 * 60

type WebPushConfig struct {
	VAPIDPublicKey  string
	VAPIDPrivateKey string
	VAPIDSubject    string
	TTLSeconds      int
}

func LoadWebPushConfig() *WebPushConfig {
	ttl := defaultWebPushTTLSeconds
	if v := os.Getenv("WEBPUSH_TTL_SECONDS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			ttl = parsed
		}
	}

	return &WebPushConfig{
		VAPIDPublicKey:  os.Getenv("VAPID_PUBLIC_KEY"),
		VAPIDPrivateKey: os.Getenv("VAPID_PRIVATE_KEY"),
		VAPIDSubject:    os.Getenv("VAPID_SUBJECT"),
		TTLSeconds:      ttl,
	}
}

func (c *WebPushConfig) Validate() error {
	if c == nil || c.VAPIDPublicKey == "" || c.VAPIDPrivateKey == "" {
		return ErrVAPIDKeysMissing
	}
	if c.VAPIDSubject == "" {
		return ErrVAPIDSubjectMissing
	}
	return nil
}
