package config

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultRedisAddr        = "localhost:6379"
	defaultRedisDialTimeout = 5 * time.Second
)

// RedisConfig points at the instance holding delivery guard keys.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TLS      bool
	// PoolSize of zero keeps the go-redis default.
	PoolSize    int
	DialTimeout time.Duration
}

func LoadRedisConfig() (*RedisConfig, error) {
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			return nil, ErrInvalidRedisDB
		}
		db = parsed
	}

	return &RedisConfig{
		Addr:        envOrDefault("REDIS_ADDR", defaultRedisAddr),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          db,
		TLS:         os.Getenv("REDIS_TLS") == "true",
		PoolSize:    envPositiveInt("REDIS_POOL_SIZE", 0),
		DialTimeout: envDuration("REDIS_DIAL_TIMEOUT", defaultRedisDialTimeout),
	}, nil
}

func (c *RedisConfig) Validate() error {
	if c == nil || c.Addr == "" {
		return ErrRedisAddrMissing
	}
	return nil
}
