package config

import (
	"os"
	"strings"
	"time"
)

const (
	dbDriverEnv          = "DB_DRIVER"
	databaseDSNEnv       = "DATABASE_DSN"
	dbMaxOpenConnsEnv    = "DB_MAX_OPEN_CONNS"
	dbMaxIdleConnsEnv    = "DB_MAX_IDLE_CONNS"
	dbConnMaxLifetimeEnv = "DB_CONN_MAX_LIFETIME"
	dbLogLevelEnv        = "DB_LOG_LEVEL"

	defaultDBDriver          = "postgres"
	defaultDBMaxOpenConns    = 10
	defaultDBMaxIdleConns    = 5
	defaultDBConnMaxLifetime = 30 * time.Minute
	defaultDBLogLevel        = "warn"
)

type DatabaseConfig struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// LogLevel is one of silent, error, warn or info.
	LogLevel string
}

func LoadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		Driver:          strings.ToLower(envOrDefault(dbDriverEnv, defaultDBDriver)),
		DSN:             os.Getenv(databaseDSNEnv),
		MaxOpenConns:    envPositiveInt(dbMaxOpenConnsEnv, defaultDBMaxOpenConns),
		MaxIdleConns:    envPositiveInt(dbMaxIdleConnsEnv, defaultDBMaxIdleConns),
		ConnMaxLifetime: envDuration(dbConnMaxLifetimeEnv, defaultDBConnMaxLifetime),
		LogLevel:        strings.ToLower(envOrDefault(dbLogLevelEnv, defaultDBLogLevel)),
	}
}

func (c *DatabaseConfig) Validate() error {
	if c == nil || c.DSN == "" {
		return ErrDatabaseDSNMissing
	}
	if c.Driver != "postgres" && c.Driver != "mysql" {
		return ErrUnsupportedDriver
	}
	return nil
}
