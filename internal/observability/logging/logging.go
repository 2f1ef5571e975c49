package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// Module names the subsystem a record comes from.
type Module string

type ServiceInfo struct {
	Name     string
	Version  string
	Revision string
}

type Config struct {
	Service       ServiceInfo
	Environment   Environment
	Level         slog.Level
	DefaultModule Module
	// GCPProjectID is used to format trace references for Cloud Logging. Empty disables them.
	GCPProjectID string
	Output       io.Writer
}

// NewLogger builds the process logger: JSON records carrying service metadata,
// the request id and module from the context, and the active trace.
func NewLogger(cfg Config) *slog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	base := slog.NewJSONHandler(out, &slog.HandlerOptions{
		Level:       cfg.Level,
		AddSource:   cfg.Environment != EnvDev,
		ReplaceAttr: replaceAttr,
	})

	serviceAttrs := []any{
		slog.String("name", cfg.Service.Name),
		slog.String("version", cfg.Service.Version),
	}
	if cfg.Service.Revision != "" {
		serviceAttrs = append(serviceAttrs, slog.String("revision", cfg.Service.Revision))
	}

	handler := &contextHandler{
		Handler:       base,
		projectID:     cfg.GCPProjectID,
		defaultModule: cfg.DefaultModule,
	}

	return slog.New(handler).With(
		slog.Group("service", serviceAttrs...),
		slog.String("env", string(cfg.Environment)),
	)
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
