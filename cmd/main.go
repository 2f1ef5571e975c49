package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"gorm.io/gorm/logger"

	"github.com/Takeaki0817/hibioru-sub001/internal/config"
	"github.com/Takeaki0817/hibioru-sub001/internal/handler"
	"github.com/Takeaki0817/hibioru-sub001/internal/health"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/deliveryrecorder"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/repository"
	"github.com/Takeaki0817/hibioru-sub001/internal/infra/webpush"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/logging"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/metrics"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/middleware"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/background"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/cancellation"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/decision"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/deliverylog"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/dispatch"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/notification"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/schedule"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/settings"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/subscription"
	"github.com/Takeaki0817/hibioru-sub001/internal/service/timewindow"
)

// Version is set via ldflags at build time
var Version = "dev"

const backgroundTaskTimeout = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loadDotEnv()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	notificationMetrics, err := metrics.NewNotificationMetrics()
	if err != nil {
		slog.Error("failed to initialize notification metrics", slog.String("error", err.Error()))
		return 1
	}

	// Delivery records go to InfluxDB locally and BigQuery on gcloud.
	recorder, err := deliveryrecorder.NewRecorder(ctx, deliveryrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize delivery recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			slog.Warn("failed to close delivery recorder", slog.String("error", err.Error()))
		}
	}()

	taskQueue, cleanup, err := initTaskQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize task queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("task queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	db, err := repository.OpenDatabase(ctx, repository.DatabaseOptions{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		LogLevel:        gormLogLevel(cfg.Database.LogLevel),
	})
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "db.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Warn("failed to close database", slog.String("error", err.Error()))
			}
		}
	}()

	if err := repository.Migrate(ctx, db); err != nil {
		slog.Error("failed to migrate database", slog.String("error", err.Error()))
		return 1
	}

	redisOpts := &redis.Options{
		Addr:        cfg.Redis.Addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		PoolSize:    cfg.Redis.PoolSize,
		DialTimeout: cfg.Redis.DialTimeout,
	}
	if cfg.Redis.TLS {
		redisOpts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	redisClient := redis.NewClient(redisOpts)

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	settingsRepo := repository.NewSettingsRepository(db)
	subscriptionRepo := repository.NewSubscriptionRepository(db)
	logRepo := repository.NewNotificationLogRepository(db)
	entryRepo := repository.NewEntryRepository(db)
	cancellationRepo := repository.NewCancellationRepository(db)
	guard := repository.NewDeliveryGuard(redisClient)

	runner := background.NewRunner(backgroundTaskTimeout)
	window := timewindow.New()
	calculator := schedule.NewCalculator(window)

	settingsService := settings.NewService(settingsRepo, settings.Defaults{
		Timezone:                cfg.Notification.DefaultTimezone,
		FollowUpIntervalMinutes: cfg.Notification.DefaultFollowUpIntervalMinutes,
		FollowUpMaxCount:        cfg.Notification.DefaultFollowUpMaxCount,
	})
	engine := decision.NewEngine(window, calculator, settingsService, logRepo, entryRepo, cancellationRepo)
	registry := subscription.NewRegistry(subscriptionRepo)

	transport := webpush.NewTransport(webpush.Options{
		Subscriber:      cfg.WebPush.VAPIDSubject,
		VAPIDPublicKey:  cfg.WebPush.VAPIDPublicKey,
		VAPIDPrivateKey: cfg.WebPush.VAPIDPrivateKey,
		TTLSeconds:      cfg.WebPush.TTLSeconds,
		HTTPClient:      &http.Client{Timeout: cfg.Notification.DispatchDeviceTimeout},
	})
	dispatcher := dispatch.NewDispatcher(subscriptionRepo, transport, registry, runner, notificationMetrics, dispatch.Config{
		DeviceTimeout:  cfg.Notification.DispatchDeviceTimeout,
		MaxConcurrency: cfg.Notification.DispatchMaxConcurrency,
	})

	logService := deliverylog.NewService(logRepo, settingsService, window, notificationMetrics)
	cancellationService := cancellation.NewService(cancellationRepo, settingsService, window, taskQueue)

	payload := cfg.Notification.Payload
	notificationService := notification.NewService(
		settingsService,
		engine,
		calculator,
		window,
		dispatcher,
		logService,
		cancellationService,
		guard,
		recorder,
		taskQueue,
		runner,
		notificationMetrics,
		notification.Config{
			Payload: notification.PayloadConfig{
				MainTitle:  payload.MainTitle,
				MainBody:   payload.MainBody,
				ChaseTitle: payload.ChaseTitle,
				ChaseBody:  payload.ChaseBody,
				Icon:       payload.Icon,
				ClickURL:   payload.ClickURL,
			},
			GuardTTL:         cfg.Notification.DeliveryGuardTTL,
			BatchConcurrency: cfg.Notification.TriggerBatchConcurrency,
			ScheduleWakeUps:  cfg.Notification.ScheduleWakeUps && taskQueue != nil,
		},
	)

	notificationHandler := handler.NewNotificationHandler(
		notificationService,
		cancellationService,
		logService,
		cfg.Notification.LogRetentionDays,
	)
	subscriptionHandler := handler.NewSubscriptionHandler(registry)
	settingsHandler := handler.NewSettingsHandler(settingsService)

	retention, err := startRetentionJob(ctx, cfg.Notification, logService)
	if err != nil {
		slog.Error("failed to schedule log retention", slog.String("error", err.Error()))
		return 1
	}

	// Setup router with observability middleware
	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:  []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:     logging.Module("notification"),
		Worker:     true,
		TracerName: "github.com/Takeaki0817/hibioru-sub001/internal/observability/middleware",
		JobNameResolver: func(c *gin.Context) string {
			if taskName := c.Request.Header.Get("X-CloudTasks-TaskName"); taskName != "" {
				return "follow_up_wakeup"
			}
			return c.FullPath()
		},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	// Health check endpoints
	healthChecker := health.NewChecker(db, redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	handler.RegisterRoutes(r.Group("/api/v1"), notificationHandler, subscriptionHandler, settingsHandler)

	// gRPC health shares the port with the REST API over h2c.
	mux := http.NewServeMux()
	grpcPath, grpcHealth := healthChecker.GRPCHandler()
	mux.Handle(grpcPath, grpcHealth)
	mux.Handle("/", r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h2c.NewHandler(mux, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.String("log_level", cfg.LogLevel.String()),
			slog.String("default_timezone", cfg.Notification.DefaultTimezone),
			slog.Int("follow_up_interval_minutes", cfg.Notification.DefaultFollowUpIntervalMinutes),
			slog.Int("follow_up_max_count", cfg.Notification.DefaultFollowUpMaxCount),
			slog.Bool("schedule_wakeups", cfg.Notification.ScheduleWakeUps && taskQueue != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			exitCode = 1
		}

	case err := <-serverErr:
		if !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server exited with error", slog.String("error", err.Error()))
			exitCode = 1
		}
	}

	<-retention.Stop().Done()
	runner.Wait()

	flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer flushCancel()
	if err := recorder.Flush(flushCtx); err != nil {
		slog.Warn("failed to flush delivery records", slog.String("error", err.Error()))
	}

	if exitCode == 0 {
		slog.Info("server exited properly")
	}
	return exitCode
}

// startRetentionJob prunes delivery logs on the configured cron schedule, evaluated in the
// default timezone.
func startRetentionJob(ctx context.Context, cfg *config.NotificationConfig, logs *deliverylog.Service) (*cron.Cron, error) {
	loc, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return nil, err
	}

	c := cron.New(cron.WithLocation(loc))
	_, err = c.AddFunc(cfg.RetentionCron, func() {
		deleted, err := logs.PruneOlderThan(ctx, cfg.LogRetentionDays)
		if err != nil {
			slog.ErrorContext(ctx, "scheduled log pruning failed", slog.String("error", err.Error()))
			return
		}
		slog.InfoContext(ctx, "scheduled log pruning completed",
			slog.Int64("deleted", deleted),
			slog.Int("retention_days", cfg.LogRetentionDays),
		)
	})
	if err != nil {
		return nil, err
	}

	c.Start()
	slog.Info("log retention scheduled",
		slog.String("cron", cfg.RetentionCron),
		slog.Int("retention_days", cfg.LogRetentionDays),
	)

	return c, nil
}

func gormLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
