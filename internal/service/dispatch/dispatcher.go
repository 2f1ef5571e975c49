package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/metrics"
	"github.com/Takeaki0817/hibioru-sub001/internal/observability/tracing"
)

const (
	defaultDeviceTimeout  = 10 * time.Second
	defaultMaxConcurrency = 8
)

// InvalidSubscriptionRemover deletes subscriptions the push service no longer accepts.
type InvalidSubscriptionRemover interface {
	RemoveInvalid(ctx context.Context, subscriptionID, reason string) error
}

// TaskRunner spawns work that must not delay or fail the dispatch result.
type TaskRunner interface {
	Go(ctx context.Context, name string, fn func(ctx context.Context) error)
}

type Config struct {
	DeviceTimeout  time.Duration
	MaxConcurrency int
}

type Dispatcher struct {
	subscriptions domain.SubscriptionRepository
	transport     domain.PushTransport
	remover       InvalidSubscriptionRemover
	runner        TaskRunner
	metrics       *metrics.NotificationMetrics
	cfg           Config
}

func NewDispatcher(
	subscriptions domain.SubscriptionRepository,
	transport domain.PushTransport,
	remover InvalidSubscriptionRemover,
	runner TaskRunner,
	notificationMetrics *metrics.NotificationMetrics,
	cfg Config,
) *Dispatcher {
	if cfg.DeviceTimeout <= 0 {
		cfg.DeviceTimeout = defaultDeviceTimeout
	}
	if cfg.MaxConcurrency <= 0 {
		cfg.MaxConcurrency = defaultMaxConcurrency
	}

	return &Dispatcher{
		subscriptions: subscriptions,
		transport:     transport,
		remover:       remover,
		runner:        runner,
		metrics:       notificationMetrics,
		cfg:           cfg,
	}
}

// IsPermanentlyInvalid reports whether a push service status means the endpoint is gone for good.
func IsPermanentlyInvalid(statusCode int) bool {
	return statusCode == http.StatusGone || statusCode == http.StatusNotFound
}

// SendToOneDevice delivers payload to a single subscription. It never fails; every
// problem is reported in the returned SendResult.
func (d *Dispatcher) SendToOneDevice(ctx context.Context, sub *domain.PushSubscription, payload []byte) domain.SendResult {
	ctx, span := tracing.StartDeviceSendSpan(ctx, sub.ID)
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, d.cfg.DeviceTimeout)
	defer cancel()

	start := time.Now()
	statusCode, err := d.transport.Send(ctx, sub, payload)
	elapsed := time.Since(start)

	result := classify(sub.ID, statusCode, err)
	tracing.RecordDeviceSendResult(span, result.StatusCode, err)

	if d.metrics != nil {
		d.metrics.RecordDeviceSend(ctx, deviceOutcome(result), elapsed)
	}

	if !result.Success {
		slog.WarnContext(ctx, "push delivery to device failed",
			slog.String("user_id", sub.UserID),
			slog.String("subscription_id", sub.ID),
			slog.Int("status_code", result.StatusCode),
			slog.Bool("should_remove", result.ShouldRemove),
			slog.String("error", result.Error),
		)
	}

	return result
}

func classify(subscriptionID string, statusCode int, err error) domain.SendResult {
	result := domain.SendResult{
		SubscriptionID: subscriptionID,
		StatusCode:     statusCode,
	}

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		result.StatusCode = transportErr.StatusCode
	}

	switch {
	case err == nil && statusCode >= 200 && statusCode < 300:
		result.Success = true
	case IsPermanentlyInvalid(result.StatusCode):
		result.ShouldRemove = true
		result.Error = errorText(err, result.StatusCode)
	default:
		result.Error = errorText(err, result.StatusCode)
	}

	return result
}

func errorText(err error, statusCode int) string {
	if err != nil {
		return err.Error()
	}
	return fmt.Sprintf("push gateway returned status %d", statusCode)
}

func deviceOutcome(r domain.SendResult) string {
	switch {
	case r.Success:
		return "success"
	case r.ShouldRemove:
		return "gone"
	default:
		return "failed"
	}
}

// SendToAllDevices fans payload out to every subscription of userID and waits for all of
// them. It returns domain.ErrNoSubscriptions when the user has no devices and
// *domain.AllFailedError when no device accepted the payload. One success is enough for
// the dispatch to succeed. Gone subscriptions are removed in the background.
func (d *Dispatcher) SendToAllDevices(ctx context.Context, userID string, payload *domain.PushPayload) (results []domain.SendResult, err error) {
	ctx, span := tracing.StartDispatchSpan(ctx, userID, payload.Data.Type.String())
	defer span.End()

	successCount, removedCount := 0, 0
	defer func() {
		tracing.RecordDispatchResult(span, len(results), successCount, removedCount, err)
	}()

	subs, err := d.subscriptions.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.StorageError("list subscriptions", err)
	}
	if len(subs) == 0 {
		return nil, domain.ErrNoSubscriptions
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode push payload: %w", err)
	}

	results = make([]domain.SendResult, len(subs))

	var g errgroup.Group
	g.SetLimit(d.cfg.MaxConcurrency)
	for i, sub := range subs {
		g.Go(func() error {
			results[i] = d.SendToOneDevice(ctx, sub, body)
			return nil
		})
	}
	_ = g.Wait()

	for _, r := range results {
		if r.Success {
			successCount++
		}
		if r.ShouldRemove {
			removedCount++
			d.scheduleRemoval(ctx, r)
		}
	}

	slog.InfoContext(ctx, "push dispatch finished",
		slog.String("user_id", userID),
		slog.String("type", payload.Data.Type.String()),
		slog.Int("device_count", len(results)),
		slog.Int("success_count", successCount),
		slog.Int("removed_count", removedCount),
	)

	if successCount == 0 {
		return results, &domain.AllFailedError{Results: results}
	}
	return results, nil
}

func (d *Dispatcher) scheduleRemoval(ctx context.Context, r domain.SendResult) {
	if d.remover == nil || d.runner == nil {
		return
	}

	reason := fmt.Sprintf("push service answered %d", r.StatusCode)
	d.runner.Go(ctx, "remove_invalid_subscription", func(ctx context.Context) error {
		if err := d.remover.RemoveInvalid(ctx, r.SubscriptionID, reason); err != nil {
			return err
		}
		if d.metrics != nil {
			d.metrics.RecordSubscriptionPruned(ctx)
		}
		return nil
	})
}

// Summarize counts the per-device outcomes of a dispatch.
func Summarize(results []domain.SendResult) (success, failed, removed int) {
	for _, r := range results {
		switch {
		case r.Success:
			success++
		case r.ShouldRemove:
			removed++
			failed++
		default:
			failed++
		}
	}
	return success, failed, removed
}
