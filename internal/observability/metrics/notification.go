package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	notificationMeterName = "notification.service"
)

type NotificationMetrics struct {
	dispatches          metric.Int64Counter
	deviceSends         metric.Int64Counter
	subscriptionsPruned metric.Int64Counter
	followUpDecisions   metric.Int64Counter
	dispatchDuration    metric.Float64Histogram
	deviceSendDuration  metric.Float64Histogram
	logsPruned          metric.Int64Counter
}

func NewNotificationMetrics() (*NotificationMetrics, error) {
	meter := otel.Meter(notificationMeterName)

	dispatches, err := meter.Int64Counter(
		"notification_dispatches_total",
		metric.WithDescription("Total number of notification dispatches by type and outcome"),
		metric.WithUnit("{dispatch}"),
	)
	if err != nil {
		return nil, err
	}

	deviceSends, err := meter.Int64Counter(
		"notification_device_sends_total",
		metric.WithDescription("Total number of per-device push attempts"),
		metric.WithUnit("{send}"),
	)
	if err != nil {
		return nil, err
	}

	subscriptionsPruned, err := meter.Int64Counter(
		"notification_subscriptions_pruned_total",
		metric.WithDescription("Subscriptions removed after the push service reported them gone"),
		metric.WithUnit("{subscription}"),
	)
	if err != nil {
		return nil, err
	}

	followUpDecisions, err := meter.Int64Counter(
		"notification_followup_decisions_total",
		metric.WithDescription("Follow-up decisions by reason"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	dispatchDuration, err := meter.Float64Histogram(
		"notification_dispatch_duration_seconds",
		metric.WithDescription("Time spent delivering one notification to all devices of a user"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
		),
	)
	if err != nil {
		return nil, err
	}

	deviceSendDuration, err := meter.Float64Histogram(
		"notification_device_send_duration_seconds",
		metric.WithDescription("Latency of a single push service request"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	logsPruned, err := meter.Int64Counter(
		"notification_logs_pruned_total",
		metric.WithDescription("Notification log rows deleted by retention"),
		metric.WithUnit("{row}"),
	)
	if err != nil {
		return nil, err
	}

	return &NotificationMetrics{
		dispatches:          dispatches,
		deviceSends:         deviceSends,
		subscriptionsPruned: subscriptionsPruned,
		followUpDecisions:   followUpDecisions,
		dispatchDuration:    dispatchDuration,
		deviceSendDuration:  deviceSendDuration,
		logsPruned:          logsPruned,
	}, nil
}

func (m *NotificationMetrics) RecordDispatch(ctx context.Context, notificationType, outcome string) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("type", notificationType),
		attribute.String("outcome", outcome),
	})
	m.dispatches.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func (m *NotificationMetrics) RecordDeviceSend(ctx context.Context, outcome string, duration time.Duration) {
	attrs := appendLoadtestLabels(ctx, []attribute.KeyValue{
		attribute.String("outcome", outcome),
	})
	m.deviceSends.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.deviceSendDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

func (m *NotificationMetrics) RecordSubscriptionPruned(ctx context.Context) {
	m.subscriptionsPruned.Add(ctx, 1)
}

func (m *NotificationMetrics) RecordFollowUpDecision(ctx context.Context, reason string) {
	if reason == "" {
		reason = "due"
	}
	m.followUpDecisions.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}

func (m *NotificationMetrics) RecordDispatchDuration(ctx context.Context, notificationType string, duration time.Duration) {
	m.dispatchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("type", notificationType),
	))
}

func (m *NotificationMetrics) RecordLogsPruned(ctx context.Context, count int64) {
	m.logsPruned.Add(ctx, count)
}
