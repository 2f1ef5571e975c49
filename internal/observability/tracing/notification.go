package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const notificationTracerName = "github.com/Takeaki0817/hibioru-sub001/internal/service/notification"

func NotificationTracer() trace.Tracer {
	return otel.Tracer(notificationTracerName)
}

func StartCheckSpan(ctx context.Context, userID string) (context.Context, trace.Span) {
	return NotificationTracer().Start(ctx, "notification.check",
		trace.WithAttributes(
			attribute.String("user_id", userID),
		),
	)
}

func StartDispatchSpan(ctx context.Context, userID, notificationType string) (context.Context, trace.Span) {
	return NotificationTracer().Start(ctx, "notification.dispatch",
		trace.WithAttributes(
			attribute.String("user_id", userID),
			attribute.String("notification.type", notificationType),
		),
	)
}

func StartDeviceSendSpan(ctx context.Context, subscriptionID string) (context.Context, trace.Span) {
	return NotificationTracer().Start(ctx, "notification.device_send",
		trace.WithAttributes(
			attribute.String("subscription_id", subscriptionID),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func StartRedisOperationSpan(ctx context.Context, operation, key string) (context.Context, trace.Span) {
	return NotificationTracer().Start(ctx, "notification.redis."+operation,
		trace.WithAttributes(
			attribute.String("db.system", "redis"),
			attribute.String("db.operation", operation),
			attribute.String("db.key", key),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordDispatchResult(span trace.Span, deviceCount, successCount, removedCount int, err error) {
	span.SetAttributes(
		attribute.Int("dispatch.device_count", deviceCount),
		attribute.Int("dispatch.success_count", successCount),
		attribute.Int("dispatch.removed_count", removedCount),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

func RecordDeviceSendResult(span trace.Span, statusCode int, err error) {
	span.SetAttributes(attribute.Int("http.status_code", statusCode))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}

// InjectToHeaders writes the trace context of ctx into outgoing task headers.
func InjectToHeaders(ctx context.Context, headers map[string]string) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.MapCarrier(headers))
}
