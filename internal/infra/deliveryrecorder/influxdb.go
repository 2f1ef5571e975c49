//go:build !gcloud

package deliveryrecorder

import (
	"context"
	"fmt"
	"log/slog"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

const measurement = "notification_dispatch"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runID    string
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, delivery recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "delivery recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
		runID:    cfg.RunID,
	}, nil
}

func (r *influxDBRecorder) RecordDispatch(ctx context.Context, record domain.DispatchRecord) error {
	if err := r.writeAPI.WritePoint(ctx, r.point(record)); err != nil {
		return fmt.Errorf("failed to write dispatch record to InfluxDB: %w", err)
	}
	return nil
}

func (r *influxDBRecorder) point(record domain.DispatchRecord) *write.Point {
	tags := map[string]string{
		"type":   record.Type.String(),
		"result": record.Result.String(),
	}
	if r.runID != "" {
		tags["run_id"] = r.runID
	}

	return influxdb2.NewPoint(
		measurement,
		tags,
		map[string]any{
			"user_id":         record.UserID,
			"device_count":    record.DeviceCount,
			"success_count":   record.SuccessCount,
			"failed_count":    record.FailedCount,
			"removed_count":   record.RemovedCount,
			"follow_up_count": record.FollowUpCount,
		},
		record.DispatchedAt,
	)
}

func (r *influxDBRecorder) Flush(_ context.Context) error {
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
