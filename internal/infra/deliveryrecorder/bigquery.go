//go:build gcloud

package deliveryrecorder

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/Takeaki0817/hibioru-sub001/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt    time.Time `bigquery:"recorded_at"`
	DispatchedAt  time.Time `bigquery:"dispatched_at"`
	RunID         string    `bigquery:"run_id"`
	UserID        string    `bigquery:"user_id"`
	Type          string    `bigquery:"type"`
	Result        string    `bigquery:"result"`
	DeviceCount   int64     `bigquery:"device_count"`
	SuccessCount  int64     `bigquery:"success_count"`
	FailedCount   int64     `bigquery:"failed_count"`
	RemovedCount  int64     `bigquery:"removed_count"`
	FollowUpCount int64     `bigquery:"follow_up_count"`
}

// bigQueryRecorder buffers rows and streams them in batches.
type bigQueryRecorder struct {
	client    *bigquery.Client
	inserter  *bigquery.Inserter
	runID     string
	batchSize int

	mu     sync.Mutex
	buffer []*bigQueryRecord
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.DeliveryRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, delivery recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, delivery recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "delivery recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &bigQueryRecorder{
		client:    client,
		inserter:  inserter,
		runID:     cfg.RunID,
		batchSize: batchSize,
	}, nil
}

func (r *bigQueryRecorder) RecordDispatch(ctx context.Context, record domain.DispatchRecord) error {
	r.mu.Lock()
	r.buffer = append(r.buffer, &bigQueryRecord{
		RecordedAt:    time.Now(),
		DispatchedAt:  record.DispatchedAt,
		RunID:         r.runID,
		UserID:        record.UserID,
		Type:          record.Type.String(),
		Result:        record.Result.String(),
		DeviceCount:   int64(record.DeviceCount),
		SuccessCount:  int64(record.SuccessCount),
		FailedCount:   int64(record.FailedCount),
		RemovedCount:  int64(record.RemovedCount),
		FollowUpCount: int64(record.FollowUpCount),
	})
	full := len(r.buffer) >= r.batchSize
	r.mu.Unlock()

	if full {
		return r.Flush(ctx)
	}
	return nil
}

func (r *bigQueryRecorder) Flush(ctx context.Context) error {
	r.mu.Lock()
	rows := r.buffer
	r.buffer = nil
	r.mu.Unlock()

	if len(rows) == 0 {
		return nil
	}

	if err := r.inserter.Put(ctx, rows); err != nil {
		return fmt.Errorf("failed to insert %d dispatch records to BigQuery: %w", len(rows), err)
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if err := r.Flush(context.Background()); err != nil {
		slog.Warn("failed to flush dispatch records on close", slog.String("error", err.Error()))
	}
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
