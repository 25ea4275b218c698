package job

import (
	"context"
	"time"
)

// Repository is the durable queue backing the batch job processor.
type Repository interface {
	// Enqueue inserts a pending job. When a job with the same batch ID
	// already exists the existing job is returned unchanged (idempotent
	// submission).
	Enqueue(ctx context.Context, j WorkHourJob) (WorkHourJob, error)

	// ClaimNext atomically claims the next runnable pending job (next_run_at
	// due), marking it RUNNING and bumping its attempt counter. Returns nil
	// when nothing is due. Safe to call from competing workers.
	ClaimNext(ctx context.Context, now time.Time) (*WorkHourJob, error)

	// MarkCompleted finishes a job with its per-item counts.
	MarkCompleted(ctx context.Context, id string, processed, failed int) error

	// MarkRetry schedules another attempt after a failed pass.
	MarkRetry(ctx context.Context, id string, lastError string, nextRunAt time.Time) error

	// MarkFailed terminally fails a job that exhausted its attempts.
	MarkFailed(ctx context.Context, id string, lastError string, processed, failed int) error

	GetByBatchID(ctx context.Context, batchID string) (WorkHourJob, error)
}
