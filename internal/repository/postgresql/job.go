package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/job"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type jobRepository struct {
	db *database.DB
}

func NewJobRepository(db *database.DB) job.Repository {
	return &jobRepository{db: db}
}

const jobColumns = `
	id, batch_id, attendance_ids, processed_by, status, attempts,
	processed_count, failed_count, last_error, next_run_at, created_at, updated_at
`

// Enqueue implements job.Repository. batch_id carries a unique index; a
// duplicate submission leaves the table untouched and the original job is
// returned.
func (r *jobRepository) Enqueue(ctx context.Context, j job.WorkHourJob) (job.WorkHourJob, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_hour_jobs (
			batch_id, attendance_ids, processed_by, status, attempts, next_run_at
		) VALUES (
			$1, $2, $3, $4, 0, $5
		)
		ON CONFLICT (batch_id) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		j.BatchID, j.AttendanceIDs, j.ProcessedBy, job.StatusPending, j.NextRunAt,
	).Scan(&j.ID, &j.CreatedAt, &j.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// conflict path: the batch is already queued
			return r.GetByBatchID(ctx, j.BatchID)
		}
		return job.WorkHourJob{}, fmt.Errorf("failed to enqueue work-hour job: %w", err)
	}

	j.Status = job.StatusPending
	return j, nil
}

// ClaimNext implements job.Repository. SKIP LOCKED lets competing workers
// claim disjoint jobs without blocking each other.
func (r *jobRepository) ClaimNext(ctx context.Context, now time.Time) (*job.WorkHourJob, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE work_hour_jobs
		SET status = $1, attempts = attempts + 1, updated_at = NOW()
		WHERE id = (
			SELECT id FROM work_hour_jobs
			WHERE status = $2 AND next_run_at <= $3
			ORDER BY next_run_at ASC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s
	`, jobColumns)

	j, err := scanJob(q.QueryRow(ctx, query, job.StatusRunning, job.StatusPending, now))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // nothing due
		}
		return nil, fmt.Errorf("failed to claim work-hour job: %w", err)
	}

	return &j, nil
}

// MarkCompleted implements job.Repository.
func (r *jobRepository) MarkCompleted(ctx context.Context, id string, processed, failed int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE work_hour_jobs
		SET status = $2, processed_count = $3, failed_count = $4,
		    last_error = NULL, updated_at = NOW()
		WHERE id = $1
	`, id, job.StatusCompleted, processed, failed)
	if err != nil {
		return fmt.Errorf("failed to mark work-hour job completed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// MarkRetry implements job.Repository.
func (r *jobRepository) MarkRetry(ctx context.Context, id string, lastError string, nextRunAt time.Time) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE work_hour_jobs
		SET status = $2, last_error = $3, next_run_at = $4, updated_at = NOW()
		WHERE id = $1
	`, id, job.StatusPending, lastError, nextRunAt)
	if err != nil {
		return fmt.Errorf("failed to schedule work-hour job retry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// MarkFailed implements job.Repository.
func (r *jobRepository) MarkFailed(ctx context.Context, id string, lastError string, processed, failed int) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE work_hour_jobs
		SET status = $2, last_error = $3, processed_count = $4, failed_count = $5,
		    updated_at = NOW()
		WHERE id = $1
	`, id, job.StatusFailed, lastError, processed, failed)
	if err != nil {
		return fmt.Errorf("failed to mark work-hour job failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return job.ErrJobNotFound
	}

	return nil
}

// GetByBatchID implements job.Repository.
func (r *jobRepository) GetByBatchID(ctx context.Context, batchID string) (job.WorkHourJob, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM work_hour_jobs WHERE batch_id = $1`, jobColumns)

	j, err := scanJob(q.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.WorkHourJob{}, job.ErrJobNotFound
		}
		return job.WorkHourJob{}, fmt.Errorf("failed to get work-hour job by batch ID: %w", err)
	}

	return j, nil
}

func scanJob(row pgx.Row) (job.WorkHourJob, error) {
	var j job.WorkHourJob
	var attendanceIDs []string
	err := row.Scan(
		&j.ID, &j.BatchID, &attendanceIDs, &j.ProcessedBy, &j.Status, &j.Attempts,
		&j.ProcessedCount, &j.FailedCount, &j.LastError, &j.NextRunAt,
		&j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return job.WorkHourJob{}, err
	}
	j.AttendanceIDs = attendanceIDs
	return j, nil
}
