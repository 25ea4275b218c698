package jobs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/job"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[string]job.WorkHourJob

	completed *job.WorkHourJob
	retried   *job.WorkHourJob
	failed    *job.WorkHourJob
	nextRunAt time.Time
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]job.WorkHourJob{}}
}

func (r *fakeJobRepo) Enqueue(_ context.Context, j job.WorkHourJob) (job.WorkHourJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.jobs[j.BatchID]; ok {
		return existing, nil
	}
	j.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	j.Status = job.StatusPending
	r.jobs[j.BatchID] = j
	return j, nil
}

func (r *fakeJobRepo) ClaimNext(_ context.Context, _ time.Time) (*job.WorkHourJob, error) {
	return nil, nil
}

func (r *fakeJobRepo) MarkCompleted(_ context.Context, id string, processed, failed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.completed = &job.WorkHourJob{ID: id, ProcessedCount: processed, FailedCount: failed}
	return nil
}

func (r *fakeJobRepo) MarkRetry(_ context.Context, id string, lastError string, nextRunAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.retried = &job.WorkHourJob{ID: id, LastError: &lastError}
	r.nextRunAt = nextRunAt
	return nil
}

func (r *fakeJobRepo) MarkFailed(_ context.Context, id string, lastError string, processed, failed int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failed = &job.WorkHourJob{ID: id, LastError: &lastError, ProcessedCount: processed, FailedCount: failed}
	return nil
}

func (r *fakeJobRepo) GetByBatchID(_ context.Context, batchID string) (job.WorkHourJob, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j, ok := r.jobs[batchID]; ok {
		return j, nil
	}
	return job.WorkHourJob{}, job.ErrJobNotFound
}

// fakeRecalculator fails for attendance IDs in failing, succeeds otherwise.
type fakeRecalculator struct {
	mu      sync.Mutex
	failing map[string]bool
	calls   []string
}

func (f *fakeRecalculator) RecalculateAttendance(_ context.Context, attendanceID, _ string, _ *string) (workhour.FinalWorkHour, error) {
	f.mu.Lock()
	f.calls = append(f.calls, attendanceID)
	f.mu.Unlock()
	if f.failing[attendanceID] {
		return workhour.FinalWorkHour{}, errors.New("recalculation blew up")
	}
	return workhour.FinalWorkHour{AttendanceID: attendanceID}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func attendanceIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("att-%d", i+1)
	}
	return ids
}

func failingSet(ids ...string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func TestEnqueueIsIdempotentPerBatchID(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	p := NewProcessor(repo, &fakeRecalculator{}, Config{}, testLogger())

	first, err := p.Enqueue(context.Background(), "batch-1", attendanceIDs(3), "user-1")
	require.NoError(t, err)
	second, err := p.Enqueue(context.Background(), "batch-1", attendanceIDs(3), "user-1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, repo.jobs, 1)
}

func TestEnqueueGeneratesBatchIDWhenEmpty(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	p := NewProcessor(repo, &fakeRecalculator{}, Config{}, testLogger())

	batchID, err := p.Enqueue(context.Background(), "", attendanceIDs(2), "user-1")
	require.NoError(t, err)
	assert.NotEmpty(t, batchID)

	j, err := p.Status(context.Background(), batchID)
	require.NoError(t, err)
	assert.Equal(t, job.StatusPending, j.Status)
}

func TestRunCompletesWhenHalfOrLessFails(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	recalc := &fakeRecalculator{failing: failingSet("att-1", "att-2", "att-3", "att-4")}
	p := NewProcessor(repo, recalc, Config{Concurrency: 2}, testLogger())

	p.run(job.WorkHourJob{
		ID:            "job-1",
		BatchID:       "batch-1",
		AttendanceIDs: attendanceIDs(10),
		Attempts:      1,
	})

	require.NotNil(t, repo.completed, "4/10 failures must still complete the job")
	assert.Equal(t, 6, repo.completed.ProcessedCount)
	assert.Equal(t, 4, repo.completed.FailedCount)
	assert.Nil(t, repo.retried)
	assert.Nil(t, repo.failed)
	assert.Len(t, recalc.calls, 10, "every item is attempted even when siblings fail")
}

func TestRunRetriesWhenMajorityFails(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	recalc := &fakeRecalculator{failing: failingSet("att-1", "att-2", "att-3", "att-4", "att-5", "att-6")}
	p := NewProcessor(repo, recalc, Config{InitialBackoff: 5 * time.Second}, testLogger())

	before := time.Now()
	p.run(job.WorkHourJob{
		ID:            "job-1",
		BatchID:       "batch-1",
		AttendanceIDs: attendanceIDs(10),
		Attempts:      1,
	})

	require.NotNil(t, repo.retried, "6/10 failures must schedule a retry")
	assert.Nil(t, repo.completed)
	assert.Nil(t, repo.failed)
	assert.WithinDuration(t, before.Add(5*time.Second), repo.nextRunAt, 2*time.Second)
}

func TestRunFailsPermanentlyAfterMaxAttempts(t *testing.T) {
	t.Parallel()

	repo := newFakeJobRepo()
	recalc := &fakeRecalculator{failing: failingSet("att-1", "att-2")}
	p := NewProcessor(repo, recalc, Config{MaxAttempts: 3}, testLogger())

	p.run(job.WorkHourJob{
		ID:            "job-1",
		BatchID:       "batch-1",
		AttendanceIDs: attendanceIDs(3),
		Attempts:      3,
	})

	require.NotNil(t, repo.failed)
	assert.Equal(t, 1, repo.failed.ProcessedCount)
	assert.Equal(t, 2, repo.failed.FailedCount)
	assert.Nil(t, repo.retried)
}

func TestBackoffDoubles(t *testing.T) {
	t.Parallel()

	p := NewProcessor(newFakeJobRepo(), &fakeRecalculator{}, Config{InitialBackoff: 5 * time.Second}, testLogger())

	assert.Equal(t, 5*time.Second, p.backoff(1))
	assert.Equal(t, 10*time.Second, p.backoff(2))
	assert.Equal(t, 20*time.Second, p.backoff(3))
}
