package job

import "time"

// Status of a batch work-hour job. FAILED is terminal: the job exhausted its
// attempts or was abandoned by the job system.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusRunning   Status = "RUNNING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
)

// WorkHourJob is one asynchronous unit of work fanning a list of attendance
// IDs through the work-hour calculator. BatchID doubles as the caller's
// idempotency key: enqueueing the same batch twice returns the original job.
type WorkHourJob struct {
	ID             string
	BatchID        string
	AttendanceIDs  []string
	ProcessedBy    string
	Status         Status
	Attempts       int
	ProcessedCount int
	FailedCount    int
	LastError      *string
	NextRunAt      time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
