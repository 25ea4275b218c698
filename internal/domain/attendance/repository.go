package attendance

import "context"

// Repository defines data access for attendance aggregates and their punch
// audit trail.
type Repository interface {
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	GetByID(ctx context.Context, id string) (Attendance, error)

	// GetByEmployeeAndSchedule retrieves the single attendance for one
	// (employee, schedule) pair. Returns nil when no punch has created one yet.
	GetByEmployeeAndSchedule(ctx context.Context, employeeID, scheduleID string) (*Attendance, error)

	Update(ctx context.Context, attendance Attendance) error

	// ReplaceStatuses overwrites the full status set. Used by work-hour
	// recomputation, which rebuilds tags from scratch instead of appending.
	ReplaceStatuses(ctx context.Context, id string, statuses []Status) error

	MarkProcessed(ctx context.Context, id string, processed bool) error

	// AppendPunch records one immutable audit punch.
	AppendPunch(ctx context.Context, punch Punch) (Punch, error)

	ListPunches(ctx context.Context, attendanceID string) ([]Punch, error)

	List(ctx context.Context, filter Filter) ([]Attendance, int64, error)
}
