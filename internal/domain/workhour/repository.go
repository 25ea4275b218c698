package workhour

import "context"

// Repository defines data access for final work hour records.
type Repository interface {
	// Upsert writes the record keyed by attendance ID: created when absent,
	// otherwise overwritten in place preserving ID and CreatedBy. All
	// computed fields land in one save.
	Upsert(ctx context.Context, record FinalWorkHour) (FinalWorkHour, error)

	GetByAttendanceID(ctx context.Context, attendanceID string) (FinalWorkHour, error)

	ListByCutoff(ctx context.Context, cutoffID string, employeeID string) ([]FinalWorkHour, error)
}

// ConfigRepository resolves the organization-level work-hour policy.
type ConfigRepository interface {
	// Resolve returns the organization's overrides, falling back to
	// application defaults when no override row exists.
	Resolve(ctx context.Context, organizationID string) (Config, error)
}
