package schedule

import (
	"context"
	"time"
)

// Repository reads schedules produced by the scheduling module. This
// subsystem never writes schedules.
type Repository interface {
	// GetByID retrieves a schedule with its holiday link eagerly loaded
	GetByID(ctx context.Context, id string) (Schedule, error)

	// GetForEmployeeOnDate resolves the employee's schedule for a calendar
	// date. Returns nil when the employee has no schedule that day.
	GetForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (*Schedule, error)
}
