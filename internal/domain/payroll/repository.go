package payroll

import "context"

// Repository locates payrolls affected by work-hour recomputation.
type Repository interface {
	// GetActiveByEmployeeAndCutoff returns the non-void payroll already
	// computed for the pair, or nil when none exists yet.
	GetActiveByEmployeeAndCutoff(ctx context.Context, employeeID, cutoffID string) (*Payroll, error)
}

// Recalculator is the hand-off to the payroll subsystem after every
// successful FinalWorkHour write. preserveState keeps the payroll's own
// state machine untouched while its hour inputs refresh.
type Recalculator interface {
	Recalculate(ctx context.Context, payrollID string, preserveState bool, actorID string) error
}
