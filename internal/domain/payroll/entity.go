package payroll

import "time"

// Payroll is the narrow view of a payroll record this subsystem needs: just
// enough to locate the non-void payroll for an (employee, cutoff) pair and
// hand off a recalculation. All monetary computation lives in the payroll
// subsystem.
type Payroll struct {
	ID         string
	EmployeeID string
	CutoffID   string
	State      string
	IsVoid     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
