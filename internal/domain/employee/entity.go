package employee

import "time"

// Employee is the directory record consumed by punch ingestion and work-hour
// calculation. The organization/branch/department refs are propagated onto
// FinalWorkHour rows for scoping; UserID is the notification recipient.
type Employee struct {
	ID             string
	EmployeeNumber int64
	FullName       string
	OrganizationID string
	BranchID       *string
	DepartmentID   *string
	UserID         *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
