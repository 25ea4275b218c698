package employee

import "context"

// Repository reads the employee directory. Read-only here.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// GetByNumber resolves an employee by the numeric code reported by
	// biometric devices.
	GetByNumber(ctx context.Context, number int64) (*Employee, error)
}
