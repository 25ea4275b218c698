package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/payroll"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

// GetActiveByEmployeeAndCutoff implements payroll.Repository.
func (r *payrollRepository) GetActiveByEmployeeAndCutoff(ctx context.Context, employeeID, cutoffID string) (*payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, cutoff_id, state, is_void, created_at, updated_at
		FROM payrolls
		WHERE employee_id = $1 AND cutoff_id = $2 AND is_void = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	var p payroll.Payroll
	err := q.QueryRow(ctx, query, employeeID, cutoffID).Scan(
		&p.ID, &p.EmployeeID, &p.CutoffID, &p.State, &p.IsVoid, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // payroll not generated for this cutoff yet
		}
		return nil, fmt.Errorf("failed to get active payroll: %w", err)
	}

	return &p, nil
}

type payrollRecalculator struct {
	db *database.DB
}

// NewPayrollRecalculator records a recalculation request on the payroll row.
// The payroll subsystem picks these up on its own cycle.
func NewPayrollRecalculator(db *database.DB) payroll.Recalculator {
	return &payrollRecalculator{db: db}
}

// Recalculate implements payroll.Recalculator.
func (r *payrollRecalculator) Recalculate(ctx context.Context, payrollID string, preserveState bool, actorID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrolls
		SET recalculation_requested = TRUE,
		    recalculation_preserve_state = $2,
		    recalculation_requested_by = $3,
		    recalculation_requested_at = NOW(),
		    updated_at = NOW()
		WHERE id = $1 AND is_void = FALSE
	`

	tag, err := q.Exec(ctx, query, payrollID, preserveState, actorID)
	if err != nil {
		return fmt.Errorf("failed to request payroll recalculation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrollNotFound
	}

	return nil
}
