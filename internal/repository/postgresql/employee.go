package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/employee"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.Repository {
	return &employeeRepository{db: db}
}

const employeeColumns = `
	id, employee_number, full_name, organization_id, branch_id, department_id,
	user_id, created_at, updated_at
`

// GetByID implements employee.Repository.
func (r *employeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1 AND deleted_at IS NULL`, employeeColumns)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, id).Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FullName, &emp.OrganizationID,
		&emp.BranchID, &emp.DepartmentID, &emp.UserID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by ID: %w", err)
	}

	return emp, nil
}

// GetByNumber implements employee.Repository.
func (r *employeeRepository) GetByNumber(ctx context.Context, number int64) (*employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_number = $1 AND deleted_at IS NULL`, employeeColumns)

	var emp employee.Employee
	err := q.QueryRow(ctx, query, number).Scan(
		&emp.ID, &emp.EmployeeNumber, &emp.FullName, &emp.OrganizationID,
		&emp.BranchID, &emp.DepartmentID, &emp.UserID, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // device code unknown to the directory
		}
		return nil, fmt.Errorf("failed to get employee by number: %w", err)
	}

	return &emp, nil
}
