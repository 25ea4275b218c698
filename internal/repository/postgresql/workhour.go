package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workHourRepository struct {
	db *database.DB
}

func NewWorkHourRepository(db *database.DB) workhour.Repository {
	return &workHourRepository{db: db}
}

const finalWorkHourColumns = `
	id, employee_id, attendance_id, cutoff_id, organization_id, branch_id,
	department_id, time_in, time_out, over_time_out, no_time_in_hours,
	no_time_out_hours, regular_day_hours, regular_day_overtime_hours,
	rest_day_hours, rest_day_overtime_hours, special_holiday_hours,
	special_holiday_overtime_hours, regular_holiday_hours,
	regular_holiday_overtime_hours, night_differential_hours,
	night_differential_overtime_hours, day_type, total_regular_hours,
	total_overtime_hours, total_hours, batch_id, is_approved, processed_by,
	processed_at, created_by, created_at, updated_at
`

// Upsert implements workhour.Repository. The conflict target is the unique
// attendance_id; on recomputation the existing row is overwritten in place so
// id and created_by survive.
func (r *workHourRepository) Upsert(ctx context.Context, record workhour.FinalWorkHour) (workhour.FinalWorkHour, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO final_work_hours (
			employee_id, attendance_id, cutoff_id, organization_id, branch_id,
			department_id, time_in, time_out, over_time_out, no_time_in_hours,
			no_time_out_hours, regular_day_hours, regular_day_overtime_hours,
			rest_day_hours, rest_day_overtime_hours, special_holiday_hours,
			special_holiday_overtime_hours, regular_holiday_hours,
			regular_holiday_overtime_hours, night_differential_hours,
			night_differential_overtime_hours, day_type, total_regular_hours,
			total_overtime_hours, total_hours, batch_id, is_approved,
			processed_by, processed_at, created_by
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, $20,
			$21, $22, $23, $24, $25, $26, $27, $28, $29, $30
		)
		ON CONFLICT (attendance_id) DO UPDATE SET
			employee_id = EXCLUDED.employee_id,
			cutoff_id = EXCLUDED.cutoff_id,
			organization_id = EXCLUDED.organization_id,
			branch_id = EXCLUDED.branch_id,
			department_id = EXCLUDED.department_id,
			time_in = EXCLUDED.time_in,
			time_out = EXCLUDED.time_out,
			over_time_out = EXCLUDED.over_time_out,
			no_time_in_hours = EXCLUDED.no_time_in_hours,
			no_time_out_hours = EXCLUDED.no_time_out_hours,
			regular_day_hours = EXCLUDED.regular_day_hours,
			regular_day_overtime_hours = EXCLUDED.regular_day_overtime_hours,
			rest_day_hours = EXCLUDED.rest_day_hours,
			rest_day_overtime_hours = EXCLUDED.rest_day_overtime_hours,
			special_holiday_hours = EXCLUDED.special_holiday_hours,
			special_holiday_overtime_hours = EXCLUDED.special_holiday_overtime_hours,
			regular_holiday_hours = EXCLUDED.regular_holiday_hours,
			regular_holiday_overtime_hours = EXCLUDED.regular_holiday_overtime_hours,
			night_differential_hours = EXCLUDED.night_differential_hours,
			night_differential_overtime_hours = EXCLUDED.night_differential_overtime_hours,
			day_type = EXCLUDED.day_type,
			total_regular_hours = EXCLUDED.total_regular_hours,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			total_hours = EXCLUDED.total_hours,
			batch_id = EXCLUDED.batch_id,
			is_approved = EXCLUDED.is_approved,
			processed_by = EXCLUDED.processed_by,
			processed_at = EXCLUDED.processed_at,
			updated_at = NOW()
		RETURNING id, created_by, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.AttendanceID,
		record.CutoffID,
		record.OrganizationID,
		record.BranchID,
		record.DepartmentID,
		record.TimeIn,
		record.TimeOut,
		record.OverTimeOut,
		record.NoTimeInHours,
		record.NoTimeOutHours,
		record.RegularDayHours,
		record.RegularDayOvertimeHours,
		record.RestDayHours,
		record.RestDayOvertimeHours,
		record.SpecialHolidayHours,
		record.SpecialHolidayOvertimeHours,
		record.RegularHolidayHours,
		record.RegularHolidayOvertimeHours,
		record.NightDifferentialHours,
		record.NightDifferentialOvertimeHours,
		record.DayType,
		record.TotalRegularHours,
		record.TotalOvertimeHours,
		record.TotalHours,
		record.BatchID,
		record.IsApproved,
		record.ProcessedBy,
		record.ProcessedAt,
		record.CreatedBy,
	).Scan(&record.ID, &record.CreatedBy, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to upsert final work hour: %w", err)
	}

	return record, nil
}

// GetByAttendanceID implements workhour.Repository.
func (r *workHourRepository) GetByAttendanceID(ctx context.Context, attendanceID string) (workhour.FinalWorkHour, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM final_work_hours WHERE attendance_id = $1`, finalWorkHourColumns)

	record, err := scanFinalWorkHour(q.QueryRow(ctx, query, attendanceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return workhour.FinalWorkHour{}, workhour.ErrFinalWorkHourNotFound
		}
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to get final work hour by attendance: %w", err)
	}

	record.EnsureTotals()
	return record, nil
}

// ListByCutoff implements workhour.Repository.
func (r *workHourRepository) ListByCutoff(ctx context.Context, cutoffID string, employeeID string) ([]workhour.FinalWorkHour, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM final_work_hours WHERE cutoff_id = $1`, finalWorkHourColumns)
	args := []interface{}{cutoffID}
	if employeeID != "" {
		query += ` AND employee_id = $2`
		args = append(args, employeeID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list final work hours by cutoff: %w", err)
	}
	defer rows.Close()

	var records []workhour.FinalWorkHour
	for rows.Next() {
		record, err := scanFinalWorkHour(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan final work hour: %w", err)
		}
		record.EnsureTotals()
		records = append(records, record)
	}

	return records, rows.Err()
}

func scanFinalWorkHour(row pgx.Row) (workhour.FinalWorkHour, error) {
	var record workhour.FinalWorkHour
	err := row.Scan(
		&record.ID, &record.EmployeeID, &record.AttendanceID, &record.CutoffID,
		&record.OrganizationID, &record.BranchID, &record.DepartmentID,
		&record.TimeIn, &record.TimeOut, &record.OverTimeOut,
		&record.NoTimeInHours, &record.NoTimeOutHours,
		&record.RegularDayHours, &record.RegularDayOvertimeHours,
		&record.RestDayHours, &record.RestDayOvertimeHours,
		&record.SpecialHolidayHours, &record.SpecialHolidayOvertimeHours,
		&record.RegularHolidayHours, &record.RegularHolidayOvertimeHours,
		&record.NightDifferentialHours, &record.NightDifferentialOvertimeHours,
		&record.DayType, &record.TotalRegularHours, &record.TotalOvertimeHours,
		&record.TotalHours, &record.BatchID, &record.IsApproved,
		&record.ProcessedBy, &record.ProcessedAt, &record.CreatedBy,
		&record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return workhour.FinalWorkHour{}, err
	}
	return record, nil
}

type workHourConfigRepository struct {
	db       *database.DB
	defaults workhour.Config
}

// NewWorkHourConfigRepository builds a resolver that falls back to the
// application-level defaults when an organization carries no override row.
func NewWorkHourConfigRepository(db *database.DB, defaults workhour.Config) workhour.ConfigRepository {
	return &workHourConfigRepository{db: db, defaults: defaults}
}

// Resolve implements workhour.ConfigRepository.
func (r *workHourConfigRepository) Resolve(ctx context.Context, organizationID string) (workhour.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT grace_period_minutes, overtime_threshold_minutes,
		       under_time_threshold_minutes, no_time_in_deduction_minutes,
		       no_time_out_deduction_minutes, allow_early_check_in
		FROM organization_work_hour_configs
		WHERE organization_id = $1
	`

	var cfg workhour.Config
	err := q.QueryRow(ctx, query, organizationID).Scan(
		&cfg.GracePeriodMinutes,
		&cfg.OvertimeThresholdMinutes,
		&cfg.UnderTimeThresholdMinutes,
		&cfg.NoTimeInDeductionMinutes,
		&cfg.NoTimeOutDeductionMinutes,
		&cfg.AllowEarlyCheckIn,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.defaults, nil
		}
		return workhour.Config{}, fmt.Errorf("failed to resolve work-hour config: %w", err)
	}

	return cfg, nil
}
