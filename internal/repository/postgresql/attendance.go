package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.Repository {
	return &attendanceRepository{db: db}
}

func statusesToText(statuses []attendance.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func textToStatuses(values []string) []attendance.Status {
	out := make([]attendance.Status, len(values))
	for i, v := range values {
		out[i] = attendance.Status(v)
	}
	return out
}

// Create implements attendance.Repository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendances (
			employee_id, schedule_id, time_in, time_out, statuses, day_type, is_processed
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newAttendance.EmployeeID,
		newAttendance.ScheduleID,
		newAttendance.TimeIn,
		newAttendance.TimeOut,
		statusesToText(newAttendance.Statuses),
		newAttendance.DayType,
		newAttendance.IsProcessed,
	).Scan(&newAttendance.ID, &newAttendance.CreatedAt, &newAttendance.UpdatedAt)

	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to create attendance: %w", err)
	}

	return newAttendance, nil
}

// GetByID implements attendance.Repository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, schedule_id, time_in, time_out, statuses, day_type,
		       is_processed, created_at, updated_at
		FROM attendances
		WHERE id = $1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, fmt.Errorf("failed to get attendance by ID: %w", err)
	}

	return att, nil
}

// GetByEmployeeAndSchedule implements attendance.Repository.
func (a *attendanceRepository) GetByEmployeeAndSchedule(ctx context.Context, employeeID, scheduleID string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, employee_id, schedule_id, time_in, time_out, statuses, day_type,
		       is_processed, created_at, updated_at
		FROM attendances
		WHERE employee_id = $1 AND schedule_id = $2
		LIMIT 1
	`

	att, err := scanAttendance(q.QueryRow(ctx, query, employeeID, scheduleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // first punch of the day has not arrived yet
		}
		return nil, fmt.Errorf("failed to get attendance by employee and schedule: %w", err)
	}

	return &att, nil
}

// Update implements attendance.Repository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances
		SET time_in = $2,
		    time_out = $3,
		    statuses = $4,
		    day_type = $5,
		    is_processed = $6,
		    updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		att.ID,
		att.TimeIn,
		att.TimeOut,
		statusesToText(att.Statuses),
		att.DayType,
		att.IsProcessed,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// ReplaceStatuses implements attendance.Repository.
func (a *attendanceRepository) ReplaceStatuses(ctx context.Context, id string, statuses []attendance.Status) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendances SET statuses = $2, updated_at = NOW() WHERE id = $1`,
		id, statusesToText(statuses),
	)
	if err != nil {
		return fmt.Errorf("failed to replace attendance statuses: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// MarkProcessed implements attendance.Repository.
func (a *attendanceRepository) MarkProcessed(ctx context.Context, id string, processed bool) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx,
		`UPDATE attendances SET is_processed = $2, updated_at = NOW() WHERE id = $1`,
		id, processed,
	)
	if err != nil {
		return fmt.Errorf("failed to mark attendance processed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}

	return nil
}

// AppendPunch implements attendance.Repository.
func (a *attendanceRepository) AppendPunch(ctx context.Context, punch attendance.Punch) (attendance.Punch, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_punches (
			attendance_id, employee_number, punched_at, method, direction, device_id
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		punch.AttendanceID,
		punch.EmployeeNumber,
		punch.Timestamp,
		punch.Method,
		punch.Direction,
		punch.DeviceID,
	).Scan(&punch.ID, &punch.CreatedAt)

	if err != nil {
		return attendance.Punch{}, fmt.Errorf("failed to append attendance punch: %w", err)
	}

	return punch, nil
}

// ListPunches implements attendance.Repository.
func (a *attendanceRepository) ListPunches(ctx context.Context, attendanceID string) ([]attendance.Punch, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT id, attendance_id, employee_number, punched_at, method, direction, device_id, created_at
		FROM attendance_punches
		WHERE attendance_id = $1
		ORDER BY punched_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance punches: %w", err)
	}
	defer rows.Close()

	var punches []attendance.Punch
	for rows.Next() {
		var p attendance.Punch
		if err := rows.Scan(
			&p.ID, &p.AttendanceID, &p.EmployeeNumber, &p.Timestamp,
			&p.Method, &p.Direction, &p.DeviceID, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance punch: %w", err)
		}
		punches = append(punches, p)
	}

	return punches, rows.Err()
}

// List implements attendance.Repository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.Filter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("a.employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, fmt.Sprintf("s.date >= $%d", argIdx))
		args = append(args, *filter.DateFrom)
		argIdx++
	}
	if filter.DateTo != nil {
		conditions = append(conditions, fmt.Sprintf("s.date <= $%d", argIdx))
		args = append(args, *filter.DateTo)
		argIdx++
	}
	if filter.Processed != nil {
		conditions = append(conditions, fmt.Sprintf("a.is_processed = $%d", argIdx))
		args = append(args, *filter.Processed)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM attendances a
		JOIN schedules s ON s.id = a.schedule_id
		WHERE %s
	`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	listQuery := fmt.Sprintf(`
		SELECT a.id, a.employee_id, a.schedule_id, a.time_in, a.time_out, a.statuses,
		       a.day_type, a.is_processed, a.created_at, a.updated_at
		FROM attendances a
		JOIN schedules s ON s.id = a.schedule_id
		WHERE %s
		ORDER BY s.date DESC, a.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list attendances: %w", err)
	}
	defer rows.Close()

	var attendances []attendance.Attendance
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}

	return attendances, total, rows.Err()
}

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	var statuses []string
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.ScheduleID, &att.TimeIn, &att.TimeOut,
		&statuses, &att.DayType, &att.IsProcessed, &att.CreatedAt, &att.UpdatedAt,
	)
	if err != nil {
		return attendance.Attendance{}, err
	}
	att.Statuses = textToStatuses(statuses)
	return att, nil
}
