package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

// GetByID implements schedule.Repository.
func (r *scheduleRepository) GetByID(ctx context.Context, id string) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.start_time, s.end_time, s.rest_day,
		       s.cutoff_id, h.id, h.name, h.type
		FROM schedules s
		LEFT JOIN holidays h ON h.id = s.holiday_id
		WHERE s.id = $1
	`

	sched, err := scanSchedule(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get schedule by ID: %w", err)
	}

	return sched, nil
}

// GetForEmployeeOnDate implements schedule.Repository.
func (r *scheduleRepository) GetForEmployeeOnDate(ctx context.Context, employeeID string, date time.Time) (*schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT s.id, s.employee_id, s.date, s.start_time, s.end_time, s.rest_day,
		       s.cutoff_id, h.id, h.name, h.type
		FROM schedules s
		LEFT JOIN holidays h ON h.id = s.holiday_id
		WHERE s.employee_id = $1 AND s.date = $2
		LIMIT 1
	`

	sched, err := scanSchedule(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no shift expected that day
		}
		return nil, fmt.Errorf("failed to get schedule for employee on date: %w", err)
	}

	return &sched, nil
}

func scanSchedule(row pgx.Row) (schedule.Schedule, error) {
	var sched schedule.Schedule
	var holidayID, holidayName, holidayType *string
	err := row.Scan(
		&sched.ID, &sched.EmployeeID, &sched.Date, &sched.StartTime, &sched.EndTime,
		&sched.RestDay, &sched.CutoffID, &holidayID, &holidayName, &holidayType,
	)
	if err != nil {
		return schedule.Schedule{}, err
	}
	if holidayID != nil {
		sched.Holiday = &schedule.Holiday{
			ID:   *holidayID,
			Type: schedule.HolidayType(*holidayType),
		}
		if holidayName != nil {
			sched.Holiday.Name = *holidayName
		}
	}
	return sched, nil
}
