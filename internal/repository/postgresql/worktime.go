package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type workTimeRepository struct {
	db *database.DB
}

func NewWorkTimeRepository(db *database.DB) worktime.Repository {
	return &workTimeRepository{db: db}
}

// Create implements worktime.Repository.
func (r *workTimeRepository) Create(ctx context.Context, request worktime.Request) (worktime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_time_requests (
			employee_id, attendance_id, type, duration_minutes, day_type,
			status, reason, document_urls, is_manager_initiated
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		request.EmployeeID,
		request.AttendanceID,
		request.Type,
		request.DurationMinutes,
		request.DayType,
		request.Status,
		request.Reason,
		request.DocumentURLs,
		request.IsManagerInitiated,
	).Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt)

	if err != nil {
		return worktime.Request{}, fmt.Errorf("failed to create work-time request: %w", err)
	}

	return request, nil
}

// GetByID implements worktime.Repository.
func (r *workTimeRepository) GetByID(ctx context.Context, id string) (worktime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_id, type, duration_minutes, day_type,
		       status, reason, document_urls, is_manager_initiated, created_at, updated_at
		FROM work_time_requests
		WHERE id = $1
	`

	req, err := scanWorkTimeRequest(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return worktime.Request{}, worktime.ErrRequestNotFound
		}
		return worktime.Request{}, fmt.Errorf("failed to get work-time request by ID: %w", err)
	}

	return req, nil
}

// GetApprovedByAttendance implements worktime.Repository.
func (r *workTimeRepository) GetApprovedByAttendance(ctx context.Context, attendanceID string) ([]worktime.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, attendance_id, type, duration_minutes, day_type,
		       status, reason, document_urls, is_manager_initiated, created_at, updated_at
		FROM work_time_requests
		WHERE attendance_id = $1 AND status = $2
		ORDER BY created_at ASC
	`

	rows, err := q.Query(ctx, query, attendanceID, worktime.RequestStatusApproved)
	if err != nil {
		return nil, fmt.Errorf("failed to get approved work-time requests: %w", err)
	}
	defer rows.Close()

	var requests []worktime.Request
	for rows.Next() {
		req, err := scanWorkTimeRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work-time request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// List implements worktime.Repository.
func (r *workTimeRepository) List(ctx context.Context, filter worktime.RequestFilter) ([]worktime.Request, int64, error) {
	q := GetQuerier(ctx, r.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != "" {
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, filter.EmployeeID)
		argIdx++
	}
	if filter.AttendanceID != "" {
		conditions = append(conditions, fmt.Sprintf("attendance_id = $%d", argIdx))
		args = append(args, filter.AttendanceID)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := q.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM work_time_requests WHERE %s`, where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count work-time requests: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := fmt.Sprintf(`
		SELECT id, employee_id, attendance_id, type, duration_minutes, day_type,
		       status, reason, document_urls, is_manager_initiated, created_at, updated_at
		FROM work_time_requests
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list work-time requests: %w", err)
	}
	defer rows.Close()

	var requests []worktime.Request
	for rows.Next() {
		req, err := scanWorkTimeRequest(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan work-time request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, total, rows.Err()
}

// CreateResponse implements worktime.Repository. The unique index on
// request_id is what enforces the 1:1 constraint; a duplicate insert maps to
// ErrRequestAlreadyResponded.
func (r *workTimeRepository) CreateResponse(ctx context.Context, response worktime.Response) (worktime.Response, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_time_responses (
			request_id, approved, responder_id, remarks
		) VALUES (
			$1, $2, $3, $4
		) RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		response.RequestID,
		response.Approved,
		response.ResponderID,
		response.Remarks,
	).Scan(&response.ID, &response.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return worktime.Response{}, worktime.ErrRequestAlreadyResponded
		}
		return worktime.Response{}, fmt.Errorf("failed to create work-time response: %w", err)
	}

	return response, nil
}

// GetResponseByRequestID implements worktime.Repository.
func (r *workTimeRepository) GetResponseByRequestID(ctx context.Context, requestID string) (*worktime.Response, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, request_id, approved, responder_id, remarks, created_at
		FROM work_time_responses
		WHERE request_id = $1
	`

	var resp worktime.Response
	err := q.QueryRow(ctx, query, requestID).Scan(
		&resp.ID, &resp.RequestID, &resp.Approved, &resp.ResponderID, &resp.Remarks, &resp.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get work-time response: %w", err)
	}

	return &resp, nil
}

// UpdateStatus implements worktime.Repository.
func (r *workTimeRepository) UpdateStatus(ctx context.Context, requestID string, status worktime.RequestStatus) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx,
		`UPDATE work_time_requests SET status = $2, updated_at = NOW() WHERE id = $1`,
		requestID, status,
	)
	if err != nil {
		return fmt.Errorf("failed to update work-time request status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return worktime.ErrRequestNotFound
	}

	return nil
}

func scanWorkTimeRequest(row pgx.Row) (worktime.Request, error) {
	var req worktime.Request
	var documentURLs []string
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.AttendanceID, &req.Type, &req.DurationMinutes,
		&req.DayType, &req.Status, &req.Reason, &documentURLs,
		&req.IsManagerInitiated, &req.CreatedAt, &req.UpdatedAt,
	)
	if err != nil {
		return worktime.Request{}, err
	}
	req.DocumentURLs = documentURLs
	return req, nil
}
