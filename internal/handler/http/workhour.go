package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/job"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/handler/http/response"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/jwt"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/jobs"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

type WorkHourHandler interface {
	EnqueueBatch(w http.ResponseWriter, r *http.Request)
	GetBatch(w http.ResponseWriter, r *http.Request)
	GetByAttendance(w http.ResponseWriter, r *http.Request)
}

type workHourHandlerImpl struct {
	workHourService workhour.Service
	processor       *jobs.Processor
	jwtService      jwt.Service
}

func NewWorkHourHandler(workHourService workhour.Service, processor *jobs.Processor, jwtService jwt.Service) WorkHourHandler {
	return &workHourHandlerImpl{
		workHourService: workHourService,
		processor:       processor,
		jwtService:      jwtService,
	}
}

type enqueueBatchRequest struct {
	BatchID       string   `json:"batch_id"`
	AttendanceIDs []string `json:"attendance_ids"`
}

type enqueueBatchResponse struct {
	BatchID string `json:"batch_id"`
}

// EnqueueBatch implements WorkHourHandler. The batch is accepted, not
// processed: computation happens asynchronously and its progress is read
// back through GetBatch.
func (h *workHourHandlerImpl) EnqueueBatch(w http.ResponseWriter, r *http.Request) {
	actor, err := h.jwtService.ActorFromContext(r.Context())
	if err != nil {
		response.Unauthorized(w, "Invalid access token")
		return
	}

	var req enqueueBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if len(req.AttendanceIDs) == 0 {
		response.BadRequest(w, "attendance_ids must not be empty", nil)
		return
	}

	batchID, err := h.processor.Enqueue(r.Context(), req.BatchID, req.AttendanceIDs, actor.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Accepted(w, "Work-hour batch enqueued", enqueueBatchResponse{BatchID: batchID})
}

type jobStatusResponse struct {
	BatchID        string    `json:"batch_id"`
	Status         job.Status `json:"status"`
	Attempts       int       `json:"attempts"`
	AttendanceIDs  []string  `json:"attendance_ids"`
	ProcessedCount int       `json:"processed_count"`
	FailedCount    int       `json:"failed_count"`
	LastError      *string   `json:"last_error,omitempty"`
	NextRunAt      time.Time `json:"next_run_at"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// GetBatch implements WorkHourHandler.
func (h *workHourHandlerImpl) GetBatch(w http.ResponseWriter, r *http.Request) {
	batchID := chi.URLParam(r, "batchId")

	j, err := h.processor.Status(r.Context(), batchID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, jobStatusResponse{
		BatchID:        j.BatchID,
		Status:         j.Status,
		Attempts:       j.Attempts,
		AttendanceIDs:  j.AttendanceIDs,
		ProcessedCount: j.ProcessedCount,
		FailedCount:    j.FailedCount,
		LastError:      j.LastError,
		NextRunAt:      j.NextRunAt,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	})
}

type finalWorkHourResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	AttendanceID string  `json:"attendance_id"`
	CutoffID     string  `json:"cutoff_id"`
	OrganizationID string `json:"organization_id"`
	BranchID     *string `json:"branch_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`

	TimeIn      *time.Time `json:"time_in"`
	TimeOut     *time.Time `json:"time_out"`
	OverTimeOut *time.Time `json:"over_time_out,omitempty"`

	NoTimeInHours  decimal.Decimal `json:"no_time_in_hours"`
	NoTimeOutHours decimal.Decimal `json:"no_time_out_hours"`

	RegularDayHours             decimal.Decimal `json:"regular_day_hours"`
	RegularDayOvertimeHours     decimal.Decimal `json:"regular_day_overtime_hours"`
	RestDayHours                decimal.Decimal `json:"rest_day_hours"`
	RestDayOvertimeHours        decimal.Decimal `json:"rest_day_overtime_hours"`
	SpecialHolidayHours         decimal.Decimal `json:"special_holiday_hours"`
	SpecialHolidayOvertimeHours decimal.Decimal `json:"special_holiday_overtime_hours"`
	RegularHolidayHours         decimal.Decimal `json:"regular_holiday_hours"`
	RegularHolidayOvertimeHours decimal.Decimal `json:"regular_holiday_overtime_hours"`

	NightDifferentialHours         decimal.Decimal `json:"night_differential_hours"`
	NightDifferentialOvertimeHours decimal.Decimal `json:"night_differential_overtime_hours"`

	DayType string `json:"day_type"`

	TotalRegularHours  decimal.Decimal `json:"total_regular_hours"`
	TotalOvertimeHours decimal.Decimal `json:"total_overtime_hours"`
	TotalHours         decimal.Decimal `json:"total_hours"`

	BatchID     string     `json:"batch_id"`
	IsApproved  bool       `json:"is_approved"`
	ProcessedBy *string    `json:"processed_by,omitempty"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GetByAttendance implements WorkHourHandler.
func (h *workHourHandlerImpl) GetByAttendance(w http.ResponseWriter, r *http.Request) {
	attendanceID := chi.URLParam(r, "attendanceId")

	record, err := h.workHourService.GetByAttendance(r.Context(), attendanceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, toFinalWorkHourResponse(record))
}

func toFinalWorkHourResponse(f workhour.FinalWorkHour) finalWorkHourResponse {
	return finalWorkHourResponse{
		ID:             f.ID,
		EmployeeID:     f.EmployeeID,
		AttendanceID:   f.AttendanceID,
		CutoffID:       f.CutoffID,
		OrganizationID: f.OrganizationID,
		BranchID:       f.BranchID,
		DepartmentID:   f.DepartmentID,
		TimeIn:         f.TimeIn,
		TimeOut:        f.TimeOut,
		OverTimeOut:    f.OverTimeOut,
		NoTimeInHours:  f.NoTimeInHours,
		NoTimeOutHours: f.NoTimeOutHours,

		RegularDayHours:             f.RegularDayHours,
		RegularDayOvertimeHours:     f.RegularDayOvertimeHours,
		RestDayHours:                f.RestDayHours,
		RestDayOvertimeHours:        f.RestDayOvertimeHours,
		SpecialHolidayHours:         f.SpecialHolidayHours,
		SpecialHolidayOvertimeHours: f.SpecialHolidayOvertimeHours,
		RegularHolidayHours:         f.RegularHolidayHours,
		RegularHolidayOvertimeHours: f.RegularHolidayOvertimeHours,

		NightDifferentialHours:         f.NightDifferentialHours,
		NightDifferentialOvertimeHours: f.NightDifferentialOvertimeHours,

		DayType: string(f.DayType),

		TotalRegularHours:  f.TotalRegularHours,
		TotalOvertimeHours: f.TotalOvertimeHours,
		TotalHours:         f.TotalHours,

		BatchID:     f.BatchID,
		IsApproved:  f.IsApproved,
		ProcessedBy: f.ProcessedBy,
		ProcessedAt: f.ProcessedAt,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
