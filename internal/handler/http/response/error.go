package response

import (
	"errors"
	"net/http"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/employee"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/job"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance not found")
	case errors.Is(err, attendance.ErrEmptyDeviceReport):
		BadRequest(w, "Device report contains no punches", nil)

	// Work-time domain errors
	case errors.Is(err, worktime.ErrRequestNotFound):
		NotFound(w, "Work-time request not found")
	case errors.Is(err, worktime.ErrRequestAlreadyResponded):
		Conflict(w, "Work-time request already responded to")
	case errors.Is(err, worktime.ErrResponseNotFound):
		NotFound(w, "Work-time response not found")

	// Work-hour domain errors
	case errors.Is(err, workhour.ErrFinalWorkHourNotFound):
		NotFound(w, "Final work hour record not found")

	// Job domain errors
	case errors.Is(err, job.ErrJobNotFound):
		NotFound(w, "Work-hour job not found")

	// External collaborator errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")
	case errors.Is(err, schedule.ErrInvalidShiftTime):
		BadRequest(w, "Schedule carries an invalid shift time", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
