package worktime

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/validator"
)

// CreateRequestRequest raises a new work-time request.
type CreateRequestRequest struct {
	EmployeeID         string             `json:"employee_id"`
	AttendanceID       *string            `json:"attendance_id"`
	Type               RequestType        `json:"type"`
	DurationMinutes    int                `json:"duration_minutes"`
	DayType            attendance.DayType `json:"day_type"`
	Reason             string             `json:"reason"`
	DocumentURLs       []string           `json:"document_urls"`
	IsManagerInitiated bool               `json:"is_manager_initiated"`
}

var validRequestTypes = []string{
	string(RequestTypeLate),
	string(RequestTypeUnderTime),
	string(RequestTypeOvertime),
	string(RequestTypeNoCheckedIn),
	string(RequestTypeNoCheckedOut),
	string(RequestTypeEarly),
}

func (r CreateRequestRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee ID is required"})
	}
	if !validator.IsInSlice(string(r.Type), validRequestTypes) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "invalid request type"})
	}
	if r.DurationMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "duration_minutes", Message: "duration must not be negative"})
	}
	if r.Type == RequestTypeEarly && !r.IsManagerInitiated {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "early arrival requests must be manager-initiated"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// RespondRequest carries the approval decision for a request.
type RespondRequest struct {
	Approved bool    `json:"approved"`
	Remarks  *string `json:"remarks"`
}

// RequestFilter narrows request listings.
type RequestFilter struct {
	EmployeeID   string
	AttendanceID string
	Status       RequestStatus
	Page         int
	Limit        int
}

// RequestResponse is the read model for a request, with its response when one
// exists.
type RequestResponse struct {
	ID                 string             `json:"id"`
	EmployeeID         string             `json:"employee_id"`
	AttendanceID       *string            `json:"attendance_id"`
	Type               RequestType        `json:"type"`
	DurationMinutes    int                `json:"duration_minutes"`
	DayType            attendance.DayType `json:"day_type"`
	Status             RequestStatus      `json:"status"`
	Reason             string             `json:"reason"`
	DocumentURLs       []string           `json:"document_urls,omitempty"`
	IsManagerInitiated bool               `json:"is_manager_initiated"`
	Response           *ResponseDetail    `json:"response,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
}

type ResponseDetail struct {
	ID          string    `json:"id"`
	Approved    bool      `json:"approved"`
	ResponderID string    `json:"responder_id"`
	Remarks     *string   `json:"remarks,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListRequestsResponse is a paginated request listing.
type ListRequestsResponse struct {
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	Requests   []RequestResponse `json:"requests"`
}
