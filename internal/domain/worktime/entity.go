package worktime

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
)

// RequestType mirrors the attendance status tag that triggered the request.
// EARLY only exists as a manager-initiated request (pre-approved early
// arrival); devices never raise it.
type RequestType string

const (
	RequestTypeLate         RequestType = "LATE"
	RequestTypeUnderTime    RequestType = "UNDER_TIME"
	RequestTypeOvertime     RequestType = "OVERTIME"
	RequestTypeNoCheckedIn  RequestType = "NO_CHECKED_IN"
	RequestTypeNoCheckedOut RequestType = "NO_CHECKED_OUT"
	RequestTypeEarly        RequestType = "EARLY"
)

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusRejected RequestStatus = "REJECTED"
)

// Request records a deviation from schedule awaiting approval. Raised
// automatically by punch ingestion or pre-emptively by a manager.
type Request struct {
	ID                 string
	EmployeeID         string
	AttendanceID       *string
	Type               RequestType
	DurationMinutes    int
	DayType            attendance.DayType
	Status             RequestStatus
	Reason             string
	DocumentURLs       []string
	IsManagerInitiated bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Response is the single approval decision for a request. Exactly one may
// exist per request; creating it is the only PENDING -> APPROVED|REJECTED
// transition.
type Response struct {
	ID          string
	RequestID   string
	Approved    bool
	ResponderID string
	Remarks     *string
	CreatedAt   time.Time
}
