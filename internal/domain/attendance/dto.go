package attendance

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/validator"
)

// DevicePunch is one raw punch as reported by a biometric device. UserID is
// the device-local numeric employee code as a string; Type is the device's
// own in/out flag, which is recorded for audit but not trusted for routing.
type DevicePunch struct {
	UserID    string    `json:"userId"`
	Timestamp time.Time `json:"timestamp"`
	Type      string    `json:"type"`
	Method    string    `json:"method,omitempty"`
}

// DeviceReport is one batch of punches from one device.
type DeviceReport struct {
	DeviceID string        `json:"deviceId"`
	Punches  []DevicePunch `json:"punches"`
}

func (r DeviceReport) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.DeviceID) {
		errs = append(errs, validator.ValidationError{Field: "deviceId", Message: "device ID is required"})
	}
	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{Field: "punches", Message: "at least one punch is required"})
	}
	for _, p := range r.Punches {
		if validator.IsEmpty(p.UserID) {
			errs = append(errs, validator.ValidationError{Field: "punches", Message: "punch userId is required"})
			break
		}
		if p.Timestamp.IsZero() {
			errs = append(errs, validator.ValidationError{Field: "punches", Message: "punch timestamp is required"})
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// IngestSummary reports the outcome of one device report pass.
type IngestSummary struct {
	DeviceID string `json:"deviceId"`
	Received int    `json:"received"`
	Applied  int    `json:"applied"`
	Skipped  int    `json:"skipped"`
	Failed   int    `json:"failed"`
}

// AttendanceResponse is the read model returned by the HTTP surface.
type AttendanceResponse struct {
	ID          string     `json:"id"`
	EmployeeID  string     `json:"employee_id"`
	ScheduleID  string     `json:"schedule_id"`
	TimeIn      *time.Time `json:"time_in"`
	TimeOut     *time.Time `json:"time_out"`
	Statuses    []Status   `json:"statuses"`
	DayType     DayType    `json:"day_type"`
	IsProcessed bool       `json:"is_processed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// Filter narrows attendance listings.
type Filter struct {
	EmployeeID string
	DateFrom   *time.Time
	DateTo     *time.Time
	Processed  *bool
	Page       int
	Limit      int
}

// ListResponse is a paginated attendance listing.
type ListResponse struct {
	TotalCount  int64                `json:"total_count"`
	Page        int                  `json:"page"`
	Limit       int                  `json:"limit"`
	Attendances []AttendanceResponse `json:"attendances"`
}
