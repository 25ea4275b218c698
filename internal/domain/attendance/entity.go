package attendance

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
)

// Status is one tag on an attendance record. Statuses behave as an ordered
// set: append-only during a single ingestion pass, fully replaced on
// work-hour recomputation so tags never accumulate across repeated punches.
type Status string

const (
	StatusCheckedIn    Status = "CHECKED_IN"
	StatusCheckedOut   Status = "CHECKED_OUT"
	StatusLate         Status = "LATE"
	StatusUnderTime    Status = "UNDER_TIME"
	StatusOvertime     Status = "OVERTIME"
	StatusNoCheckedIn  Status = "NO_CHECKED_IN"
	StatusNoCheckedOut Status = "NO_CHECKED_OUT"
	StatusAbsent       Status = "ABSENT"
	StatusRestDay      Status = "REST_DAY"
	StatusHoliday      Status = "HOLIDAY"
	StatusOnLeave      Status = "ON_LEAVE"
)

// DayType classifies an attendance date. Derived from the schedule's
// rest-day flag and holiday link at creation time, re-derived on every
// work-hour computation.
type DayType string

const (
	DayTypeRegular               DayType = "REGULAR_DAY"
	DayTypeRestDay               DayType = "REST_DAY"
	DayTypeSpecialHoliday        DayType = "SPECIAL_HOLIDAY"
	DayTypeRegularHoliday        DayType = "REGULAR_HOLIDAY"
	DayTypeSpecialHolidayRestDay DayType = "SPECIAL_HOLIDAY_REST_DAY"
	DayTypeRegularHolidayRestDay DayType = "REGULAR_HOLIDAY_REST_DAY"
)

// ClassifyDay resolves the day type from a schedule's rest-day flag and
// holiday link. Rest-day + holiday combinations take precedence over either
// alone.
func ClassifyDay(restDay bool, holiday *schedule.Holiday) DayType {
	switch {
	case restDay && holiday != nil && holiday.Type == schedule.HolidayTypeRegular:
		return DayTypeRegularHolidayRestDay
	case restDay && holiday != nil && holiday.Type.IsSpecial():
		return DayTypeSpecialHolidayRestDay
	case restDay:
		return DayTypeRestDay
	case holiday != nil && holiday.Type == schedule.HolidayTypeRegular:
		return DayTypeRegularHoliday
	case holiday != nil && holiday.Type.IsSpecial():
		return DayTypeSpecialHoliday
	default:
		return DayTypeRegular
	}
}

// Attendance is the daily record pairing an employee and a schedule. Created
// on the first punch of the day, never before.
type Attendance struct {
	ID          string
	EmployeeID  string
	ScheduleID  string
	TimeIn      *time.Time
	TimeOut     *time.Time
	Statuses    []Status
	DayType     DayType
	IsProcessed bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasStatus reports whether the status tag is attached.
func (a *Attendance) HasStatus(s Status) bool {
	for _, have := range a.Statuses {
		if have == s {
			return true
		}
	}
	return false
}

// AttachStatus appends the status tag if not already present, preserving
// attachment order.
func (a *Attendance) AttachStatus(s Status) bool {
	if a.HasStatus(s) {
		return false
	}
	a.Statuses = append(a.Statuses, s)
	return true
}

// Punch method and device-reported direction values.
const (
	MethodBiometric = "BIOMETRIC"
	MethodManual    = "MANUAL"

	DirectionCheckIn  = "CHECK_IN"
	DirectionCheckOut = "CHECK_OUT"
)

// Punch is one raw device punch, retained append-only for audit. Only the
// first check-in and the governing check-out affect hour calculation; the
// device-reported direction is stored but never trusted for routing.
type Punch struct {
	ID             string
	AttendanceID   string
	EmployeeNumber int64
	Timestamp      time.Time
	Method         string
	Direction      string
	DeviceID       string
	CreatedAt      time.Time
}
