package attendance

import "errors"

// Attendance domain errors
var (
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrAlreadyCheckedIn   = errors.New("employee has already checked in today")
	ErrEmptyDeviceReport  = errors.New("device report contains no punches")
)
