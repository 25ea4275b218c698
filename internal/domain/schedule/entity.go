package schedule

import (
	"fmt"
	"time"
)

// HolidayType classifies a holiday linked to a schedule date.
type HolidayType string

const (
	HolidayTypeRegular           HolidayType = "REGULAR"
	HolidayTypeSpecialWorking    HolidayType = "SPECIAL_WORKING"
	HolidayTypeSpecialNonWorking HolidayType = "SPECIAL_NON_WORKING"
)

// IsSpecial reports whether the holiday is a special (working or non-working) one.
func (t HolidayType) IsSpecial() bool {
	return t == HolidayTypeSpecialWorking || t == HolidayTypeSpecialNonWorking
}

type Holiday struct {
	ID   string
	Name string
	Type HolidayType
}

// Schedule is the expected shift for one employee on one date, produced by
// the scheduling module and read-only here. At most one schedule exists per
// (employee, date). Shift times are stored as HH:MM:SS strings as delivered
// by the scheduling module.
type Schedule struct {
	ID         string
	EmployeeID string
	Date       time.Time
	StartTime  string
	EndTime    string
	RestDay    bool
	Holiday    *Holiday
	CutoffID   string
}

const shiftTimeLayout = "15:04:05"

// ShiftWindow resolves the absolute shift start and end timestamps for the
// schedule date. A shift whose end does not fall after its start rolls over
// to the next day (night shift).
func (s Schedule) ShiftWindow() (start, end time.Time, err error) {
	start, err = s.at(s.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err = s.at(s.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return start, end, nil
}

// Midpoint is the timestamp halfway through the shift. Punches before it are
// check-in attempts, punches at or after it are check-out attempts.
func (s Schedule) Midpoint() (time.Time, error) {
	start, end, err := s.ShiftWindow()
	if err != nil {
		return time.Time{}, err
	}
	return start.Add(end.Sub(start) / 2), nil
}

func (s Schedule) at(shiftTime string) (time.Time, error) {
	t, err := time.Parse(shiftTimeLayout, shiftTime)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q on schedule %s", ErrInvalidShiftTime, shiftTime, s.ID)
	}
	return time.Date(
		s.Date.Year(), s.Date.Month(), s.Date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0,
		s.Date.Location(),
	), nil
}
