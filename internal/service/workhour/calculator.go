package workhour

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/shopspring/decimal"
)

// CalculationInput is everything the calculator needs, loaded eagerly by the
// caller. Calculate itself touches no storage, which is what makes repeated
// runs over the same input byte-identical.
type CalculationInput struct {
	Attendance attendance.Attendance
	Schedule   schedule.Schedule
	Config     workhour.Config
	Approved   []worktime.Request
}

// Result is the computed breakdown for one attendance. Hours and
// OvertimeHours land in the single category pair selected by DayType;
// distribution into the four pairs is the service's job.
type Result struct {
	TimeIn      *time.Time
	TimeOut     *time.Time
	OverTimeOut *time.Time

	NoTimeInHours  decimal.Decimal
	NoTimeOutHours decimal.Decimal

	Hours         decimal.Decimal
	OvertimeHours decimal.Decimal

	NightDifferentialHours         decimal.Decimal
	NightDifferentialOvertimeHours decimal.Decimal

	DayType  attendance.DayType
	Statuses []attendance.Status
}

// Night differential window boundaries, inclusive start, exclusive end.
const (
	nightStartHour = 22
	nightEndHour   = 6
)

var secondsPerHour = decimal.NewFromInt(3600)

// Calculate derives the categorized work-hour breakdown for one attendance
// against its schedule, organization config and approved work-time requests.
//
// The derivation order is fixed: effective timeIn, then effective
// timeOut/overTimeOut, then elapsed hours, then night differential. Each
// approved request type adjusts exactly one boundary; unapproved deviations
// clamp to the scheduled boundary instead.
func Calculate(in CalculationInput) (Result, error) {
	start, end, err := in.Schedule.ShiftWindow()
	if err != nil {
		return Result{}, err
	}

	res := Result{
		DayType:  attendance.ClassifyDay(in.Schedule.RestDay, in.Schedule.Holiday),
		Statuses: rebuildStatuses(in, start, end),
	}

	// Absence yields a zeroed record: the day is documented, not worked.
	if in.Attendance.HasStatus(attendance.StatusAbsent) ||
		in.Attendance.HasStatus(attendance.StatusOnLeave) {
		return res, nil
	}

	timeIn := effectiveTimeIn(in, start, &res)
	timeOut, overTimeOut := effectiveTimeOut(in, end, &res)

	res.TimeIn = &timeIn
	res.TimeOut = &timeOut
	res.OverTimeOut = overTimeOut

	if timeOut.After(timeIn) {
		res.Hours = durationToHours(timeOut.Sub(timeIn))
		res.NightDifferentialHours = durationToHours(nightOverlap(timeIn, timeOut))
	}
	if overTimeOut != nil && overTimeOut.After(timeOut) {
		res.OvertimeHours = durationToHours(overTimeOut.Sub(timeOut))
		res.NightDifferentialOvertimeHours = durationToHours(nightOverlap(timeOut, *overTimeOut))
	}

	return res, nil
}

// effectiveTimeIn resolves the time the employee is credited from. A missing
// punch falls back to the scheduled start and carries the no-check-in
// deduction unless an approved NO_CHECKED_IN request waives it. An early
// punch is clamped to the start unless the organization allows early arrival
// and a manager pre-approved it. A late punch is pulled back to
// start+duration by an approved LATE request; without one it stands.
func effectiveTimeIn(in CalculationInput, start time.Time, res *Result) time.Time {
	if in.Attendance.TimeIn == nil {
		if approvedRequest(in.Approved, worktime.RequestTypeNoCheckedIn) == nil {
			res.NoTimeInHours = minutesToHours(in.Config.NoTimeInDeductionMinutes)
		}
		return start
	}

	punched := *in.Attendance.TimeIn
	switch {
	case punched.Before(start):
		if in.Config.AllowEarlyCheckIn {
			if req := approvedRequest(in.Approved, worktime.RequestTypeEarly); req != nil && req.IsManagerInitiated {
				return start.Add(-time.Duration(req.DurationMinutes) * time.Minute)
			}
		}
		return start
	case punched.After(start):
		if req := approvedRequest(in.Approved, worktime.RequestTypeLate); req != nil {
			return start.Add(time.Duration(req.DurationMinutes) * time.Minute)
		}
		return punched
	default:
		return start
	}
}

// effectiveTimeOut resolves the credited end of the shift plus the approved
// overtime tail. Work past the scheduled end only counts through an approved
// OVERTIME request, which splits the boundary: timeOut pins to the end and
// overTimeOut extends by the approved duration. Leaving early converts to
// end−duration under an approved UNDER_TIME request; otherwise the early
// punch stands.
func effectiveTimeOut(in CalculationInput, end time.Time, res *Result) (time.Time, *time.Time) {
	if in.Attendance.TimeOut == nil {
		if approvedRequest(in.Approved, worktime.RequestTypeNoCheckedOut) == nil {
			res.NoTimeOutHours = minutesToHours(in.Config.NoTimeOutDeductionMinutes)
		}
		return end, nil
	}

	punched := *in.Attendance.TimeOut
	switch {
	case punched.After(end):
		if req := approvedRequest(in.Approved, worktime.RequestTypeOvertime); req != nil {
			overTimeOut := end.Add(time.Duration(req.DurationMinutes) * time.Minute)
			return end, &overTimeOut
		}
		return end, nil
	case punched.Before(end):
		if req := approvedRequest(in.Approved, worktime.RequestTypeUnderTime); req != nil {
			return end.Add(-time.Duration(req.DurationMinutes) * time.Minute), nil
		}
		return punched, nil
	default:
		return end, nil
	}
}

// rebuildStatuses derives the full status set from scratch on every
// computation, replacing whatever ingestion accumulated. Recomputing after
// an approval therefore never stacks duplicate tags.
func rebuildStatuses(in CalculationInput, start, end time.Time) []attendance.Status {
	var statuses []attendance.Status
	att := in.Attendance

	if att.HasStatus(attendance.StatusOnLeave) {
		statuses = append(statuses, attendance.StatusOnLeave)
	}
	if att.HasStatus(attendance.StatusAbsent) {
		statuses = append(statuses, attendance.StatusAbsent)
	}

	if att.TimeIn != nil {
		statuses = append(statuses, attendance.StatusCheckedIn)
		if att.TimeIn.After(start.Add(in.Config.GracePeriod())) {
			statuses = append(statuses, attendance.StatusLate)
		}
	} else if !att.HasStatus(attendance.StatusAbsent) && !att.HasStatus(attendance.StatusOnLeave) {
		statuses = append(statuses, attendance.StatusNoCheckedIn)
	}

	if att.TimeOut != nil {
		statuses = append(statuses, attendance.StatusCheckedOut)
		if att.TimeOut.Before(end.Add(-in.Config.UnderTimeThreshold())) {
			statuses = append(statuses, attendance.StatusUnderTime)
		}
		if att.TimeOut.After(end.Add(in.Config.OvertimeThreshold())) {
			statuses = append(statuses, attendance.StatusOvertime)
		}
	} else if att.TimeIn != nil {
		statuses = append(statuses, attendance.StatusNoCheckedOut)
	}

	if in.Schedule.RestDay {
		statuses = append(statuses, attendance.StatusRestDay)
	}
	if in.Schedule.Holiday != nil {
		statuses = append(statuses, attendance.StatusHoliday)
	}

	return statuses
}

func approvedRequest(requests []worktime.Request, t worktime.RequestType) *worktime.Request {
	for i := range requests {
		if requests[i].Type == t && requests[i].Status == worktime.RequestStatusApproved {
			return &requests[i]
		}
	}
	return nil
}

// nightOverlap sums the overlap of [from, to) with the nightly
// [22:00, 06:00) windows. The raw duration is summed across windows and
// converted to hours once, so rounding happens a single time.
func nightOverlap(from, to time.Time) time.Duration {
	if !to.After(from) {
		return 0
	}

	var total time.Duration
	day := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location()).Add(-24 * time.Hour)
	for windowStart := day.Add(nightStartHour * time.Hour); windowStart.Before(to); windowStart = windowStart.Add(24 * time.Hour) {
		windowEnd := windowStart.Add((24 - nightStartHour + nightEndHour) * time.Hour)
		overlapStart, overlapEnd := from, to
		if windowStart.After(overlapStart) {
			overlapStart = windowStart
		}
		if windowEnd.Before(overlapEnd) {
			overlapEnd = windowEnd
		}
		if overlapEnd.After(overlapStart) {
			total += overlapEnd.Sub(overlapStart)
		}
	}

	return total
}

func durationToHours(d time.Duration) decimal.Decimal {
	return decimal.NewFromInt(int64(d / time.Second)).Div(secondsPerHour).Round(2)
}

func minutesToHours(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes) * 60).Div(secondsPerHour).Round(2)
}
