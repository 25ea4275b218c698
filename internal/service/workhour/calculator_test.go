package workhour

import (
	"testing"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func testConfig() workhour.Config {
	return workhour.Config{
		GracePeriodMinutes:        5,
		OvertimeThresholdMinutes:  30,
		UnderTimeThresholdMinutes: 30,
		NoTimeInDeductionMinutes:  60,
		NoTimeOutDeductionMinutes: 60,
	}
}

func daySchedule(start, end string) schedule.Schedule {
	return schedule.Schedule{
		ID:         "sched-1",
		EmployeeID: "emp-1",
		Date:       testDate,
		StartTime:  start,
		EndTime:    end,
		CutoffID:   "cutoff-1",
	}
}

func at(hour, minute int) time.Time {
	return time.Date(testDate.Year(), testDate.Month(), testDate.Day(), hour, minute, 0, 0, time.UTC)
}

func approved(reqType worktime.RequestType, durationMinutes int) worktime.Request {
	return worktime.Request{
		ID:              "req-1",
		Type:            reqType,
		DurationMinutes: durationMinutes,
		Status:          worktime.RequestStatusApproved,
	}
}

func TestCalculateLateArrival(t *testing.T) {
	t.Parallel()

	timeIn := at(9, 15)
	timeOut := at(17, 0)
	att := attendance.Attendance{
		ID:      "att-1",
		TimeIn:  &timeIn,
		TimeOut: &timeOut,
	}

	t.Run("without approval the late punch stands", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, at(9, 15), *res.TimeIn)
		assert.Equal(t, "7.75", res.Hours.StringFixed(2))
		assert.Contains(t, res.Statuses, attendance.StatusLate)
		assert.Equal(t, "0.00", res.NoTimeInHours.StringFixed(2))
	})

	t.Run("approved late request converts to start plus duration", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeLate, 10)},
		})
		require.NoError(t, err)

		assert.Equal(t, at(9, 10), *res.TimeIn)
		assert.Equal(t, "7.83", res.Hours.StringFixed(2))
		assert.Equal(t, "0.00", res.NoTimeInHours.StringFixed(2))
	})

	t.Run("approval strictly increases credited hours", func(t *testing.T) {
		t.Parallel()

		before, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		after, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeLate, 15)},
		})
		require.NoError(t, err)

		assert.True(t, after.Hours.GreaterThan(before.Hours),
			"approving a LATE request must not lower hours: before=%s after=%s", before.Hours, after.Hours)
	})
}

func TestCalculateIdempotent(t *testing.T) {
	t.Parallel()

	timeIn := at(9, 15)
	timeOut := at(18, 10)
	in := CalculationInput{
		Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut},
		Schedule:   daySchedule("09:00:00", "17:00:00"),
		Config:     testConfig(),
		Approved: []worktime.Request{
			approved(worktime.RequestTypeLate, 10),
			approved(worktime.RequestTypeOvertime, 60),
		},
	}

	first, err := Calculate(in)
	require.NoError(t, err)
	second, err := Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, first.TimeIn, second.TimeIn)
	assert.Equal(t, first.TimeOut, second.TimeOut)
	assert.Equal(t, first.OverTimeOut, second.OverTimeOut)
	assert.Equal(t, first.Hours.StringFixed(2), second.Hours.StringFixed(2))
	assert.Equal(t, first.OvertimeHours.StringFixed(2), second.OvertimeHours.StringFixed(2))
	assert.Equal(t, first.Statuses, second.Statuses)
}

func TestCalculateOvertime(t *testing.T) {
	t.Parallel()

	timeIn := at(9, 0)
	timeOut := at(18, 0)
	att := attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut}

	t.Run("unapproved overtime clamps to the scheduled end", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, at(17, 0), *res.TimeOut)
		assert.Nil(t, res.OverTimeOut)
		assert.Equal(t, "8.00", res.Hours.StringFixed(2))
		assert.Equal(t, "0.00", res.OvertimeHours.StringFixed(2))
		assert.Contains(t, res.Statuses, attendance.StatusOvertime)
	})

	t.Run("approved overtime splits timeOut and overTimeOut", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeOvertime, 60)},
		})
		require.NoError(t, err)

		assert.Equal(t, at(17, 0), *res.TimeOut)
		require.NotNil(t, res.OverTimeOut)
		assert.Equal(t, at(18, 0), *res.OverTimeOut)
		assert.Equal(t, "8.00", res.Hours.StringFixed(2))
		assert.Equal(t, "1.00", res.OvertimeHours.StringFixed(2))
	})
}

func TestCalculateUnderTime(t *testing.T) {
	t.Parallel()

	timeIn := at(9, 0)
	timeOut := at(16, 0)
	att := attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut}

	t.Run("unapproved early departure stands", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, at(16, 0), *res.TimeOut)
		assert.Equal(t, "7.00", res.Hours.StringFixed(2))
		assert.Contains(t, res.Statuses, attendance.StatusUnderTime)
	})

	t.Run("approved under-time subtracts the duration from the end", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeUnderTime, 30)},
		})
		require.NoError(t, err)

		assert.Equal(t, at(16, 30), *res.TimeOut)
		assert.Equal(t, "7.50", res.Hours.StringFixed(2))
	})
}

func TestCalculateEarlyArrival(t *testing.T) {
	t.Parallel()

	timeIn := at(8, 30)
	timeOut := at(17, 0)
	att := attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut}

	earlyRequest := approved(worktime.RequestTypeEarly, 30)
	earlyRequest.IsManagerInitiated = true

	t.Run("early punch clamps to start by default", func(t *testing.T) {
		t.Parallel()

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{earlyRequest},
		})
		require.NoError(t, err)

		assert.Equal(t, at(9, 0), *res.TimeIn)
		assert.Equal(t, "8.00", res.Hours.StringFixed(2))
	})

	t.Run("manager-approved early arrival counts when allowed", func(t *testing.T) {
		t.Parallel()

		cfg := testConfig()
		cfg.AllowEarlyCheckIn = true

		res, err := Calculate(CalculationInput{
			Attendance: att,
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     cfg,
			Approved:   []worktime.Request{earlyRequest},
		})
		require.NoError(t, err)

		assert.Equal(t, at(8, 30), *res.TimeIn)
		assert.Equal(t, "8.50", res.Hours.StringFixed(2))
	})
}

func TestCalculateMissingPunches(t *testing.T) {
	t.Parallel()

	t.Run("missing check-in deducts and falls back to start", func(t *testing.T) {
		t.Parallel()

		timeOut := at(17, 0)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeOut: &timeOut},
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, at(9, 0), *res.TimeIn)
		assert.Equal(t, "1.00", res.NoTimeInHours.StringFixed(2))
		assert.Equal(t, "8.00", res.Hours.StringFixed(2))
		assert.Contains(t, res.Statuses, attendance.StatusNoCheckedIn)
	})

	t.Run("approved no-check-in request waives the deduction", func(t *testing.T) {
		t.Parallel()

		timeOut := at(17, 0)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeOut: &timeOut},
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeNoCheckedIn, 0)},
		})
		require.NoError(t, err)

		assert.Equal(t, "0.00", res.NoTimeInHours.StringFixed(2))
	})

	t.Run("missing check-out deducts and falls back to end", func(t *testing.T) {
		t.Parallel()

		timeIn := at(9, 0)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn},
			Schedule:   daySchedule("09:00:00", "17:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, at(17, 0), *res.TimeOut)
		assert.Equal(t, "1.00", res.NoTimeOutHours.StringFixed(2))
		assert.Contains(t, res.Statuses, attendance.StatusNoCheckedOut)
	})
}

func TestCalculateNightDifferential(t *testing.T) {
	t.Parallel()

	t.Run("evening shift overlaps one hour", func(t *testing.T) {
		t.Parallel()

		timeIn := at(20, 0)
		timeOut := at(23, 0)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut},
			Schedule:   daySchedule("20:00:00", "23:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, "1.00", res.NightDifferentialHours.StringFixed(2))
	})

	t.Run("full night shift overlaps entirely", func(t *testing.T) {
		t.Parallel()

		timeIn := at(22, 0)
		timeOut := at(6, 0).Add(24 * time.Hour)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut},
			Schedule:   daySchedule("22:00:00", "06:00:00"),
			Config:     testConfig(),
		})
		require.NoError(t, err)

		assert.Equal(t, "8.00", res.Hours.StringFixed(2))
		assert.Equal(t, "8.00", res.NightDifferentialHours.StringFixed(2))
	})

	t.Run("approved overtime past ten pm accrues the overtime variant", func(t *testing.T) {
		t.Parallel()

		timeIn := at(14, 0)
		timeOut := at(23, 30)
		res, err := Calculate(CalculationInput{
			Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut},
			Schedule:   daySchedule("14:00:00", "22:00:00"),
			Config:     testConfig(),
			Approved:   []worktime.Request{approved(worktime.RequestTypeOvertime, 90)},
		})
		require.NoError(t, err)

		// regular segment ends exactly at 22:00, so all night hours are overtime
		assert.Equal(t, "0.00", res.NightDifferentialHours.StringFixed(2))
		assert.Equal(t, "1.50", res.NightDifferentialOvertimeHours.StringFixed(2))
	})
}

func TestCalculateAbsence(t *testing.T) {
	t.Parallel()

	res, err := Calculate(CalculationInput{
		Attendance: attendance.Attendance{ID: "att-1", Statuses: []attendance.Status{attendance.StatusAbsent}},
		Schedule:   daySchedule("09:00:00", "17:00:00"),
		Config:     testConfig(),
	})
	require.NoError(t, err)

	assert.Nil(t, res.TimeIn)
	assert.Nil(t, res.TimeOut)
	assert.True(t, res.Hours.IsZero())
	assert.True(t, res.NoTimeInHours.IsZero())
	assert.Contains(t, res.Statuses, attendance.StatusAbsent)
}

func TestCalculateDayClassification(t *testing.T) {
	t.Parallel()

	regular := &schedule.Holiday{ID: "h1", Type: schedule.HolidayTypeRegular}
	special := &schedule.Holiday{ID: "h2", Type: schedule.HolidayTypeSpecialNonWorking}

	tests := []struct {
		name     string
		restDay  bool
		holiday  *schedule.Holiday
		expected attendance.DayType
	}{
		{"plain working day", false, nil, attendance.DayTypeRegular},
		{"rest day", true, nil, attendance.DayTypeRestDay},
		{"special holiday", false, special, attendance.DayTypeSpecialHoliday},
		{"regular holiday", false, regular, attendance.DayTypeRegularHoliday},
		{"rest day on special holiday", true, special, attendance.DayTypeSpecialHolidayRestDay},
		{"rest day on regular holiday", true, regular, attendance.DayTypeRegularHolidayRestDay},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			sched := daySchedule("09:00:00", "17:00:00")
			sched.RestDay = tt.restDay
			sched.Holiday = tt.holiday

			timeIn := at(9, 0)
			timeOut := at(17, 0)
			res, err := Calculate(CalculationInput{
				Attendance: attendance.Attendance{ID: "att-1", TimeIn: &timeIn, TimeOut: &timeOut},
				Schedule:   sched,
				Config:     testConfig(),
			})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, res.DayType)
		})
	}
}

func TestApplyCategoryBuckets(t *testing.T) {
	t.Parallel()

	hours := decimal.RequireFromString("8.00")
	overtime := decimal.RequireFromString("1.50")

	tests := []struct {
		dayType       attendance.DayType
		hoursField    func(f workhour.FinalWorkHour) string
		overtimeField func(f workhour.FinalWorkHour) string
	}{
		{attendance.DayTypeRegular,
			func(f workhour.FinalWorkHour) string { return f.RegularDayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.RegularDayOvertimeHours.StringFixed(2) }},
		{attendance.DayTypeRestDay,
			func(f workhour.FinalWorkHour) string { return f.RestDayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.RestDayOvertimeHours.StringFixed(2) }},
		{attendance.DayTypeSpecialHoliday,
			func(f workhour.FinalWorkHour) string { return f.SpecialHolidayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.SpecialHolidayOvertimeHours.StringFixed(2) }},
		{attendance.DayTypeSpecialHolidayRestDay,
			func(f workhour.FinalWorkHour) string { return f.SpecialHolidayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.SpecialHolidayOvertimeHours.StringFixed(2) }},
		{attendance.DayTypeRegularHoliday,
			func(f workhour.FinalWorkHour) string { return f.RegularHolidayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.RegularHolidayOvertimeHours.StringFixed(2) }},
		{attendance.DayTypeRegularHolidayRestDay,
			func(f workhour.FinalWorkHour) string { return f.RegularHolidayHours.StringFixed(2) },
			func(f workhour.FinalWorkHour) string { return f.RegularHolidayOvertimeHours.StringFixed(2) }},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.dayType), func(t *testing.T) {
			t.Parallel()

			var record workhour.FinalWorkHour
			applyCategoryBuckets(&record, tt.dayType, hours, overtime)
			record.RecomputeTotals()

			assert.Equal(t, "8.00", tt.hoursField(record))
			assert.Equal(t, "1.50", tt.overtimeField(record))
			assert.Equal(t, "8.00", record.TotalRegularHours.StringFixed(2))
			assert.Equal(t, "1.50", record.TotalOvertimeHours.StringFixed(2))
			assert.Equal(t, "9.50", record.TotalHours.StringFixed(2))
			require.NoError(t, record.ValidateTotals())
		})
	}
}
