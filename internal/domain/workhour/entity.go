package workhour

import (
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/shopspring/decimal"
)

// FinalWorkHour is the categorized, payroll-ready hour breakdown for one
// attendance (1:1, upsert semantics — recomputation overwrites in place
// preserving ID and CreatedBy). All hour fields carry two decimal places.
//
// Invariants, verified on write and re-derived on read when the totals are
// zero: TotalHours == TotalRegularHours + TotalOvertimeHours, and each total
// equals the sum of its four category fields.
type FinalWorkHour struct {
	ID           string
	EmployeeID   string
	AttendanceID string
	CutoffID     string

	// Scoping refs propagated from the employee directory
	OrganizationID string
	BranchID       *string
	DepartmentID   *string

	// Effective times after exception adjustment
	TimeIn      *time.Time
	TimeOut     *time.Time
	OverTimeOut *time.Time

	// Deductions for missing punches
	NoTimeInHours  decimal.Decimal
	NoTimeOutHours decimal.Decimal

	// Category buckets: exactly one pair is non-zero per computation
	RegularDayHours             decimal.Decimal
	RegularDayOvertimeHours     decimal.Decimal
	RestDayHours                decimal.Decimal
	RestDayOvertimeHours        decimal.Decimal
	SpecialHolidayHours         decimal.Decimal
	SpecialHolidayOvertimeHours decimal.Decimal
	RegularHolidayHours         decimal.Decimal
	RegularHolidayOvertimeHours decimal.Decimal

	NightDifferentialHours         decimal.Decimal
	NightDifferentialOvertimeHours decimal.Decimal

	DayType attendance.DayType

	TotalRegularHours  decimal.Decimal
	TotalOvertimeHours decimal.Decimal
	TotalHours         decimal.Decimal

	// BatchID groups one computation run
	BatchID     string
	IsApproved  bool
	ProcessedBy *string
	ProcessedAt *time.Time
	CreatedBy   *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RecomputeTotals derives the three totals from the category fields. Called
// on every computation and defensively on read when totals are zero.
func (f *FinalWorkHour) RecomputeTotals() {
	f.TotalRegularHours = f.RegularDayHours.
		Add(f.RestDayHours).
		Add(f.SpecialHolidayHours).
		Add(f.RegularHolidayHours)
	f.TotalOvertimeHours = f.RegularDayOvertimeHours.
		Add(f.RestDayOvertimeHours).
		Add(f.SpecialHolidayOvertimeHours).
		Add(f.RegularHolidayOvertimeHours)
	f.TotalHours = f.TotalRegularHours.Add(f.TotalOvertimeHours)
}

// ValidateTotals checks the totals invariant without mutating the record.
func (f *FinalWorkHour) ValidateTotals() error {
	regular := f.RegularDayHours.
		Add(f.RestDayHours).
		Add(f.SpecialHolidayHours).
		Add(f.RegularHolidayHours)
	overtime := f.RegularDayOvertimeHours.
		Add(f.RestDayOvertimeHours).
		Add(f.SpecialHolidayOvertimeHours).
		Add(f.RegularHolidayOvertimeHours)

	if !f.TotalRegularHours.Equal(regular) ||
		!f.TotalOvertimeHours.Equal(overtime) ||
		!f.TotalHours.Equal(regular.Add(overtime)) {
		return ErrTotalsMismatch
	}
	return nil
}

// EnsureTotals re-derives the totals when they were persisted as zero but
// category hours exist.
func (f *FinalWorkHour) EnsureTotals() {
	if f.TotalHours.IsZero() {
		f.RecomputeTotals()
	}
}
