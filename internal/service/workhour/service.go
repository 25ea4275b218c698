package workhour

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/employee"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/payroll"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WorkHourServiceImpl wraps the pure calculator with eager loading, the
// transactional save and the payroll hand-off. It is the single write path
// for FinalWorkHour: the batch processor and the approval subscriber both
// land here.
type WorkHourServiceImpl struct {
	db             *database.DB
	workHourRepo   workhour.Repository
	configRepo     workhour.ConfigRepository
	attendanceRepo attendance.Repository
	scheduleRepo   schedule.Repository
	employeeRepo   employee.Repository
	workTimeRepo   worktime.Repository
	payrollRepo    payroll.Repository
	payrollRecalc  payroll.Recalculator
	logger         *slog.Logger
}

func NewWorkHourService(
	db *database.DB,
	workHourRepo workhour.Repository,
	configRepo workhour.ConfigRepository,
	attendanceRepo attendance.Repository,
	scheduleRepo schedule.Repository,
	employeeRepo employee.Repository,
	workTimeRepo worktime.Repository,
	payrollRepo payroll.Repository,
	payrollRecalc payroll.Recalculator,
	logger *slog.Logger,
) *WorkHourServiceImpl {
	return &WorkHourServiceImpl{
		db:             db,
		workHourRepo:   workHourRepo,
		configRepo:     configRepo,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		employeeRepo:   employeeRepo,
		workTimeRepo:   workTimeRepo,
		payrollRepo:    payrollRepo,
		payrollRecalc:  payrollRecalc,
		logger:         logger,
	}
}

// RecalculateAttendance implements workhour.Recalculator. Every relation is
// loaded before any write; a load failure aborts this attendance only. The
// breakdown, the rebuilt statuses and the processed flag land in one
// transaction, never incrementally.
func (s *WorkHourServiceImpl) RecalculateAttendance(ctx context.Context, attendanceID, batchID string, processedBy *string) (workhour.FinalWorkHour, error) {
	att, err := s.attendanceRepo.GetByID(ctx, attendanceID)
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to load attendance %s: %w", attendanceID, err)
	}

	sched, err := s.scheduleRepo.GetByID(ctx, att.ScheduleID)
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to load schedule for attendance %s: %w", attendanceID, err)
	}

	emp, err := s.employeeRepo.GetByID(ctx, att.EmployeeID)
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to load employee for attendance %s: %w", attendanceID, err)
	}

	cfg, err := s.configRepo.Resolve(ctx, emp.OrganizationID)
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to resolve work-hour config for attendance %s: %w", attendanceID, err)
	}

	approved, err := s.workTimeRepo.GetApprovedByAttendance(ctx, attendanceID)
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to load approved requests for attendance %s: %w", attendanceID, err)
	}

	result, err := Calculate(CalculationInput{
		Attendance: att,
		Schedule:   sched,
		Config:     cfg,
		Approved:   approved,
	})
	if err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("failed to calculate work hours for attendance %s: %w", attendanceID, err)
	}

	now := time.Now()
	record := workhour.FinalWorkHour{
		EmployeeID:     emp.ID,
		AttendanceID:   att.ID,
		CutoffID:       sched.CutoffID,
		OrganizationID: emp.OrganizationID,
		BranchID:       emp.BranchID,
		DepartmentID:   emp.DepartmentID,
		TimeIn:         result.TimeIn,
		TimeOut:        result.TimeOut,
		OverTimeOut:    result.OverTimeOut,
		NoTimeInHours:  result.NoTimeInHours,
		NoTimeOutHours: result.NoTimeOutHours,

		NightDifferentialHours:         result.NightDifferentialHours,
		NightDifferentialOvertimeHours: result.NightDifferentialOvertimeHours,

		DayType:     result.DayType,
		BatchID:     batchID,
		ProcessedBy: processedBy,
		ProcessedAt: &now,
		CreatedBy:   processedBy,
	}
	applyCategoryBuckets(&record, result.DayType, result.Hours, result.OvertimeHours)
	record.RecomputeTotals()
	if err := record.ValidateTotals(); err != nil {
		return workhour.FinalWorkHour{}, fmt.Errorf("invalid totals for attendance %s: %w", attendanceID, err)
	}

	var saved workhour.FinalWorkHour
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		saved, err = s.workHourRepo.Upsert(txCtx, record)
		if err != nil {
			return fmt.Errorf("failed to save final work hour: %w", err)
		}
		if err := s.attendanceRepo.ReplaceStatuses(txCtx, att.ID, result.Statuses); err != nil {
			return fmt.Errorf("failed to replace attendance statuses: %w", err)
		}
		return s.attendanceRepo.MarkProcessed(txCtx, att.ID, true)
	})
	if err != nil {
		return workhour.FinalWorkHour{}, err
	}

	s.triggerPayrollRecalculation(ctx, emp.ID, sched.CutoffID, processedBy)

	return saved, nil
}

// GetByAttendance implements workhour.Service.
func (s *WorkHourServiceImpl) GetByAttendance(ctx context.Context, attendanceID string) (workhour.FinalWorkHour, error) {
	return s.workHourRepo.GetByAttendanceID(ctx, attendanceID)
}

// OnWorkTimeResponded implements worktime.ResponseSubscriber: the
// single-attendance recomputation path after an approval decision. The
// request ID doubles as the batch token, so a redelivered event recomputes
// idempotently. Rejections recompute too, returning the record to its
// unadjusted shape.
func (s *WorkHourServiceImpl) OnWorkTimeResponded(ctx context.Context, event worktime.ResponseEvent) error {
	if event.AttendanceID == nil {
		return nil
	}
	_, err := s.RecalculateAttendance(ctx, *event.AttendanceID, event.RequestID, &event.ResponderID)
	if err != nil {
		return fmt.Errorf("failed to recompute attendance after response %s: %w", event.RequestID, err)
	}
	return nil
}

// triggerPayrollRecalculation hands the refreshed hours to the payroll
// subsystem. A missing payroll means the cutoff has not been computed yet
// and there is nothing to refresh; a trigger failure is logged, never
// propagated, since the hours themselves are already committed.
func (s *WorkHourServiceImpl) triggerPayrollRecalculation(ctx context.Context, employeeID, cutoffID string, processedBy *string) {
	p, err := s.payrollRepo.GetActiveByEmployeeAndCutoff(ctx, employeeID, cutoffID)
	if err != nil {
		s.logger.Error("failed to locate payroll for recalculation",
			slog.String("employee_id", employeeID),
			slog.String("cutoff_id", cutoffID),
			slog.String("error", err.Error()))
		return
	}
	if p == nil {
		return
	}

	actorID := ""
	if processedBy != nil {
		actorID = *processedBy
	}
	if err := s.payrollRecalc.Recalculate(ctx, p.ID, true, actorID); err != nil {
		s.logger.Error("failed to trigger payroll recalculation",
			slog.String("payroll_id", p.ID),
			slog.String("employee_id", employeeID),
			slog.String("error", err.Error()))
	}
}

// applyCategoryBuckets places the computed pair into the single category the
// day type selects. Rest-day/holiday combinations land in their holiday pair;
// the six-way day type is still recorded on the record itself.
func applyCategoryBuckets(f *workhour.FinalWorkHour, dayType attendance.DayType, hours, overtime decimal.Decimal) {
	switch dayType {
	case attendance.DayTypeRestDay:
		f.RestDayHours = hours
		f.RestDayOvertimeHours = overtime
	case attendance.DayTypeSpecialHoliday, attendance.DayTypeSpecialHolidayRestDay:
		f.SpecialHolidayHours = hours
		f.SpecialHolidayOvertimeHours = overtime
	case attendance.DayTypeRegularHoliday, attendance.DayTypeRegularHolidayRestDay:
		f.RegularHolidayHours = hours
		f.RegularHolidayOvertimeHours = overtime
	default:
		f.RegularDayHours = hours
		f.RegularDayOvertimeHours = overtime
	}
}
