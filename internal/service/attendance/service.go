package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/attendance"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/employee"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/notification"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/schedule"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/worktime"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/biometric"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/repository/postgresql"
	"github.com/jackc/pgx/v5"
)

// AttendanceServiceImpl ingests raw device punches into attendance records.
// A device report is processed punch by punch: every punch either applies,
// is skipped for a known reason, or fails in isolation. The batch itself
// never fails because of one punch.
type AttendanceServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	scheduleRepo   schedule.Repository
	employeeRepo   employee.Repository
	workTimeRepo   worktime.Repository
	configRepo     workhour.ConfigRepository
	notifier       notification.Service
	devices        biometric.DeviceGateway
	logger         *slog.Logger
}

func NewAttendanceService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	scheduleRepo schedule.Repository,
	employeeRepo employee.Repository,
	workTimeRepo worktime.Repository,
	configRepo workhour.ConfigRepository,
	notifier notification.Service,
	devices biometric.DeviceGateway,
	logger *slog.Logger,
) *AttendanceServiceImpl {
	return &AttendanceServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		scheduleRepo:   scheduleRepo,
		employeeRepo:   employeeRepo,
		workTimeRepo:   workTimeRepo,
		configRepo:     configRepo,
		notifier:       notifier,
		devices:        devices,
		logger:         logger,
	}
}

// punchOutcome classifies what happened to one punch.
type punchOutcome int

const (
	outcomeApplied punchOutcome = iota
	outcomeSkipped
	outcomeFailed
)

// IngestDeviceReport implements attendance.Service.
func (s *AttendanceServiceImpl) IngestDeviceReport(ctx context.Context, report attendance.DeviceReport) (attendance.IngestSummary, error) {
	if err := report.Validate(); err != nil {
		return attendance.IngestSummary{}, err
	}

	summary := attendance.IngestSummary{
		DeviceID: report.DeviceID,
		Received: len(report.Punches),
	}

	for _, punch := range report.Punches {
		outcome := s.processPunch(ctx, report.DeviceID, punch)
		switch outcome {
		case outcomeApplied:
			summary.Applied++
		case outcomeSkipped:
			summary.Skipped++
		case outcomeFailed:
			summary.Failed++
		}
	}

	// The device buffer is cleared once the whole report is accounted for;
	// a clear failure just means the next report repeats some punches, which
	// ingestion absorbs.
	if err := s.devices.ClearDeviceRecords(ctx, report.DeviceID); err != nil {
		s.logger.Warn("failed to clear device records",
			slog.String("device_id", report.DeviceID),
			slog.String("error", err.Error()))
	}

	s.logger.Info("device report ingested",
		slog.String("device_id", report.DeviceID),
		slog.Int("received", summary.Received),
		slog.Int("applied", summary.Applied),
		slog.Int("skipped", summary.Skipped),
		slog.Int("failed", summary.Failed))

	return summary, nil
}

func (s *AttendanceServiceImpl) processPunch(ctx context.Context, deviceID string, punch attendance.DevicePunch) punchOutcome {
	employeeNumber, err := strconv.ParseInt(punch.UserID, 10, 64)
	if err != nil {
		s.logger.Warn("punch carries non-numeric employee code",
			slog.String("device_id", deviceID),
			slog.String("user_id", punch.UserID))
		return outcomeSkipped
	}

	emp, err := s.employeeRepo.GetByNumber(ctx, employeeNumber)
	if err != nil {
		s.logger.Error("failed to look up employee for punch",
			slog.String("device_id", deviceID),
			slog.Int64("employee_number", employeeNumber),
			slog.String("error", err.Error()))
		return outcomeFailed
	}
	if emp == nil {
		s.logger.Warn("punch from unknown employee code",
			slog.String("device_id", deviceID),
			slog.Int64("employee_number", employeeNumber))
		return outcomeSkipped
	}

	sched, err := s.scheduleRepo.GetForEmployeeOnDate(ctx, emp.ID, dateOf(punch.Timestamp))
	if err != nil {
		s.logger.Error("failed to look up schedule for punch",
			slog.String("employee_id", emp.ID),
			slog.String("error", err.Error()))
		return outcomeFailed
	}
	if sched == nil {
		s.notify(ctx, emp, "No schedule found",
			fmt.Sprintf("A punch was recorded on %s but you have no schedule for that day.",
				punch.Timestamp.Format("2006-01-02")),
			notification.SeverityWarning)
		return outcomeSkipped
	}

	cfg, err := s.configRepo.Resolve(ctx, emp.OrganizationID)
	if err != nil {
		s.logger.Error("failed to resolve work-hour config for punch",
			slog.String("employee_id", emp.ID),
			slog.String("error", err.Error()))
		return outcomeFailed
	}

	if err := s.applyPunch(ctx, deviceID, punch, emp, sched, cfg); err != nil {
		s.logger.Error("failed to apply punch",
			slog.String("device_id", deviceID),
			slog.String("employee_id", emp.ID),
			slog.Time("punched_at", punch.Timestamp),
			slog.String("error", err.Error()))
		return outcomeFailed
	}

	return outcomeApplied
}

// applyPunch routes the punch by shift midpoint and lands every mutation for
// it in one transaction: the attendance upsert, any status changes, any
// auto-raised work-time request, and the immutable punch audit row.
func (s *AttendanceServiceImpl) applyPunch(
	ctx context.Context,
	deviceID string,
	punch attendance.DevicePunch,
	emp *employee.Employee,
	sched *schedule.Schedule,
	cfg workhour.Config,
) error {
	midpoint, err := sched.Midpoint()
	if err != nil {
		return err
	}

	var notices []pendingNotice

	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		att, err := s.attendanceRepo.GetByEmployeeAndSchedule(txCtx, emp.ID, sched.ID)
		if err != nil {
			return err
		}
		if att == nil {
			created, err := s.attendanceRepo.Create(txCtx, attendance.Attendance{
				EmployeeID: emp.ID,
				ScheduleID: sched.ID,
				DayType:    attendance.ClassifyDay(sched.RestDay, sched.Holiday),
			})
			if err != nil {
				return err
			}
			att = &created

			if sched.RestDay {
				att.AttachStatus(attendance.StatusRestDay)
				notices = append(notices, pendingNotice{
					title:    "Rest day punch",
					message:  "You punched in on your rest day.",
					severity: notification.SeverityInfo,
				})
			}
			if sched.Holiday != nil {
				att.AttachStatus(attendance.StatusHoliday)
				notices = append(notices, pendingNotice{
					title:    "Holiday punch",
					message:  fmt.Sprintf("You punched in on a holiday (%s).", sched.Holiday.Name),
					severity: notification.SeverityInfo,
				})
			}
		}

		if att.HasStatus(attendance.StatusOnLeave) {
			notices = append(notices, pendingNotice{
				title:    "Punch while on leave",
				message:  "A punch was recorded while you are on approved leave.",
				severity: notification.SeverityWarning,
			})
		}

		if punch.Timestamp.Before(midpoint) {
			err = s.applyCheckIn(txCtx, punch, att, sched, cfg, &notices)
		} else {
			err = s.applyCheckOut(txCtx, punch, att, sched, cfg, &notices)
		}
		if err != nil {
			return err
		}

		method := punch.Method
		if method == "" {
			method = attendance.MethodBiometric
		}
		direction := attendance.DirectionCheckIn
		if punch.Timestamp.After(midpoint) || punch.Timestamp.Equal(midpoint) {
			direction = attendance.DirectionCheckOut
		}
		_, err = s.attendanceRepo.AppendPunch(txCtx, attendance.Punch{
			AttendanceID:   att.ID,
			EmployeeNumber: emp.EmployeeNumber,
			Timestamp:      punch.Timestamp,
			Method:         method,
			Direction:      direction,
			DeviceID:       deviceID,
		})
		return err
	})
	if err != nil {
		return err
	}

	for _, n := range notices {
		s.notify(ctx, emp, n.title, n.message, n.severity)
	}

	return nil
}

// applyCheckIn handles a punch routed before the shift midpoint. A second
// check-in is a no-op beyond its audit row and a notice.
func (s *AttendanceServiceImpl) applyCheckIn(
	ctx context.Context,
	punch attendance.DevicePunch,
	att *attendance.Attendance,
	sched *schedule.Schedule,
	cfg workhour.Config,
	notices *[]pendingNotice,
) error {
	if att.TimeIn != nil {
		*notices = append(*notices, pendingNotice{
			title:    "Already checked in",
			message:  "You have already checked in for this shift.",
			severity: notification.SeverityInfo,
		})
		return nil
	}

	start, _, err := sched.ShiftWindow()
	if err != nil {
		return err
	}

	ts := punch.Timestamp
	att.TimeIn = &ts
	att.AttachStatus(attendance.StatusCheckedIn)

	if ts.After(start.Add(cfg.GracePeriod())) {
		att.AttachStatus(attendance.StatusLate)
		lateMinutes := int(ts.Sub(start).Minutes())
		if err := s.raiseRequest(ctx, att, worktime.RequestTypeLate, lateMinutes,
			fmt.Sprintf("Checked in %d minutes after shift start", lateMinutes)); err != nil {
			return err
		}
		*notices = append(*notices, pendingNotice{
			title:    "Late check-in",
			message:  fmt.Sprintf("You checked in %d minutes late. A work-time request was filed for review.", lateMinutes),
			severity: notification.SeverityWarning,
		})
	}

	return s.attendanceRepo.Update(ctx, *att)
}

// applyCheckOut handles a punch routed at or after the shift midpoint. The
// last check-out punch of the day is authoritative, so timeOut always takes
// the newest timestamp.
func (s *AttendanceServiceImpl) applyCheckOut(
	ctx context.Context,
	punch attendance.DevicePunch,
	att *attendance.Attendance,
	sched *schedule.Schedule,
	cfg workhour.Config,
	notices *[]pendingNotice,
) error {
	_, end, err := sched.ShiftWindow()
	if err != nil {
		return err
	}

	if att.TimeIn == nil && att.AttachStatus(attendance.StatusNoCheckedIn) {
		if err := s.raiseRequest(ctx, att, worktime.RequestTypeNoCheckedIn, 0,
			"Checked out without a recorded check-in"); err != nil {
			return err
		}
		*notices = append(*notices, pendingNotice{
			title:    "Missing check-in",
			message:  "You checked out without checking in. A work-time request was filed for review.",
			severity: notification.SeverityWarning,
		})
	}

	ts := punch.Timestamp
	att.TimeOut = &ts
	att.AttachStatus(attendance.StatusCheckedOut)

	if ts.Before(end.Add(-cfg.UnderTimeThreshold())) && att.AttachStatus(attendance.StatusUnderTime) {
		shortMinutes := int(end.Sub(ts).Minutes())
		if err := s.raiseRequest(ctx, att, worktime.RequestTypeUnderTime, shortMinutes,
			fmt.Sprintf("Checked out %d minutes before shift end", shortMinutes)); err != nil {
			return err
		}
		*notices = append(*notices, pendingNotice{
			title:    "Under-time check-out",
			message:  fmt.Sprintf("You checked out %d minutes early. A work-time request was filed for review.", shortMinutes),
			severity: notification.SeverityWarning,
		})
	}

	if ts.After(end.Add(cfg.OvertimeThreshold())) && att.AttachStatus(attendance.StatusOvertime) {
		overtimeMinutes := int(ts.Sub(end).Minutes())
		if err := s.raiseRequest(ctx, att, worktime.RequestTypeOvertime, overtimeMinutes,
			fmt.Sprintf("Checked out %d minutes after shift end", overtimeMinutes)); err != nil {
			return err
		}
		*notices = append(*notices, pendingNotice{
			title:    "Overtime recorded",
			message:  fmt.Sprintf("You worked %d minutes past your shift. A work-time request was filed for approval.", overtimeMinutes),
			severity: notification.SeverityInfo,
		})
	}

	return s.attendanceRepo.Update(ctx, *att)
}

func (s *AttendanceServiceImpl) raiseRequest(ctx context.Context, att *attendance.Attendance, reqType worktime.RequestType, durationMinutes int, reason string) error {
	_, err := s.workTimeRepo.Create(ctx, worktime.Request{
		EmployeeID:      att.EmployeeID,
		AttendanceID:    &att.ID,
		Type:            reqType,
		DurationMinutes: durationMinutes,
		DayType:         att.DayType,
		Status:          worktime.RequestStatusPending,
		Reason:          reason,
	})
	if err != nil {
		return fmt.Errorf("failed to raise %s work-time request: %w", reqType, err)
	}
	return nil
}

type pendingNotice struct {
	title    string
	message  string
	severity notification.Severity
}

// notify sends a fire-and-forget notification to the employee's user
// account. Employees without a linked user, and delivery failures, are both
// non-events for ingestion.
func (s *AttendanceServiceImpl) notify(ctx context.Context, emp *employee.Employee, title, message string, severity notification.Severity) {
	if emp.UserID == nil {
		return
	}
	err := s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		UserID:   *emp.UserID,
		Title:    title,
		Message:  message,
		Severity: severity,
		Category: notification.CategoryAttendance,
	})
	if err != nil {
		s.logger.Warn("failed to queue attendance notification",
			slog.String("employee_id", emp.ID),
			slog.String("title", title),
			slog.String("error", err.Error()))
	}
}

// GetAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.AttendanceResponse, error) {
	att, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return toAttendanceResponse(att), nil
}

// ListAttendance implements attendance.Service.
func (s *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.Filter) (attendance.ListResponse, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 20
	}

	items, total, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return attendance.ListResponse{}, err
	}

	resp := attendance.ListResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		Attendances: make([]attendance.AttendanceResponse, 0, len(items)),
	}
	for _, att := range items {
		resp.Attendances = append(resp.Attendances, toAttendanceResponse(att))
	}
	return resp, nil
}

func toAttendanceResponse(att attendance.Attendance) attendance.AttendanceResponse {
	return attendance.AttendanceResponse{
		ID:          att.ID,
		EmployeeID:  att.EmployeeID,
		ScheduleID:  att.ScheduleID,
		TimeIn:      att.TimeIn,
		TimeOut:     att.TimeOut,
		Statuses:    att.Statuses,
		DayType:     att.DayType,
		IsProcessed: att.IsProcessed,
		CreatedAt:   att.CreatedAt,
		UpdatedAt:   att.UpdatedAt,
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
