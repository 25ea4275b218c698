package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/config"
	appHTTP "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/handler/http"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/biometric"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/database"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/jobs"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/pkg/jwt"
	"github.com/DOWINN-INTERN/hr-management-be-sub001/internal/repository/postgresql"
	domainWorkHour "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/domain/workhour"
	attendanceService "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/service/attendance"
	notificationService "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/service/notification"
	workHourService "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/service/workhour"
	workTimeService "github.com/DOWINN-INTERN/hr-management-be-sub001/internal/service/worktime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL(), 20, 2)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	attendanceRepo := postgresql.NewAttendanceRepository(db)
	scheduleRepo := postgresql.NewScheduleRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	workTimeRepo := postgresql.NewWorkTimeRepository(db)
	workHourRepo := postgresql.NewWorkHourRepository(db)
	workHourConfigRepo := postgresql.NewWorkHourConfigRepository(db, domainWorkHour.Config{
		GracePeriodMinutes:        cfg.WorkHour.GracePeriodMinutes,
		OvertimeThresholdMinutes:  cfg.WorkHour.OvertimeThresholdMinutes,
		UnderTimeThresholdMinutes: cfg.WorkHour.UnderTimeThresholdMinutes,
		NoTimeInDeductionMinutes:  cfg.WorkHour.NoTimeInDeductionMinutes,
		NoTimeOutDeductionMinutes: cfg.WorkHour.NoTimeOutDeductionMinutes,
		AllowEarlyCheckIn:         cfg.WorkHour.AllowEarlyCheckIn,
	})
	payrollRepo := postgresql.NewPayrollRepository(db)
	payrollRecalc := postgresql.NewPayrollRecalculator(db)
	notificationRepo := postgresql.NewNotificationRepository(db)
	jobRepo := postgresql.NewJobRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	deviceGateway := biometric.NewHTTPGateway(cfg.App.DeviceGatewayURL)

	notifier := notificationService.NewNotificationService(notificationRepo, notificationService.Config{}, logger)
	defer notifier.Stop()

	workHourSvc := workHourService.NewWorkHourService(
		db,
		workHourRepo,
		workHourConfigRepo,
		attendanceRepo,
		scheduleRepo,
		employeeRepo,
		workTimeRepo,
		payrollRepo,
		payrollRecalc,
		logger,
	)

	workTimeSvc := workTimeService.NewWorkTimeService(db, workTimeRepo, logger)
	workTimeSvc.Subscribe(workHourSvc)

	attendanceSvc := attendanceService.NewAttendanceService(
		db,
		attendanceRepo,
		scheduleRepo,
		employeeRepo,
		workTimeRepo,
		workHourConfigRepo,
		notifier,
		deviceGateway,
		logger,
	)

	processor := jobs.NewProcessor(jobRepo, workHourSvc, jobs.Config{
		PollInterval:   cfg.Jobs.PollInterval,
		MaxAttempts:    cfg.Jobs.MaxAttempts,
		InitialBackoff: cfg.Jobs.InitialBackoff,
		Concurrency:    cfg.Jobs.Concurrency,
	}, logger)
	processor.Start()
	defer processor.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	workTimeHandler := appHTTP.NewWorkTimeHandler(workTimeSvc, jwtService)
	workHourHandler := appHTTP.NewWorkHourHandler(workHourSvc, processor, jwtService)

	router := appHTTP.NewRouter(
		jwtService,
		attendanceHandler,
		workTimeHandler,
		workHourHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
