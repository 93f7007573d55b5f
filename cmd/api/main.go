package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/angkorhr/hrms-backend-go/internal/config"
	appHTTP "github.com/angkorhr/hrms-backend-go/internal/handler/http"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/clock"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/cron"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/database"
	"github.com/angkorhr/hrms-backend-go/internal/pkg/jwt"
	"github.com/angkorhr/hrms-backend-go/internal/repository/postgresql"
	attendanceService "github.com/angkorhr/hrms-backend-go/internal/service/attendance"
	serviceAuth "github.com/angkorhr/hrms-backend-go/internal/service/auth"
	employeeService "github.com/angkorhr/hrms-backend-go/internal/service/employee"
	leaveService "github.com/angkorhr/hrms-backend-go/internal/service/leave"
	payrollService "github.com/angkorhr/hrms-backend-go/internal/service/payroll"
	reportService "github.com/angkorhr/hrms-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	clk, err := clock.NewSystemClock(cfg.Attendance.Timezone)
	if err != nil {
		log.Fatal("Failed to initialize clock:", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	reportRepo := postgresql.NewReportRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	authSvc := serviceAuth.NewAuthService(db, userRepo, employeeRepo, JWTService)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo, clk, cfg.Attendance)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveRequestRepo, leaveBalanceRepo, clk)
	payrollSvc := payrollService.NewPayrollService(db, payrollRepo, employeeRepo, clk)
	reportSvc := reportService.NewReportService(db, reportRepo, clk)

	authHandler := appHTTP.NewAuthHandler(authSvc, JWTService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, clk)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		employeeHandler,
		attendanceHandler,
		leaveHandler,
		payrollHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceSvc, clk, cfg.Attendance).RegisterJobs(scheduler)
	cron.NewAuthJobs(JWTService, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
