package main

import (
	"fmt"
	"net/http"

	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/config"
	appHTTP "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/handler/http"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/cron"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/database"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/jwt"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/pkg/qrtoken"
	"github.com/shiftpoint-hq/shiftpoint-backend-go/internal/repository/postgresql"
	attendanceService "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/service/attendance"
	authService "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/service/auth"
	employeeService "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/service/employee"
	locationService "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/service/location"
	scheduleService "github.com/shiftpoint-hq/shiftpoint-backend-go/internal/service/schedule"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	issuer := qrtoken.NewIssuer()

	authSvc := authService.NewAuthService(userRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	locationSvc := locationService.NewLocationService(locationRepo)
	scheduleSvc := scheduleService.NewScheduleService(shiftRepo, employeeRepo, locationRepo, issuer)
	attendanceSvc := attendanceService.NewAttendanceService(
		shiftRepo,
		attendanceRepo,
		employeeRepo,
		locationRepo,
		db,
		cfg.Attendance,
	)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	scheduleHandler := appHTTP.NewScheduleHandler(scheduleSvc)
	locationHandler := appHTTP.NewLocationHandler(locationSvc)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)

	scheduler := cron.NewScheduler()
	cron.NewSweepJobs(shiftRepo, attendanceRepo, db, cfg.Attendance.Timezone).Register(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		authHandler,
		attendanceHandler,
		scheduleHandler,
		locationHandler,
		employeeHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
