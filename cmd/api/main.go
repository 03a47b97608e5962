package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/config"
	appHTTP "github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/cron"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/storage"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/repository/postgresql"
	attendanceService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/attendance"
	employeeService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/employee"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/leave"
	payrollService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/payroll"
	scheduleService "github.com/Oyono-Mathias/Om-suivi-sub000/internal/service/schedule"
)

const version = "v1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		slog.Error("Error connecting to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.RunMigrations(db.SQLDB()); err != nil {
		slog.Error("Error running migrations", "error", err)
		os.Exit(1)
	}

	loc := cfg.Location()

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	timeEntryRepo := postgresql.NewTimeEntryRepository(db)
	overrideRepo := postgresql.NewOverrideRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	stateStore := postgresql.NewStateStore(db)
	transactor := postgresql.NewTransactor(db)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BasePath, cfg.Storage.BaseURL)
	if err != nil {
		slog.Error("Failed to initialize local storage", "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	accrualCalculator := leave.NewAccrualCalculator()

	timeEntrySvc := attendanceService.NewTimeEntryService(timeEntryRepo, employeeRepo, shiftRepo, payrollRepo, stateStore, loc)
	overrideSvc := attendanceService.NewOverrideService(overrideRepo, employeeRepo)
	shiftSvc := scheduleService.NewShiftService(shiftRepo)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leave.NewLeaveService(employeeRepo, payrollRepo, accrualCalculator)
	payrollSvc := payrollService.NewPayrollService(
		payrollRepo,
		employeeRepo,
		timeEntryRepo,
		overrideRepo,
		shiftRepo,
		transactor,
		payrollService.NewCalculator(accrualCalculator, logger),
		fileStorage,
		cfg.Payroll.Workers,
		loc,
	)

	scheduler := cron.NewScheduler()
	cron.NewTimeEntryJobs(timeEntrySvc, func(ctx context.Context) (int64, error) {
		return postgresql.PurgeExpiredState(ctx, db)
	}).RegisterJobs(scheduler)
	cron.NewPayrollJobs(payrollSvc, stateStore, loc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
			Env:            cfg.App.Env,
			Version:        version,
			LogLevel:       cfg.SlogLevel(),
		},
		JWTService,
		appHTTP.NewTimeEntryHandler(timeEntrySvc),
		appHTTP.NewOverrideHandler(overrideSvc),
		appHTTP.NewShiftHandler(shiftSvc),
		appHTTP.NewEmployeeHandler(employeeSvc),
		appHTTP.NewPayrollHandler(payrollSvc),
		appHTTP.NewLeaveHandler(leaveSvc),
		appHTTP.NewFileHandler(fileStorage),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "env", cfg.App.Env, "timezone", loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("Shutting down", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
	}
}
