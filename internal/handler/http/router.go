package http

import (
	"log/slog"
	"os"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/domain/user"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/handler/http/middleware"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterConfig struct {
	AllowedOrigins []string
	Env            string
	Version        string
	LogLevel       slog.Level
}

func NewRouter(
	cfg RouterConfig,
	JWTService jwt.Service,
	timeEntryHandler TimeEntryHandler,
	overrideHandler OverrideHandler,
	shiftHandler ShiftHandler,
	employeeHandler EmployeeHandler,
	payrollHandler PayrollHandler,
	leaveHandler LeaveHandler,
	fileHandler FileHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(cfg.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "om-suivi"),
		slog.String("version", cfg.Version),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  cfg.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
		r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
		r.Use(middleware.AdminOnly)

		r.Get("/files/*", fileHandler.Download)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(chiMiddleware.AllowContentEncoding("application/json"))

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/time-entries", func(r chi.Router) {
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireEmployee)
					r.Use(middleware.RequirePermission(user.PermissionTimeEntryClock))
					r.Post("/clock-in", timeEntryHandler.ClockIn)
					r.Post("/clock-out", timeEntryHandler.ClockOut)
					r.Get("/open", timeEntryHandler.GetOpenSession)
					r.Get("/me", timeEntryHandler.GetMyEntries)
				})

				r.Get("/{id}", timeEntryHandler.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", timeEntryHandler.List)
					r.Put("/{id}", timeEntryHandler.Update)
					r.Delete("/{id}", timeEntryHandler.Delete)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/", shiftHandler.ListShifts)
				r.With(middleware.RequirePermission(user.PermissionShiftView)).Get("/{id}", shiftHandler.GetShift)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", shiftHandler.CreateShift)
					r.Put("/{id}", shiftHandler.UpdateShift)
					r.Delete("/{id}", shiftHandler.DeleteShift)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", employeeHandler.GetMyProfile)
				r.Get("/{id}", employeeHandler.GetEmployee)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", employeeHandler.ListEmployees)
					r.Post("/", employeeHandler.CreateEmployee)
					r.Put("/{id}", employeeHandler.UpdateEmployee)

					r.Route("/{id}/overrides", func(r chi.Router) {
						r.Get("/", overrideHandler.List)
						r.Put("/", overrideHandler.Set)
						r.Delete("/{date}", overrideHandler.Delete)
					})
				})
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Get("/settings", payrollHandler.GetSettings)
				r.With(middleware.RequirePermission(user.PermissionPayrollViewOwn)).Get("/preview", payrollHandler.Preview)

				r.Route("/records", func(r chi.Router) {
					r.Get("/", payrollHandler.ListPayrollRecords)
					r.Get("/{id}", payrollHandler.GetPayrollRecord)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Post("/finalize", payrollHandler.FinalizePayroll)
						r.Delete("/{id}", payrollHandler.DeletePayrollRecord)
					})
				})

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollManage))
					r.Put("/settings", payrollHandler.UpdateSettings)
					r.Post("/generate", payrollHandler.GeneratePayroll)
					r.Get("/summary", payrollHandler.GetPayrollSummary)
					r.Get("/export", payrollHandler.ExportPayroll)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionLeaveViewOwn)).Get("/balance", leaveHandler.GetBalance)
			})
		})
	})
	return r
}
