package http

import (
	"log/slog"
	"os"

	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/middleware"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	Version        string
}

type Handlers struct {
	Holiday    HolidayHandler
	Jornada    JornadaHandler
	Exception  ExceptionHandler
	Whitelist  WhitelistHandler
	Attendance AttendanceHandler
	Report     ReportHandler
}

func NewRouter(JWTService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "huella-backend"),
		slog.String("version", opts.Version),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired)

			r.Route("/holidays", func(r chi.Router) {
				r.Get("/", h.Holiday.List)
				r.Get("/years", h.Holiday.Years)
				r.Get("/{id}", h.Holiday.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Holiday.Create)
					r.Put("/{id}", h.Holiday.Update)
					r.Delete("/{id}", h.Holiday.Delete)
				})
			})

			r.Route("/jornadas", func(r chi.Router) {
				r.Get("/", h.Jornada.ListEmployees)
				r.Get("/{legajo}", h.Jornada.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/bulk", h.Jornada.BulkUpsert)
					r.Put("/{legajo}", h.Jornada.Upsert)
					r.Delete("/{legajo}", h.Jornada.Delete)
				})
			})

			r.Route("/exceptions", func(r chi.Router) {
				r.Get("/", h.Exception.List)
				r.Get("/{id}", h.Exception.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Exception.Create)
					r.Patch("/{id}", h.Exception.Update)
					r.Delete("/{id}", h.Exception.Delete)
				})
			})

			r.Route("/whitelist", func(r chi.Router) {
				r.Get("/", h.Whitelist.List)
				r.Get("/legajo/{legajo}", h.Whitelist.Check)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Whitelist.Add)
					r.Patch("/{id}/estado", h.Whitelist.SetActive)
					r.Patch("/{id}/motivo", h.Whitelist.UpdateMotive)
					r.Delete("/{id}", h.Whitelist.Remove)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/day/{fecha}", h.Attendance.ClassifyDay)
				r.Get("/{legajo}", h.Attendance.ClassifyRange)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Get("/monthly/{legajo}", h.Report.MonthlySummary)
				r.Get("/daily", h.Report.DailyStats)
				r.Get("/problematic", h.Report.ProblematicEmployees)
				r.Get("/problematic/detail", h.Report.ProblematicReport)
				r.Get("/liquidation", h.Report.Liquidation)
			})
		})
	})
	return r
}
