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

	"github.com/cge-corrientes/huella-backend-go/internal/config"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	appHTTP "github.com/cge-corrientes/huella-backend-go/internal/handler/http"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/cron"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/email"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/jwt"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/postgresql"
	"github.com/cge-corrientes/huella-backend-go/internal/service/calendar"
	exceptionService "github.com/cge-corrientes/huella-backend-go/internal/service/exception"
	holidayService "github.com/cge-corrientes/huella-backend-go/internal/service/holiday"
	jornadaService "github.com/cge-corrientes/huella-backend-go/internal/service/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/service/reconciliation"
	reportService "github.com/cge-corrientes/huella-backend-go/internal/service/report"
	whitelistService "github.com/cge-corrientes/huella-backend-go/internal/service/whitelist"
)

const version = "v1.0.0"

type repositories struct {
	employees  employee.EmployeeRepository
	holidays   holiday.HolidayRepository
	jornadas   jornada.JornadaRepository
	exceptions exception.ExceptionRepository
	whitelist  whitelist.WhitelistRepository
	punches    punch.Source
	tx         database.Transactor
	close      func()
}

func postgresRepositories(ctx context.Context, cfg *config.Config) (*repositories, error) {
	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
		MaxConns:        int32(cfg.Database.MaxConns),
		MinConns:        int32(cfg.Database.MinConns),
		ApplicationName: "huella-backend",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgresql.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &repositories{
		employees:  postgresql.NewEmployeeRepository(db),
		holidays:   postgresql.NewHolidayRepository(db),
		jornadas:   postgresql.NewJornadaRepository(db),
		exceptions: postgresql.NewExceptionRepository(db),
		whitelist:  postgresql.NewWhitelistRepository(db),
		punches:    postgresql.NewPunchSource(db),
		tx:         postgresql.NewTransactor(db),
		close:      db.Close,
	}, nil
}

func memoryRepositories() *repositories {
	slog.Warn("Using in-memory storage; data is lost on restart")
	return &repositories{
		employees:  memory.NewEmployeeRepository(),
		holidays:   memory.NewHolidayRepository(),
		jornadas:   memory.NewJornadaRepository(),
		exceptions: memory.NewExceptionRepository(),
		whitelist:  memory.NewWhitelistRepository(),
		punches:    memory.NewPunchSource(),
		tx:         memory.NewTransactor(),
		close:      func() {},
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	location, err := cfg.Location()
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		os.Exit(1)
	}
	nonWorking, err := calendar.ParseWeekdays(cfg.Attendance.NonWorkingWeekdays)
	if err != nil {
		fmt.Println("Error parsing non-working weekdays:", err)
		os.Exit(1)
	}

	var repos *repositories
	switch cfg.App.Storage {
	case config.StorageMemory:
		repos = memoryRepositories()
	default:
		repos, err = postgresRepositories(ctx, cfg)
		if err != nil {
			fmt.Println("Error initializing storage:", err)
			os.Exit(1)
		}
	}
	defer repos.close()

	resolver := calendar.NewResolver(repos.holidays, nonWorking)
	engine := reconciliation.NewEngine(repos.whitelist, resolver, repos.exceptions, repos.jornadas, repos.punches, reconciliation.Config{
		DefaultJornadaHours: cfg.Attendance.DefaultJornadaHours,
		Workers:             cfg.Attendance.Workers,
	})

	holidaySvc := holidayService.NewHolidayService(repos.holidays)
	jornadaSvc := jornadaService.NewJornadaService(repos.jornadas, repos.employees, repos.whitelist, repos.tx, cfg.Attendance.DefaultJornadaHours, location)
	exceptionSvc := exceptionService.NewExceptionService(repos.exceptions, repos.employees, repos.tx)
	whitelistSvc := whitelistService.NewWhitelistService(repos.whitelist, repos.employees, repos.tx)
	reportSvc := reportService.NewReportService(engine, repos.employees, location)

	thresholds := report.Thresholds{
		Absences:          cfg.Attendance.AbsenceThreshold,
		CompliancePercent: cfg.Attendance.ComplianceThreshold,
		Incompletes:       cfg.Attendance.IncompleteThreshold,
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Jornada:    appHTTP.NewJornadaHandler(jornadaSvc),
		Exception:  appHTTP.NewExceptionHandler(exceptionSvc),
		Whitelist:  appHTTP.NewWhitelistHandler(whitelistSvc),
		Attendance: appHTTP.NewAttendanceHandler(engine, repos.employees, cfg.Attendance.MaxRangeDays),
		Report:     appHTTP.NewReportHandler(reportSvc, thresholds, cfg.Attendance.MaxRangeDays),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
	})

	mailer, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		fmt.Println("Error initializing email service:", err)
		os.Exit(1)
	}

	scheduler := cron.NewScheduler(ctx)
	cron.NewAttendanceJobs(reportSvc, mailer, thresholds, location).RegisterJobs(scheduler, cfg.Attendance.DigestInterval)
	scheduler.Start()
	defer scheduler.Stop()

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.App.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
