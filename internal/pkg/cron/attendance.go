package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/email"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

const ProblematicDigestJob = "problematic_employees_digest"

type AttendanceJobs struct {
	reportService report.ReportService
	mailer        email.EmailService
	thresholds    report.Thresholds
	location      *time.Location
	now           func() time.Time
}

// NewAttendanceJobs builds the attendance batch jobs. mailer may be nil, in
// which case the digest is only logged.
func NewAttendanceJobs(reportService report.ReportService, mailer email.EmailService, thresholds report.Thresholds, location *time.Location) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		reportService: reportService,
		mailer:        mailer,
		thresholds:    thresholds,
		location:      location,
		now:           time.Now,
	}
}

// digestTimeout bounds one digest run. A month of classifications for the whole
// directory fits well within it.
const digestTimeout = 15 * time.Minute

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob(ProblematicDigestJob, interval, j.ProblematicDigest, WithTimeout(min(interval, digestTimeout)))
}

// ProblematicDigest computes the problematic report for the current month
// and logs one line per flagged employee, then mails it when a mailer is set.
func (j *AttendanceJobs) ProblematicDigest(ctx context.Context) error {
	month := utils.Day(j.now().In(j.location))
	runID := RunID(ctx)

	slog.Info("Cron: Starting problematic employees digest", "run_id", runID, "month", month.Format(utils.MonthLayout))

	rows, err := j.reportService.ProblematicReport(ctx, month, j.thresholds)
	if err != nil {
		return fmt.Errorf("failed to build problematic report: %w", err)
	}

	for _, row := range rows {
		attrs := []any{
			"run_id", runID,
			"legajo", row.Legajo,
			"nombre", row.Name,
			"ausencias", row.AbsentDays,
			"incompletos", row.IncompleteDays,
			"severidad", row.Severity,
		}
		if row.CompliancePercent != nil {
			attrs = append(attrs, "cumplimiento", *row.CompliancePercent)
		}
		slog.Warn("Cron: Problematic employee", attrs...)
	}

	if j.mailer != nil {
		if err := j.mailer.SendProblematicDigest(month, j.thresholds, rows); err != nil {
			return fmt.Errorf("failed to send problematic digest: %w", err)
		}
	}

	slog.Info("Cron: Problematic employees digest completed", "run_id", runID, "flagged", len(rows))
	return nil
}
