package report

import (
	"context"
	"time"
)

// ReportService rolls classified days into summaries and reports.
type ReportService interface {
	MonthlySummary(ctx context.Context, legajo string, month time.Time) (MonthlySummary, error)
	DailySystemStats(ctx context.Context, start, end time.Time) ([]DailyStat, error)
	// ProblematicEmployees returns the legajos whose Absent count in month
	// strictly exceeds absenceThreshold.
	ProblematicEmployees(ctx context.Context, month time.Time, absenceThreshold int) ([]string, error)
	ProblematicReport(ctx context.Context, month time.Time, th Thresholds) ([]ProblematicEmployee, error)
	LiquidationReport(ctx context.Context, month time.Time) ([]LiquidationRow, error)
}
