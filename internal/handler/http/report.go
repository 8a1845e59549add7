package http

import (
	"net/http"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/handler/http/response"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
)

type ReportHandler interface {
	MonthlySummary(w http.ResponseWriter, r *http.Request)
	DailyStats(w http.ResponseWriter, r *http.Request)
	ProblematicEmployees(w http.ResponseWriter, r *http.Request)
	ProblematicReport(w http.ResponseWriter, r *http.Request)
	Liquidation(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
	thresholds    report.Thresholds
	maxRangeDays  int
}

// NewReportHandler builds the report endpoints. thresholds are the defaults
// applied when a request does not carry its own; maxRangeDays caps the daily
// stats range.
func NewReportHandler(reportService report.ReportService, thresholds report.Thresholds, maxRangeDays int) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
		thresholds:    thresholds,
		maxRangeDays:  maxRangeDays,
	}
}

func monthParam(r *http.Request) (report.MonthRequest, error) {
	req := report.MonthRequest{Month: r.URL.Query().Get("mes")}
	return req, req.Validate()
}

// MonthlySummary handles GET /reports/monthly/{legajo}?mes=YYYY-MM
func (h *reportHandlerImpl) MonthlySummary(w http.ResponseWriter, r *http.Request) {
	req, err := monthParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, _, _ := utils.ParseMonth(req.Month)

	summary, err := h.reportService.MonthlySummary(r.Context(), chi.URLParam(r, "legajo"), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewMonthlySummaryResponse(summary))
}

// DailyStats handles GET /reports/daily?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (h *reportHandlerImpl) DailyStats(w http.ResponseWriter, r *http.Request) {
	req := report.DailyStatsRequest{
		StartDate: r.URL.Query().Get("desde"),
		EndDate:   r.URL.Query().Get("hasta"),
		MaxDays:   h.maxRangeDays,
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	stats, err := h.reportService.DailySystemStats(r.Context(), utils.MustDay(req.StartDate), utils.MustDay(req.EndDate))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewDailyStatResponses(stats))
}

// ProblematicEmployees handles GET /reports/problematic?mes=YYYY-MM&umbral=N
func (h *reportHandlerImpl) ProblematicEmployees(w http.ResponseWriter, r *http.Request) {
	req, err := monthParam(r)
	var errs validator.ValidationErrors
	if err != nil {
		errs, _ = err.(validator.ValidationErrors)
	}
	threshold := queryInt(r, "umbral", h.thresholds.Absences, &errs)
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}
	month, _, _ := utils.ParseMonth(req.Month)

	legajos, err := h.reportService.ProblematicEmployees(r.Context(), month, threshold)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, legajos)
}

// ProblematicReport handles GET /reports/problematic/detail?mes=YYYY-MM
// with optional ausencias, cumplimiento and incompletos thresholds.
func (h *reportHandlerImpl) ProblematicReport(w http.ResponseWriter, r *http.Request) {
	req, err := monthParam(r)
	var errs validator.ValidationErrors
	if err != nil {
		errs, _ = err.(validator.ValidationErrors)
	}
	th := report.Thresholds{
		Absences:          queryInt(r, "ausencias", h.thresholds.Absences, &errs),
		CompliancePercent: queryFloat(r, "cumplimiento", h.thresholds.CompliancePercent, &errs),
		Incompletes:       queryInt(r, "incompletos", h.thresholds.Incompletes, &errs),
	}
	if err := errs.Err(); err != nil {
		response.HandleError(w, err)
		return
	}
	month, _, _ := utils.ParseMonth(req.Month)

	rows, err := h.reportService.ProblematicReport(r.Context(), month, th)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewProblematicEmployeeResponses(rows))
}

// Liquidation handles GET /reports/liquidation?mes=YYYY-MM
func (h *reportHandlerImpl) Liquidation(w http.ResponseWriter, r *http.Request) {
	req, err := monthParam(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	month, _, _ := utils.ParseMonth(req.Month)

	rows, err := h.reportService.LiquidationReport(r.Context(), month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report.NewLiquidationResponses(rows))
}
