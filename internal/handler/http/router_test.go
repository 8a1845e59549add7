package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/jwt"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
	"github.com/cge-corrientes/huella-backend-go/internal/repository/memory"
	"github.com/cge-corrientes/huella-backend-go/internal/service/calendar"
	exceptionService "github.com/cge-corrientes/huella-backend-go/internal/service/exception"
	holidayService "github.com/cge-corrientes/huella-backend-go/internal/service/holiday"
	jornadaService "github.com/cge-corrientes/huella-backend-go/internal/service/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/service/reconciliation"
	reportService "github.com/cge-corrientes/huella-backend-go/internal/service/report"
	whitelistService "github.com/cge-corrientes/huella-backend-go/internal/service/whitelist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	testMaxRangeDays  = 31
)

type testServer struct {
	handler http.Handler
	jwt     jwt.Service
	punches *memory.PunchSource
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	employees := memory.NewEmployeeRepository(
		employee.Employee{Legajo: "E100", Name: "Ana Benítez", Active: true},
		employee.Employee{Legajo: "E200", Name: "Bruno Cáceres", Active: true},
	)
	holidays := memory.NewHolidayRepository()
	jornadas := memory.NewJornadaRepository()
	exceptions := memory.NewExceptionRepository()
	wl := memory.NewWhitelistRepository()
	punches := memory.NewPunchSource()
	tx := memory.NewTransactor()

	resolver := calendar.NewResolver(holidays, []time.Weekday{time.Saturday, time.Sunday})
	engine := reconciliation.NewEngine(wl, resolver, exceptions, jornadas, punches, reconciliation.Config{DefaultJornadaHours: 8, Workers: 2})

	reports := NewReportHandler(reportService.NewReportService(engine, employees, time.UTC),
		report.Thresholds{Absences: 3, CompliancePercent: 60, Incompletes: 2}, testMaxRangeDays)

	jwtSvc := jwt.NewJWTService(handlerTestSecret, "1h")
	router := NewRouter(jwtSvc, Handlers{
		Holiday:    NewHolidayHandler(holidayService.NewHolidayService(holidays)),
		Jornada:    NewJornadaHandler(jornadaService.NewJornadaService(jornadas, employees, wl, tx, 8, time.UTC)),
		Exception:  NewExceptionHandler(exceptionService.NewExceptionService(exceptions, employees, tx)),
		Whitelist:  NewWhitelistHandler(whitelistService.NewWhitelistService(wl, employees, tx)),
		Attendance: NewAttendanceHandler(engine, employees, testMaxRangeDays),
		Report:     reports,
	}, RouterOptions{AllowedOrigins: []string{"http://localhost:5173"}, Env: "test", Version: "test"})

	return &testServer{handler: router, jwt: jwtSvc, punches: punches}
}

func (s *testServer) token(t *testing.T, admin bool) string {
	t.Helper()
	token, _, err := s.jwt.GenerateAccessToken("u-1", "rrhh@example.com", admin)
	require.NoError(t, err)
	return token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func TestRouter_RequiresToken(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/holidays", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "UNAUTHORIZED", env.Error.Code)
}

func TestRouter_WritesRequireAdmin(t *testing.T) {
	srv := newTestServer(t)
	body := map[string]string{"fecha": "2024-03-08", "descripcion": "Día de la Mujer", "tipo": "administrativo"}

	rec, env := srv.do(t, http.MethodPost, "/api/v1/holidays", srv.token(t, false), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/holidays", srv.token(t, false), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHolidayHandler_CreateAndDuplicate(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, true)
	body := map[string]string{"fecha": "2024-03-08", "descripcion": "Día de la Mujer", "tipo": "administrativo"}

	rec, env := srv.do(t, http.MethodPost, "/api/v1/holidays", admin, body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID      int64  `json:"id"`
		Weekday string `json:"dia_semana"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "viernes", created.Weekday)

	rec, env = srv.do(t, http.MethodPost, "/api/v1/holidays", admin, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/holidays/999", admin, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/holidays/abc", admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "id")
}

func TestExceptionHandler_OverlapReturnsConflictDetails(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, true)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/exceptions", admin, map[string]string{
		"legajo": "E100", "tipo": "vacaciones", "fecha_inicio": "2024-03-01", "fecha_fin": "2024-03-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var first struct {
		ID        int64  `json:"id"`
		Days      int    `json:"dias"`
		CreatedBy string `json:"created_by"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, 10, first.Days)
	assert.Equal(t, "rrhh@example.com", first.CreatedBy)

	rec, env = srv.do(t, http.MethodPost, "/api/v1/exceptions", admin, map[string]string{
		"legajo": "E100", "tipo": "art_8", "fecha_inicio": "2024-03-10", "fecha_fin": "2024-03-12",
	})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, first.ID, env.Error.Details["conflict_id"])
	assert.Equal(t, "2024-03-10", env.Error.Details["fecha_fin"])

	rec, _ = srv.do(t, http.MethodPost, "/api/v1/exceptions", admin, map[string]string{
		"legajo": "E100", "tipo": "art_8", "fecha_inicio": "2024-03-11", "fecha_fin": "2024-03-12",
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestExceptionHandler_Validation(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/exceptions", srv.token(t, true), map[string]string{
		"legajo": "E100", "tipo": "feriado", "fecha_inicio": "2024-03-10", "fecha_fin": "2024-03-01",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "tipo")
	assert.Contains(t, env.Error.Details, "fecha_fin")
}

func TestWhitelistHandler_DuplicateActive(t *testing.T) {
	srv := newTestServer(t)
	admin := srv.token(t, true)

	rec, env := srv.do(t, http.MethodPost, "/api/v1/whitelist", admin, map[string]string{"legajo": "E100", "motivo": "Autoridad"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var entry struct {
		ID        int64  `json:"id"`
		CreatedBy string `json:"created_by"`
		Active    bool   `json:"activo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.True(t, entry.Active)
	assert.Equal(t, "rrhh@example.com", entry.CreatedBy)

	rec, env = srv.do(t, http.MethodPost, "/api/v1/whitelist", admin, map[string]string{"legajo": "E100"})
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.EqualValues(t, entry.ID, env.Error.Details["existing_id"])

	rec, env = srv.do(t, http.MethodGet, "/api/v1/whitelist/legajo/E100", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var check map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &check))
	assert.Equal(t, true, check["en_whitelist"])
}

func TestAttendanceHandler_ClassifyRange(t *testing.T) {
	srv := newTestServer(t)

	day := utils.MustDay("2024-03-04")
	in, out := day.Add(8*time.Hour), day.Add(16*time.Hour)
	worked := 8.0
	srv.punches.Put(punch.DailyPunchRecord{Legajo: "E200", Day: day, FirstIn: &in, LastOut: &out, TotalPunches: 2, WorkedHours: &worked})

	rec, env := srv.do(t, http.MethodGet, "/api/v1/attendance/E200?desde=2024-03-04&hasta=2024-03-10", srv.token(t, false), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var days []struct {
		Date           string  `json:"fecha"`
		Classification string  `json:"clasificacion"`
		Compliance     float64 `json:"cumplimiento"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &days))
	require.Len(t, days, 7)
	assert.Equal(t, "present", days[0].Classification)
	assert.InDelta(t, 1.0, days[0].Compliance, 1e-9)
	assert.Equal(t, "absent", days[1].Classification)
	assert.Equal(t, "holiday", days[5].Classification)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/attendance/E200?desde=2024-03-10&hasta=2024-03-04", srv.token(t, false), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "hasta")
}

func TestAttendanceHandler_ClassifyRangeBounded(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, false)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/attendance/E200?desde=2024-03-01&hasta=2024-03-31", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var days []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &days))
	assert.Len(t, days, testMaxRangeDays)

	for _, path := range []string{
		"/api/v1/attendance/E200?desde=2024-03-01&hasta=2024-04-01",
		"/api/v1/attendance/E200?desde=0001-01-01&hasta=9999-12-31",
	} {
		rec, env = srv.do(t, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, path)
		require.NotNil(t, env.Error, path)
		assert.Contains(t, env.Error.Details, "hasta", path)
	}
}

func TestReportHandler_DailyStatsBounded(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/reports/daily?desde=0001-01-01&hasta=9999-12-31", srv.token(t, false), nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "hasta")

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/reports/daily?desde=2024-03-01&hasta=2024-03-31", srv.token(t, false), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAttendanceHandler_ClassifyDay(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/attendance/day/2024-03-05", srv.token(t, false), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var days []struct {
		Legajo string `json:"legajo"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &days))
	assert.Len(t, days, 2)
}

func TestReportHandler_Problematic(t *testing.T) {
	srv := newTestServer(t)
	token := srv.token(t, false)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/reports/problematic?mes=2024-03", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var legajos []string
	require.NoError(t, json.Unmarshal(env.Data, &legajos))
	assert.Equal(t, []string{"E100", "E200"}, legajos)

	rec, env = srv.do(t, http.MethodGet, "/api/v1/reports/problematic?mes=2024-03&umbral=abc", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "umbral")

	rec, env = srv.do(t, http.MethodGet, "/api/v1/reports/problematic?mes=marzo", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, env.Error.Details, "mes")

	rec, _ = srv.do(t, http.MethodGet, "/api/v1/reports/problematic?mes=2024-03&umbral=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_MonthlySummaryUnknownEmployee(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(t, http.MethodGet, "/api/v1/reports/monthly/E999?mes=2024-03", srv.token(t, false), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}
