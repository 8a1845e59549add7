package email

import (
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/config"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderDigest(t *testing.T) {
	svc, err := newEmailService(config.SMTPConfig{})
	require.NoError(t, err)

	pct := 42.5
	body, err := svc.renderDigest(digestEmailData{
		Month:      "2024-03",
		Thresholds: report.Thresholds{Absences: 3, CompliancePercent: 60, Incompletes: 2},
		Rows: []report.ProblematicEmployee{
			{Legajo: "E100", Name: "Ana Benítez", AbsentDays: 5, CompliancePercent: &pct, Severity: 78.75},
			{Legajo: "E200", Name: "Bruno Cáceres", AbsentDays: 4},
		},
	})
	require.NoError(t, err)

	assert.Contains(t, body, "2024-03")
	assert.Contains(t, body, "E100")
	assert.Contains(t, body, "42.5%")
	assert.Contains(t, body, "Sin datos")
}

func TestSendProblematicDigest_RetriesThenFails(t *testing.T) {
	svc, err := newEmailService(config.SMTPConfig{
		Host: "smtp.example.com", Port: 587, From: "asistencia@example.com",
		DigestRecipients: []string{"rrhh@example.com", "direccion@example.com"},
	})
	require.NoError(t, err)

	var attempts int
	var gotTo []string
	var gotMsg string
	svc.sleep = func(time.Duration) {}
	svc.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		attempts++
		gotTo, gotMsg = to, string(msg)
		return errors.New("connection refused")
	}

	err = svc.SendProblematicDigest(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), report.Thresholds{}, nil)
	assert.Error(t, err)
	assert.Equal(t, maxRetries, attempts)
	assert.Equal(t, []string{"rrhh@example.com", "direccion@example.com"}, gotTo)
	assert.True(t, strings.Contains(gotMsg, "Subject: Asistencia 2024-03: 0 empleados con problemas"))
}

func TestSendProblematicDigest_NoRecipients(t *testing.T) {
	svc, err := newEmailService(config.SMTPConfig{Host: "smtp.example.com"})
	require.NoError(t, err)
	svc.send = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("send must not be called")
		return nil
	}

	assert.NoError(t, svc.SendProblematicDigest(time.Now(), report.Thresholds{}, nil))
}
