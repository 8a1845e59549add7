package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reportStub struct {
	report.ReportService
	month      time.Time
	thresholds report.Thresholds
	rows       []report.ProblematicEmployee
	err        error
}

func (r *reportStub) ProblematicReport(ctx context.Context, month time.Time, th report.Thresholds) ([]report.ProblematicEmployee, error) {
	r.month, r.thresholds = month, th
	return r.rows, r.err
}

type mailerStub struct {
	rows []report.ProblematicEmployee
	err  error
}

func (m *mailerStub) SendProblematicDigest(month time.Time, th report.Thresholds, rows []report.ProblematicEmployee) error {
	m.rows = rows
	return m.err
}

func TestProblematicDigest_UsesCurrentMonthAndThresholds(t *testing.T) {
	pct := 42.0
	stub := &reportStub{rows: []report.ProblematicEmployee{{Legajo: "E100", AbsentDays: 5, CompliancePercent: &pct}}}
	mailer := &mailerStub{}
	th := report.Thresholds{Absences: 3, CompliancePercent: 60, Incompletes: 2}

	jobs := NewAttendanceJobs(stub, mailer, th, time.UTC)
	jobs.now = func() time.Time { return time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC) }

	require.NoError(t, jobs.ProblematicDigest(context.Background()))
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), stub.month)
	assert.Equal(t, th, stub.thresholds)
	assert.Equal(t, stub.rows, mailer.rows)
}

func TestProblematicDigest_MailFailure(t *testing.T) {
	boom := errors.New("smtp down")
	jobs := NewAttendanceJobs(&reportStub{}, &mailerStub{err: boom}, report.Thresholds{}, time.UTC)

	assert.ErrorIs(t, jobs.ProblematicDigest(context.Background()), boom)
}

func TestProblematicDigest_PropagatesFailure(t *testing.T) {
	stub := &reportStub{err: context.Canceled}
	jobs := NewAttendanceJobs(stub, nil, report.Thresholds{}, nil)

	err := jobs.ProblematicDigest(context.Background())
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRegisterJobs(t *testing.T) {
	s := NewScheduler(context.Background())
	NewAttendanceJobs(&reportStub{}, nil, report.Thresholds{}, time.UTC).RegisterJobs(s, time.Hour)

	require.Len(t, s.jobs, 1)
	assert.Equal(t, ProblematicDigestJob, s.jobs[0].Name)
	assert.Equal(t, time.Hour, s.jobs[0].Interval)
	assert.Equal(t, digestTimeout, s.jobs[0].Timeout)
}
