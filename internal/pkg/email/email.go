package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"strings"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/config"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/report"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService defines the interface for sending emails
type EmailService interface {
	SendProblematicDigest(month time.Time, th report.Thresholds, rows []report.ProblematicEmployee) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
	send      func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	sleep     func(time.Duration)
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	return newEmailService(cfg)
}

func newEmailService(cfg config.SMTPConfig) (*emailServiceImpl, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"deref": func(f *float64) float64 { return *f },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
		send:      smtp.SendMail,
		sleep:     time.Sleep,
	}, nil
}

type digestEmailData struct {
	Month       string
	Thresholds  report.Thresholds
	Rows        []report.ProblematicEmployee
	GeneratedAt string
}

// SendProblematicDigest mails the problematic report to the configured
// recipients. It is a no-op without recipients.
func (s *emailServiceImpl) SendProblematicDigest(month time.Time, th report.Thresholds, rows []report.ProblematicEmployee) error {
	if len(s.cfg.DigestRecipients) == 0 {
		return nil
	}

	body, err := s.renderDigest(digestEmailData{
		Month:       month.Format(utils.MonthLayout),
		Thresholds:  th,
		Rows:        rows,
		GeneratedAt: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Asistencia %s: %d empleados con problemas", month.Format(utils.MonthLayout), len(rows))
	return s.sendHTML(s.cfg.DigestRecipients, subject, body)
}

func (s *emailServiceImpl) renderDigest(data digestEmailData) (string, error) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "problematic_digest.html", data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return body.String(), nil
}

func (s *emailServiceImpl) sendHTML(to []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "to", to, "subject", subject)
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("To: %s\r\n", strings.Join(to, ", "))
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := s.send(addr, auth, from, to, message)
		if err == nil {
			slog.Info("Email sent successfully", "to", to, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"to", to,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			s.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
