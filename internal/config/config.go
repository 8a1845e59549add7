package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	CORS       CORSConfig
	SMTP       SMTPConfig
	Attendance AttendanceConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
	Storage  string
}

type CORSConfig struct {
	AllowedOrigins []string
}

// SMTPConfig holds mail settings for the attendance digest. An empty Host
// disables sending.
type SMTPConfig struct {
	Host             string
	Port             int
	Username         string
	Password         string
	From             string
	FromName         string
	DigestRecipients []string
}

// AttendanceConfig holds reconciliation defaults. Thresholds are only read by
// the HTTP layer and the batch jobs; the engine takes them as parameters.
type AttendanceConfig struct {
	DefaultJornadaHours int
	NonWorkingWeekdays  string
	Workers             int
	AbsenceThreshold    int
	ComplianceThreshold float64
	IncompleteThreshold int
	Timezone            string
	DigestInterval      time.Duration
	MaxRangeDays        int
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	} else if err != nil {
		slog.Debug("no .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "25"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbMinConns, err := strconv.Atoi(getEnv("DB_MIN_CONNS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "huella"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		MaxConns: dbMaxConns,
		MinConns: dbMinConns,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Storage:  strings.ToLower(getEnv("APP_STORAGE", StoragePostgres)),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.CORS = CORSConfig{
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:             getEnv("SMTP_HOST", ""),
		Port:             smtpPort,
		Username:         getEnv("SMTP_USERNAME", ""),
		Password:         getEnv("SMTP_PASSWORD", ""),
		From:             getEnv("SMTP_FROM", "asistencia@localhost"),
		FromName:         getEnv("SMTP_FROM_NAME", "Control de Asistencia"),
		DigestRecipients: getEnvSlice("ATTENDANCE_DIGEST_RECIPIENTS", ""),
	}

	// Attendance configuration
	attendance, err := loadAttendance()
	if err != nil {
		return nil, err
	}
	config.Attendance = attendance

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func loadAttendance() (AttendanceConfig, error) {
	var cfg AttendanceConfig
	var err error

	if cfg.DefaultJornadaHours, err = strconv.Atoi(getEnv("ATTENDANCE_DEFAULT_JORNADA_HOURS", "8")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_DEFAULT_JORNADA_HOURS: %w", err)
	}
	if cfg.Workers, err = strconv.Atoi(getEnv("ATTENDANCE_WORKERS", "8")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_WORKERS: %w", err)
	}
	if cfg.AbsenceThreshold, err = strconv.Atoi(getEnv("ATTENDANCE_ABSENCE_THRESHOLD", "3")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_ABSENCE_THRESHOLD: %w", err)
	}
	if cfg.ComplianceThreshold, err = strconv.ParseFloat(getEnv("ATTENDANCE_COMPLIANCE_THRESHOLD", "60"), 64); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_COMPLIANCE_THRESHOLD: %w", err)
	}
	if cfg.IncompleteThreshold, err = strconv.Atoi(getEnv("ATTENDANCE_INCOMPLETE_THRESHOLD", "2")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_INCOMPLETE_THRESHOLD: %w", err)
	}
	if cfg.DigestInterval, err = time.ParseDuration(getEnv("ATTENDANCE_DIGEST_INTERVAL", "24h")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_DIGEST_INTERVAL: %w", err)
	}

	if cfg.MaxRangeDays, err = strconv.Atoi(getEnv("ATTENDANCE_MAX_RANGE_DAYS", "366")); err != nil {
		return cfg, fmt.Errorf("invalid ATTENDANCE_MAX_RANGE_DAYS: %w", err)
	}

	cfg.NonWorkingWeekdays = getEnv("ATTENDANCE_NON_WORKING_WEEKDAYS", "saturday,sunday")
	cfg.Timezone = getEnv("ATTENDANCE_TIMEZONE", "America/Argentina/Buenos_Aires")
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.App.Storage {
	case StoragePostgres:
		if c.Database.Password == "" {
			return fmt.Errorf("DB_PASSWORD is required")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("APP_STORAGE must be %q or %q", StoragePostgres, StorageMemory)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if !jornada.IsAllowedHours(c.Attendance.DefaultJornadaHours) {
		return fmt.Errorf("ATTENDANCE_DEFAULT_JORNADA_HOURS must be one of 4, 6 or 8")
	}
	if c.Attendance.Workers < 1 {
		return fmt.Errorf("ATTENDANCE_WORKERS must be positive")
	}
	if c.Attendance.AbsenceThreshold < 0 || c.Attendance.IncompleteThreshold < 0 || c.Attendance.ComplianceThreshold < 0 {
		return fmt.Errorf("attendance thresholds must not be negative")
	}
	if c.Attendance.MaxRangeDays < 1 {
		return fmt.Errorf("ATTENDANCE_MAX_RANGE_DAYS must be positive")
	}
	if c.Attendance.DigestInterval <= 0 {
		return fmt.Errorf("ATTENDANCE_DIGEST_INTERVAL must be positive")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid ATTENDANCE_TIMEZONE: %w", err)
	}
	return nil
}

// Location returns the time zone attendance days are counted in.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Attendance.Timezone)
}

// SlogLevel maps LOG_LEVEL to a slog level. Unknown values fall back to info.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.App.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			result = append(result, v)
		}
	}
	return result
}
