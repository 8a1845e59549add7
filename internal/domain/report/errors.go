package report

import "errors"

var (
	ErrInvalidMonth     = errors.New("month must be in YYYY-MM format")
	ErrInvalidDateRange = errors.New("end date must not be before start date")
	ErrInvalidThreshold = errors.New("thresholds must not be negative")
)
