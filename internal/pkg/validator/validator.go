package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// Add appends a field error.
func (v *ValidationErrors) Add(field, message string) {
	*v = append(*v, ValidationError{Field: field, Message: message})
}

// Err returns v as an error, or nil when there are no errors.
func (v ValidationErrors) Err() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Legajo validation: employee file code, 1-16 letters or digits.
var legajoRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

func IsValidLegajo(legajo string) bool {
	return legajoRegex.MatchString(legajo)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// DefaultMaxRangeDays bounds a date range when the caller sets no limit.
const DefaultMaxRangeDays = 366

// ExceedsRange reports whether the inclusive range start..end covers more than
// maxDays days, and the limit applied. A non-positive maxDays means
// DefaultMaxRangeDays.
func ExceedsRange(start, end time.Time, maxDays int) (int, bool) {
	if maxDays <= 0 {
		maxDays = DefaultMaxRangeDays
	}
	days := int(end.Sub(start).Hours()/24) + 1
	return maxDays, days > maxDays
}

// Month validation (YYYY-MM)
func IsValidMonth(monthStr string) (time.Time, bool) {
	month, err := time.Parse("2006-01", monthStr)
	return month, err == nil
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
