package reconciliation

import "errors"

var ErrInvalidDateRange = errors.New("end date must not be before start date")
