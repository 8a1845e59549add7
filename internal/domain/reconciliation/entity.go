package reconciliation

import (
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
)

type Classification string

const (
	ClassificationWhitelisted     Classification = "whitelisted"
	ClassificationHoliday         Classification = "holiday"
	ClassificationExcepted        Classification = "excepted"
	ClassificationPresent         Classification = "present"
	ClassificationIncompletePunch Classification = "incomplete_punch"
	ClassificationAbsent          Classification = "absent"
)

// ClassifiedDay is the derived attendance outcome of one employee on one day.
type ClassifiedDay struct {
	Legajo         string
	Date           time.Time
	Classification Classification

	WorkedHours     *float64
	ExpectedHours   float64
	ComplianceRatio *float64 // Present only
	TotalPunches    int

	// DataIncomplete is set when punch data for the day could not be read
	// and the day was conservatively classified Absent.
	DataIncomplete bool
	// JornadaDefaulted is set when no jornada configuration exists and the
	// system default supplied ExpectedHours.
	JornadaDefaulted bool

	Holiday   *holiday.Holiday
	Exception *exception.Exception
}

// Counts reports whether the day takes part in presence statistics.
func (d ClassifiedDay) Counts() bool {
	switch d.Classification {
	case ClassificationPresent, ClassificationAbsent, ClassificationIncompletePunch:
		return true
	}
	return false
}
