package reconciliation

import (
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/punch"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/reconciliation"
)

// facts is everything known about one (employee, day) pair.
type facts struct {
	legajo      string
	day         time.Time
	whitelisted bool
	holiday     *holiday.Holiday
	exception   *exception.Exception
	record      *punch.DailyPunchRecord
	unavailable bool

	expectedHours    int
	jornadaDefaulted bool
}

// workedNonWorkingDay reports a complete punch record on a configured
// non-working weekday that is not a registered holiday and carries no
// exception. Such a day counts as Present.
func (f facts) workedNonWorkingDay() bool {
	return f.holiday != nil && f.holiday.IsSynthetic() &&
		f.exception == nil &&
		f.record != nil && f.record.IsComplete()
}

type rule struct {
	classification reconciliation.Classification
	applies        func(f facts) bool
}

// precedence is evaluated top to bottom; the first rule that applies wins.
// The last rule always applies.
var precedence = []rule{
	{reconciliation.ClassificationWhitelisted, func(f facts) bool { return f.whitelisted }},
	{reconciliation.ClassificationHoliday, func(f facts) bool { return f.holiday != nil && !f.workedNonWorkingDay() }},
	{reconciliation.ClassificationExcepted, func(f facts) bool { return f.exception != nil }},
	{reconciliation.ClassificationPresent, func(f facts) bool { return f.record != nil && f.record.IsComplete() }},
	{reconciliation.ClassificationIncompletePunch, func(f facts) bool { return f.record != nil }},
	{reconciliation.ClassificationAbsent, func(facts) bool { return true }},
}

func classify(f facts) reconciliation.ClassifiedDay {
	day := reconciliation.ClassifiedDay{
		Legajo:           f.legajo,
		Date:             f.day,
		ExpectedHours:    float64(f.expectedHours),
		JornadaDefaulted: f.jornadaDefaulted,
	}

	// unreadable punch data is treated as no punches
	if f.unavailable {
		f.record = nil
	}

	for _, r := range precedence {
		if r.applies(f) {
			day.Classification = r.classification
			break
		}
	}

	switch day.Classification {
	case reconciliation.ClassificationHoliday:
		day.Holiday = f.holiday
	case reconciliation.ClassificationExcepted:
		day.Exception = f.exception
	case reconciliation.ClassificationPresent:
		worked := f.record.Hours()
		day.WorkedHours = &worked
		day.TotalPunches = f.record.TotalPunches
		if f.expectedHours > 0 {
			ratio := worked / float64(f.expectedHours)
			day.ComplianceRatio = &ratio
		}
	case reconciliation.ClassificationIncompletePunch:
		day.WorkedHours = f.record.WorkedHours
		day.TotalPunches = f.record.TotalPunches
	case reconciliation.ClassificationAbsent:
		day.DataIncomplete = f.unavailable
	}

	return day
}
