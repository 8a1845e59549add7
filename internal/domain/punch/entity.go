package punch

import (
	"time"
)

// DailyPunchRecord is one row of the pre-aggregated daily attendance view:
// first clock-in, last clock-out and punch count for one employee on one day.
// A missing record for a day means the employee did not punch at all.
type DailyPunchRecord struct {
	Legajo       string
	Day          time.Time
	FirstIn      *time.Time
	LastOut      *time.Time
	TotalPunches int
	WorkedHours  *float64
}

// IsComplete reports whether the record holds a full entrada/salida pair:
// both timestamps present and an even punch count of at least two.
func (r DailyPunchRecord) IsComplete() bool {
	return r.FirstIn != nil && r.LastOut != nil && r.TotalPunches >= 2 && r.TotalPunches%2 == 0
}

// Hours returns the worked hours of a complete record. The view leaves
// horas_trabajadas empty for some complete days; those fall back to the span
// between first clock-in and last clock-out.
func (r DailyPunchRecord) Hours() float64 {
	if r.WorkedHours != nil {
		return *r.WorkedHours
	}
	if r.FirstIn != nil && r.LastOut != nil && r.LastOut.After(*r.FirstIn) {
		return r.LastOut.Sub(*r.FirstIn).Hours()
	}
	return 0
}
