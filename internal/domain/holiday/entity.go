package holiday

import (
	"time"
)

type HolidayType string

const (
	HolidayTypeNational       HolidayType = "nacional"
	HolidayTypeProvincial     HolidayType = "provincial"
	HolidayTypeAdministrative HolidayType = "administrativo"

	// HolidayTypeWeekend marks non-persisted holidays synthesized for configured
	// non-working weekdays.
	HolidayTypeWeekend HolidayType = "fin_de_semana"
)

// Types lists the holiday types an administrator may register.
var Types = []string{
	string(HolidayTypeNational),
	string(HolidayTypeProvincial),
	string(HolidayTypeAdministrative),
}

type Holiday struct {
	ID          int64
	Date        time.Time
	Description string
	Type        HolidayType
}

// IsSynthetic reports whether h was derived from the weekday configuration
// rather than read from the registry.
func (h Holiday) IsSynthetic() bool {
	return h.Type == HolidayTypeWeekend
}

// Weekday returns the Spanish weekday name of the holiday date.
func (h Holiday) Weekday() string {
	return WeekdayName(h.Date.Weekday())
}

var weekdayNames = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}

func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}
