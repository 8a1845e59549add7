package jornada

import (
	"time"
)

// AllowedHours are the expected daily hours an employee can be configured with.
var AllowedHours = []int{4, 6, 8}

// JornadaConfig is the expected daily working hours of one employee.
type JornadaConfig struct {
	ID            int64
	Legajo        string
	Hours         int
	Description   string
	EffectiveFrom time.Time
	UpdatedAt     time.Time
}

func IsAllowedHours(hours int) bool {
	for _, h := range AllowedHours {
		if h == hours {
			return true
		}
	}
	return false
}

// DescriptionFor returns the label stored alongside a configuration.
func DescriptionFor(hours int) string {
	switch hours {
	case 4:
		return "Media jornada"
	case 6:
		return "Jornada reducida"
	default:
		return "Jornada completa"
	}
}
