package employee

import (
	"time"
)

// Employee is a read-only view of the HR directory (huella.legajo).
type Employee struct {
	Legajo   string
	Name     string
	Area     *string
	Shift    *string
	Status   *string
	DNI      *string
	Email    *string
	HireDate *time.Time
	Active   bool
}
