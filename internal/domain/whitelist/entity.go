package whitelist

import "time"

// DefaultCreator is recorded when a whitelist entry has no authenticated author.
const DefaultCreator = "sistema"

// Entry exempts an employee from attendance tracking while Active.
type Entry struct {
	ID        int64
	Legajo    string
	Motive    *string
	Active    bool
	CreatedBy string
	CreatedAt time.Time

	// Directory fields, filled on list queries.
	Name  *string
	Area  *string
	Shift *string
}
