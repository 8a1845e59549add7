package exception

import (
	"sort"
	"time"
)

// Type is the leave category of an exception.
type Type string

const (
	TypeVacation        Type = "vacaciones"
	TypeArt8            Type = "art_8"
	TypeArt11           Type = "art_11"
	TypeArt12           Type = "art_12"
	TypeArt13           Type = "art_13"
	TypeArt15           Type = "art_15"
	TypeArt16           Type = "art_16"
	TypeArt17           Type = "art_17"
	TypeArt18           Type = "art_18"
	TypeArt19           Type = "art_19"
	TypeArt21           Type = "art_21"
	TypeArt22           Type = "art_22"
	TypeArt27           Type = "art_27"
	TypeArt28           Type = "art_28"
	TypeArt29           Type = "art_29"
	TypeGynecological   Type = "lic_gineco"
	TypeServiceDelegate Type = "comision_servicio"
	TypeOther           Type = "otro"
)

var Types = []string{
	string(TypeVacation),
	string(TypeArt8), string(TypeArt11), string(TypeArt12), string(TypeArt13),
	string(TypeArt15), string(TypeArt16), string(TypeArt17), string(TypeArt18),
	string(TypeArt19), string(TypeArt21), string(TypeArt22), string(TypeArt27),
	string(TypeArt28), string(TypeArt29),
	string(TypeGynecological),
	string(TypeServiceDelegate),
	string(TypeOther),
}

func IsValidType(t string) bool {
	for _, v := range Types {
		if v == t {
			return true
		}
	}
	return false
}

// Exception is an approved absence justification for one employee over an
// inclusive date interval.
type Exception struct {
	ID          int64
	Legajo      string
	Type        Type
	StartDate   time.Time
	EndDate     time.Time
	Description *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Days is the inclusive length of the interval. It is always derived.
func (e Exception) Days() int {
	return int(e.EndDate.Sub(e.StartDate).Hours()/24) + 1
}

// Covers reports whether day falls inside the interval.
func (e Exception) Covers(day time.Time) bool {
	return !day.Before(e.StartDate) && !day.After(e.EndDate)
}

// Overlaps reports whether [start, end] intersects the interval, bounds included.
func (e Exception) Overlaps(start, end time.Time) bool {
	return !start.After(e.EndDate) && !e.StartDate.After(end)
}

// FindOverlap returns the earliest-starting record in existing that overlaps
// [start, end], ignoring the record with id excludeID. existing is not modified.
func FindOverlap(existing []Exception, excludeID int64, start, end time.Time) (Exception, bool) {
	sorted := make([]Exception, 0, len(existing))
	for _, e := range existing {
		if excludeID != 0 && e.ID == excludeID {
			continue
		}
		sorted = append(sorted, e)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	for _, e := range sorted {
		// sorted by start: nothing after this can overlap
		if e.StartDate.After(end) {
			break
		}
		if e.Overlaps(start, end) {
			return e, true
		}
	}
	return Exception{}, false
}
