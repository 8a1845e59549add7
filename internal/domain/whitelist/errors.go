package whitelist

import (
	"errors"
	"fmt"
)

var (
	ErrWhitelistEntryNotFound = errors.New("whitelist entry not found")
	ErrDuplicateActive        = errors.New("employee already has an active whitelist entry")
)

// DuplicateActiveError carries the active entry that blocked a write.
type DuplicateActiveError struct {
	Legajo   string
	Existing Entry
}

func (e *DuplicateActiveError) Error() string {
	return fmt.Sprintf("employee %s already has active whitelist entry %d", e.Legajo, e.Existing.ID)
}

func (e *DuplicateActiveError) Is(target error) bool {
	return target == ErrDuplicateActive
}
