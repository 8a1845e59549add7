package exception

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrExceptionNotFound    = errors.New("exception not found")
	ErrOverlappingException = errors.New("exception overlaps an existing exception")
	ErrInvalidExceptionType = errors.New("invalid exception type")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
)

// OverlapError identifies the existing record a write collided with.
type OverlapError struct {
	Legajo         string
	CandidateStart time.Time
	CandidateEnd   time.Time
	Conflict       Exception
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf(
		"exception [%s, %s] for employee %s overlaps exception %d (%s) [%s, %s]",
		e.CandidateStart.Format("2006-01-02"), e.CandidateEnd.Format("2006-01-02"), e.Legajo,
		e.Conflict.ID, e.Conflict.Type,
		e.Conflict.StartDate.Format("2006-01-02"), e.Conflict.EndDate.Format("2006-01-02"),
	)
}

func (e *OverlapError) Is(target error) bool {
	return target == ErrOverlappingException
}
