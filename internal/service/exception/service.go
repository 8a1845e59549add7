package exception

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/exception"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/keylock"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

// DefaultCreator is recorded when a request carries no author.
const DefaultCreator = "sistema"

type ExceptionServiceImpl struct {
	exceptions exception.ExceptionRepository
	employees  employee.EmployeeRepository
	tx         database.Transactor
	locks      *keylock.KeyedMutex
}

func NewExceptionService(exceptions exception.ExceptionRepository, employees employee.EmployeeRepository, tx database.Transactor) exception.ExceptionService {
	return &ExceptionServiceImpl{
		exceptions: exceptions,
		employees:  employees,
		tx:         tx,
		locks:      keylock.New(),
	}
}

func (s *ExceptionServiceImpl) Create(ctx context.Context, req exception.CreateExceptionRequest) (exception.Exception, error) {
	if err := req.Validate(); err != nil {
		return exception.Exception{}, err
	}

	start, err := utils.ParseDay(req.StartDate)
	if err != nil {
		return exception.Exception{}, err
	}
	end, err := utils.ParseDay(req.EndDate)
	if err != nil {
		return exception.Exception{}, err
	}

	if _, err := s.employees.GetByLegajo(ctx, req.Legajo); err != nil {
		return exception.Exception{}, fmt.Errorf("failed to get employee: %w", err)
	}

	creator := req.CreatedBy
	if creator == "" {
		creator = DefaultCreator
	}
	candidate := exception.Exception{
		Legajo:      req.Legajo,
		Type:        exception.Type(req.Type),
		StartDate:   start,
		EndDate:     end,
		Description: req.Description,
		CreatedBy:   creator,
	}

	unlock := s.locks.Lock(req.Legajo)
	defer unlock()

	var created exception.Exception
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.exceptions.LockEmployee(ctx, candidate.Legajo); err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, candidate); err != nil {
			return err
		}

		created, err = s.exceptions.Create(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to create exception: %w", err)
		}
		return nil
	})
	if err != nil {
		return exception.Exception{}, err
	}
	return created, nil
}

// errRecordMoved signals that the exception changed employee between the
// unlocked read and the locked re-read.
var errRecordMoved = errors.New("exception moved to another employee")

const maxUpdateAttempts = 5

func (s *ExceptionServiceImpl) Update(ctx context.Context, req exception.UpdateExceptionRequest) (exception.Exception, error) {
	if err := req.Validate(); err != nil {
		return exception.Exception{}, err
	}

	if req.Legajo != nil {
		if _, err := s.employees.GetByLegajo(ctx, *req.Legajo); err != nil {
			return exception.Exception{}, fmt.Errorf("failed to get employee: %w", err)
		}
	}

	for attempt := 1; ; attempt++ {
		updated, err := s.update(ctx, req)
		if !errors.Is(err, errRecordMoved) {
			return updated, err
		}
		if attempt == maxUpdateAttempts {
			return exception.Exception{}, fmt.Errorf("failed to update exception %d: %w", req.ID, err)
		}
		slog.Debug("Exception moved while updating, retrying", "id", req.ID, "attempt", attempt)
	}
}

// update locks the owner seen by an unlocked read plus the target employee,
// then re-reads. If the owner changed in between it returns errRecordMoved.
func (s *ExceptionServiceImpl) update(ctx context.Context, req exception.UpdateExceptionRequest) (exception.Exception, error) {
	current, err := s.exceptions.GetByID(ctx, req.ID)
	if err != nil {
		return exception.Exception{}, err
	}

	target := current.Legajo
	if req.Legajo != nil {
		target = *req.Legajo
	}

	unlock := s.locks.LockMany(current.Legajo, target)
	defer unlock()

	var updated exception.Exception
	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, legajo := range lockOrder(current.Legajo, target) {
			if err := s.exceptions.LockEmployee(ctx, legajo); err != nil {
				return err
			}
		}

		existing, err := s.exceptions.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if existing.Legajo != current.Legajo {
			return errRecordMoved
		}
		candidate, err := applyPatch(existing, req)
		if err != nil {
			return err
		}
		if err := s.checkOverlap(ctx, candidate); err != nil {
			return err
		}

		updated, err = s.exceptions.Update(ctx, candidate)
		if err != nil {
			return fmt.Errorf("failed to update exception: %w", err)
		}
		return nil
	})
	if err != nil {
		return exception.Exception{}, err
	}
	return updated, nil
}

func (s *ExceptionServiceImpl) checkOverlap(ctx context.Context, candidate exception.Exception) error {
	existing, err := s.exceptions.ListByLegajo(ctx, candidate.Legajo)
	if err != nil {
		return fmt.Errorf("failed to list exceptions: %w", err)
	}
	if conflict, ok := exception.FindOverlap(existing, candidate.ID, candidate.StartDate, candidate.EndDate); ok {
		return &exception.OverlapError{
			Legajo:         candidate.Legajo,
			CandidateStart: candidate.StartDate,
			CandidateEnd:   candidate.EndDate,
			Conflict:       conflict,
		}
	}
	return nil
}

func applyPatch(e exception.Exception, req exception.UpdateExceptionRequest) (exception.Exception, error) {
	if req.Legajo != nil {
		e.Legajo = *req.Legajo
	}
	if req.Type != nil {
		e.Type = exception.Type(*req.Type)
	}
	if req.StartDate != nil {
		d, err := utils.ParseDay(*req.StartDate)
		if err != nil {
			return exception.Exception{}, err
		}
		e.StartDate = d
	}
	if req.EndDate != nil {
		d, err := utils.ParseDay(*req.EndDate)
		if err != nil {
			return exception.Exception{}, err
		}
		e.EndDate = d
	}
	if req.Description != nil {
		e.Description = req.Description
	}

	if e.StartDate.After(e.EndDate) {
		return exception.Exception{}, exception.ErrInvalidDateRange
	}
	return e, nil
}

func lockOrder(a, b string) []string {
	switch {
	case a == b:
		return []string{a}
	case a < b:
		return []string{a, b}
	default:
		return []string{b, a}
	}
}

func (s *ExceptionServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.exceptions.Delete(ctx, id)
}

func (s *ExceptionServiceImpl) Get(ctx context.Context, id int64) (exception.Exception, error) {
	return s.exceptions.GetByID(ctx, id)
}

func (s *ExceptionServiceImpl) List(ctx context.Context) ([]exception.Exception, error) {
	return s.exceptions.ListAll(ctx)
}

func (s *ExceptionServiceImpl) ListFor(ctx context.Context, legajo string) ([]exception.Exception, error) {
	return s.exceptions.ListByLegajo(ctx, legajo)
}

func (s *ExceptionServiceImpl) ListCurrent(ctx context.Context, day time.Time) ([]exception.Exception, error) {
	d := utils.Day(day)
	return s.exceptions.ListOverlapping(ctx, d, d)
}

func (s *ExceptionServiceImpl) IsExcepted(ctx context.Context, legajo string, day time.Time) (bool, error) {
	d := utils.Day(day)
	return s.IsExceptedAny(ctx, legajo, d, d)
}

func (s *ExceptionServiceImpl) IsExceptedAny(ctx context.Context, legajo string, start, end time.Time) (bool, error) {
	list, err := s.exceptions.ListByLegajo(ctx, legajo)
	if err != nil {
		return false, fmt.Errorf("failed to list exceptions: %w", err)
	}
	_, found := exception.FindOverlap(list, 0, utils.Day(start), utils.Day(end))
	return found, nil
}
