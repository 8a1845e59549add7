package whitelist

import (
	"context"
	"fmt"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/keylock"
)

type WhitelistServiceImpl struct {
	entries   whitelist.WhitelistRepository
	employees employee.EmployeeRepository
	tx        database.Transactor
	locks     *keylock.KeyedMutex
}

func NewWhitelistService(entries whitelist.WhitelistRepository, employees employee.EmployeeRepository, tx database.Transactor) whitelist.WhitelistService {
	return &WhitelistServiceImpl{
		entries:   entries,
		employees: employees,
		tx:        tx,
		locks:     keylock.New(),
	}
}

func (s *WhitelistServiceImpl) Add(ctx context.Context, req whitelist.AddWhitelistRequest) (whitelist.Entry, error) {
	if err := req.Validate(); err != nil {
		return whitelist.Entry{}, err
	}

	if _, err := s.employees.GetByLegajo(ctx, req.Legajo); err != nil {
		return whitelist.Entry{}, fmt.Errorf("failed to get employee: %w", err)
	}

	creator := req.CreatedBy
	if creator == "" {
		creator = whitelist.DefaultCreator
	}

	unlock := s.locks.Lock(req.Legajo)
	defer unlock()

	var created whitelist.Entry
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.entries.LockEmployee(ctx, req.Legajo); err != nil {
			return err
		}
		if err := s.ensureNoOtherActive(ctx, req.Legajo, 0); err != nil {
			return err
		}

		var err error
		created, err = s.entries.Create(ctx, whitelist.Entry{
			Legajo:    req.Legajo,
			Motive:    req.Motive,
			Active:    true,
			CreatedBy: creator,
		})
		if err != nil {
			return fmt.Errorf("failed to create whitelist entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return whitelist.Entry{}, err
	}
	return created, nil
}

// SetActive toggles an entry. Activating fails with a DuplicateActiveError
// when another entry of the same employee is already active.
func (s *WhitelistServiceImpl) SetActive(ctx context.Context, id int64, active bool) (whitelist.Entry, error) {
	entry, err := s.entries.GetByID(ctx, id)
	if err != nil {
		return whitelist.Entry{}, err
	}

	unlock := s.locks.Lock(entry.Legajo)
	defer unlock()

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.entries.LockEmployee(ctx, entry.Legajo); err != nil {
			return err
		}
		if active {
			if err := s.ensureNoOtherActive(ctx, entry.Legajo, id); err != nil {
				return err
			}
		}
		if err := s.entries.SetActive(ctx, id, active); err != nil {
			return fmt.Errorf("failed to update whitelist entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return whitelist.Entry{}, err
	}
	return s.entries.GetByID(ctx, id)
}

func (s *WhitelistServiceImpl) ensureNoOtherActive(ctx context.Context, legajo string, selfID int64) error {
	existing, err := s.entries.GetActiveByLegajo(ctx, legajo)
	if err != nil {
		return fmt.Errorf("failed to check active whitelist entry: %w", err)
	}
	if existing != nil && existing.ID != selfID {
		return &whitelist.DuplicateActiveError{Legajo: legajo, Existing: *existing}
	}
	return nil
}

func (s *WhitelistServiceImpl) UpdateMotive(ctx context.Context, id int64, motive *string) (whitelist.Entry, error) {
	if err := s.entries.UpdateMotive(ctx, id, motive); err != nil {
		return whitelist.Entry{}, err
	}
	return s.entries.GetByID(ctx, id)
}

func (s *WhitelistServiceImpl) Remove(ctx context.Context, id int64) error {
	return s.entries.Delete(ctx, id)
}

func (s *WhitelistServiceImpl) IsWhitelisted(ctx context.Context, legajo string) (bool, error) {
	entry, err := s.entries.GetActiveByLegajo(ctx, legajo)
	if err != nil {
		return false, fmt.Errorf("failed to check whitelist: %w", err)
	}
	return entry != nil, nil
}

func (s *WhitelistServiceImpl) List(ctx context.Context) ([]whitelist.Entry, error) {
	return s.entries.List(ctx)
}

func (s *WhitelistServiceImpl) ListActive(ctx context.Context) ([]whitelist.Entry, error) {
	return s.entries.ListActive(ctx)
}
