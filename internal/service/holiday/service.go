package holiday

import (
	"context"
	"fmt"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/holiday"
)

type HolidayServiceImpl struct {
	holiday.HolidayRepository
}

func NewHolidayService(repo holiday.HolidayRepository) holiday.HolidayService {
	return &HolidayServiceImpl{HolidayRepository: repo}
}

func (s *HolidayServiceImpl) Create(ctx context.Context, req holiday.CreateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	h, err := fromRequest(req.Date, req.Description, req.Type)
	if err != nil {
		return holiday.Holiday{}, err
	}

	existing, err := s.HolidayRepository.GetByDate(ctx, h.Date)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to check holiday date: %w", err)
	}
	if existing != nil {
		return holiday.Holiday{}, holiday.ErrHolidayDateExists
	}

	created, err := s.HolidayRepository.Create(ctx, h)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}
	return created, nil
}

func (s *HolidayServiceImpl) Update(ctx context.Context, req holiday.UpdateHolidayRequest) (holiday.Holiday, error) {
	if err := req.Validate(); err != nil {
		return holiday.Holiday{}, err
	}

	if _, err := s.HolidayRepository.GetByID(ctx, req.ID); err != nil {
		return holiday.Holiday{}, err
	}

	h, err := fromRequest(req.Date, req.Description, req.Type)
	if err != nil {
		return holiday.Holiday{}, err
	}
	h.ID = req.ID

	existing, err := s.HolidayRepository.GetByDate(ctx, h.Date)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to check holiday date: %w", err)
	}
	if existing != nil && existing.ID != h.ID {
		return holiday.Holiday{}, holiday.ErrHolidayDateExists
	}

	updated, err := s.HolidayRepository.Update(ctx, h)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to update holiday: %w", err)
	}
	return updated, nil
}

func (s *HolidayServiceImpl) Delete(ctx context.Context, id int64) error {
	return s.HolidayRepository.Delete(ctx, id)
}

func (s *HolidayServiceImpl) Get(ctx context.Context, id int64) (holiday.Holiday, error) {
	return s.HolidayRepository.GetByID(ctx, id)
}

func (s *HolidayServiceImpl) List(ctx context.Context, year *int) ([]holiday.Holiday, error) {
	return s.HolidayRepository.ListByYear(ctx, year)
}

func (s *HolidayServiceImpl) Years(ctx context.Context) ([]int, error) {
	return s.HolidayRepository.ListYears(ctx)
}

func fromRequest(date, description, holidayType string) (holiday.Holiday, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return holiday.Holiday{}, fmt.Errorf("failed to parse holiday date: %w", err)
	}
	return holiday.Holiday{
		Date:        d,
		Description: description,
		Type:        holiday.HolidayType(holidayType),
	}, nil
}
