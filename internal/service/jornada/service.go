package jornada

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/employee"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/database"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

var _ jornada.JornadaService = (*JornadaServiceImpl)(nil)

type JornadaServiceImpl struct {
	jornadas     jornada.JornadaRepository
	employees    employee.EmployeeRepository
	whitelist    whitelist.WhitelistRepository
	tx           database.Transactor
	defaultHours int
	location     *time.Location
	now          func() time.Time
}

func NewJornadaService(
	jornadas jornada.JornadaRepository,
	employees employee.EmployeeRepository,
	whitelistRepo whitelist.WhitelistRepository,
	tx database.Transactor,
	defaultHours int,
	location *time.Location,
) *JornadaServiceImpl {
	if location == nil {
		location = time.UTC
	}
	return &JornadaServiceImpl{
		jornadas:     jornadas,
		employees:    employees,
		whitelist:    whitelistRepo,
		tx:           tx,
		defaultHours: defaultHours,
		location:     location,
		now:          time.Now,
	}
}

func (s *JornadaServiceImpl) Get(ctx context.Context, legajo string) (jornada.JornadaConfig, error) {
	return s.jornadas.Get(ctx, legajo)
}

func (s *JornadaServiceImpl) Resolve(ctx context.Context, legajo string) (int, bool, error) {
	cfg, err := s.jornadas.Get(ctx, legajo)
	if err != nil {
		if errors.Is(err, jornada.ErrJornadaNotFound) {
			return s.defaultHours, true, nil
		}
		return 0, false, fmt.Errorf("failed to resolve jornada: %w", err)
	}
	return cfg.Hours, false, nil
}

func (s *JornadaServiceImpl) Upsert(ctx context.Context, req jornada.UpsertJornadaRequest) (jornada.JornadaConfig, error) {
	if err := req.Validate(); err != nil {
		return jornada.JornadaConfig{}, err
	}
	return s.upsert(ctx, req)
}

func (s *JornadaServiceImpl) BulkUpsert(ctx context.Context, req jornada.BulkUpsertJornadaRequest) ([]jornada.JornadaConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	saved := make([]jornada.JornadaConfig, 0, len(req.Items))
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		for _, item := range req.Items {
			cfg, err := s.upsert(ctx, item)
			if err != nil {
				return fmt.Errorf("legajo %s: %w", item.Legajo, err)
			}
			saved = append(saved, cfg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *JornadaServiceImpl) upsert(ctx context.Context, req jornada.UpsertJornadaRequest) (jornada.JornadaConfig, error) {
	if !jornada.IsAllowedHours(req.Hours) {
		return jornada.JornadaConfig{}, jornada.ErrInvalidJornadaHours
	}
	if _, err := s.employees.GetByLegajo(ctx, req.Legajo); err != nil {
		return jornada.JornadaConfig{}, fmt.Errorf("failed to get employee: %w", err)
	}

	effective := utils.Day(s.now().In(s.location))
	if req.EffectiveFrom != nil && *req.EffectiveFrom != "" {
		d, err := utils.ParseDay(*req.EffectiveFrom)
		if err != nil {
			return jornada.JornadaConfig{}, err
		}
		effective = d
	}

	cfg, err := s.jornadas.Upsert(ctx, jornada.JornadaConfig{
		Legajo:        req.Legajo,
		Hours:         req.Hours,
		Description:   jornada.DescriptionFor(req.Hours),
		EffectiveFrom: effective,
	})
	if err != nil {
		return jornada.JornadaConfig{}, fmt.Errorf("failed to upsert jornada: %w", err)
	}
	return cfg, nil
}

func (s *JornadaServiceImpl) Delete(ctx context.Context, legajo string) error {
	return s.jornadas.Delete(ctx, legajo)
}

func (s *JornadaServiceImpl) ListEmployees(ctx context.Context) ([]jornada.EmployeeJornadaResponse, error) {
	employees, err := s.employees.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	configs, err := s.jornadas.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list jornadas: %w", err)
	}
	entries, err := s.whitelist.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list whitelist: %w", err)
	}

	byLegajo := make(map[string]jornada.JornadaConfig, len(configs))
	for _, cfg := range configs {
		byLegajo[cfg.Legajo] = cfg
	}
	whitelisted := make(map[string]bool, len(entries))
	for _, e := range entries {
		whitelisted[e.Legajo] = true
	}

	out := make([]jornada.EmployeeJornadaResponse, 0, len(employees))
	for _, emp := range employees {
		row := jornada.EmployeeJornadaResponse{
			Legajo:      emp.Legajo,
			Name:        emp.Name,
			Area:        emp.Area,
			Shift:       emp.Shift,
			DNI:         emp.DNI,
			Hours:       s.defaultHours,
			Description: jornada.DescriptionFor(s.defaultHours),
			Defaulted:   true,
			Whitelisted: whitelisted[emp.Legajo],
		}
		if cfg, ok := byLegajo[emp.Legajo]; ok {
			from := cfg.EffectiveFrom.Format("2006-01-02")
			row.Hours = cfg.Hours
			row.Description = cfg.Description
			row.EffectiveFrom = &from
			row.Defaulted = false
		}
		out = append(out, row)
	}
	return out, nil
}
