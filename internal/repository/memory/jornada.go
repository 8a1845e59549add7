package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/jornada"
	"github.com/cge-corrientes/huella-backend-go/internal/pkg/utils"
)

type JornadaRepository struct {
	mu      sync.RWMutex
	nextID  int64
	configs map[string]jornada.JornadaConfig
}

func NewJornadaRepository() *JornadaRepository {
	return &JornadaRepository{configs: make(map[string]jornada.JornadaConfig)}
}

func (r *JornadaRepository) Get(ctx context.Context, legajo string) (jornada.JornadaConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg, ok := r.configs[legajo]
	if !ok {
		return jornada.JornadaConfig{}, jornada.ErrJornadaNotFound
	}
	return cfg, nil
}

func (r *JornadaRepository) ListAll(ctx context.Context) ([]jornada.JornadaConfig, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jornada.JornadaConfig, 0, len(r.configs))
	for _, cfg := range r.configs {
		out = append(out, cfg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Legajo < out[j].Legajo })
	return out, nil
}

func (r *JornadaRepository) Upsert(ctx context.Context, cfg jornada.JornadaConfig) (jornada.JornadaConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.configs[cfg.Legajo]; ok {
		cfg.ID = existing.ID
	} else {
		r.nextID++
		cfg.ID = r.nextID
	}
	cfg.EffectiveFrom = utils.Day(cfg.EffectiveFrom)
	cfg.UpdatedAt = time.Now()
	r.configs[cfg.Legajo] = cfg
	return cfg, nil
}

func (r *JornadaRepository) Delete(ctx context.Context, legajo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.configs[legajo]; !ok {
		return jornada.ErrJornadaNotFound
	}
	delete(r.configs, legajo)
	return nil
}
