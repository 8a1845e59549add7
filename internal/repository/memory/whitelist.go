package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cge-corrientes/huella-backend-go/internal/domain/whitelist"
)

type WhitelistRepository struct {
	mu      sync.RWMutex
	nextID  int64
	entries map[int64]whitelist.Entry
}

func NewWhitelistRepository() *WhitelistRepository {
	return &WhitelistRepository{entries: make(map[int64]whitelist.Entry)}
}

func (r *WhitelistRepository) Create(ctx context.Context, entry whitelist.Entry) (whitelist.Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	entry.ID = r.nextID
	entry.CreatedAt = time.Now()
	r.entries[entry.ID] = entry
	return entry, nil
}

func (r *WhitelistRepository) GetByID(ctx context.Context, id int64) (whitelist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[id]
	if !ok {
		return whitelist.Entry{}, whitelist.ErrWhitelistEntryNotFound
	}
	return entry, nil
}

func (r *WhitelistRepository) GetActiveByLegajo(ctx context.Context, legajo string) (*whitelist.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, entry := range r.entries {
		if entry.Legajo == legajo && entry.Active {
			return &entry, nil
		}
	}
	return nil, nil
}

func (r *WhitelistRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return r.modify(id, func(e *whitelist.Entry) { e.Active = active })
}

func (r *WhitelistRepository) UpdateMotive(ctx context.Context, id int64, motive *string) error {
	return r.modify(id, func(e *whitelist.Entry) { e.Motive = motive })
}

func (r *WhitelistRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[id]; !ok {
		return whitelist.ErrWhitelistEntryNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *WhitelistRepository) List(ctx context.Context) ([]whitelist.Entry, error) {
	return r.filter(func(whitelist.Entry) bool { return true }), nil
}

func (r *WhitelistRepository) ListActive(ctx context.Context) ([]whitelist.Entry, error) {
	return r.filter(func(e whitelist.Entry) bool { return e.Active }), nil
}

// LockEmployee is a no-op, see ExceptionRepository.LockEmployee.
func (r *WhitelistRepository) LockEmployee(ctx context.Context, legajo string) error {
	return nil
}

func (r *WhitelistRepository) modify(id int64, fn func(*whitelist.Entry)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return whitelist.ErrWhitelistEntryNotFound
	}
	fn(&entry)
	r.entries[id] = entry
	return nil
}

func (r *WhitelistRepository) filter(keep func(whitelist.Entry) bool) []whitelist.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []whitelist.Entry
	for _, e := range r.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
