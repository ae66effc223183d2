package memory

import (
	"context"
	"sort"
	"sync"

	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
)

// TariffRepository is an in-memory tariff catalog.
type TariffRepository struct {
	mu   sync.RWMutex
	data map[string]rating.Tariff
}

// NewTariffRepository constructs a repository holding seed.
func NewTariffRepository(seed ...rating.Tariff) *TariffRepository {
	repo := &TariffRepository{data: make(map[string]rating.Tariff, len(seed))}
	for _, tariff := range seed {
		repo.data[tariff.ID] = tariff
	}
	return repo
}

// List returns tariffs ordered by company name, then id.
func (r *TariffRepository) List(ctx context.Context) ([]rating.Tariff, error) {
	_ = ctx
	r.mu.RLock()
	out := make([]rating.Tariff, 0, len(r.data))
	for _, tariff := range r.data {
		out = append(out, tariff)
	}
	r.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CompanyName == out[j].CompanyName {
			return out[i].ID < out[j].ID
		}
		return out[i].CompanyName < out[j].CompanyName
	})
	return out, nil
}

// Get loads a tariff by id.
func (r *TariffRepository) Get(ctx context.Context, id string) (*rating.Tariff, error) {
	_ = ctx
	r.mu.RLock()
	tariff, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, tariffs.ErrTariffNotFound
	}
	return &tariff, nil
}

// Create stores a new tariff.
func (r *TariffRepository) Create(ctx context.Context, tariff rating.Tariff) error {
	_ = ctx
	if tariff.ID == "" {
		return tariffs.ErrEmptyTariffID
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[tariff.ID]; ok {
		return tariffs.ErrDuplicateTariff
	}
	r.data[tariff.ID] = tariff
	return nil
}

// Update replaces an existing tariff.
func (r *TariffRepository) Update(ctx context.Context, tariff rating.Tariff) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[tariff.ID]; !ok {
		return tariffs.ErrTariffNotFound
	}
	r.data[tariff.ID] = tariff
	return nil
}

// Delete removes a tariff.
func (r *TariffRepository) Delete(ctx context.Context, id string) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return tariffs.ErrTariffNotFound
	}
	delete(r.data, id)
	return nil
}
