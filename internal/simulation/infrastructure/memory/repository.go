package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/simulation/domain"
)

// HistoryRepository is an in-memory simulation history.
type HistoryRepository struct {
	mu   sync.RWMutex
	data map[uuid.UUID]simulation.Record
}

// NewHistoryRepository constructs a repository.
func NewHistoryRepository() *HistoryRepository {
	return &HistoryRepository{data: make(map[uuid.UUID]simulation.Record)}
}

// Save stores a record (overwrites existing).
func (r *HistoryRepository) Save(ctx context.Context, record *simulation.Record) error {
	_ = ctx
	if record == nil {
		return simulation.ErrNilRecord
	}
	if record.UserID == "" {
		return simulation.ErrEmptyUserID
	}
	r.mu.Lock()
	r.data[record.ID] = cloneRecord(*record)
	r.mu.Unlock()
	return nil
}

// Get loads a record by id.
func (r *HistoryRepository) Get(ctx context.Context, id uuid.UUID) (*simulation.Record, error) {
	_ = ctx
	r.mu.RLock()
	record, ok := r.data[id]
	r.mu.RUnlock()
	if !ok {
		return nil, simulation.ErrRecordNotFound
	}
	out := cloneRecord(record)
	return &out, nil
}

// ListByUser returns a user's records, newest first. limit <= 0 means all.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]simulation.Record, error) {
	_ = ctx
	r.mu.RLock()
	var out []simulation.Record
	for _, record := range r.data {
		if record.UserID == userID {
			out = append(out, cloneRecord(record))
		}
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete removes a record.
func (r *HistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return simulation.ErrRecordNotFound
	}
	delete(r.data, id)
	return nil
}

// Count returns the number of stored records.
func (r *HistoryRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

func cloneRecord(record simulation.Record) simulation.Record {
	if record.Result.Details != nil {
		details := make([]rating.CompanyCost, len(record.Result.Details))
		copy(details, record.Result.Details)
		record.Result.Details = details
	}
	return record
}
