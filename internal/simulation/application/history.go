package application

import (
	"context"

	"github.com/google/uuid"

	"tariff-simulator/internal/simulation/domain"
)

// Caller identifies who is reading or deleting history.
type Caller struct {
	UserID string
	Admin  bool
}

func (c Caller) canAccess(record *simulation.Record) bool {
	return c.Admin || (c.UserID != "" && c.UserID == record.UserID)
}

// List returns a user's simulations, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]simulation.Record, error) {
	if userID == "" {
		return nil, simulation.ErrEmptyUserID
	}
	return s.history.ListByUser(ctx, userID, s.cfg.HistoryLimit)
}

// Get loads one record the caller owns. Admins may read any record.
func (s *Service) Get(ctx context.Context, id uuid.UUID, caller Caller) (*simulation.Record, error) {
	record, err := s.history.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.canAccess(record) {
		return nil, simulation.ErrForbidden
	}
	return record, nil
}

// Delete removes one record the caller owns. Admins may delete any record.
func (s *Service) Delete(ctx context.Context, id uuid.UUID, caller Caller) (*simulation.Record, error) {
	record, err := s.Get(ctx, id, caller)
	if err != nil {
		return nil, err
	}
	if err := s.history.Delete(ctx, id); err != nil {
		return nil, err
	}
	return record, nil
}
