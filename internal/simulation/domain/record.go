package simulation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is a stored simulation owned by one user.
type Record struct {
	ID        uuid.UUID `json:"id"`
	UserID    string    `json:"user_id"`
	FileName  string    `json:"file_name"`
	Result    Result    `json:"result"`
	Narrative string    `json:"narrative,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord stamps a fresh record for userID.
func NewRecord(userID, fileName string, result Result, narrative string, now time.Time) (*Record, error) {
	if userID == "" {
		return nil, ErrEmptyUserID
	}
	return &Record{
		ID:        uuid.New(),
		UserID:    userID,
		FileName:  fileName,
		Result:    result,
		Narrative: narrative,
		CreatedAt: now.UTC(),
	}, nil
}

// Repository persists simulation history.
type Repository interface {
	Save(ctx context.Context, record *Record) error
	Get(ctx context.Context, id uuid.UUID) (*Record, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Record, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
