package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"tariff-simulator/internal/simulation/domain"
)

const defaultHistoryTable = "simulations"

// HistoryRepository stores simulation history in Postgres.
type HistoryRepository struct {
	db    *sql.DB
	table string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*HistoryRepository)

// WithTable overrides the default table.
func WithTable(table string) RepositoryOption {
	return func(repo *HistoryRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewHistoryRepository constructs a repository.
func NewHistoryRepository(db *sql.DB, opts ...RepositoryOption) *HistoryRepository {
	repo := &HistoryRepository{db: db, table: defaultHistoryTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Save upserts a record.
func (r *HistoryRepository) Save(ctx context.Context, record *simulation.Record) error {
	if r == nil || r.db == nil {
		return errors.New("history repo: nil db")
	}
	if record == nil {
		return simulation.ErrNilRecord
	}
	if record.UserID == "" {
		return simulation.ErrEmptyUserID
	}
	payload, err := json.Marshal(record.Result)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`
INSERT INTO %s (id, user_id, file_name, result, narrative, created_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (id) DO UPDATE SET
	file_name = EXCLUDED.file_name,
	result = EXCLUDED.result,
	narrative = EXCLUDED.narrative`, r.table)
	_, err = r.db.ExecContext(ctx, query, record.ID, record.UserID, record.FileName, payload, record.Narrative, record.CreatedAt.UTC())
	return err
}

// Get loads a record by id.
func (r *HistoryRepository) Get(ctx context.Context, id uuid.UUID) (*simulation.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("history repo: nil db")
	}
	query := fmt.Sprintf(`
SELECT id, user_id, file_name, result, narrative, created_at
FROM %s
WHERE id = $1`, r.table)
	record, err := scanRecord(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, simulation.ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

// ListByUser returns a user's records, newest first. limit <= 0 means all.
func (r *HistoryRepository) ListByUser(ctx context.Context, userID string, limit int) ([]simulation.Record, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("history repo: nil db")
	}
	if userID == "" {
		return nil, simulation.ErrEmptyUserID
	}
	query := fmt.Sprintf(`
SELECT id, user_id, file_name, result, narrative, created_at
FROM %s
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`, r.table)
	args := []any{userID}
	if limit > 0 {
		query += "\nLIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []simulation.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *record)
	}
	return out, rows.Err()
}

// Delete removes a record.
func (r *HistoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if r == nil || r.db == nil {
		return errors.New("history repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return simulation.ErrRecordNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*simulation.Record, error) {
	var record simulation.Record
	var payload []byte
	var narrative sql.NullString
	if err := row.Scan(&record.ID, &record.UserID, &record.FileName, &payload, &narrative, &record.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &record.Result); err != nil {
		return nil, fmt.Errorf("decode simulation result: %w", err)
	}
	record.Narrative = narrative.String
	record.CreatedAt = record.CreatedAt.UTC()
	return &record, nil
}
