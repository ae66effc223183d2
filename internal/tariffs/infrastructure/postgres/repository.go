package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
)

const (
	defaultTariffTable = "tariffs"

	tariffColumns = `id, company_name,
	energy_p1, energy_p2, energy_p3, energy_p4, energy_p5, energy_p6,
	power_p1, power_p2, power_p3, power_p4, power_p5, power_p6,
	fixed_term_monthly, surplus_compensation_price, promo`

	uniqueViolation = "23505"
)

// TariffRepository is a Postgres tariff catalog.
type TariffRepository struct {
	db    *sql.DB
	table string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*TariffRepository)

// WithTable overrides the default table.
func WithTable(table string) RepositoryOption {
	return func(repo *TariffRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewTariffRepository constructs a repository.
func NewTariffRepository(db *sql.DB, opts ...RepositoryOption) *TariffRepository {
	repo := &TariffRepository{db: db, table: defaultTariffTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// List returns tariffs ordered by company name, then id.
func (r *TariffRepository) List(ctx context.Context) ([]rating.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff repo: nil db")
	}
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY company_name, id`, tariffColumns, r.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []rating.Tariff
	for rows.Next() {
		tariff, err := scanTariff(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tariff)
	}
	return out, rows.Err()
}

// Get loads a tariff by id.
func (r *TariffRepository) Get(ctx context.Context, id string) (*rating.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff repo: nil db")
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, tariffColumns, r.table)
	tariff, err := scanTariff(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, tariffs.ErrTariffNotFound
		}
		return nil, err
	}
	return &tariff, nil
}

// Create inserts a tariff.
func (r *TariffRepository) Create(ctx context.Context, tariff rating.Tariff) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	if tariff.ID == "" {
		return tariffs.ErrEmptyTariffID
	}
	query := fmt.Sprintf(`
INSERT INTO %s (%s)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17)`, r.table, tariffColumns)
	_, err := r.db.ExecContext(ctx, query, tariffArgs(tariff)...)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return tariffs.ErrDuplicateTariff
	}
	return err
}

// Update replaces a tariff.
func (r *TariffRepository) Update(ctx context.Context, tariff rating.Tariff) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	query := fmt.Sprintf(`
UPDATE %s SET
	company_name = $2,
	energy_p1 = $3, energy_p2 = $4, energy_p3 = $5, energy_p4 = $6, energy_p5 = $7, energy_p6 = $8,
	power_p1 = $9, power_p2 = $10, power_p3 = $11, power_p4 = $12, power_p5 = $13, power_p6 = $14,
	fixed_term_monthly = $15,
	surplus_compensation_price = $16,
	promo = $17,
	updated_at = NOW()
WHERE id = $1`, r.table)
	res, err := r.db.ExecContext(ctx, query, tariffArgs(tariff)...)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a tariff.
func (r *TariffRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("tariff repo: nil db")
	}
	res, err := r.db.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.table), id)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Count returns the catalog size.
func (r *TariffRepository) Count(ctx context.Context) (int, error) {
	if r == nil || r.db == nil {
		return 0, errors.New("tariff repo: nil db")
	}
	var count int
	err := r.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT COUNT(*) FROM %s`, r.table)).Scan(&count)
	return count, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTariff(row rowScanner) (rating.Tariff, error) {
	var t rating.Tariff
	err := row.Scan(
		&t.ID, &t.CompanyName,
		&t.EnergyPrices[0], &t.EnergyPrices[1], &t.EnergyPrices[2], &t.EnergyPrices[3], &t.EnergyPrices[4], &t.EnergyPrices[5],
		&t.PowerPrices[0], &t.PowerPrices[1], &t.PowerPrices[2], &t.PowerPrices[3], &t.PowerPrices[4], &t.PowerPrices[5],
		&t.FixedTermMonthly, &t.SurplusCompensationPrice, &t.Promo,
	)
	return t, err
}

func tariffArgs(t rating.Tariff) []any {
	return []any{
		t.ID, t.CompanyName,
		t.EnergyPrices[0], t.EnergyPrices[1], t.EnergyPrices[2], t.EnergyPrices[3], t.EnergyPrices[4], t.EnergyPrices[5],
		t.PowerPrices[0], t.PowerPrices[1], t.PowerPrices[2], t.PowerPrices[3], t.PowerPrices[4], t.PowerPrices[5],
		t.FixedTermMonthly, t.SurplusCompensationPrice, t.Promo,
	}
}

func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tariffs.ErrTariffNotFound
	}
	return nil
}
