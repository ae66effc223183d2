package sqlite

import (
	"context"
	"database/sql"
	"errors"

	_ "modernc.org/sqlite"

	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS tariffs (
	id TEXT PRIMARY KEY,
	company_name TEXT NOT NULL,
	energy_p1 REAL NOT NULL DEFAULT 0,
	energy_p2 REAL NOT NULL DEFAULT 0,
	energy_p3 REAL NOT NULL DEFAULT 0,
	energy_p4 REAL NOT NULL DEFAULT 0,
	energy_p5 REAL NOT NULL DEFAULT 0,
	energy_p6 REAL NOT NULL DEFAULT 0,
	power_p1 REAL NOT NULL DEFAULT 0,
	power_p2 REAL NOT NULL DEFAULT 0,
	power_p3 REAL NOT NULL DEFAULT 0,
	power_p4 REAL NOT NULL DEFAULT 0,
	power_p5 REAL NOT NULL DEFAULT 0,
	power_p6 REAL NOT NULL DEFAULT 0,
	fixed_term_monthly REAL NOT NULL DEFAULT 0,
	surplus_compensation_price REAL NOT NULL DEFAULT 0,
	promo TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_tariffs_company_name ON tariffs(company_name);`

const tariffColumns = `id, company_name,
	energy_p1, energy_p2, energy_p3, energy_p4, energy_p5, energy_p6,
	power_p1, power_p2, power_p3, power_p4, power_p5, power_p6,
	fixed_term_monthly, surplus_compensation_price, promo`

// TariffRepository is a tariff catalog in a local SQLite file.
type TariffRepository struct {
	db *sql.DB
}

// Open opens (creating when needed) the catalog at path. Use ":memory:" for
// a throwaway catalog.
func Open(ctx context.Context, path string) (*TariffRepository, error) {
	if path == "" {
		return nil, errors.New("tariff sqlite: empty path")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// one connection so ":memory:" is shared
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &TariffRepository{db: db}, nil
}

// Close closes the database.
func (r *TariffRepository) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// List returns tariffs ordered by company name, then id.
func (r *TariffRepository) List(ctx context.Context) ([]rating.Tariff, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("tariff sqlite: nil db")
	}
	rows, err := r.db.QueryContext(ctx, `SELECT `+tariffColumns+` FROM tariffs ORDER BY company_name, id`)
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
		return nil, errors.New("tariff sqlite: nil db")
	}
	tariff, err := scanTariff(r.db.QueryRowContext(ctx, `SELECT `+tariffColumns+` FROM tariffs WHERE id = ?`, id))
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
		return errors.New("tariff sqlite: nil db")
	}
	if tariff.ID == "" {
		return tariffs.ErrEmptyTariffID
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO tariffs (`+tariffColumns+`)
VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(id) DO NOTHING`, tariffArgs(tariff)...)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tariffs.ErrDuplicateTariff
	}
	return nil
}

// Update replaces a tariff.
func (r *TariffRepository) Update(ctx context.Context, tariff rating.Tariff) error {
	if r == nil || r.db == nil {
		return errors.New("tariff sqlite: nil db")
	}
	args := append(tariffArgs(tariff)[1:], tariff.ID)
	res, err := r.db.ExecContext(ctx, `
UPDATE tariffs SET
	company_name = ?,
	energy_p1 = ?, energy_p2 = ?, energy_p3 = ?, energy_p4 = ?, energy_p5 = ?, energy_p6 = ?,
	power_p1 = ?, power_p2 = ?, power_p3 = ?, power_p4 = ?, power_p5 = ?, power_p6 = ?,
	fixed_term_monthly = ?,
	surplus_compensation_price = ?,
	promo = ?
WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	return expectAffected(res)
}

// Delete removes a tariff.
func (r *TariffRepository) Delete(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return errors.New("tariff sqlite: nil db")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM tariffs WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return expectAffected(res)
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
