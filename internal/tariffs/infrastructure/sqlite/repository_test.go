package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
)

func openTest(t *testing.T) *TariffRepository {
	t.Helper()
	repo, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestTariffRepositoryCRUD(t *testing.T) {
	ctx := context.Background()
	repo := openTest(t)

	alpha := rating.Tariff{
		ID:                       "alpha",
		CompanyName:              "Alpha",
		EnergyPrices:             ingestion.PeriodValues{0.15, 0.12, 0.1, 0.09, 0.08, 0.07},
		PowerPrices:              ingestion.PeriodValues{0.1, 0.05},
		FixedTermMonthly:         3.5,
		SurplusCompensationPrice: 0.06,
		Promo:                    "first month free",
	}
	if err := repo.Create(ctx, alpha); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, rating.Tariff{ID: "aaa", CompanyName: "Zeta"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, alpha); !errors.Is(err, tariffs.ErrDuplicateTariff) {
		t.Fatalf("expected duplicate error, got %v", err)
	}

	got, err := repo.Get(ctx, "alpha")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if *got != alpha {
		t.Fatalf("round trip mismatch: %+v", got)
	}

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].CompanyName != "Alpha" || list[1].CompanyName != "Zeta" {
		t.Fatalf("expected company name order, got %+v", list)
	}

	alpha.FixedTermMonthly = 4
	if err := repo.Update(ctx, alpha); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = repo.Get(ctx, "alpha")
	if got.FixedTermMonthly != 4 {
		t.Fatalf("update not applied: %+v", got)
	}
	if err := repo.Update(ctx, rating.Tariff{ID: "missing", CompanyName: "x"}); !errors.Is(err, tariffs.ErrTariffNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}

	if err := repo.Delete(ctx, "alpha"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Get(ctx, "alpha"); !errors.Is(err, tariffs.ErrTariffNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "alpha"); !errors.Is(err, tariffs.ErrTariffNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}

func TestTariffRepositoryPersistsToFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "catalog.db")

	repo, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := repo.Create(ctx, rating.Tariff{ID: "t-1", CompanyName: "Acme"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_ = repo.Close()

	reopened, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	list, err := reopened.List(ctx)
	if err != nil || len(list) != 1 || list[0].ID != "t-1" {
		t.Fatalf("expected persisted tariff, got %+v, %v", list, err)
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
