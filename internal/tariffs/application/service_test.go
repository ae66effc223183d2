package application

import (
	"context"
	"errors"
	"testing"

	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/tariffs/domain"
	"tariff-simulator/internal/tariffs/infrastructure/memory"
)

func newTestService(t *testing.T, seed ...rating.Tariff) *Service {
	t.Helper()
	service, err := NewService(memory.NewTariffRepository(seed...))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	return service
}

func TestCreateAssignsIDAndTrims(t *testing.T) {
	service := newTestService(t)
	created, err := service.Create(context.Background(), rating.Tariff{CompanyName: "  Acme  ", Promo: " spring "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.CompanyName != "Acme" || created.Promo != "spring" {
		t.Fatalf("unexpected tariff: %+v", created)
	}
	list, _ := service.ListTariffs(context.Background())
	if len(list) != 1 || list[0].ID != created.ID {
		t.Fatalf("expected stored tariff, got %+v", list)
	}
}

func TestCreateValidates(t *testing.T) {
	service := newTestService(t)
	if _, err := service.Create(context.Background(), rating.Tariff{CompanyName: " "}); !errors.Is(err, rating.ErrEmptyCompanyName) {
		t.Fatalf("expected ErrEmptyCompanyName, got %v", err)
	}
	if _, err := service.Create(context.Background(), rating.Tariff{CompanyName: "Acme", SurplusCompensationPrice: -1}); !errors.Is(err, rating.ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
}

func TestUpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, rating.Tariff{ID: "t-1", CompanyName: "Acme"})

	updated, err := service.Update(ctx, " t-1 ", rating.Tariff{ID: "ignored", CompanyName: "Acme Plus"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != "t-1" || updated.CompanyName != "Acme Plus" {
		t.Fatalf("unexpected update: %+v", updated)
	}
	if _, err := service.Update(ctx, "", rating.Tariff{CompanyName: "x"}); !errors.Is(err, tariffs.ErrEmptyTariffID) {
		t.Fatalf("expected ErrEmptyTariffID, got %v", err)
	}
	if _, err := service.Update(ctx, "nope", rating.Tariff{CompanyName: "x"}); !errors.Is(err, tariffs.ErrTariffNotFound) {
		t.Fatalf("expected ErrTariffNotFound, got %v", err)
	}
	if err := service.Delete(ctx, "t-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := service.Get(ctx, "t-1"); !errors.Is(err, tariffs.ErrTariffNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestSeedSkipsExisting(t *testing.T) {
	ctx := context.Background()
	service := newTestService(t, rating.Tariff{ID: "a", CompanyName: "Kept"})

	added, err := service.Seed(ctx, []rating.Tariff{
		{ID: "a", CompanyName: "Overwritten?"},
		{ID: "b", CompanyName: "Beta"},
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if added != 1 {
		t.Fatalf("expected 1 added, got %d", added)
	}
	got, _ := service.Get(ctx, "a")
	if got.CompanyName != "Kept" {
		t.Fatalf("seed must not overwrite existing tariffs, got %+v", got)
	}

	if _, err := service.Seed(ctx, []rating.Tariff{{ID: "c"}}); err == nil {
		t.Fatalf("expected invalid seed entry to fail")
	}
}

func TestNewServiceNilRepository(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatalf("expected error for nil repository")
	}
}
