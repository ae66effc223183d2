package rating

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"tariff-simulator/internal/ingestion/domain"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTaxCascadeOnSubtotal100(t *testing.T) {
	special, vat, total := DefaultTaxPolicy().Apply(100)
	if !near(special, 0.5) || !near(vat, 21.105) || !near(total, 121.605) {
		t.Fatalf("unexpected cascade: %v %v %v", special, vat, total)
	}
}

func TestRateComputesEveryComponent(t *testing.T) {
	engine, err := NewEngine(DefaultTaxPolicy())
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	annual := ingestion.PeriodValues{1000, 500, 250}
	supply := ingestion.SupplyProfile{ContractedPower: ingestion.PeriodValues{4, 2}}
	tariff := Tariff{
		ID:               "t1",
		CompanyName:      "Luz Norte",
		EnergyPrices:     ingestion.PeriodValues{0.2, 0.1, 0.05},
		PowerPrices:      ingestion.PeriodValues{0.1, 0.05},
		FixedTermMonthly: 5,
	}
	costs, err := engine.Rate(annual, supply, []Tariff{tariff})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	cost := costs[0]
	// energy 200+50+12.5, power (0.4+0.1)*365, fixed 60
	if !near(cost.ConsumptionCost, 262.5) || !near(cost.OtherCosts, 182.5) || !near(cost.FixedFee, 60) {
		t.Fatalf("unexpected components: %+v", cost)
	}
	if !near(cost.Subtotal, 505) {
		t.Fatalf("unexpected subtotal: %v", cost.Subtotal)
	}
	if !near(cost.SpecialTax, 2.525) || !near(cost.VAT, 106.58025) || !near(cost.TotalCost, 614.10525) {
		t.Fatalf("unexpected taxes: %+v", cost)
	}
	if cost.TariffID != "t1" || cost.Name != "Luz Norte" || cost.Rank != 0 {
		t.Fatalf("unexpected identity: %+v", cost)
	}
}

func TestRateWithoutTariffs(t *testing.T) {
	engine, _ := NewEngine(DefaultTaxPolicy())
	_, err := engine.Rate(ingestion.PeriodValues{1}, ingestion.SupplyProfile{}, nil)
	var noTariffs *NoTariffsError
	if !errors.As(err, &noTariffs) || !errors.Is(err, ErrNoTariffs) {
		t.Fatalf("expected NoTariffsError, got %v", err)
	}
}

func TestRateIsIdempotent(t *testing.T) {
	engine, _ := NewEngine(TaxPolicy{SpecialTaxRate: 0.0511, VATRate: 0.1})
	annual := ingestion.PeriodValues{123.4, 56.7, 8.9, 1, 2, 3}
	supply := ingestion.SupplyProfile{ContractedPower: ingestion.PeriodValues{3.3, 3.3, 3.3, 3.3, 3.3, 3.3}}
	tariffs := []Tariff{
		{CompanyName: "A", EnergyPrices: ingestion.PeriodValues{0.11, 0.12, 0.13, 0.14, 0.15, 0.16}, PowerPrices: ingestion.PeriodValues{0.07, 0.01}},
		{CompanyName: "B", EnergyPrices: ingestion.PeriodValues{0.1, 0.1, 0.1}, FixedTermMonthly: 3.99},
	}
	first, err := engine.Rate(annual, supply, tariffs)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	second, _ := engine.Rate(annual, supply, tariffs)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical results, got %v and %v", first, second)
	}
}

func TestRateWithOnlyTwoPowerBands(t *testing.T) {
	engine, _ := NewEngine(DefaultTaxPolicy())
	supply := ingestion.SupplyProfile{ContractedPower: ingestion.PeriodValues{3.45, 3.45}}
	tariff := Tariff{
		CompanyName: "Six band",
		PowerPrices: ingestion.PeriodValues{0.1, 0.1, 0.1, 0.1, 0.1, 0.1},
	}
	costs, err := engine.Rate(ingestion.PeriodValues{100}, supply, []Tariff{tariff})
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if !near(costs[0].OtherCosts, 0.1*3.45*365*2) {
		t.Fatalf("expected only P1/P2 power billed, got %v", costs[0].OtherCosts)
	}
}

func TestNewEngineRejectsBadRates(t *testing.T) {
	for _, policy := range []TaxPolicy{{SpecialTaxRate: -0.1}, {VATRate: 1}} {
		if _, err := NewEngine(policy); !errors.Is(err, ErrInvalidTaxRate) {
			t.Fatalf("expected ErrInvalidTaxRate for %+v, got %v", policy, err)
		}
	}
}

func TestTariffValidate(t *testing.T) {
	if err := (Tariff{CompanyName: " "}).Validate(); !errors.Is(err, ErrEmptyCompanyName) {
		t.Fatalf("expected ErrEmptyCompanyName, got %v", err)
	}
	bad := Tariff{CompanyName: "X", PowerPrices: ingestion.PeriodValues{0, 0, -1}}
	if err := bad.Validate(); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("expected ErrNegativePrice, got %v", err)
	}
	if err := (Tariff{CompanyName: "X", FixedTermMonthly: 4}).Validate(); err != nil {
		t.Fatalf("expected valid tariff, got %v", err)
	}
}
