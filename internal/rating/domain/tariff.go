package rating

import (
	"fmt"
	"strings"

	"tariff-simulator/internal/ingestion/domain"
)

// Tariff is a retail electricity plan. Energy prices are €/kWh, power prices
// €/kW/day and the fixed term is €/month.
type Tariff struct {
	ID                       string                 `json:"id" yaml:"id"`
	CompanyName              string                 `json:"company_name" yaml:"company_name"`
	EnergyPrices             ingestion.PeriodValues `json:"energy_prices" yaml:"energy_prices"`
	PowerPrices              ingestion.PeriodValues `json:"power_prices" yaml:"power_prices"`
	FixedTermMonthly         float64                `json:"fixed_term_monthly" yaml:"fixed_term_monthly"`
	SurplusCompensationPrice float64                `json:"surplus_compensation_price" yaml:"surplus_compensation_price"`
	Promo                    string                 `json:"promo,omitempty" yaml:"promo,omitempty"`
}

// Validate checks the tariff can be rated.
func (t Tariff) Validate() error {
	if strings.TrimSpace(t.CompanyName) == "" {
		return ErrEmptyCompanyName
	}
	for i := 0; i < ingestion.Periods; i++ {
		if t.EnergyPrices[i] < 0 {
			return fmt.Errorf("%w: energy price P%d", ErrNegativePrice, i+1)
		}
		if t.PowerPrices[i] < 0 {
			return fmt.Errorf("%w: power price P%d", ErrNegativePrice, i+1)
		}
	}
	if t.FixedTermMonthly < 0 {
		return fmt.Errorf("%w: fixed term", ErrNegativePrice)
	}
	if t.SurplusCompensationPrice < 0 {
		return fmt.Errorf("%w: surplus compensation", ErrNegativePrice)
	}
	return nil
}

// TaxPolicy holds the tax cascade rates.
type TaxPolicy struct {
	SpecialTaxRate float64 `json:"special_tax_rate" yaml:"special_tax_rate"`
	VATRate        float64 `json:"vat_rate" yaml:"vat_rate"`
}

// DefaultTaxPolicy is the Spanish electricity tax (0.5%) followed by VAT (21%).
func DefaultTaxPolicy() TaxPolicy {
	return TaxPolicy{SpecialTaxRate: 0.005, VATRate: 0.21}
}

// Validate checks both rates are in [0, 1).
func (p TaxPolicy) Validate() error {
	if p.SpecialTaxRate < 0 || p.SpecialTaxRate >= 1 {
		return fmt.Errorf("%w: special tax %v", ErrInvalidTaxRate, p.SpecialTaxRate)
	}
	if p.VATRate < 0 || p.VATRate >= 1 {
		return fmt.Errorf("%w: vat %v", ErrInvalidTaxRate, p.VATRate)
	}
	return nil
}
