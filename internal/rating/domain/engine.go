package rating

import (
	"tariff-simulator/internal/ingestion/domain"
)

// DaysPerYear bills contracted power for a full year.
const DaysPerYear = ingestion.DaysPerYear

// CompanyCost is the annual cost of one tariff. OtherCosts is the power term.
type CompanyCost struct {
	TariffID        string  `json:"tariff_id,omitempty"`
	Name            string  `json:"name"`
	Rank            int     `json:"rank"`
	FixedFee        float64 `json:"fixed_fee"`
	ConsumptionCost float64 `json:"consumption_cost"`
	OtherCosts      float64 `json:"other_costs"`
	Subtotal        float64 `json:"subtotal"`
	SpecialTax      float64 `json:"special_tax"`
	VAT             float64 `json:"vat"`
	TotalCost       float64 `json:"total_cost"`
}

// Engine rates annualized consumption against tariffs.
type Engine struct {
	taxes TaxPolicy
}

// NewEngine constructs an engine with validated tax rates.
func NewEngine(taxes TaxPolicy) (*Engine, error) {
	if err := taxes.Validate(); err != nil {
		return nil, err
	}
	return &Engine{taxes: taxes}, nil
}

// Taxes returns the engine's tax policy.
func (e *Engine) Taxes() TaxPolicy {
	return e.taxes
}

// Rate returns one cost per tariff in input order. Rank is left zero.
// Nothing is rounded.
func (e *Engine) Rate(annualized ingestion.PeriodValues, supply ingestion.SupplyProfile, tariffs []Tariff) ([]CompanyCost, error) {
	if len(tariffs) == 0 {
		return nil, &NoTariffsError{}
	}
	costs := make([]CompanyCost, 0, len(tariffs))
	for _, tariff := range tariffs {
		costs = append(costs, e.rateOne(annualized, supply, tariff))
	}
	return costs, nil
}

func (e *Engine) rateOne(annualized ingestion.PeriodValues, supply ingestion.SupplyProfile, tariff Tariff) CompanyCost {
	var energy, power float64
	for p := 0; p < ingestion.Periods; p++ {
		energy += tariff.EnergyPrices[p] * annualized[p]
		power += tariff.PowerPrices[p] * supply.ContractedPower[p] * DaysPerYear
	}
	fixed := tariff.FixedTermMonthly * 12
	subtotal := energy + power + fixed
	special, vat, total := e.taxes.Apply(subtotal)
	return CompanyCost{
		TariffID:        tariff.ID,
		Name:            tariff.CompanyName,
		FixedFee:        fixed,
		ConsumptionCost: energy,
		OtherCosts:      power,
		Subtotal:        subtotal,
		SpecialTax:      special,
		VAT:             vat,
		TotalCost:       total,
	}
}

// Apply runs the tax cascade: VAT is charged on subtotal plus special tax.
func (p TaxPolicy) Apply(subtotal float64) (specialTax, vat, total float64) {
	specialTax = subtotal * p.SpecialTaxRate
	vat = (subtotal + specialTax) * p.VATRate
	total = subtotal + specialTax + vat
	return specialTax, vat, total
}
