package simulation

import (
	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/rating/domain"
)

// Summary is the headline of a simulation.
type Summary struct {
	AnnualConsumption   ingestion.PeriodValues `json:"annual_consumption_kwh"`
	TotalConsumption    float64                `json:"total_consumption_kwh"`
	Period              string                 `json:"period"`
	ObservedDays        int                    `json:"observed_days"`
	AnnualizationFactor float64                `json:"annualization_factor"`
	ContractedPower     ingestion.PeriodValues `json:"contracted_power_kw"`
	BestOption          rating.BestOption      `json:"best_option"`
	CurrentOption       rating.CurrentOption   `json:"current_option"`
}

// Result is the full outcome of a successful simulation run.
type Result struct {
	Summary Summary              `json:"summary"`
	Details []rating.CompanyCost `json:"details"`
}

// NewResult assembles a result from aggregated readings and a ranking.
func NewResult(totals ingestion.PeriodTotals, supply ingestion.SupplyProfile, ranking rating.Ranking) Result {
	annual := totals.Annualized()
	return Result{
		Summary: Summary{
			AnnualConsumption:   annual,
			TotalConsumption:    annual.Sum(),
			Period:              totals.Period(),
			ObservedDays:        totals.ObservedDays,
			AnnualizationFactor: totals.AnnualizationFactor,
			ContractedPower:     supply.ContractedPower,
			BestOption:          ranking.Best,
			CurrentOption:       ranking.Current,
		},
		Details: ranking.Costs,
	}
}
