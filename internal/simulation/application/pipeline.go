package application

import (
	"errors"

	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/ingestion/infrastructure/decoder"
	"tariff-simulator/internal/rating/domain"
	"tariff-simulator/internal/simulation/domain"
)

// Error codes exposed to API callers and metrics.
const (
	CodeDecode          = "DECODE_ERROR"
	CodeSectionNotFound = "SECTION_NOT_FOUND"
	CodeMissingColumns  = "MISSING_COLUMNS"
	CodeNoUsableData    = "NO_USABLE_DATA"
	CodeNoTariffs       = "NO_TARIFFS"
	CodeInternal        = "INTERNAL"
)

// Pipeline runs decode, section location, field resolution, aggregation,
// rating and ranking in sequence. Any stage failure aborts the run.
type Pipeline struct {
	layout ingestion.Layout
	engine *rating.Engine
}

// NewPipeline constructs a pipeline.
func NewPipeline(layout ingestion.Layout, engine *rating.Engine) (*Pipeline, error) {
	if engine == nil {
		return nil, errors.New("pipeline: nil rating engine")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	return &Pipeline{layout: layout, engine: engine}, nil
}

// Run simulates one export against tariffs. currentPlanName selects the plan
// savings are measured against.
func (p *Pipeline) Run(data []byte, kind ingestion.Kind, tariffs []rating.Tariff, currentPlanName string) (simulation.Result, error) {
	grid, err := decoder.Decode(data, kind)
	if err != nil {
		return simulation.Result{}, err
	}
	totals, supply, err := p.Extract(grid)
	if err != nil {
		return simulation.Result{}, err
	}
	costs, err := p.engine.Rate(totals.Annualized(), supply, tariffs)
	if err != nil {
		return simulation.Result{}, err
	}
	ranking, err := rating.Rank(costs, currentPlanName)
	if err != nil {
		return simulation.Result{}, err
	}
	return simulation.NewResult(totals, supply, ranking), nil
}

// Extract locates both sections of a decoded grid and aggregates them.
func (p *Pipeline) Extract(grid ingestion.Grid) (ingestion.PeriodTotals, ingestion.SupplyProfile, error) {
	sections, err := ingestion.LocateSections(grid, p.layout.SupplyMarker, p.layout.ReadingMarker)
	if err != nil {
		return ingestion.PeriodTotals{}, ingestion.SupplyProfile{}, err
	}
	supplySection, readingSection := sections[0], sections[1]

	readingFields, err := ingestion.ResolveFields(readingSection, readingSection.Header(grid), p.layout.ReadingFields())
	if err != nil {
		return ingestion.PeriodTotals{}, ingestion.SupplyProfile{}, err
	}
	supplyFields, err := ingestion.ResolveFields(supplySection, supplySection.Header(grid), p.layout.SupplyFields())
	if err != nil {
		return ingestion.PeriodTotals{}, ingestion.SupplyProfile{}, err
	}

	totals, err := ingestion.AggregateReadings(ingestion.ExtractReadings(grid, readingSection, readingFields))
	if err != nil {
		return ingestion.PeriodTotals{}, ingestion.SupplyProfile{}, err
	}
	return totals, ingestion.ExtractSupply(grid, supplySection, supplyFields), nil
}

// ErrorCode maps a pipeline error to its API code.
func ErrorCode(err error) string {
	var (
		decodeErr  *ingestion.DecodeError
		sectionErr *ingestion.SectionNotFoundError
		columnsErr *ingestion.MissingColumnsError
		noDataErr  *ingestion.NoUsableDataError
		tariffsErr *rating.NoTariffsError
	)
	switch {
	case errors.As(err, &decodeErr):
		return CodeDecode
	case errors.As(err, &sectionErr):
		return CodeSectionNotFound
	case errors.As(err, &columnsErr):
		return CodeMissingColumns
	case errors.As(err, &noDataErr):
		return CodeNoUsableData
	case errors.As(err, &tariffsErr):
		return CodeNoTariffs
	default:
		return CodeInternal
	}
}
