package ingestion

import (
	"errors"
	"fmt"
)

// Periods is the number of time-of-use bands (P1..P6).
const Periods = 6

// PeriodValues holds one value per band, index 0 is P1.
type PeriodValues [Periods]float64

// Sum adds all bands.
func (v PeriodValues) Sum() float64 {
	var total float64
	for _, value := range v {
		total += value
	}
	return total
}

// Scale multiplies every band by factor.
func (v PeriodValues) Scale(factor float64) PeriodValues {
	var out PeriodValues
	for i, value := range v {
		out[i] = value * factor
	}
	return out
}

// Semantic field names resolved from section headers.
const FieldReadingDate = "reading date"

// ConsumptionField names the consumption column of band p (1-based).
func ConsumptionField(p int) string { return fmt.Sprintf("consumption P%d", p) }

// PowerField names the contracted power column of band p (1-based).
func PowerField(p int) string { return fmt.Sprintf("contracted power P%d", p) }

// Layout names the markers and column headers of a meter-reading export.
type Layout struct {
	SupplyMarker       string          `yaml:"supply_marker"`
	ReadingMarker      string          `yaml:"reading_marker"`
	ReadingDateHeader  string          `yaml:"reading_date_header"`
	ConsumptionHeaders [Periods]string `yaml:"consumption_headers"`
	PowerHeaders       [Periods]string `yaml:"power_headers"`
}

// DefaultLayout matches the distributor exports the simulator was built for.
func DefaultLayout() Layout {
	l := Layout{
		SupplyMarker:      "Datos suministro",
		ReadingMarker:     "Datos lecturas",
		ReadingDateHeader: "Fecha lectura",
	}
	for i := 0; i < Periods; i++ {
		l.ConsumptionHeaders[i] = fmt.Sprintf("Consumo Activa P%d", i+1)
		l.PowerHeaders[i] = fmt.Sprintf("Potencia contratada P%d", i+1)
	}
	return l
}

// Validate checks that every marker and header is named.
func (l Layout) Validate() error {
	if l.SupplyMarker == "" || l.ReadingMarker == "" {
		return errors.New("layout: section markers required")
	}
	if l.ReadingDateHeader == "" {
		return errors.New("layout: reading date header required")
	}
	for i := 0; i < Periods; i++ {
		if l.ConsumptionHeaders[i] == "" {
			return fmt.Errorf("layout: consumption header P%d required", i+1)
		}
		if l.PowerHeaders[i] == "" {
			return fmt.Errorf("layout: power header P%d required", i+1)
		}
	}
	return nil
}

// ReadingFields lists the reading-section columns. Date and P1..P3 are required.
func (l Layout) ReadingFields() []FieldSpec {
	specs := []FieldSpec{{Name: FieldReadingDate, Header: l.ReadingDateHeader, Required: true}}
	for i := 0; i < Periods; i++ {
		specs = append(specs, FieldSpec{
			Name:     ConsumptionField(i + 1),
			Header:   l.ConsumptionHeaders[i],
			Required: i < 3,
		})
	}
	return specs
}

// SupplyFields lists the supply-section columns. P1 and P2 are required.
func (l Layout) SupplyFields() []FieldSpec {
	specs := make([]FieldSpec, 0, Periods)
	for i := 0; i < Periods; i++ {
		specs = append(specs, FieldSpec{
			Name:     PowerField(i + 1),
			Header:   l.PowerHeaders[i],
			Required: i < 2,
		})
	}
	return specs
}
