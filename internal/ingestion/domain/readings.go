package ingestion

import (
	"math"
	"time"
)

const (
	// DaysPerYear is the length of the reading window and the annualization base.
	DaysPerYear = 365

	dateLayout = "02/01/2006"
)

// ReadingRow is one row of the reading section.
type ReadingRow struct {
	Date        time.Time
	HasDate     bool
	Consumption PeriodValues
}

// PeriodTotals is the consumption of the most recent year of readings.
type PeriodTotals struct {
	Consumption         PeriodValues
	Total               float64
	WindowStart         time.Time
	WindowEnd           time.Time
	ObservedDays        int
	AnnualizationFactor float64
	Rows                int
}

// Annualized scales the raw sums to a 365-day year.
func (t PeriodTotals) Annualized() PeriodValues {
	return t.Consumption.Scale(t.AnnualizationFactor)
}

// Period formats the observed window as "dd/mm/yyyy - dd/mm/yyyy".
func (t PeriodTotals) Period() string {
	if t.WindowStart.IsZero() || t.WindowEnd.IsZero() {
		return ""
	}
	return t.WindowStart.Format(dateLayout) + " - " + t.WindowEnd.Format(dateLayout)
}

// ExtractReadings reads the data rows of the reading section. Unparsable or
// missing values count as zero; unresolved optional bands stay zero.
func ExtractReadings(g Grid, section Section, fields FieldMap) []ReadingRow {
	dateCol := fields.Column(FieldReadingDate)
	rows := section.DataRows(g)
	readings := make([]ReadingRow, 0, len(rows))
	for _, row := range rows {
		var reading ReadingRow
		if dateCol >= 0 && dateCol < len(row) {
			reading.Date, reading.HasDate = ParseDate(row[dateCol])
		}
		for p := 0; p < Periods; p++ {
			col := fields.Column(ConsumptionField(p + 1))
			if col < 0 || col >= len(row) {
				continue
			}
			reading.Consumption[p] = ParseNumber(row[col])
		}
		readings = append(readings, reading)
	}
	return readings
}

// AggregateReadings sums the rows falling in (latest-365d, latest] where latest
// is the most recent parsable reading date. Rows without a parsable date are
// left out of the window.
func AggregateReadings(rows []ReadingRow) (PeriodTotals, error) {
	var latest time.Time
	for _, row := range rows {
		if row.HasDate && row.Date.After(latest) {
			latest = row.Date
		}
	}
	if latest.IsZero() {
		return PeriodTotals{}, &NoUsableDataError{Reason: "no reading has a valid date"}
	}

	cutoff := latest.AddDate(0, 0, -DaysPerYear)
	totals := PeriodTotals{WindowEnd: latest}
	earliest := latest
	for _, row := range rows {
		if !row.HasDate || !row.Date.After(cutoff) || row.Date.After(latest) {
			continue
		}
		if row.Date.Before(earliest) {
			earliest = row.Date
		}
		for p := 0; p < Periods; p++ {
			totals.Consumption[p] += row.Consumption[p]
		}
		totals.Rows++
	}
	if totals.Rows == 0 {
		return PeriodTotals{}, &NoUsableDataError{Reason: "no readings in the last year"}
	}
	totals.Total = totals.Consumption.Sum()
	if totals.Total == 0 {
		return PeriodTotals{}, &NoUsableDataError{Reason: "total consumption is zero"}
	}

	totals.WindowStart = earliest
	totals.ObservedDays = int(math.Round(latest.Sub(earliest).Hours() / 24))
	totals.AnnualizationFactor = AnnualizationFactor(totals.ObservedDays)
	return totals, nil
}

// AnnualizationFactor returns 365/observedDays, or 1 when the window is a
// single day and cannot be extrapolated.
func AnnualizationFactor(observedDays int) float64 {
	if observedDays <= 0 {
		return 1
	}
	return float64(DaysPerYear) / float64(observedDays)
}
