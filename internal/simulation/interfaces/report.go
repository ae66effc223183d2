package interfaces

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"tariff-simulator/internal/ingestion/domain"
	"tariff-simulator/internal/simulation/domain"
)

const reportTitle = "Electricity Tariff Simulation"

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func roundedMoney(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func kwh(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}

// BuildReportPDF renders a simulation record as a PDF report.
func BuildReportPDF(record *simulation.Record) ([]byte, error) {
	if record == nil {
		return nil, simulation.ErrNilRecord
	}
	summary := record.Result.Summary

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, reportTitle)
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("File: %s", record.FileName)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Period: %s (%d days)", summary.Period, summary.ObservedDays))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", record.CreatedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Annual consumption (kWh): %s", kwh(summary.TotalConsumption)))
	pdf.Ln(5)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Best option: %s (%s EUR)", summary.BestOption.Name, money(summary.BestOption.TotalCost))))
	pdf.Ln(5)
	if summary.CurrentOption.Found {
		pdf.Cell(0, 6, tr(fmt.Sprintf("Current plan: %s (%s EUR, rank %d)", summary.CurrentOption.Name, money(summary.CurrentOption.TotalCost), summary.CurrentOption.Rank)))
		pdf.Ln(5)
	}
	pdf.Cell(0, 6, fmt.Sprintf("Estimated savings (EUR): %s", money(summary.BestOption.Savings)))
	pdf.Ln(8)

	if record.Narrative != "" {
		pdf.MultiCell(0, 5, tr(record.Narrative), "", "L", false)
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(40, 6, "Band", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Consumption (kWh)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 6, "Contracted power (kW)", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for p := 0; p < ingestion.Periods; p++ {
		pdf.CellFormat(40, 6, fmt.Sprintf("P%d", p+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(50, 6, kwh(summary.AnnualConsumption[p]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", summary.ContractedPower[p]), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	// Ranking table
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(12, 6, "Rank", "1", 0, "C", false, 0, "")
	pdf.CellFormat(58, 6, "Company", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Fixed", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Energy", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Taxes", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, cost := range record.Result.Details {
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", cost.Rank), "1", 0, "C", false, 0, "")
		pdf.CellFormat(58, 6, tr(cost.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, money(cost.FixedFee), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(cost.ConsumptionCost), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(cost.SpecialTax+cost.VAT), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, money(cost.TotalCost), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildReportXLSX renders a simulation record as a workbook with a summary
// sheet and a ranking sheet.
func BuildReportXLSX(record *simulation.Record) ([]byte, error) {
	if record == nil {
		return nil, simulation.ErrNilRecord
	}
	summary := record.Result.Summary

	f := excelize.NewFile()
	defer f.Close()
	summarySheet := "summary"
	rankingSheet := "ranking"
	if err := f.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(rankingSheet); err != nil {
		return nil, err
	}

	_ = f.SetCellValue(summarySheet, "A1", reportTitle)
	rows := [][2]any{
		{"File", record.FileName},
		{"Period", summary.Period},
		{"Observed days", summary.ObservedDays},
		{"Annualization factor", summary.AnnualizationFactor},
		{"Annual consumption (kWh)", summary.TotalConsumption},
		{"Best option", summary.BestOption.Name},
		{"Best total (EUR)", roundedMoney(summary.BestOption.TotalCost)},
		{"Current plan", summary.CurrentOption.Name},
		{"Current plan found", summary.CurrentOption.Found},
		{"Current total (EUR)", roundedMoney(summary.CurrentOption.TotalCost)},
		{"Estimated savings (EUR)", roundedMoney(summary.BestOption.Savings)},
		{"Summary", record.Narrative},
		{"Generated", record.CreatedAt.Format(time.RFC3339)},
	}
	for i, row := range rows {
		r := i + 3
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), row[0])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), row[1])
	}
	bandStart := len(rows) + 4
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", bandStart), "Band")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", bandStart), "Consumption (kWh)")
	_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", bandStart), "Contracted power (kW)")
	for p := 0; p < ingestion.Periods; p++ {
		r := bandStart + p + 1
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", r), fmt.Sprintf("P%d", p+1))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", r), summary.AnnualConsumption[p])
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("C%d", r), summary.ContractedPower[p])
	}

	headers := []string{"Rank", "Company", "Fixed fee", "Consumption", "Other", "Subtotal", "Special tax", "VAT", "Total"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(rankingSheet, cell, header)
	}
	for i, cost := range record.Result.Details {
		values := []any{
			cost.Rank,
			cost.Name,
			roundedMoney(cost.FixedFee),
			roundedMoney(cost.ConsumptionCost),
			roundedMoney(cost.OtherCosts),
			roundedMoney(cost.Subtotal),
			roundedMoney(cost.SpecialTax),
			roundedMoney(cost.VAT),
			roundedMoney(cost.TotalCost),
		}
		for j, value := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(rankingSheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
