package ingestion

import "strings"

// Kind is the declared format of an uploaded export.
type Kind string

const (
	KindDelimitedText Kind = "delimited-text"
	KindSpreadsheet   Kind = "spreadsheet"
)

// Grid is the row-major cell text of an export. Rows may differ in length.
type Grid [][]string

// NewGrid trims every cell and drops rows with no content.
func NewGrid(rows [][]string) Grid {
	grid := make(Grid, 0, len(rows))
	for _, row := range rows {
		cells := make([]string, len(row))
		empty := true
		for i, cell := range row {
			cells[i] = strings.TrimSpace(cell)
			if cells[i] != "" {
				empty = false
			}
		}
		if empty {
			continue
		}
		grid = append(grid, cells)
	}
	return grid
}

// Cell returns the cell text or "" when row/col is out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) || col < 0 || col >= len(g[row]) {
		return ""
	}
	return g[row][col]
}

// Row returns the row or nil when out of range.
func (g Grid) Row(row int) []string {
	if row < 0 || row >= len(g) {
		return nil
	}
	return g[row]
}
