package ingestion

import "strings"

// HeaderOffset is the distance from a section marker row to its column header
// row. Blank rows are removed while decoding, so the header always follows
// the marker directly.
const HeaderOffset = 1

// Section is a region of the grid introduced by a marker row.
type Section struct {
	Marker    string
	MarkerRow int
	HeaderRow int
	DataStart int
	// DataEnd is exclusive.
	DataEnd int
}

// Header returns the section's column header cells.
func (s Section) Header(g Grid) []string {
	return g.Row(s.HeaderRow)
}

// DataRows returns the data rows of the section, header excluded.
func (s Section) DataRows(g Grid) [][]string {
	if s.DataStart >= s.DataEnd || s.DataStart >= len(g) {
		return nil
	}
	end := s.DataEnd
	if end > len(g) {
		end = len(g)
	}
	return g[s.DataStart:end]
}

// FindMarker returns the first row holding a cell that contains marker,
// compared case-insensitively, or -1.
func FindMarker(g Grid, marker string) int {
	needle := strings.ToLower(strings.TrimSpace(marker))
	if needle == "" {
		return -1
	}
	for i, row := range g {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				return i
			}
		}
	}
	return -1
}

// LocateSections finds one section per marker, in the order given. Markers
// may appear in any order in the grid; a section's data stops at the next
// located marker below it, or at the end of the grid. A marker with no header
// row before that boundary counts as not found.
func LocateSections(g Grid, markers ...string) ([]Section, error) {
	rows := make([]int, len(markers))
	for i, marker := range markers {
		row := FindMarker(g, marker)
		if row < 0 {
			return nil, &SectionNotFoundError{Marker: marker}
		}
		rows[i] = row
	}

	sections := make([]Section, len(markers))
	for i, marker := range markers {
		end := len(g)
		for j, other := range rows {
			if j == i {
				continue
			}
			if other > rows[i] && other < end {
				end = other
			}
		}
		header := rows[i] + HeaderOffset
		if header >= end {
			// marker without a header row of its own
			return nil, &SectionNotFoundError{Marker: marker}
		}
		start := header + 1
		sections[i] = Section{
			Marker:    marker,
			MarkerRow: rows[i],
			HeaderRow: header,
			DataStart: start,
			DataEnd:   end,
		}
	}
	return sections, nil
}
