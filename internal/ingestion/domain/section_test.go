package ingestion

import (
	"errors"
	"reflect"
	"testing"
)

func sampleGrid() Grid {
	return NewGrid([][]string{
		{"Informe de consumos", ""},
		{" DATOS SUMINISTRO ", ""},
		{"CUPS", "Potencia contratada P1", "Potencia contratada P2"},
		{"ES0021", "4,6", "4,6"},
		{"", "  ", ""},
		{"Datos lecturas"},
		{"Fecha lectura", "Consumo Activa P1", "Consumo Activa P2", "Consumo Activa P3"},
		{"15/01/2024", "100", "50", "25"},
		{"15/02/2024", "110", "55", "30"},
	})
}

func TestNewGridDropsEmptyRows(t *testing.T) {
	grid := sampleGrid()
	if len(grid) != 8 {
		t.Fatalf("expected 8 rows, got %d", len(grid))
	}
	if grid.Cell(1, 0) != "DATOS SUMINISTRO" {
		t.Fatalf("expected trimmed marker, got %q", grid.Cell(1, 0))
	}
	if grid.Cell(99, 0) != "" || grid.Cell(0, 99) != "" {
		t.Fatalf("expected empty out-of-range cells")
	}
}

func TestFindMarkerCaseInsensitive(t *testing.T) {
	grid := sampleGrid()
	if row := FindMarker(grid, "datos suministro"); row != 1 {
		t.Fatalf("expected supply marker at row 1, got %d", row)
	}
	if row := FindMarker(grid, "missing"); row != -1 {
		t.Fatalf("expected -1, got %d", row)
	}
	if row := FindMarker(grid, "  "); row != -1 {
		t.Fatalf("expected -1 for blank marker, got %d", row)
	}
}

func TestLocateSectionsBoundsDataAtNextMarker(t *testing.T) {
	grid := sampleGrid()
	sections, err := LocateSections(grid, "Datos suministro", "Datos lecturas")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	supply, readings := sections[0], sections[1]
	if supply.HeaderRow != 2 || supply.DataStart != 3 || supply.DataEnd != 4 {
		t.Fatalf("unexpected supply section: %+v", supply)
	}
	if readings.HeaderRow != 5 || readings.DataStart != 6 || readings.DataEnd != 8 {
		t.Fatalf("unexpected readings section: %+v", readings)
	}
	if got := len(readings.DataRows(grid)); got != 2 {
		t.Fatalf("expected 2 reading rows, got %d", got)
	}
}

func TestLocateSectionsAnyOrder(t *testing.T) {
	grid := NewGrid([][]string{
		{"Datos lecturas"},
		{"Fecha lectura", "Consumo Activa P1"},
		{"01/01/2024", "10"},
		{"Datos suministro"},
		{"Potencia contratada P1"},
		{"3,3"},
	})
	sections, err := LocateSections(grid, "Datos suministro", "Datos lecturas")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if sections[1].DataEnd != 3 {
		t.Fatalf("expected readings to stop at supply marker, got %+v", sections[1])
	}
	if sections[0].DataEnd != len(grid) {
		t.Fatalf("expected supply to run to grid end, got %+v", sections[0])
	}
}

func TestLocateSectionsMissingMarker(t *testing.T) {
	grid := NewGrid([][]string{{"Datos suministro"}, {"Potencia contratada P1"}})
	_, err := LocateSections(grid, "Datos suministro", "Datos lecturas")
	var notFound *SectionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected SectionNotFoundError, got %v", err)
	}
	if notFound.Marker != "Datos lecturas" {
		t.Fatalf("expected missing marker to be named, got %q", notFound.Marker)
	}
}

func TestLocateSectionsMarkerWithoutHeader(t *testing.T) {
	lastRow := NewGrid([][]string{
		{"Datos suministro"},
		{"Potencia contratada P1", "Potencia contratada P2"},
		{"4,6", "4,6"},
		{"Datos lecturas"},
	})
	_, err := LocateSections(lastRow, "Datos suministro", "Datos lecturas")
	var notFound *SectionNotFoundError
	if !errors.As(err, &notFound) || notFound.Marker != "Datos lecturas" {
		t.Fatalf("expected SectionNotFoundError for trailing marker, got %v", err)
	}

	adjacent := NewGrid([][]string{
		{"Datos suministro"},
		{"Datos lecturas"},
		{"Fecha lectura", "Consumo Activa P1"},
		{"01/01/2024", "10"},
	})
	_, err = LocateSections(adjacent, "Datos suministro", "Datos lecturas")
	if !errors.As(err, &notFound) || notFound.Marker != "Datos suministro" {
		t.Fatalf("expected SectionNotFoundError for marker followed by marker, got %v", err)
	}
}

func TestResolveFieldsListsEveryMissingColumn(t *testing.T) {
	section := Section{Marker: "Datos lecturas"}
	header := []string{"Fecha lectura", "Consumo Activa P2"}
	_, err := ResolveFields(section, header, DefaultLayout().ReadingFields())
	var missing *MissingColumnsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingColumnsError, got %v", err)
	}
	want := []string{"consumption P1", "consumption P3"}
	if !reflect.DeepEqual(missing.Fields, want) {
		t.Fatalf("expected %v, got %v", want, missing.Fields)
	}
}

func TestResolveFieldsIsCaseSensitive(t *testing.T) {
	section := Section{Marker: "Datos suministro"}
	header := []string{"potencia contratada P1", "Potencia contratada P2"}
	_, err := ResolveFields(section, header, DefaultLayout().SupplyFields())
	var missing *MissingColumnsError
	if !errors.As(err, &missing) || len(missing.Fields) != 1 || missing.Fields[0] != "contracted power P1" {
		t.Fatalf("expected P1 to be missing, got %v", err)
	}
}

func TestResolveFieldsToleratesOptionalBands(t *testing.T) {
	section := Section{Marker: "Datos suministro"}
	header := []string{"CUPS", " Potencia contratada P1 ", "Potencia contratada P2"}
	fields, err := ResolveFields(section, header, DefaultLayout().SupplyFields())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if fields.Column(PowerField(1)) != 1 || fields.Column(PowerField(2)) != 2 {
		t.Fatalf("unexpected field map: %v", fields)
	}
	if fields.Column(PowerField(3)) != -1 {
		t.Fatalf("expected P3 unresolved")
	}
}
