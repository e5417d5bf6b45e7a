package parser

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/xuri/excelize/v2"
)

// sidraGrid builds a wide grid in the default layout.
func sidraGrid(years, products []string, states []string, values [][]string) [][]string {
	grid := [][]string{
		{"Tabela 1612 - Área colhida"},
		{"Variável - Área colhida (Hectares)"},
		{},
		append([]string{""}, years...),
		append([]string{""}, products...),
	}
	for i, s := range states {
		grid = append(grid, append([]string{s}, values[i]...))
	}
	return grid
}

func TestWideToLong(t *testing.T) {
	grid := sidraGrid(
		[]string{"2020", "2021"},
		[]string{"Soja", "Soja"},
		[]string{"Acre", "Bahia"},
		[][]string{{"10", "20"}, {"30", "40"}},
	)

	table, err := WideToLong(grid, "Area_colhida_ha", DefaultLayout())
	if err != nil {
		t.Fatalf("WideToLong failed: %v", err)
	}

	expected := []models.LongRecord{
		{Key: models.Key{State: "Acre", Year: 2020, Product: "Soja"}, Value: 10},
		{Key: models.Key{State: "Acre", Year: 2021, Product: "Soja"}, Value: 20},
		{Key: models.Key{State: "Bahia", Year: 2020, Product: "Soja"}, Value: 30},
		{Key: models.Key{State: "Bahia", Year: 2021, Product: "Soja"}, Value: 40},
	}
	if table.ValueColumn != "Area_colhida_ha" {
		t.Errorf("Expected value column Area_colhida_ha, got %q", table.ValueColumn)
	}
	if len(table.Records) != len(expected) {
		t.Fatalf("Expected %d records, got %d", len(expected), len(table.Records))
	}
	for i, want := range expected {
		if table.Records[i] != want {
			t.Errorf("record %d = %+v, expected %+v", i, table.Records[i], want)
		}
	}
}

func TestWideToLongRecordCount(t *testing.T) {
	years := []string{"2018", "2018", "2019", "2019", "2020", "2020"}
	products := []string{"Milho", "Soja", "Milho", "Soja", "Milho", "Soja"}
	states := []string{"Acre", "Alagoas", "Amapá", "Amazonas"}
	values := make([][]string, len(states))
	for i := range values {
		values[i] = []string{"1", "2", "3", "4", "5", "6"}
	}

	table, err := WideToLong(sidraGrid(years, products, states, values), "v", DefaultLayout())
	if err != nil {
		t.Fatalf("WideToLong failed: %v", err)
	}
	if table.Len() != len(states)*len(years) {
		t.Errorf("Expected %d records, got %d", len(states)*len(years), table.Len())
	}
	// Column order within a state
	if table.Records[1].Product != "Soja" || table.Records[2].Year != 2019 {
		t.Errorf("Unexpected column order: %+v", table.Records[:3])
	}
}

func TestWideToLongCoercesNonNumeric(t *testing.T) {
	grid := sidraGrid(
		[]string{"2020", "2021", "2022"},
		[]string{"Soja", "Soja", "Soja"},
		[]string{"Acre"},
		[][]string{{"-", "...", ""}},
	)
	// Trimmed trailing cell on a short row
	grid[5] = grid[5][:3]

	table, err := WideToLong(grid, "v", DefaultLayout())
	if err != nil {
		t.Fatalf("WideToLong failed: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("Expected 3 records, got %d", table.Len())
	}
	for i, r := range table.Records {
		if !math.IsNaN(r.Value) || !r.Missing() {
			t.Errorf("record %d: expected missing value, got %v", i, r.Value)
		}
	}
}

func TestWideToLongInvalidYear(t *testing.T) {
	tests := []struct {
		name string
		year string
	}{
		{"text", "Total"},
		{"empty", ""},
		{"nan", "NaN"},
		{"infinity", "Inf"},
		{"negative infinity", "-Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := sidraGrid(
				[]string{"2020", tt.year},
				[]string{"Soja", "Soja"},
				[]string{"Acre"},
				[][]string{{"1", "2"}},
			)

			table, err := WideToLong(grid, "v", DefaultLayout())
			if !errors.Is(err, ErrInvalidYear) {
				t.Fatalf("Expected ErrInvalidYear for %q, got %v (table %v)", tt.year, err, table)
			}
		})
	}
}

func TestWideToLongShortSheet(t *testing.T) {
	_, err := WideToLong([][]string{{"title"}, {}, {}}, "v", DefaultLayout())
	if !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("Expected ErrInvalidLayout, got %v", err)
	}
}

func TestWideToLongCustomLayout(t *testing.T) {
	grid := [][]string{
		{"", "2020", "2021"},
		{"", "Soja", "Soja"},
		{"Acre", "1", "2"},
	}
	layout := Layout{YearRow: 0, ProductRow: 1, FirstDataRow: 2, LabelColumn: 0}

	table, err := WideToLong(grid, "v", layout)
	if err != nil {
		t.Fatalf("WideToLong failed: %v", err)
	}
	if table.Len() != 2 || table.Records[1].Year != 2021 || table.Records[1].Value != 2 {
		t.Errorf("Unexpected records: %+v", table.Records)
	}
}

func TestReadGridFromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Sheet1"
	f.SetCellValue(sheet, "A1", "Tabela 1612")
	f.SetSheetRow(sheet, "B4", &[]interface{}{2020, 2021})
	f.SetSheetRow(sheet, "B5", &[]interface{}{"Soja (em grão)", "Soja (em grão)"})
	f.SetSheetRow(sheet, "A6", &[]interface{}{"Acre", 1250.5, "-"})
	f.SetSheetRow(sheet, "A7", &[]interface{}{"Bahia", 1600000, 1700000})

	tmpFile := filepath.Join(t.TempDir(), "area.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	grid, err := ReadGrid(f2, sheet)
	if err != nil {
		t.Fatalf("ReadGrid failed: %v", err)
	}
	table, err := WideToLong(grid, "Area_colhida_ha", DefaultLayout())
	if err != nil {
		t.Fatalf("WideToLong failed: %v", err)
	}

	if table.Len() != 4 {
		t.Fatalf("Expected 4 records, got %d", table.Len())
	}
	if table.Records[0].Value != 1250.5 || table.Records[0].Product != "Soja (em grão)" {
		t.Errorf("Unexpected first record: %+v", table.Records[0])
	}
	if !table.Records[1].Missing() {
		t.Errorf("Expected '-' to be missing, got %v", table.Records[1].Value)
	}
	if table.Records[3].Value != 1700000 || table.Records[3].Year != 2021 {
		t.Errorf("Unexpected last record: %+v", table.Records[3])
	}
}
