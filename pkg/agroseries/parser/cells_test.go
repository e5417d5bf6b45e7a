package parser

import (
	"path/filepath"
	"testing"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/xuri/excelize/v2"
)

func TestExtractCells(t *testing.T) {
	// Create a temporary Excel file for testing
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"
	f.SetCellValue(sheetName, "A1", "Header1")
	f.SetCellValue(sheetName, "B1", "2021")
	f.SetCellValue(sheetName, "A2", 100)
	f.SetCellValue(sheetName, "B2", 200.5)
	f.SetCellValue(sheetName, "A4", true)

	tmpFile := filepath.Join(t.TempDir(), "test.xlsx")
	if err := f.SaveAs(tmpFile); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}

	f2, err := excelize.OpenFile(tmpFile)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	defer f2.Close()

	rows, err := ExtractCells(f2, sheetName)
	if err != nil {
		t.Fatalf("ExtractCells failed: %v", err)
	}

	// Row 3 is empty and skipped
	if len(rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(rows))
	}
	if rows[2].R != 4 {
		t.Errorf("Expected row 4, got %d", rows[2].R)
	}

	header := rows[0].Cells
	if header[0].Value != "Header1" || header[0].Kind != models.KindString {
		t.Errorf("Expected string 'Header1', got %v (kind %d)", header[0].Value, header[0].Kind)
	}
	// A numeric-looking string stays a string
	if header[1].Value != "2021" || header[1].Kind != models.KindString {
		t.Errorf("Expected string '2021', got %v (kind %d)", header[1].Value, header[1].Kind)
	}

	nums := rows[1].Cells
	if nums[0].Value != int64(100) || nums[0].Kind != models.KindNumber {
		t.Errorf("Expected int64(100), got %v (type: %T)", nums[0].Value, nums[0].Value)
	}
	if nums[1].Value != 200.5 {
		t.Errorf("Expected 200.5, got %v", nums[1].Value)
	}

	if rows[2].Cells[0].Value != true || rows[2].Cells[0].Kind != models.KindBool {
		t.Errorf("Expected bool true, got %v (kind %d)", rows[2].Cells[0].Value, rows[2].Cells[0].Kind)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		input    string
		expected interface{}
	}{
		{"123", int64(123)},
		{"123.45", 123.45},
		{"-100", int64(-100)},
		{"hello", "hello"},
		{"", ""},
	}

	for _, tt := range tests {
		result := parseValue(tt.input)
		if result != tt.expected {
			t.Errorf("parseValue(%q) = %v (type: %T), expected %v (type: %T)",
				tt.input, result, result, tt.expected, tt.expected)
		}
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"10", 10, true},
		{" 2.5 ", 2.5, true},
		{"-", 0, false},
		{"...", 0, false},
		{"X", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseNumber(%q) = (%v, %v), expected (%v, %v)", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDataRange(t *testing.T) {
	rows := [][]string{
		{},
		{"", "a"},
		{"", "", "", "b"},
	}
	if got := DataRange(rows); got != "B2:D3" {
		t.Errorf("DataRange = %q, expected B2:D3", got)
	}
	if got := DataRange([][]string{{""}, {}}); got != "" {
		t.Errorf("DataRange of empty grid = %q, expected empty", got)
	}
}
