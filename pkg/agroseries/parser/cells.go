// Package parser reads sheet grids and reshapes wide tables into long records.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/xuri/excelize/v2"
)

// ReadGrid returns the raw (unformatted) cell values of a sheet, one slice
// per row starting at row 1. Empty rows before the last data row are kept
// as empty slices.
func ReadGrid(f *excelize.File, sheetName string) ([][]string, error) {
	return f.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows, with each
// value typed the way the source workbook stores it.
func ExtractCells(f *excelize.File, sheetName string) ([]models.CellRow, error) {
	rows, err := ReadGrid(f, sheetName)
	if err != nil {
		return nil, err
	}

	var result []models.CellRow
	for rowIdx, row := range rows {
		rowNum := rowIdx + 1 // 1-based row index
		var cells []models.Cell

		for colIdx, cellValue := range row {
			if cellValue == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells = append(cells, typedCell(colIdx+1, cellValue, cellType))
		}

		if len(cells) > 0 {
			result = append(result, models.CellRow{
				R:     rowNum,
				Cells: cells,
			})
		}
	}

	return result, nil
}

func typedCell(col int, raw string, cellType excelize.CellType) models.Cell {
	switch cellType {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		return models.Cell{C: col, Value: raw, Kind: models.KindString}
	case excelize.CellTypeBool:
		return models.Cell{C: col, Value: raw == "1" || strings.EqualFold(raw, "TRUE"), Kind: models.KindBool}
	}
	v := parseValue(raw)
	if s, ok := v.(string); ok {
		return models.Cell{C: col, Value: s, Kind: models.KindString}
	}
	return models.Cell{C: col, Value: v, Kind: models.KindNumber}
}

// parseValue attempts to parse a string value as a number.
// Returns int64 for integers, float64 for decimals, or the original string.
func parseValue(s string) interface{} {
	// Try integer first
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	// Try float
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	// Return as string
	return s
}

// ParseNumber coerces a raw cell value to float64. ok is false for empty
// or non-numeric cells such as "-", "..." or "X".
func ParseNumber(s string) (v float64, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
