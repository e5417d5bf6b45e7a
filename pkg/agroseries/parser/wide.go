package parser

import (
	"errors"
	"fmt"
	"math"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/xuri/excelize/v2"
)

// ErrInvalidLayout indicates a sheet too short for its wide layout.
var ErrInvalidLayout = errors.New("invalid wide table layout")

// ErrInvalidYear indicates a year header cell that is not a finite number.
var ErrInvalidYear = errors.New("invalid year cell")

// Layout locates the header rows and the label column of a wide table.
// All indices are 0-based.
type Layout struct {
	YearRow      int
	ProductRow   int
	FirstDataRow int
	LabelColumn  int
}

// DefaultLayout returns the layout of the IBGE SIDRA exports: a three-row
// title block, the year row, the product row, then one row per state.
func DefaultLayout() Layout {
	return Layout{
		YearRow:      3,
		ProductRow:   4,
		FirstDataRow: 5,
		LabelColumn:  0,
	}
}

// WideToLong pivots a wide grid into long records. Every column after the
// label column is a data column; every row from FirstDataRow up to the
// last non-empty row is a state row. Non-numeric values become NaN.
func WideToLong(grid [][]string, valueColumn string, layout Layout) (*models.LongTable, error) {
	if len(grid) <= layout.FirstDataRow || len(grid) <= layout.YearRow || len(grid) <= layout.ProductRow {
		return nil, fmt.Errorf("%w: %d rows, data expected from row %d", ErrInvalidLayout, len(grid), layout.FirstDataRow+1)
	}

	_, maxRow, _, maxCol := findDataBounds(grid)

	var cols []int
	for c := layout.LabelColumn + 1; c <= maxCol; c++ {
		cols = append(cols, c)
	}

	years := make([]int, len(cols))
	products := make([]string, len(cols))
	for j, c := range cols {
		raw := cellAt(grid, layout.YearRow, c)
		y, ok := ParseNumber(raw)
		if !ok || math.IsNaN(y) || math.IsInf(y, 0) {
			name, _ := excelize.CoordinatesToCellName(c+1, layout.YearRow+1)
			return nil, fmt.Errorf("%w: %s = %q", ErrInvalidYear, name, raw)
		}
		years[j] = int(y)
		products[j] = cellAt(grid, layout.ProductRow, c)
	}

	table := &models.LongTable{ValueColumn: valueColumn}
	for r := layout.FirstDataRow; r <= maxRow; r++ {
		state := cellAt(grid, r, layout.LabelColumn)
		for j, c := range cols {
			v, ok := ParseNumber(cellAt(grid, r, c))
			if !ok {
				v = math.NaN()
			}
			table.Records = append(table.Records, models.LongRecord{
				Key:   models.Key{State: state, Year: years[j], Product: products[j]},
				Value: v,
			})
		}
	}

	return table, nil
}

// cellAt returns grid[r][c], or "" past the end of a trimmed row.
func cellAt(grid [][]string, r, c int) string {
	if r < 0 || r >= len(grid) || c < 0 || c >= len(grid[r]) {
		return ""
	}
	return grid[r][c]
}
