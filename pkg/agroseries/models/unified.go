package models

import "math"

// UnifiedRow is one key with a value per measurement column.
type UnifiedRow struct {
	Key
	// Values is aligned with UnifiedTable.Columns. NaN marks missing.
	Values []float64
}

// UnifiedTable is the outer join of several long tables.
type UnifiedTable struct {
	// Columns are the measurement column names in join order.
	Columns []string
	Rows    []UnifiedRow
}

// ColumnIndex returns the position of the named measurement column, or -1.
func (t *UnifiedTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows.
func (t *UnifiedTable) Len() int {
	return len(t.Rows)
}

// FillMissing replaces every missing value with v and returns the number
// of cells filled.
func (t *UnifiedTable) FillMissing(v float64) int {
	n := 0
	for i := range t.Rows {
		for j, x := range t.Rows[i].Values {
			if math.IsNaN(x) {
				t.Rows[i].Values[j] = v
				n++
			}
		}
	}
	return n
}
