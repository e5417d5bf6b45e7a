// Package models defines data structures for the agricultural series pipeline.
package models

// CellKind is the value kind of a copied cell.
type CellKind int

const (
	// KindNumber is a numeric cell (int64 or float64 value).
	KindNumber CellKind = iota
	// KindString is a shared or inline string cell.
	KindString
	// KindBool is a boolean cell.
	KindBool
)

// Cell is a single non-empty cell of a sheet.
type Cell struct {
	// C is the column index (1-based).
	C int
	// Value is int64, float64, bool or string depending on Kind.
	Value interface{}
	// Kind is the value kind as stored in the source workbook.
	Kind CellKind
}

// CellRow represents the non-empty cells of a single row.
type CellRow struct {
	// R is the row index (1-based).
	R int
	// Cells holds the non-empty cells in column order.
	Cells []Cell
}
