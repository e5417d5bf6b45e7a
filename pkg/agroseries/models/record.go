package models

import "math"

// Key identifies a measurement: one state, one year, one product.
type Key struct {
	State   string
	Year    int
	Product string
}

// LongRecord is one measurement of the long format. A NaN Value marks a
// missing or non-numeric source cell.
type LongRecord struct {
	Key
	Value float64
}

// Missing reports whether the record has no numeric value.
func (r LongRecord) Missing() bool {
	return math.IsNaN(r.Value)
}

// LongTable is a single measurement reshaped to long format.
type LongTable struct {
	// ValueColumn names the measurement (e.g. "Area_colhida_ha").
	ValueColumn string
	// Records are in source order: state-major, then column order.
	Records []LongRecord
}

// Len returns the number of records.
func (t *LongTable) Len() int {
	return len(t.Records)
}
