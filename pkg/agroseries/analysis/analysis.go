// Package analysis derives the descriptive series charted by the report
// from the unified table.
package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
)

// Columns names the three measurement columns of the unified table.
type Columns struct {
	Area     string
	Quantity string
	Yield    string
}

// Observation is one unified row with typed measurements.
type Observation struct {
	State    string
	Year     int
	Product  string
	Area     float64 // harvested area, ha
	Quantity float64 // quantity produced, t
	Yield    float64 // average yield, kg/ha
}

// Productivity is quantity produced per harvested hectare. It is not
// guarded: zero area yields +Inf or NaN.
func (o Observation) Productivity() float64 {
	return o.Quantity / o.Area
}

// FromUnified maps unified rows onto observations.
func FromUnified(t *models.UnifiedTable, cols Columns) ([]Observation, error) {
	ia, iq, iy := t.ColumnIndex(cols.Area), t.ColumnIndex(cols.Quantity), t.ColumnIndex(cols.Yield)
	for name, i := range map[string]int{cols.Area: ia, cols.Quantity: iq, cols.Yield: iy} {
		if i < 0 {
			return nil, fmt.Errorf("unified table has no column %q (columns: %v)", name, t.Columns)
		}
	}

	obs := make([]Observation, len(t.Rows))
	for i, r := range t.Rows {
		obs[i] = Observation{
			State:    r.State,
			Year:     r.Year,
			Product:  r.Product,
			Area:     r.Values[ia],
			Quantity: r.Values[iq],
			Yield:    r.Values[iy],
		}
	}
	return obs, nil
}

// FilterProduct keeps observations whose product contains substr.
func FilterProduct(obs []Observation, substr string) []Observation {
	var out []Observation
	for _, o := range obs {
		if strings.Contains(o.Product, substr) {
			out = append(out, o)
		}
	}
	return out
}

// FilterState keeps observations of one state.
func FilterState(obs []Observation, state string) []Observation {
	var out []Observation
	for _, o := range obs {
		if o.State == state {
			out = append(out, o)
		}
	}
	return out
}

// YearValue is a value for one year.
type YearValue struct {
	Year  int
	Value float64
}

// MeanByYear averages value(o) per year, in ascending year order.
func MeanByYear(obs []Observation, value func(Observation) float64) []YearValue {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, o := range obs {
		sums[o.Year] += value(o)
		counts[o.Year]++
	}

	out := make([]YearValue, 0, len(sums))
	for y, s := range sums {
		out = append(out, YearValue{Year: y, Value: s / float64(counts[y])})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// ValuesByYear groups value(o) by year. Years ascend; values keep input order.
func ValuesByYear(obs []Observation, value func(Observation) float64) (years []int, groups [][]float64) {
	byYear := make(map[int][]float64)
	for _, o := range obs {
		byYear[o.Year] = append(byYear[o.Year], value(o))
	}
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		groups = append(groups, byYear[y])
	}
	return years, groups
}

// StateYear is a total for one state and year.
type StateYear struct {
	State string
	Year  int
	Value float64
}

// SumByStateYear totals quantity produced per (state, year), ordered by
// state then year.
func SumByStateYear(obs []Observation) []StateYear {
	type key struct {
		state string
		year  int
	}
	sums := make(map[key]float64)
	for _, o := range obs {
		sums[key{o.State, o.Year}] += o.Quantity
	}

	out := make([]StateYear, 0, len(sums))
	for k, v := range sums {
		out = append(out, StateYear{State: k.state, Year: k.year, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].State != out[j].State {
			return out[i].State < out[j].State
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// StateValue is a single value for one state.
type StateValue struct {
	State string
	Value float64
}

// MeanProductivity averages Productivity per state, descending. NaN ratios
// (0/0) are left out of the mean; +Inf propagates.
func MeanProductivity(obs []Observation) []StateValue {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, o := range obs {
		if _, ok := counts[o.State]; !ok {
			counts[o.State] = 0
		}
		p := o.Productivity()
		if math.IsNaN(p) {
			continue
		}
		sums[o.State] += p
		counts[o.State]++
	}

	out := make([]StateValue, 0, len(counts))
	for s, n := range counts {
		v := math.NaN()
		if n > 0 {
			v = sums[s] / float64(n)
		}
		out = append(out, StateValue{State: s, Value: v})
	}
	sort.Slice(out, func(i, j int) bool {
		return descending(out[i].Value, out[j].Value, out[i].State, out[j].State)
	})
	return out
}

// descending orders a before b: larger first, NaN last, ties by name.
func descending(a, b float64, nameA, nameB string) bool {
	switch {
	case math.IsNaN(a) && math.IsNaN(b):
		return nameA < nameB
	case math.IsNaN(a):
		return false
	case math.IsNaN(b):
		return true
	case a != b:
		return a > b
	}
	return nameA < nameB
}
