package analysis

import (
	"sort"
)

// GrowthRow is the change of a state's total between the boundary years.
type GrowthRow struct {
	State     string
	FirstYear int
	LastYear  int
	First     float64
	Last      float64
	// Percent is (Last - First) / First * 100.
	Percent float64
}

// PercentGrowth returns (last - first) / first * 100. A zero first value
// gives ±Inf, or NaN when last is zero too.
func PercentGrowth(first, last float64) float64 {
	return (last - first) / first * 100
}

// Growth pivots state totals over the union of years, drops every state
// missing any year, and ranks the rest by growth between the first and
// last year, descending with NaN last.
func Growth(totals []StateYear) []GrowthRow {
	yearSet := make(map[int]struct{})
	byState := make(map[string]map[int]float64)
	for _, t := range totals {
		yearSet[t.Year] = struct{}{}
		if byState[t.State] == nil {
			byState[t.State] = make(map[int]float64)
		}
		byState[t.State][t.Year] = t.Value
	}
	if len(yearSet) == 0 {
		return nil
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Ints(years)
	first, last := years[0], years[len(years)-1]

	var out []GrowthRow
	for state, values := range byState {
		if len(values) != len(years) {
			continue
		}
		out = append(out, GrowthRow{
			State:     state,
			FirstYear: first,
			LastYear:  last,
			First:     values[first],
			Last:      values[last],
			Percent:   PercentGrowth(values[first], values[last]),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return descending(out[i].Percent, out[j].Percent, out[i].State, out[j].State)
	})
	return out
}

// Top returns the first n rows of a ranking.
func Top(rows []GrowthRow, n int) []GrowthRow {
	if n > len(rows) {
		n = len(rows)
	}
	return rows[:n]
}

// Bottom returns the last n rows of a ranking, still in ranking order.
func Bottom(rows []GrowthRow, n int) []GrowthRow {
	if n > len(rows) {
		n = len(rows)
	}
	return rows[len(rows)-n:]
}
