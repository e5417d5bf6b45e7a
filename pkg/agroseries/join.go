package agroseries

import (
	"fmt"
	"math"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
)

// Unify left-folds full outer joins over the tables on (state, year,
// product). The first table seeds the result. Missing values stay NaN;
// call FillMissing on the result to zero them.
func Unify(tables ...*models.LongTable) (*models.UnifiedTable, error) {
	if len(tables) == 0 {
		return nil, ErrNoTables
	}

	result := FromLong(tables[0])
	for _, t := range tables[1:] {
		var err error
		result, err = OuterJoin(result, t)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// FromLong converts a long table into a single-column unified table.
func FromLong(t *models.LongTable) *models.UnifiedTable {
	out := &models.UnifiedTable{
		Columns: []string{t.ValueColumn},
		Rows:    make([]models.UnifiedRow, 0, len(t.Records)),
	}
	for _, r := range t.Records {
		out.Rows = append(out.Rows, models.UnifiedRow{Key: r.Key, Values: []float64{r.Value}})
	}
	return out
}

// OuterJoin joins right onto left by key. Left rows keep their order, each
// repeated once per matching right record; right records that matched no
// left row follow in their own order. Keys are not required to be unique.
func OuterJoin(left *models.UnifiedTable, right *models.LongTable) (*models.UnifiedTable, error) {
	if left.ColumnIndex(right.ValueColumn) >= 0 {
		return nil, fmt.Errorf("join: duplicate column %q", right.ValueColumn)
	}

	index := make(map[models.Key][]int, len(right.Records))
	for i, r := range right.Records {
		index[r.Key] = append(index[r.Key], i)
	}
	matched := make([]bool, len(right.Records))

	width := len(left.Columns) + 1
	out := &models.UnifiedTable{
		Columns: append(append([]string(nil), left.Columns...), right.ValueColumn),
		Rows:    make([]models.UnifiedRow, 0, len(left.Rows)),
	}

	for _, row := range left.Rows {
		hits := index[row.Key]
		if len(hits) == 0 {
			out.Rows = append(out.Rows, joinedRow(row.Key, row.Values, math.NaN(), width))
			continue
		}
		for _, i := range hits {
			matched[i] = true
			out.Rows = append(out.Rows, joinedRow(row.Key, row.Values, right.Records[i].Value, width))
		}
	}

	var blank []float64
	for i, r := range right.Records {
		if matched[i] {
			continue
		}
		if blank == nil {
			blank = make([]float64, len(left.Columns))
			for j := range blank {
				blank[j] = math.NaN()
			}
		}
		out.Rows = append(out.Rows, joinedRow(r.Key, blank, r.Value, width))
	}

	return out, nil
}

func joinedRow(key models.Key, left []float64, right float64, width int) models.UnifiedRow {
	values := make([]float64, 0, width)
	values = append(values, left...)
	values = append(values, right)
	return models.UnifiedRow{Key: key, Values: values}
}
