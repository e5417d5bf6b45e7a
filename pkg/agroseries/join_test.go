package agroseries

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
)

func long(column string, records ...models.LongRecord) *models.LongTable {
	return &models.LongTable{ValueColumn: column, Records: records}
}

func rec(state string, year int, product string, v float64) models.LongRecord {
	return models.LongRecord{Key: models.Key{State: state, Year: year, Product: product}, Value: v}
}

func TestUnifySingleKey(t *testing.T) {
	area := long("area", rec("Acre", 2020, "Soja", 10))
	qty := long("qty", rec("Acre", 2020, "Soja", 30))
	yield := long("yield", rec("Acre", 2020, "Soja", 3000))

	u, err := Unify(area, qty, yield)
	require.NoError(t, err)

	assert.Equal(t, []string{"area", "qty", "yield"}, u.Columns)
	require.Equal(t, 1, u.Len())
	assert.Equal(t, models.Key{State: "Acre", Year: 2020, Product: "Soja"}, u.Rows[0].Key)
	assert.Equal(t, []float64{10, 30, 3000}, u.Rows[0].Values)
}

func TestUnifyKeepsUnmatchedKeys(t *testing.T) {
	area := long("area",
		rec("Acre", 2020, "Soja", 10),
		rec("Bahia", 2020, "Soja", 20),
	)
	qty := long("qty",
		rec("Bahia", 2020, "Soja", 60),
		rec("Goiás", 2020, "Soja", 90),
	)
	yield := long("yield",
		rec("Pará", 2021, "Soja", 2500),
	)

	u, err := Unify(area, qty, yield)
	require.NoError(t, err)
	require.Equal(t, 4, u.Len())

	states := make([]string, u.Len())
	for i, r := range u.Rows {
		states[i] = r.State
	}
	assert.Equal(t, []string{"Acre", "Bahia", "Goiás", "Pará"}, states)

	acre := u.Rows[0].Values
	assert.Equal(t, 10.0, acre[0])
	assert.True(t, math.IsNaN(acre[1]))
	assert.True(t, math.IsNaN(acre[2]))

	assert.Equal(t, []float64{20, 60}, u.Rows[1].Values[:2])

	goias := u.Rows[2].Values
	assert.True(t, math.IsNaN(goias[0]))
	assert.Equal(t, 90.0, goias[1])

	para := u.Rows[3].Values
	assert.True(t, math.IsNaN(para[0]) && math.IsNaN(para[1]))
	assert.Equal(t, 2500.0, para[2])

	filled := u.FillMissing(0)
	assert.Equal(t, 7, filled)
	assert.Equal(t, []float64{0, 0, 2500}, u.Rows[3].Values)
}

func TestUnifyRowCountWithoutExtraKeys(t *testing.T) {
	var area, qty, yield []models.LongRecord
	for _, s := range []string{"Acre", "Bahia", "Ceará"} {
		for y := 2018; y <= 2022; y++ {
			area = append(area, rec(s, y, "Soja", 1))
			if y%2 == 0 {
				qty = append(qty, rec(s, y, "Soja", 2))
			}
		}
	}
	yield = append(yield, rec("Bahia", 2019, "Soja", 3))

	u, err := Unify(long("area", area...), long("qty", qty...), long("yield", yield...))
	require.NoError(t, err)
	assert.Equal(t, len(area), u.Len())
}

func TestOuterJoinDuplicateKeys(t *testing.T) {
	left := FromLong(long("a", rec("Acre", 2020, "Soja", 1), rec("Acre", 2020, "Soja", 2)))
	right := long("b", rec("Acre", 2020, "Soja", 10), rec("Acre", 2020, "Soja", 20))

	u, err := OuterJoin(left, right)
	require.NoError(t, err)
	require.Equal(t, 4, u.Len())

	var pairs [][]float64
	for _, r := range u.Rows {
		pairs = append(pairs, r.Values)
	}
	assert.Equal(t, [][]float64{{1, 10}, {1, 20}, {2, 10}, {2, 20}}, pairs)
}

func TestUnifyErrors(t *testing.T) {
	_, err := Unify()
	assert.True(t, errors.Is(err, ErrNoTables))

	_, err = Unify(long("a", rec("Acre", 2020, "Soja", 1)), long("a"))
	assert.ErrorContains(t, err, `duplicate column "a"`)
}
