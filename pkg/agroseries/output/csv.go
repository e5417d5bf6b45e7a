// Package output writes and reads the pipeline's delimited tables and its
// run manifest.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
)

// Key column headers shared by the long and unified tables.
const (
	ColState   = "Estado"
	ColYear    = "Ano"
	ColProduct = "Produto"
)

// IsKeyColumn reports whether name is one of the key column headers.
func IsKeyColumn(name string) bool {
	return name == ColState || name == ColYear || name == ColProduct
}

// FormatValue renders a measurement: shortest round-trip decimal, or an
// empty field for missing.
func FormatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// LongFrame builds a dataframe with the key columns and the value column.
func LongFrame(t *models.LongTable) dataframe.DataFrame {
	n := len(t.Records)
	states := make([]string, n)
	years := make([]int, n)
	products := make([]string, n)
	values := make([]string, n)
	for i, r := range t.Records {
		states[i] = r.State
		years[i] = r.Year
		products[i] = r.Product
		values[i] = FormatValue(r.Value)
	}
	return dataframe.New(
		series.New(states, series.String, ColState),
		series.New(years, series.Int, ColYear),
		series.New(products, series.String, ColProduct),
		series.New(values, series.String, t.ValueColumn),
	)
}

// UnifiedFrame builds a dataframe with the key columns and one column per
// measurement.
func UnifiedFrame(t *models.UnifiedTable) dataframe.DataFrame {
	n := len(t.Rows)
	states := make([]string, n)
	years := make([]int, n)
	products := make([]string, n)
	values := make([][]string, len(t.Columns))
	for j := range values {
		values[j] = make([]string, n)
	}
	for i, r := range t.Rows {
		states[i] = r.State
		years[i] = r.Year
		products[i] = r.Product
		for j, v := range r.Values {
			values[j][i] = FormatValue(v)
		}
	}

	cols := []series.Series{
		series.New(states, series.String, ColState),
		series.New(years, series.Int, ColYear),
		series.New(products, series.String, ColProduct),
	}
	for j, name := range t.Columns {
		cols = append(cols, series.New(values[j], series.String, name))
	}
	return dataframe.New(cols...)
}

// WriteLongCSV writes a long table with a header row.
func WriteLongCSV(w io.Writer, t *models.LongTable) error {
	df := LongFrame(t)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// WriteUnifiedCSV writes a unified table with a header row.
func WriteUnifiedCSV(w io.Writer, t *models.UnifiedTable) error {
	df := UnifiedFrame(t)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(w)
}

// ReadUnifiedCSV loads a table written by WriteUnifiedCSV. Every column
// after the key columns is a measurement; empty fields load as NaN. Key
// fields are kept verbatim, and a header without rows loads as an empty
// table.
func ReadUnifiedCSV(r io.Reader) (*models.UnifiedTable, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read unified table: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("read unified table: missing header")
	}

	names := records[0]
	if len(names) < 3 || names[0] != ColState || names[1] != ColYear || names[2] != ColProduct {
		return nil, fmt.Errorf("read unified table: unexpected header %v", names)
	}
	t := &models.UnifiedTable{Columns: append([]string(nil), names[3:]...)}
	if len(records) == 1 {
		return t, nil
	}

	df := dataframe.LoadRecords(records,
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues([]string{}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("read unified table: %w", df.Err)
	}

	states := df.Col(ColState).Records()
	products := df.Col(ColProduct).Records()
	years, err := df.Col(ColYear).Int()
	if err != nil {
		return nil, fmt.Errorf("read unified table: column %s: %w", ColYear, err)
	}

	values := make([][]float64, len(t.Columns))
	for j, name := range t.Columns {
		values[j] = df.Col(name).Float()
	}

	t.Rows = make([]models.UnifiedRow, df.Nrow())
	for i := range t.Rows {
		row := models.UnifiedRow{
			Key:    models.Key{State: states[i], Year: years[i], Product: products[i]},
			Values: make([]float64, len(t.Columns)),
		}
		for j := range t.Columns {
			row.Values[j] = values[j][i]
		}
		t.Rows[i] = row
	}
	return t, nil
}

// WriteLongFile writes a long table to path, replacing any existing file.
func WriteLongFile(path string, t *models.LongTable) error {
	return writeFile(path, func(w io.Writer) error { return WriteLongCSV(w, t) })
}

// WriteUnifiedFile writes a unified table to path, replacing any existing file.
func WriteUnifiedFile(path string, t *models.UnifiedTable) error {
	return writeFile(path, func(w io.Writer) error { return WriteUnifiedCSV(w, t) })
}

// ReadUnifiedFile loads a unified table from path.
func ReadUnifiedFile(path string) (*models.UnifiedTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadUnifiedCSV(f)
}

func writeFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
