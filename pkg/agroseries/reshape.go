package agroseries

import (
	"errors"
	"fmt"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
	"go.uber.org/zap"
)

// headRecords is how many records are logged at debug level after a reshape.
const headRecords = 5

// ReshapeFile reads the first sheet of the workbook at path as a wide
// table and returns it in long format under valueColumn.
func ReshapeFile(path, valueColumn string, opts Options) (*models.LongTable, error) {
	log := opts.logger()
	log.Info("reading workbook", zap.String("path", path))

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no sheets", ErrInvalidFormat, path)
	}
	sheetName := sheets[0]

	grid, err := parser.ReadGrid(f, sheetName)
	if err != nil {
		return nil, NewSheetError(sheetName, "read", err)
	}
	table, err := parser.WideToLong(grid, valueColumn, opts.Layout)
	if err != nil {
		stage := "reshape"
		if errors.Is(err, parser.ErrInvalidYear) {
			stage = "years"
		}
		return nil, NewSheetError(sheetName, stage, err)
	}

	missing := 0
	for _, r := range table.Records {
		if r.Missing() {
			missing++
		}
	}
	log.Info("reshaped to long format",
		zap.String("path", path),
		zap.String("column", valueColumn),
		zap.Int("records", table.Len()),
		zap.Int("missing", missing))
	for i := 0; i < headRecords && i < table.Len(); i++ {
		r := table.Records[i]
		log.Debug("record",
			zap.String("state", r.State),
			zap.Int("year", r.Year),
			zap.String("product", r.Product),
			zap.Float64(valueColumn, r.Value))
	}

	return table, nil
}
