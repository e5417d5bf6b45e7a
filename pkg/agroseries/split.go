package agroseries

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// SheetFileName returns the output file name for a sheet.
func SheetFileName(sheetName string) string {
	return parser.NormalizeName(sheetName) + ".xlsx"
}

// SplitWorkbook writes every sheet of the workbook at path to its own
// single-sheet workbook in outDir. Cell values and kinds are copied as is.
// Existing files are overwritten.
func SplitWorkbook(path, outDir string, opts Options) (*models.SplitResult, error) {
	log := opts.logger()

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}

	sheetList := f.GetSheetList()
	log.Info("sheets found", zap.String("workbook", path), zap.Strings("sheets", sheetList))

	result := &models.SplitResult{BookName: filepath.Base(path)}
	for _, sheetName := range sheetList {
		log.Info("processing sheet", zap.String("sheet", sheetName))

		sheet, err := splitSheet(f, sheetName, outDir)
		if err != nil {
			return nil, err
		}
		log.Debug("sheet written",
			zap.String("sheet", sheetName),
			zap.String("path", sheet.Path),
			zap.String("range", sheet.Dimension),
			zap.Int("cells", sheet.Cells))
		result.Sheets = append(result.Sheets, sheet)
	}

	log.Info("sheets split", zap.Int("count", len(result.Sheets)), zap.String("dir", outDir))
	return result, nil
}

func splitSheet(f *excelize.File, sheetName, outDir string) (models.SheetFile, error) {
	grid, err := parser.ReadGrid(f, sheetName)
	if err != nil {
		return models.SheetFile{}, NewSheetError(sheetName, "read", err)
	}
	rows, err := parser.ExtractCells(f, sheetName)
	if err != nil {
		return models.SheetFile{}, NewSheetError(sheetName, "read", err)
	}

	out := excelize.NewFile()
	defer out.Close()

	if def := out.GetSheetName(0); def != sheetName {
		if err := out.SetSheetName(def, sheetName); err != nil {
			return models.SheetFile{}, NewSheetError(sheetName, "write", err)
		}
	}

	count := 0
	for _, row := range rows {
		for _, cell := range row.Cells {
			name, err := excelize.CoordinatesToCellName(cell.C, row.R)
			if err != nil {
				return models.SheetFile{}, NewSheetError(sheetName, "write", err)
			}
			if err := out.SetCellValue(sheetName, name, cell.Value); err != nil {
				return models.SheetFile{}, NewSheetError(sheetName, "write", err)
			}
			count++
		}
	}

	target := filepath.Join(outDir, SheetFileName(sheetName))
	if err := out.SaveAs(target); err != nil {
		return models.SheetFile{}, NewSheetError(sheetName, "write", err)
	}

	return models.SheetFile{
		Name:      sheetName,
		Path:      target,
		Dimension: parser.DataRange(grid),
		Cells:     count,
	}, nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return f, nil
}
