package agroseries

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var (
	fixtureYears    = []interface{}{2020, 2020, 2021, 2021}
	fixtureProducts = []interface{}{"Milho (em grão)", "Soja (em grão)", "Milho (em grão)", "Soja (em grão)"}
	fixtureStates   = []string{"Acre", "Bahia", "Paraná"}
)

type wideSheet struct {
	name   string
	values [][]interface{}
}

var fixtureSheets = []wideSheet{
	{"Area colhida", [][]interface{}{
		{30, 10, 32, 12},
		{600, 1500, 610, 1600},
		{2000, 5500, "-", 5600},
	}},
	{"Quantidade produzida toneladas", [][]interface{}{
		{90, 30, 100, 45},
		{1800, 4500, 1900, 5200},
		{8000, 19000, "-", 20000},
	}},
	{"Rendimento médio da produção", [][]interface{}{
		{3000, 3000, 3125, 3750},
		{3000, 3000, 3114.75, 3250},
		{4000, 3454.54, "-", 3571.43},
	}},
}

// writeWide fills a sheet in the SIDRA layout: title in A1, years in row 4,
// products in row 5, one state per row from row 6.
func writeWide(t *testing.T, f *excelize.File, s wideSheet) {
	t.Helper()

	idx, err := f.GetSheetIndex(s.name)
	require.NoError(t, err)
	if idx < 0 {
		_, err := f.NewSheet(s.name)
		require.NoError(t, err)
	}

	require.NoError(t, f.SetCellValue(s.name, "A1", "Tabela 1612 - "+s.name))
	years := append([]interface{}(nil), fixtureYears...)
	require.NoError(t, f.SetSheetRow(s.name, "B4", &years))
	products := append([]interface{}(nil), fixtureProducts...)
	require.NoError(t, f.SetSheetRow(s.name, "B5", &products))
	for i, state := range fixtureStates {
		row := append([]interface{}{state}, s.values[i]...)
		cell, err := excelize.CoordinatesToCellName(1, 6+i)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(s.name, cell, &row))
	}
}

// writeSourceWorkbook saves the three wide sheets plus a notes sheet and
// returns the workbook path.
func writeSourceWorkbook(t *testing.T, dir string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName(f.GetSheetName(0), fixtureSheets[0].name))
	for _, s := range fixtureSheets {
		writeWide(t, f, s)
	}
	_, err := f.NewSheet("Notas")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Notas", "A1", "Fonte: IBGE - Produção Agrícola Municipal"))
	require.NoError(t, f.SetCellValue("Notas", "A2", true))

	path := filepath.Join(dir, "tabela1612.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}
