package agroseries

import (
	"fmt"
	"path/filepath"

	"github.com/ukaji3/agroseries-go/pkg/agroseries/analysis"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/charts"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/models"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/output"
	"go.uber.org/zap"
)

// Source is one wide workbook produced by the splitter and the names of
// its long-format outputs.
type Source struct {
	// Workbook is the split workbook, relative to OutputDir unless absolute.
	Workbook string
	// Column names the measurement in the long and unified tables.
	Column string
	// LongFile is the long-format CSV, relative to OutputDir unless absolute.
	LongFile string
}

// DefaultSources returns the harvested area, quantity produced and
// average yield sheets of table 1612, in join order.
func DefaultSources() []Source {
	return []Source{
		{Workbook: "area_colhida.xlsx", Column: "Area_colhida_ha", LongFile: "area_colhida_long.csv"},
		{Workbook: "quantidade_produzida_toneladas.xlsx", Column: "Quantidade_produzida_t", LongFile: "quantidade_produzida_long.csv"},
		{Workbook: "rendimento_médio_da_produção.xlsx", Column: "Rendimento_medio_kg_ha", LongFile: "rendimento_medio_long.csv"},
	}
}

// Pipeline runs split, reshape and report over fixed paths.
type Pipeline struct {
	// Input is the multi-sheet source workbook.
	Input string
	// OutputDir receives every file written.
	OutputDir string
	// UnifiedFile is the joined CSV, relative to OutputDir unless absolute.
	UnifiedFile string
	// Sources are the area, quantity and yield workbooks, in that order.
	Sources []Source
	Options Options
	Charts  charts.Options
	// Manifest, if set, records every file written.
	Manifest *output.Manifest
}

// Run splits the input, reshapes and joins the sources, then renders the report.
func (p *Pipeline) Run() error {
	if _, err := p.Split(); err != nil {
		return fmt.Errorf("split: %w", err)
	}
	table, err := p.Reshape()
	if err != nil {
		return fmt.Errorf("reshape: %w", err)
	}
	if _, err := p.Report(table); err != nil {
		return fmt.Errorf("report: %w", err)
	}
	return nil
}

// Split writes one workbook per sheet of Input into OutputDir.
func (p *Pipeline) Split() (*models.SplitResult, error) {
	result, err := SplitWorkbook(p.Input, p.OutputDir, p.Options)
	if err != nil {
		return nil, err
	}
	files := make([]output.File, len(result.Sheets))
	for i, s := range result.Sheets {
		files[i] = output.File{Path: s.Path, Rows: s.Cells}
	}
	p.record("split", files...)
	return result, nil
}

// Reshape converts every source to long format, writes the long CSVs,
// joins them and writes the unified CSV. The returned table still holds
// NaN for missing values.
func (p *Pipeline) Reshape() (*models.UnifiedTable, error) {
	log := p.Options.logger()

	var tables []*models.LongTable
	var files []output.File
	for _, src := range p.Sources {
		t, err := ReshapeFile(p.path(src.Workbook), src.Column, p.Options)
		if err != nil {
			return nil, err
		}
		longPath := p.path(src.LongFile)
		if err := output.WriteLongFile(longPath, t); err != nil {
			return nil, err
		}
		log.Info("long table written", zap.String("path", longPath), zap.Int("rows", t.Len()))
		files = append(files, output.File{Path: longPath, Rows: t.Len()})
		tables = append(tables, t)
	}

	unified, err := Unify(tables...)
	if err != nil {
		return nil, err
	}
	unifiedPath := p.path(p.UnifiedFile)
	if err := output.WriteUnifiedFile(unifiedPath, unified); err != nil {
		return nil, err
	}
	log.Info("unified table written",
		zap.String("path", unifiedPath),
		zap.Int("rows", unified.Len()),
		zap.Strings("columns", unified.Columns))
	files = append(files, output.File{Path: unifiedPath, Rows: unified.Len()})

	p.record("reshape", files...)
	return unified, nil
}

// ReportFile loads the unified CSV written by Reshape and renders the report.
func (p *Pipeline) ReportFile() ([]string, error) {
	table, err := output.ReadUnifiedFile(p.path(p.UnifiedFile))
	if err != nil {
		return nil, err
	}
	return p.Report(table)
}

// Report zero-fills the missing values of table in place and renders the
// charts.
func (p *Pipeline) Report(table *models.UnifiedTable) ([]string, error) {
	log := p.Options.logger()

	filled := table.FillMissing(0)
	log.Info("missing values filled", zap.Int("cells", filled))

	obs, err := analysis.FromUnified(table, p.Columns())
	if err != nil {
		return nil, err
	}

	opts := p.Charts
	if opts.Logger == nil {
		opts.Logger = p.Options.Logger
	}
	paths, err := charts.Render(obs, opts)
	if err != nil {
		return nil, err
	}

	files := make([]output.File, len(paths))
	for i, path := range paths {
		files[i] = output.File{Path: path}
	}
	p.record("report", files...)
	return paths, nil
}

// Columns maps the three sources onto the report's measurements.
func (p *Pipeline) Columns() analysis.Columns {
	var c analysis.Columns
	if len(p.Sources) > 0 {
		c.Area = p.Sources[0].Column
	}
	if len(p.Sources) > 1 {
		c.Quantity = p.Sources[1].Column
	}
	if len(p.Sources) > 2 {
		c.Yield = p.Sources[2].Column
	}
	return c
}

func (p *Pipeline) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(p.OutputDir, name)
}

func (p *Pipeline) record(stage string, files ...output.File) {
	if p.Manifest != nil {
		p.Manifest.Record(stage, files...)
	}
}
