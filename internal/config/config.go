package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"github.com/ukaji3/agroseries-go/pkg/agroseries"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/output"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "agroseries.yaml"

// Source is one wide sheet to reshape.
type Source struct {
	Workbook string `mapstructure:"workbook" yaml:"workbook"`
	Column   string `mapstructure:"column" yaml:"column"`
	LongFile string `mapstructure:"long_file" yaml:"long_file"`
}

// Layout locates the header rows of the wide sheets (0-based).
type Layout struct {
	YearRow      int `mapstructure:"year_row" yaml:"year_row"`
	ProductRow   int `mapstructure:"product_row" yaml:"product_row"`
	FirstDataRow int `mapstructure:"first_data_row" yaml:"first_data_row"`
	LabelColumn  int `mapstructure:"label_column" yaml:"label_column"`
}

// Report configures the charts.
type Report struct {
	ProductFilter string `mapstructure:"product_filter" yaml:"product_filter"`
	FocusState    string `mapstructure:"focus_state" yaml:"focus_state"`
	RankingSize   int    `mapstructure:"ranking_size" yaml:"ranking_size"`
	ChartWidthPx  int    `mapstructure:"chart_width_px" yaml:"chart_width_px"`
	ChartHeightPx int    `mapstructure:"chart_height_px" yaml:"chart_height_px"`
}

// Log configures the logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}

// Global configuration structure.
type Global struct {
	BaseDir      string   `mapstructure:"base_dir" yaml:"base_dir"`
	Input        string   `mapstructure:"input" yaml:"input"`
	OutputDir    string   `mapstructure:"output_dir" yaml:"output_dir"`
	// ChartsDir defaults to OutputDir/charts when empty; see ChartsPath.
	ChartsDir    string   `mapstructure:"charts_dir" yaml:"charts_dir"`
	UnifiedFile  string   `mapstructure:"unified_file" yaml:"unified_file"`
	ManifestFile string   `mapstructure:"manifest_file" yaml:"manifest_file"`
	Sources      []Source `mapstructure:"sources" yaml:"sources"`
	Layout       Layout   `mapstructure:"layout" yaml:"layout"`
	Report       Report   `mapstructure:"report" yaml:"report"`
	Log          Log      `mapstructure:"log" yaml:"log"`
}

// Save writes the given configuration to path as YAML.
func Save(c *Global, path string) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. An explicit cfgFile must
// exist; otherwise agroseries.yaml in the working directory is optional.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("AGROSERIES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("base_dir", ".")
	v.SetDefault("input", filepath.Join("data", "tabela1612.xlsx"))
	v.SetDefault("output_dir", "output")
	v.SetDefault("charts_dir", "")
	v.SetDefault("unified_file", "dados_unificados.csv")
	v.SetDefault("manifest_file", "manifest.yaml")
	v.SetDefault("sources", defaultSources())
	v.SetDefault("layout.year_row", 3)
	v.SetDefault("layout.product_row", 4)
	v.SetDefault("layout.first_data_row", 5)
	v.SetDefault("layout.label_column", 0)
	v.SetDefault("report.product_filter", "Soja")
	v.SetDefault("report.focus_state", "Acre")
	v.SetDefault("report.ranking_size", 10)
	v.SetDefault("report.chart_width_px", 1152)
	v.SetDefault("report.chart_height_px", 576)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Config file
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName(strings.TrimSuffix(FileName, filepath.Ext(FileName)))
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}

func defaultSources() []map[string]interface{} {
	var out []map[string]interface{}
	for _, s := range agroseries.DefaultSources() {
		out = append(out, map[string]interface{}{
			"workbook":  s.Workbook,
			"column":    s.Column,
			"long_file": s.LongFile,
		})
	}
	return out
}

// Validate reports the first inconsistency in the configuration.
func (c *Global) Validate() error {
	if c.Input == "" {
		return errors.New("config: input is empty")
	}
	if c.OutputDir == "" {
		return errors.New("config: output_dir is empty")
	}
	if len(c.Sources) != 3 {
		return fmt.Errorf("config: expected 3 sources (area, quantity, yield), got %d", len(c.Sources))
	}
	seen := make(map[string]bool)
	for i, s := range c.Sources {
		if s.Workbook == "" || s.Column == "" || s.LongFile == "" {
			return fmt.Errorf("config: source %d: workbook, column and long_file are required", i)
		}
		if output.IsKeyColumn(s.Column) {
			return fmt.Errorf("config: source %d: column %q clashes with a key column", i, s.Column)
		}
		if seen[s.Column] {
			return fmt.Errorf("config: duplicate column %q", s.Column)
		}
		seen[s.Column] = true
	}

	l := c.Layout
	if l.YearRow < 0 || l.ProductRow < 0 || l.FirstDataRow < 0 || l.LabelColumn < 0 {
		return errors.New("config: layout indices must not be negative")
	}
	if l.YearRow == l.ProductRow {
		return errors.New("config: layout year_row and product_row must differ")
	}
	if l.FirstDataRow <= l.YearRow || l.FirstDataRow <= l.ProductRow {
		return errors.New("config: layout first_data_row must follow the header rows")
	}

	if c.Report.RankingSize <= 0 {
		return errors.New("config: report.ranking_size must be positive")
	}
	if c.Report.ChartWidthPx <= 0 || c.Report.ChartHeightPx <= 0 {
		return errors.New("config: report chart size must be positive")
	}
	return nil
}

// ChartsPath returns the resolved charts directory: ChartsDir when set,
// otherwise the charts subdirectory of OutputDir.
func (c *Global) ChartsPath() string {
	if c.ChartsDir != "" {
		return c.Resolve(c.ChartsDir)
	}
	return c.Resolve(filepath.Join(c.OutputDir, "charts"))
}

// Resolve returns p relative to BaseDir unless it is absolute.
func (c *Global) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}
