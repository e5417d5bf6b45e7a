// Package main provides the CLI entry point for agroseries.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ukaji3/agroseries-go/internal/config"
	"github.com/ukaji3/agroseries-go/internal/logging"
	"github.com/ukaji3/agroseries-go/pkg/agroseries"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/charts"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/output"
	"github.com/ukaji3/agroseries-go/pkg/agroseries/parser"
	"go.uber.org/zap"
)

var (
	cfgFile   string
	verbose   bool
	inputPath string
	outputDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "agroseries",
		Short: "Reshape and chart IBGE agricultural production tables",
		Long: `agroseries splits the IBGE table 1612 workbook into one file per sheet,
reshapes the harvested area, quantity produced and average yield sheets to
long format, joins them, and renders descriptive charts.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./agroseries.yaml if present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "", "source workbook (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "o", "", "output directory (overrides config)")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "split",
			Short: "Write each sheet of the source workbook to its own workbook",
			Args:  cobra.NoArgs,
			RunE: stage(func(p *agroseries.Pipeline) error {
				_, err := p.Split()
				return err
			}),
		},
		&cobra.Command{
			Use:   "reshape",
			Short: "Reshape the split sheets to long format and join them",
			Args:  cobra.NoArgs,
			RunE: stage(func(p *agroseries.Pipeline) error {
				_, err := p.Reshape()
				return err
			}),
		},
		&cobra.Command{
			Use:   "report",
			Short: "Render the charts from the unified table",
			Args:  cobra.NoArgs,
			RunE: stage(func(p *agroseries.Pipeline) error {
				_, err := p.ReportFile()
				return err
			}),
		},
		&cobra.Command{
			Use:   "run",
			Short: "Split, reshape and report in one pass",
			Args:  cobra.NoArgs,
			RunE:  stage((*agroseries.Pipeline).Run),
		},
		initCmd(),
		manifestCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// stage wraps a pipeline step with configuration, logging and the manifest.
func stage(step func(*agroseries.Pipeline) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		applyFlags(cfg)
		if err := cfg.Validate(); err != nil {
			return err
		}

		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		defer func() { _ = logger.Sync() }()

		p := newPipeline(cfg, logger)
		logger.Info("starting",
			zap.String("command", cmd.Name()),
			zap.String("run_id", p.Manifest.RunID))

		if err := step(p); err != nil {
			logger.Error("failed", zap.String("command", cmd.Name()), zap.Error(err))
			return err
		}

		manifestPath := filepath.Join(p.OutputDir, cfg.ManifestFile)
		if err := p.Manifest.Save(manifestPath); err != nil {
			return fmt.Errorf("failed to write manifest: %w", err)
		}
		logger.Info("done", zap.String("command", cmd.Name()), zap.String("manifest", manifestPath))
		return nil
	}
}

// applyFlags overrides the loaded configuration with the global flags.
// A charts_dir set in the file or environment survives --output-dir.
func applyFlags(cfg *config.Global) {
	if inputPath != "" {
		cfg.Input = inputPath
	}
	if outputDir != "" {
		cfg.OutputDir = outputDir
	}
	if verbose {
		cfg.Log.Level = "debug"
	}
}

func newPipeline(cfg *config.Global, logger *zap.Logger) *agroseries.Pipeline {
	sources := make([]agroseries.Source, len(cfg.Sources))
	for i, s := range cfg.Sources {
		sources[i] = agroseries.Source{Workbook: s.Workbook, Column: s.Column, LongFile: s.LongFile}
	}

	input := cfg.Resolve(cfg.Input)
	return &agroseries.Pipeline{
		Input:       input,
		OutputDir:   cfg.Resolve(cfg.OutputDir),
		UnifiedFile: cfg.UnifiedFile,
		Sources:     sources,
		Options: agroseries.Options{
			Layout: parser.Layout{
				YearRow:      cfg.Layout.YearRow,
				ProductRow:   cfg.Layout.ProductRow,
				FirstDataRow: cfg.Layout.FirstDataRow,
				LabelColumn:  cfg.Layout.LabelColumn,
			},
			Logger: logger,
		},
		Charts: charts.Options{
			Dir:           cfg.ChartsPath(),
			ProductFilter: cfg.Report.ProductFilter,
			FocusState:    cfg.Report.FocusState,
			RankingSize:   cfg.Report.RankingSize,
			WidthPx:       cfg.Report.ChartWidthPx,
			HeightPx:      cfg.Report.ChartHeightPx,
			Logger:        logger,
		},
		Manifest: output.NewManifest(input),
	}
}

func initCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.FileName
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			applyFlags(cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := config.Save(cfg, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func manifestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "manifest",
		Short: "Show the files written by the last invocation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			applyFlags(cfg)

			m, err := output.LoadManifest(filepath.Join(cfg.Resolve(cfg.OutputDir), cfg.ManifestFile))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "run %s at %s\n", m.RunID, m.StartedAt.Format(time.RFC3339))
			if m.Input != "" {
				fmt.Fprintf(w, "input %s\n", m.Input)
			}
			for _, s := range m.Stages {
				fmt.Fprintf(w, "%s:\n", s.Name)
				for _, f := range s.Files {
					if f.Rows > 0 {
						fmt.Fprintf(w, "  %s (%d)\n", f.Path, f.Rows)
					} else {
						fmt.Fprintf(w, "  %s\n", f.Path)
					}
				}
			}
			return nil
		},
	}
}
