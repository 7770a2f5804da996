package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/javajack/xlref/excel"
	"github.com/javajack/xlref/internal/config"
	"github.com/javajack/xlref/internal/logging"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	format     string
	sheet      string

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: zap.NewNop()}
	root := &cobra.Command{
		Use:   "xlref",
		Short: "Inspect cell references and merged regions of xlsx workbooks",
		Long: `xlref parses A1 and R1C1 references, reads cell ranges and tables,
and merges or unmerges regions of xlsx workbooks.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.log.Sync() },
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", "", "Output format: text, yaml (default from config)")
	root.PersistentFlags().StringVar(&a.sheet, "sheet", "", "Sheet for references without a sheet name")

	root.AddCommand(
		a.refCmd(),
		a.rangeCmd(),
		a.cellsCmd(),
		a.mergesCmd(),
		a.mergeCmd(),
		a.unmergeCmd(),
		a.filterCmd(),
		a.describeCmd(),
		a.validateCmd(),
	)
	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.format != "" {
		cfg.Output = a.format
	}
	if a.sheet != "" {
		cfg.DefaultSheet = a.sheet
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	log, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	return nil
}

// open opens a workbook with the configured default sheet and logger.
func (a *app) open(path string) (*excel.Document, error) {
	opts := []excel.Option{excel.WithLogger(a.log)}
	if a.cfg.DefaultSheet != "" {
		opts = append(opts, excel.WithDefaultSheet(a.cfg.DefaultSheet))
	}
	return excel.Open(path, opts...)
}

// render writes v as YAML, or calls text for the plain format.
func (a *app) render(w io.Writer, v any, text func(io.Writer) error) error {
	if a.cfg.Output == config.OutputYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	return text(w)
}
