package commands

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Yachtguy502/Analyze-Active-Listings/internal/app"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/exporter"
	"github.com/Yachtguy502/Analyze-Active-Listings/internal/services"
	"github.com/Yachtguy502/Analyze-Active-Listings/pkg/contracts/domain"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

type analyzeOptions struct {
	variant string
	format  string
	export  string
	csvDir  string
}

func newAnalyzeCommand(rt *session) *cobra.Command {
	opts := &analyzeOptions{}

	cmd := &cobra.Command{
		Use:   "analyze <file>",
		Short: "Analyze a listings export",
		Long: `Loads a CSV or XLSX listings export, validates the required columns and
prints the price band summary, revenue projections and quality subsets.

The xlsx workbook is written only when --export is given. Without a value
it is named listing_analysis.xlsx and placed in the configured output
directory.`,
		Example: `  listings analyze inventory.csv
  listings analyze inventory.csv --export
  listings analyze inventory.csv --export report.xlsx --csv-dir out
  listings analyze inventory.csv --variant basic --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, rt, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.variant, "variant", "", "analysis variant: basic|extended (overrides config)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatTable, "output format: table|json")
	cmd.Flags().StringVar(&opts.export, "export", "", "write the xlsx workbook to this path")
	cmd.Flags().Lookup("export").NoOptDefVal = exporter.DefaultWorkbookName
	cmd.Flags().StringVar(&opts.csvDir, "csv-dir", "", "also write one CSV per table into this directory")
	return cmd
}

func runAnalyze(cmd *cobra.Command, rt *session, opts *analyzeOptions, path string) error {
	if opts.format != formatTable && opts.format != formatJSON {
		return fmt.Errorf("unknown output format %q (want %q or %q)", opts.format, formatTable, formatJSON)
	}

	// empty leaves the choice to the configured default
	var variant domain.Variant
	if opts.variant != "" {
		v, err := domain.ParseVariant(opts.variant)
		if err != nil {
			return err
		}
		variant = v
	}

	svc, err := app.NewAnalysisService(rt.cfg, rt.logger, nil, nil)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	analysis, err := svc.AnalyzeFile(ctx, path, variant)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch opts.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(analysis.Result); err != nil {
			return err
		}
	default:
		if err := services.Present(ctx, NewTablePresenter(out), analysis.Result); err != nil {
			return err
		}
	}

	// file notices go to stderr so JSON output stays parseable
	notices := cmd.ErrOrStderr()

	if opts.export != "" {
		target := opts.export
		if !filepath.IsAbs(target) && filepath.Dir(target) == "." {
			target = filepath.Join(rt.cfg.Analysis.OutputDir, target)
		}
		if err := svc.ExportWorkbookFile(ctx, target, analysis.Result); err != nil {
			return err
		}
		fmt.Fprintf(notices, "Workbook written to %s\n", target)
	}

	if opts.csvDir != "" {
		paths, err := svc.ExportCSV(ctx, opts.csvDir, analysis)
		if err != nil {
			return err
		}
		for _, p := range paths {
			fmt.Fprintf(notices, "CSV written to %s\n", p)
		}
	}
	return nil
}
