package main

import (
	"fmt"
	"log"
	"os"

	"swingstats/app"
	"swingstats/internal/config"
	apperrors "swingstats/internal/errors"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var quiet bool

func main() {
	// Load .env file if present (optional for local overrides)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	rootCmd := &cobra.Command{
		Use:   "swingstats",
		Short: "Convert golf-swing CSV measurements into a statistics workbook",
		Long: `swingstats converts a CSV of golf-swing measurements into an xlsx report.

Each data row carries an editable Include flag, and the AVG/STDEV rows are
live formulas filtered on that flag, so toggling Yes/No in the saved
workbook recomputes the statistics without re-running the tool.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress the post-run summary")

	rootCmd.AddCommand(
		newGenerateCmd(),
		newBatchCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error [%s]: %v\n", apperrors.GetCode(err), err)
		os.Exit(1)
	}
}

func newGenerateCmd() *cobra.Command {
	var excluded []int

	cmd := &cobra.Command{
		Use:   "generate [input.csv] [output.xlsx]",
		Short: "Generate a statistics workbook from one CSV",
		Long: `Generate a formatted workbook from a swing-measurement CSV.

The input must carry "No.", "Date" and "EQ" columns; every other column is
treated as a numeric metric. Shots listed via --exclude are flagged "No"
and skipped by the AVG/STDEV formulas.

Example: swingstats generate range-session.csv report.xlsx --exclude 3,8`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			service := app.NewReportService(cfg)
			result, err := service.Generate(cmd.Context(), app.Request{
				InputPath:  args[0],
				OutputPath: args[1],
				Excluded:   excluded,
			})
			if err != nil {
				return err
			}

			if !quiet {
				result.Print(os.Stdout)
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&excluded, "exclude", nil, "Shot numbers (No. column) to exclude from statistics")

	return cmd
}

func newBatchCmd() *cobra.Command {
	var excluded []int
	var parallel int

	cmd := &cobra.Command{
		Use:   "batch [out-dir] [input.csv...]",
		Short: "Generate workbooks for several CSVs concurrently",
		Long: `Generate one workbook per input CSV into out-dir.

Inputs are independent, so they are processed concurrently; each report is
named after its input with an .xlsx extension. The exclusion set applies to
every input.

Example: swingstats batch reports/ monday.csv tuesday.csv --exclude 8`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if parallel > 0 {
				cfg.Batch.Parallelism = parallel
			}

			outDir := args[0]
			if err := os.MkdirAll(outDir, 0755); err != nil {
				return apperrors.Wrapf(err, "cannot create output directory %s", outDir)
			}

			service := app.NewReportService(cfg)
			summaries, err := service.GenerateBatch(cmd.Context(), args[1:], outDir, excluded)
			if err != nil {
				return err
			}

			if !quiet {
				for _, s := range summaries {
					s.Print(os.Stdout)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&excluded, "exclude", nil, "Shot numbers (No. column) to exclude from statistics")
	cmd.Flags().IntVar(&parallel, "parallel", 0, "Max concurrent inputs (default from SWINGSTATS_BATCH_PARALLELISM)")

	return cmd
}
