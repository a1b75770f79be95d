package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/cleancorp/internal/batch"
)

var (
	batchInput       string
	batchOutput      string
	batchColumn      string
	batchColumnIndex int
	batchNoHeader    bool
	batchFormat      string
	batchConcurrency int
	batchExplain     bool
	batchFold        bool
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Classify every name in a CSV or XLSX file",
	Long: `Reads names from one column of a CSV or XLSX file, classifies them
concurrently and writes the records in input order.

Examples:
  # JSON lines to stdout, names in the "name" column
  cleancorp batch --input companies.csv

  # CSV output from the first sheet of a workbook
  cleancorp batch --input companies.xlsx --column "Legal Name" --format csv --output clean.csv`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if batchInput == "" {
			return eris.New("batch: --input is required")
		}

		format := cfg.Batch.Format
		if batchFormat != "" {
			format = batchFormat
		}
		concurrency := cfg.Batch.Concurrency
		if batchConcurrency > 0 {
			concurrency = batchConcurrency
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		c, err := newClassifier(batchFold)
		if err != nil {
			return err
		}

		rows, errs, closeInput, err := openInput(ctx)
		if err != nil {
			return err
		}
		defer closeInput()

		runner := batch.NewRunner(c, batch.RunnerOptions{
			Concurrency: concurrency,
			CacheTTL:    time.Duration(cfg.Batch.CacheTTLSecs) * time.Second,
			Explain:     batchExplain,
		})
		results, stats, err := runner.Run(ctx, rows, errs)
		if err != nil {
			return err
		}

		var out io.Writer = cmd.OutOrStdout()
		if batchOutput != "" {
			f, err := os.Create(batchOutput)
			if err != nil {
				return eris.Wrap(err, "batch: create output file")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}

		w, err := batch.NewWriter(format, out)
		if err != nil {
			return err
		}
		if err := w.Write(results); err != nil {
			return err
		}

		zap.L().Info("batch: wrote results",
			zap.String("input", batchInput),
			zap.String("format", format),
			zap.Int("total", stats.Total),
			zap.Int("companies", stats.Companies),
		)
		return nil
	},
}

// openInput streams names from the configured input. XLSX files are read by
// sheet; anything else is treated as CSV.
func openInput(ctx context.Context) (<-chan batch.Row, <-chan error, func(), error) {
	column := batch.Column{Name: batchColumn, Index: batchColumnIndex}
	if batchColumn == "" && batchColumnIndex < 0 {
		column = batch.Column{Name: cfg.Batch.NameColumn}
	}
	if batchNoHeader {
		column.Name = ""
		if column.Index < 0 {
			column.Index = 0
		}
	}

	if strings.EqualFold(filepath.Ext(batchInput), ".xlsx") {
		rows, errs := batch.StreamXLSX(ctx, batchInput, batch.XLSXOptions{
			Column:    column,
			SheetName: cfg.Batch.Sheet,
			HasHeader: !batchNoHeader,
		})
		return rows, errs, func() {}, nil
	}

	f, err := os.Open(batchInput)
	if err != nil {
		return nil, nil, nil, eris.Wrap(err, "batch: open input")
	}
	rows, errs := batch.StreamCSV(ctx, f, batch.CSVOptions{
		Column:     column,
		HasHeader:  !batchNoHeader,
		LazyQuotes: true,
	})
	return rows, errs, func() { _ = f.Close() }, nil
}

func init() {
	batchCmd.Flags().StringVar(&batchInput, "input", "", "CSV or XLSX file of names")
	batchCmd.Flags().StringVar(&batchOutput, "output", "", "output file (default stdout)")
	batchCmd.Flags().StringVar(&batchColumn, "column", "", "header name of the name column (default batch.name_column)")
	batchCmd.Flags().IntVar(&batchColumnIndex, "column-index", -1, "zero-based index of the name column")
	batchCmd.Flags().BoolVar(&batchNoHeader, "no-header", false, "input has no header row")
	batchCmd.Flags().StringVar(&batchFormat, "format", "", "output format: jsonl, json or csv (default batch.format)")
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "classification workers (default batch.concurrency)")
	batchCmd.Flags().BoolVar(&batchExplain, "explain", false, "include every matched term")
	batchCmd.Flags().BoolVar(&batchFold, "fold", false, "apply NFKC and width folding before matching")
	rootCmd.AddCommand(batchCmd)
}
