package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/pharmaflow/formulex/internal/extract"
	"github.com/pharmaflow/formulex/internal/pipeline"
	"github.com/spf13/cobra"
)

var outputDir string
var pdfDir string
var jsonOnly bool
var workers int
var frontMatterPages int
var columnTolerance float64
var verbose bool

var extractCmd = &cobra.Command{
	Use:   "extract [pdf]",
	Short: "Extract a formulary PDF (or a directory of them)",
	Long: `Extract one PDF given as the positional argument, or every *.pdf in the
directory given with --pdf-dir. Each document writes extracted_data.json,
extraction_warnings.json, table_of_contents.json, and a workbook into its own
directory under the output root.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pdfDir == "" && len(args) == 0 {
			return fmt.Errorf("provide a PDF path or --pdf-dir")
		}
		if pdfDir != "" && len(args) > 0 {
			return fmt.Errorf("a PDF path and --pdf-dir are mutually exclusive")
		}

		cfg := extract.DefaultConfig()
		cfg.FrontMatterPageLimit = frontMatterPages
		cfg.ColumnTolerance = columnTolerance

		proc := pipeline.New(pipeline.Options{
			OutputDir: outputDir,
			JSONOnly:  jsonOnly,
			Workers:   workers,
			Config:    cfg,
			Logger:    newLogger(cmd.ErrOrStderr()),
		})
		out := cmd.OutOrStdout()

		if pdfDir != "" {
			return runBatch(out, proc)
		}
		return runSingle(out, proc, args[0])
	},
}

func runSingle(out io.Writer, proc *pipeline.Processor, path string) error {
	pipeline.FormatHeader(out, path, outputDir, jsonOnly)
	report, err := proc.Process(path)
	if err != nil {
		return err
	}
	pipeline.FormatReport(out, report)
	return nil
}

func runBatch(out io.Writer, proc *pipeline.Processor) error {
	pipeline.FormatHeader(out, pdfDir, outputDir, jsonOnly)
	pipeline.FormatBatchBanner(out, workers)

	result, err := proc.RunBatch(pdfDir, func(path string, report *pipeline.Report, err error) {
		pipeline.FormatDocStatus(out, path, report, err)
	})
	if err != nil {
		return err
	}

	pipeline.FormatBatchSummary(out, result)
	if !result.Succeeded() {
		return fmt.Errorf("no documents extracted successfully")
	}
	return nil
}

func newLogger(w io.Writer) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func init() {
	extractCmd.Flags().StringVarP(&outputDir, "output-dir", "o", "output", "Root directory for per-document output")
	extractCmd.Flags().StringVar(&pdfDir, "pdf-dir", "", "Process every *.pdf in this directory")
	extractCmd.Flags().BoolVar(&jsonOnly, "json-only", false, "Skip workbook rendering, write JSON only")
	extractCmd.Flags().IntVar(&frontMatterPages, "front-matter-pages", extract.DefaultConfig().FrontMatterPageLimit, "Page window scanned for table-of-contents entries")
	extractCmd.Flags().Float64Var(&columnTolerance, "column-tolerance", extract.DefaultConfig().ColumnTolerance, "Horizontal tolerance in points for column alignment")
	extractCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline diagnostics to stderr")

	// Worker count flag with env var fallback
	defaultWorkers := 4
	if envWorkers := os.Getenv("FORMULEX_WORKERS"); envWorkers != "" {
		if n, err := strconv.Atoi(envWorkers); err == nil && n > 0 {
			defaultWorkers = n
		}
	}
	extractCmd.Flags().IntVar(&workers, "workers", defaultWorkers, "Concurrent documents in batch mode")

	rootCmd.AddCommand(extractCmd)
}
