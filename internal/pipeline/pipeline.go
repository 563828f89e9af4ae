// Package pipeline runs extractions end to end: it opens documents,
// drives the extraction engine, persists the interchange JSON, renders
// workbooks, and fans out over document batches.
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pharmaflow/formulex/internal/excel"
	"github.com/pharmaflow/formulex/internal/extract"
	"github.com/pharmaflow/formulex/internal/formulary"
	"github.com/pharmaflow/formulex/internal/pdftext"
)

// Output file names inside each document's directory.
const (
	DataFile     = "extracted_data.json"
	WarningsFile = "extraction_warnings.json"
	TOCFile      = "table_of_contents.json"
)

// tokenSource is a closeable page token stream.
type tokenSource interface {
	extract.TokenSource
	Close() error
}

// Options configures a Processor.
type Options struct {
	// OutputDir is the root under which each document gets its own
	// directory named after the PDF stem.
	OutputDir string
	// JSONOnly skips workbook rendering.
	JSONOnly bool
	// Workers bounds batch concurrency. Values below 1 mean 1.
	Workers int
	// Config tunes the extraction engine; nil uses defaults.
	Config *extract.Config
	// Logger receives diagnostic records; nil discards them.
	Logger *slog.Logger
}

// Processor extracts documents. Each document gets its own engine
// instance, so one Processor is safe for concurrent batches.
type Processor struct {
	opts Options
	log  *slog.Logger

	// openSource is swapped in tests for synthetic token pages.
	openSource func(path string) (tokenSource, error)
}

func New(opts Options) *Processor {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Processor{
		opts: opts,
		log:  log,
		openSource: func(path string) (tokenSource, error) {
			return pdftext.Open(path)
		},
	}
}

// Report summarizes one document's processing.
type Report struct {
	// Path of the source document.
	Path string
	// Dir is the document's output directory.
	Dir string

	TOCEntries    int
	Categories    int
	SubCategories int
	Rows          int
	Warnings      int

	// RenderErr is set when the workbook failed after the JSON outputs
	// were already written. The extraction still counts as a success.
	RenderErr error
}

// Process extracts one document and writes its outputs. The three JSON
// files are always written on a successful extraction; a workbook
// rendering failure is carried on the report rather than returned, so
// the durable JSON is never invalidated by a downstream failure.
func (p *Processor) Process(path string) (*Report, error) {
	stem := docStem(path)
	dir := filepath.Join(p.opts.OutputDir, stem)
	log := p.log.With("doc", stem)

	src, err := p.openSource(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	log.Info("extracting", "pages", src.PageCount())
	result, err := extract.New(p.opts.Config).Extract(src)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if err := writeJSON(filepath.Join(dir, DataFile), result.Categories); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, WarningsFile), result.Warnings); err != nil {
		return nil, err
	}
	if err := writeJSON(filepath.Join(dir, TOCFile), result.TableOfContents); err != nil {
		return nil, err
	}

	report := &Report{
		Path:          path,
		Dir:           dir,
		TOCEntries:    len(result.TableOfContents),
		Categories:    len(result.Categories),
		SubCategories: result.TotalSubCategories(),
		Rows:          result.TotalRows(),
		Warnings:      len(result.Warnings),
	}

	if !p.opts.JSONOnly {
		xlsxPath := filepath.Join(dir, stem+".xlsx")
		if err := excel.Render(result.Categories, xlsxPath); err != nil {
			log.Warn("workbook rendering failed, JSON outputs kept", "error", err)
			report.RenderErr = err
		}
	}

	log.Info("extraction complete",
		"categories", report.Categories,
		"rows", report.Rows,
		"warnings", report.Warnings)
	return report, nil
}

// RenderWorkbook renders a workbook from a persisted extracted_data.json,
// writing <dir>/<dir-name>.xlsx next to it.
func RenderWorkbook(jsonPath string) (string, error) {
	categories, err := formulary.ReadCategoriesFile(jsonPath)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(jsonPath)
	stem := filepath.Base(dir)
	if stem == "." || stem == string(filepath.Separator) {
		stem = docStem(jsonPath)
	}
	xlsxPath := filepath.Join(dir, stem+".xlsx")
	if err := excel.Render(categories, xlsxPath); err != nil {
		return "", err
	}
	return xlsxPath, nil
}

func docStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// writeJSON persists a value as two-space-indented UTF-8 JSON without
// HTML escaping, matching the interchange format.
func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := encodeJSON(f, v); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
