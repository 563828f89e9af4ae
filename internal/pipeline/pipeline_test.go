package pipeline

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pharmaflow/formulex/internal/extract"
	"github.com/pharmaflow/formulex/internal/formulary"
)

type fakeTokens struct {
	pages [][]extract.Token
}

func (f *fakeTokens) PageCount() int { return len(f.pages) }

func (f *fakeTokens) PageTokens(page int) ([]extract.Token, error) {
	return f.pages[page-1], nil
}

func (f *fakeTokens) Close() error { return nil }

func tok(text string, x, y, size float64, font string) extract.Token {
	return extract.Token{
		Text:     text,
		X:        x,
		Y:        y,
		W:        float64(len(text)) * size * 0.5,
		Font:     font,
		FontSize: size,
	}
}

// samplePages builds a one-page document with one category, one
// subcategory, a column header, and two data rows.
func samplePages() [][]extract.Token {
	return [][]extract.Token{{
		tok("ANTIBIOTICS", 72, 720, 14, "Helvetica-Bold"),
		tok("Penicillins", 72, 704, 11, "Helvetica-Bold"),
		tok("Drug", 72, 688, 10, "Helvetica-Bold"),
		tok("Strength", 200, 688, 10, "Helvetica-Bold"),
		tok("Amoxicillin", 72, 672, 10, "Helvetica"),
		tok("500 mg", 200, 672, 10, "Helvetica"),
		tok("Penicillin V", 72, 656, 10, "Helvetica"),
		tok("250 mg", 200, 656, 10, "Helvetica"),
	}}
}

func newTestProcessor(t *testing.T, opts Options) *Processor {
	t.Helper()
	p := New(opts)
	p.openSource = func(path string) (tokenSource, error) {
		if strings.Contains(path, "broken") {
			return nil, errors.New("corrupt document")
		}
		return &fakeTokens{pages: samplePages()}, nil
	}
	return p
}

func TestProcess_WritesAllOutputs(t *testing.T) {
	outDir := t.TempDir()
	p := newTestProcessor(t, Options{OutputDir: outDir})

	report, err := p.Process("/docs/county-formulary.pdf")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	wantDir := filepath.Join(outDir, "county-formulary")
	if report.Dir != wantDir {
		t.Errorf("expected output dir %s, got %s", wantDir, report.Dir)
	}
	for _, name := range []string{DataFile, WarningsFile, TOCFile, "county-formulary.xlsx"} {
		if _, err := os.Stat(filepath.Join(wantDir, name)); err != nil {
			t.Errorf("expected %s to exist: %v", name, err)
		}
	}

	if report.Categories != 1 || report.SubCategories != 1 || report.Rows != 2 {
		t.Errorf("expected 1/1/2 counts, got %d/%d/%d",
			report.Categories, report.SubCategories, report.Rows)
	}
	if report.Warnings != 0 {
		t.Errorf("expected no warnings, got %d", report.Warnings)
	}
	if report.RenderErr != nil {
		t.Errorf("expected no render error, got %v", report.RenderErr)
	}

	// The persisted JSON must round-trip with column order intact.
	cats, err := formulary.ReadCategoriesFile(filepath.Join(wantDir, DataFile))
	if err != nil {
		t.Fatalf("read persisted categories: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "ANTIBIOTICS" {
		t.Fatalf("expected persisted ANTIBIOTICS category, got %v", cats)
	}
	row := cats[0].SubCategories[0].Rows[0]
	if cols := row.Columns(); len(cols) != 2 || cols[0] != "Drug" || cols[1] != "Strength" {
		t.Errorf("expected persisted column order [Drug Strength], got %v", cols)
	}
}

func TestProcess_JSONOnlySkipsWorkbook(t *testing.T) {
	outDir := t.TempDir()
	p := newTestProcessor(t, Options{OutputDir: outDir, JSONOnly: true})

	report, err := p.Process("/docs/county-formulary.pdf")
	if err != nil {
		t.Fatalf("process: %v", err)
	}
	xlsx := filepath.Join(report.Dir, "county-formulary.xlsx")
	if _, err := os.Stat(xlsx); !os.IsNotExist(err) {
		t.Errorf("expected no workbook in json-only mode, stat err=%v", err)
	}
	if _, err := os.Stat(filepath.Join(report.Dir, DataFile)); err != nil {
		t.Errorf("expected JSON output to exist: %v", err)
	}
}

func TestProcess_OpenFailure(t *testing.T) {
	p := newTestProcessor(t, Options{OutputDir: t.TempDir()})
	if _, err := p.Process("/docs/broken.pdf"); err == nil {
		t.Fatal("expected an error for an unreadable document")
	}
}

func TestRunBatch_CollectsFailuresWithoutAborting(t *testing.T) {
	pdfDir := t.TempDir()
	for _, name := range []string{"a.pdf", "b.pdf", "broken.pdf"} {
		if err := os.WriteFile(filepath.Join(pdfDir, name), nil, 0644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	p := newTestProcessor(t, Options{OutputDir: t.TempDir(), Workers: 2})

	statusCalls := 0
	result, err := p.RunBatch(pdfDir, func(path string, report *Report, err error) {
		statusCalls++
		if strings.Contains(path, "broken") != (err != nil) {
			t.Errorf("unexpected status for %s: report=%v err=%v", path, report, err)
		}
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	if statusCalls != 3 {
		t.Errorf("expected 3 status calls, got %d", statusCalls)
	}
	if len(result.Reports) != 2 {
		t.Fatalf("expected 2 successful documents, got %d", len(result.Reports))
	}
	// Input order, not completion order.
	if !strings.HasSuffix(result.Reports[0].Path, "a.pdf") ||
		!strings.HasSuffix(result.Reports[1].Path, "b.pdf") {
		t.Errorf("expected reports in input order, got %s then %s",
			result.Reports[0].Path, result.Reports[1].Path)
	}
	if len(result.Failed) != 1 || !strings.HasSuffix(result.Failed[0].Path, "broken.pdf") {
		t.Errorf("expected broken.pdf in failures, got %v", result.Failed)
	}
	if !result.Succeeded() {
		t.Error("expected the batch to count as succeeded")
	}
	if result.RunID == "" {
		t.Error("expected a batch run ID")
	}
}

func TestRunBatch_EmptyDirectory(t *testing.T) {
	p := newTestProcessor(t, Options{OutputDir: t.TempDir()})
	if _, err := p.RunBatch(t.TempDir(), nil); err == nil {
		t.Fatal("expected an error for a directory without PDFs")
	}
}

func TestRenderWorkbook_FromPersistedJSON(t *testing.T) {
	outDir := t.TempDir()
	p := newTestProcessor(t, Options{OutputDir: outDir, JSONOnly: true})
	report, err := p.Process("/docs/county-formulary.pdf")
	if err != nil {
		t.Fatalf("process: %v", err)
	}

	xlsxPath, err := RenderWorkbook(filepath.Join(report.Dir, DataFile))
	if err != nil {
		t.Fatalf("render workbook: %v", err)
	}
	want := filepath.Join(report.Dir, "county-formulary.xlsx")
	if xlsxPath != want {
		t.Errorf("expected workbook at %s, got %s", want, xlsxPath)
	}
	if _, err := os.Stat(xlsxPath); err != nil {
		t.Errorf("expected workbook to exist: %v", err)
	}
}
