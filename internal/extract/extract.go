package extract

import (
	"errors"
	"fmt"

	"github.com/pharmaflow/formulex/internal/formulary"
)

// ErrNoText marks a document with zero extractable text, typically a
// scanned or image-only PDF.
var ErrNoText = errors.New("document contains no extractable text")

// Extractor drives one document through line assembly, classification,
// and hierarchy building. Every mode flag lives on the instance, so
// concurrent documents each get their own Extractor.
type Extractor struct {
	cfg *Config
}

// New creates an Extractor. A nil config uses DefaultConfig.
func New(cfg *Config) *Extractor {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Extractor{cfg: cfg}
}

// Extract processes all pages in physical order and returns the
// assembled result. It is the only place a document can fail: an
// unreadable page stream or a document with no text at all. All
// classification ambiguity is resolved locally into warnings.
func (e *Extractor) Extract(src TokenSource) (*formulary.ExtractionResult, error) {
	pages, err := e.loadPages(src)
	if err != nil {
		return nil, err
	}

	stats := collectStats(pages, e.cfg)
	cls := newClassifier(e.cfg, stats)
	builder := NewBuilder(e.cfg)
	toc := &tocIndexer{}

	frontMatter := true
	for i, lines := range pages {
		pageNum := i + 1
		if frontMatter && pageNum > e.cfg.FrontMatterPageLimit {
			frontMatter = false
		}

		for j := range lines {
			lines[j].Role = cls.role(lines[j], frontMatter)
			ln := lines[j]
			if ln.Role == RoleCategoryHeader {
				// The first category header ends the front matter for
				// good; TOC scanning never resumes.
				frontMatter = false
			}
			if ln.Role == RoleTOCEntry {
				toc.Add(ln)
				continue
			}
			builder.Consume(ln)
		}
	}

	categories, warnings := builder.Finish()
	return &formulary.ExtractionResult{
		Categories:      categories,
		Warnings:        warnings,
		TableOfContents: toc.Entries(),
	}, nil
}

// loadPages assembles every page's lines up front. The full pass is
// needed before classification anyway, because typography statistics
// and running-line detection are document-level measurements.
func (e *Extractor) loadPages(src TokenSource) ([][]Line, error) {
	count := src.PageCount()
	pages := make([][]Line, 0, count)
	total := 0
	for page := 1; page <= count; page++ {
		tokens, err := src.PageTokens(page)
		if err != nil {
			return nil, fmt.Errorf("reading page %d: %w", page, err)
		}
		total += len(tokens)
		pages = append(pages, assembleLines(page, tokens, e.cfg))
	}
	if total == 0 {
		return nil, ErrNoText
	}
	return pages, nil
}
