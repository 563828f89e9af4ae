// Package pdftext adapts the ledongthuc/pdf reader to the extraction
// engine's token source: it opens a document and yields positioned text
// runs per page.
package pdftext

import (
	"fmt"

	pdflib "github.com/ledongthuc/pdf"

	"github.com/pharmaflow/formulex/internal/extract"
)

// Source reads positioned text from one PDF document. It implements
// extract.TokenSource and must be closed after use.
type Source struct {
	file   interface{ Close() error }
	reader *pdflib.Reader
}

// Open opens a PDF document for token extraction.
func Open(path string) (*Source, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	return &Source{file: f, reader: reader}, nil
}

func (s *Source) Close() error {
	return s.file.Close()
}

// PageCount returns the number of pages in the document.
func (s *Source) PageCount() int {
	return s.reader.NumPage()
}

// PageTokens returns the positioned text runs of one page (1-based).
// Pages the reader cannot resolve yield no tokens rather than an error;
// a document where every page is like that is reported as text-free by
// the engine.
func (s *Source) PageTokens(page int) ([]extract.Token, error) {
	p := s.reader.Page(page)
	if p.V.IsNull() {
		return nil, nil
	}
	texts := p.Content().Text
	tokens := make([]extract.Token, 0, len(texts))
	for _, t := range texts {
		tokens = append(tokens, extract.Token{
			Text:     t.S,
			X:        t.X,
			Y:        t.Y,
			W:        t.W,
			Font:     t.Font,
			FontSize: t.FontSize,
		})
	}
	return tokens, nil
}
