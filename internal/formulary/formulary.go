// Package formulary defines the extracted document model: the
// category → subcategory → row hierarchy, the table-of-contents index,
// and the warning records for content that could not be placed.
package formulary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
)

// PlaceholderCategory is the name given to the synthetic category opened
// when a subcategory header appears before any category header.
const PlaceholderCategory = "Uncategorized"

// Warning reasons. These are part of the interchange format and must not
// be renamed.
const (
	ReasonMalformedRow          = "malformed_row"
	ReasonRowBeforeSubcategory  = "row_before_subcategory"
	ReasonSubcategoryNoCategory = "subcategory_without_category"
	ReasonUnclassifiableHeader  = "unclassifiable_header"
)

// Category is a top-level grouping in the formulary hierarchy.
type Category struct {
	// Name as printed in the document. Not unique: a repeated header later
	// in the document produces a second Category instance.
	Name string `json:"name"`
	// SubCategories in document order.
	SubCategories []SubCategory `json:"subCategories"`
}

// SubCategory is a second-level grouping owned by exactly one Category.
type SubCategory struct {
	Name string `json:"name"`
	// Rows in document order, possibly spanning multiple source pages.
	Rows []Row `json:"rows"`
}

// Cell is one named column value within a Row.
type Cell struct {
	Column string
	Value  string
}

// Row is one formulary line item: an ordered mapping of column name to
// cell value. Values are kept as text; numeric-looking cells are never
// coerced. JSON key order follows the detected column order.
type Row struct {
	Cells []Cell
}

// Get returns the value for a column and whether it exists.
func (r Row) Get(column string) (string, bool) {
	for _, c := range r.Cells {
		if c.Column == column {
			return c.Value, true
		}
	}
	return "", false
}

// Columns returns the column names in order.
func (r Row) Columns() []string {
	cols := make([]string, len(r.Cells))
	for i, c := range r.Cells {
		cols[i] = c.Column
	}
	return cols
}

// MarshalJSON renders the row as a JSON object with keys in cell order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r.Cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Column)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order, which the
// spreadsheet renderer relies on when reading persisted extractions.
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("row: expected object, got %v", tok)
	}
	r.Cells = nil
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row: non-string column name %v", keyTok)
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("row: column %q: %w", key, err)
		}
		r.Cells = append(r.Cells, Cell{Column: key, Value: val})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// TOCEntry is one line of the document's printed table of contents.
// Independent of the Category tree.
type TOCEntry struct {
	Label string `json:"label"`
	// PageReference is an int when the printed reference is numeric,
	// otherwise the raw string (roman numerals, ranges).
	PageReference any `json:"pageReference"`
}

// NewTOCEntry builds an entry, parsing a purely numeric page reference
// to an int and keeping anything else verbatim.
func NewTOCEntry(label, pageRef string) TOCEntry {
	if n, err := strconv.Atoi(pageRef); err == nil {
		return TOCEntry{Label: label, PageReference: n}
	}
	return TOCEntry{Label: label, PageReference: pageRef}
}

// Warning records a line or row the engine could not place unambiguously.
// Append-only; never mutated after creation.
type Warning struct {
	PageNumber int    `json:"pageNumber"`
	RawText    string `json:"rawText"`
	Reason     string `json:"reason"`
	// Context is an optional nearby-line snippet helping locate the
	// content in the source document.
	Context string `json:"context,omitempty"`
}

// ExtractionResult is the root aggregate returned by an extraction.
// It owns the full tree by composition; there are no cross-links.
type ExtractionResult struct {
	Categories      []Category `json:"categories"`
	Warnings        []Warning  `json:"warnings"`
	TableOfContents []TOCEntry `json:"table_of_contents"`
}

// TotalSubCategories counts subcategories across all categories.
func (r *ExtractionResult) TotalSubCategories() int {
	n := 0
	for _, cat := range r.Categories {
		n += len(cat.SubCategories)
	}
	return n
}

// TotalRows counts rows across all subcategories.
func (r *ExtractionResult) TotalRows() int {
	n := 0
	for _, cat := range r.Categories {
		for _, sub := range cat.SubCategories {
			n += len(sub.Rows)
		}
	}
	return n
}

// WarningCount counts warnings with the given reason.
func (r *ExtractionResult) WarningCount(reason string) int {
	n := 0
	for _, w := range r.Warnings {
		if w.Reason == reason {
			n++
		}
	}
	return n
}

// String returns an indented JSON rendering, useful for debugging.
func (r *ExtractionResult) String() string {
	b, _ := json.MarshalIndent(r, "", "  ")
	return string(b)
}

// ReadCategories decodes a persisted extracted_data.json array,
// preserving row column order.
func ReadCategories(rd io.Reader) ([]Category, error) {
	var cats []Category
	dec := json.NewDecoder(rd)
	if err := dec.Decode(&cats); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return cats, nil
}

// ReadCategoriesFile reads categories from a file path.
func ReadCategoriesFile(path string) ([]Category, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCategories(f)
}
