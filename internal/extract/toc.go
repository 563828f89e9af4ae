package extract

import (
	"regexp"
	"strings"

	"github.com/pharmaflow/formulex/internal/formulary"
)

// tocIndexer accumulates printed table-of-contents entries in document
// order. It never deduplicates: a document may legitimately list the
// same label twice.
type tocIndexer struct {
	entries []formulary.TOCEntry
}

func (t *tocIndexer) Add(ln Line) {
	label, ref, ok := parseTOCLine(ln)
	if !ok {
		return
	}
	t.entries = append(t.entries, formulary.NewTOCEntry(label, ref))
}

func (t *tocIndexer) Entries() []formulary.TOCEntry {
	if t.entries == nil {
		return []formulary.TOCEntry{}
	}
	return t.entries
}

var (
	// pageRefRE matches a printed page reference: arabic or roman.
	pageRefRE = regexp.MustCompile(`^(?:\d{1,4}|[ivxlcdmIVXLCDM]{1,8})$`)
	// leaderTOCRE matches "label ...... 12" collapsed into a single cell.
	leaderTOCRE = regexp.MustCompile(`^(.*?)[\s.]*\.{2,}[\s.]*(\d{1,4}|[ivxlcdmIVXLCDM]{1,8})$`)
)

// parseTOCLine recognizes a TOC entry: a label followed by a
// page-number-like trailing token, with dot leaders optional. Gap-split
// lines carry the reference in their last cell; leader-glued lines are
// matched textually.
func parseTOCLine(ln Line) (label, ref string, ok bool) {
	if len(ln.Cells) >= 2 {
		last := strings.TrimSpace(ln.Cells[len(ln.Cells)-1].Text)
		if pageRefRE.MatchString(last) {
			parts := make([]string, 0, len(ln.Cells)-1)
			for _, c := range ln.Cells[:len(ln.Cells)-1] {
				parts = append(parts, c.Text)
			}
			label = strings.TrimRight(strings.Join(parts, " "), ". ")
			if label != "" {
				return label, last, true
			}
		}
	}

	if m := leaderTOCRE.FindStringSubmatch(ln.Text); m != nil {
		label = strings.TrimRight(strings.TrimSpace(m[1]), ". ")
		if label != "" {
			return label, m[2], true
		}
	}
	return "", "", false
}
