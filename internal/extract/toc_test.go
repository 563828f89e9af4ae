package extract

import (
	"testing"

	"github.com/pharmaflow/formulex/internal/formulary"
)

func TestParseTOCLine(t *testing.T) {
	cellLine := func(texts ...string) Line {
		ln := Line{}
		x := 72.0
		for _, s := range texts {
			ln.Cells = append(ln.Cells, Cell{Text: s, X: x, End: x + 50})
			x += 200
		}
		ln.Text = ""
		for i, c := range ln.Cells {
			if i > 0 {
				ln.Text += "  "
			}
			ln.Text += c.Text
		}
		return ln
	}

	tests := []struct {
		name      string
		line      Line
		wantLabel string
		wantRef   string
		wantOK    bool
	}{
		{
			"gap-split entry",
			cellLine("Antibiotics", "3"),
			"Antibiotics", "3", true,
		},
		{
			"roman folio reference",
			cellLine("Preface", "iv"),
			"Preface", "iv", true,
		},
		{
			"dot leaders in one cell",
			cellLine("Analgesics ........... 12"),
			"Analgesics", "12", true,
		},
		{
			"multi-cell label",
			cellLine("Appendix B", "Dosing tables", "47"),
			"Appendix B Dosing tables", "47", true,
		},
		{
			"no trailing reference",
			cellLine("Amoxicillin", "capsule"),
			"", "", false,
		},
		{
			"bare number",
			cellLine("12"),
			"", "", false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ref, ok := parseTOCLine(tt.line)
			if ok != tt.wantOK {
				t.Fatalf("expected ok=%v, got %v", tt.wantOK, ok)
			}
			if label != tt.wantLabel || ref != tt.wantRef {
				t.Errorf("expected (%q, %q), got (%q, %q)", tt.wantLabel, tt.wantRef, label, ref)
			}
		})
	}
}

func TestTOCIndexer_KeepsDuplicatesInOrder(t *testing.T) {
	idx := &tocIndexer{}
	mk := func(label, ref string) Line {
		return Line{
			Cells: []Cell{{Text: label, X: 72}, {Text: ref, X: 500}},
			Text:  label + "  " + ref,
		}
	}
	idx.Add(mk("Antibiotics", "3"))
	idx.Add(mk("Appendix", "40"))
	idx.Add(mk("Antibiotics", "55"))

	entries := idx.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries including the duplicate, got %d", len(entries))
	}
	want := []formulary.TOCEntry{
		{Label: "Antibiotics", PageReference: 3},
		{Label: "Appendix", PageReference: 40},
		{Label: "Antibiotics", PageReference: 55},
	}
	for i, w := range want {
		if entries[i] != w {
			t.Errorf("entry %d: expected %+v, got %+v", i, w, entries[i])
		}
	}
}

func TestTOCIndexer_EmptyIsNotNil(t *testing.T) {
	idx := &tocIndexer{}
	if entries := idx.Entries(); entries == nil || len(entries) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", entries)
	}
}
