package formulary

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRowMarshalJSON_PreservesColumnOrder(t *testing.T) {
	row := Row{Cells: []Cell{
		{Column: "Drug", Value: "Amoxicillin"},
		{Column: "Strength", Value: "500 mg"},
		{Column: "Form", Value: "capsule"},
		{Column: "Cost", Value: "1.20"},
	}}

	b, err := json.Marshal(row)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	want := `{"Drug":"Amoxicillin","Strength":"500 mg","Form":"capsule","Cost":"1.20"}`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestRowUnmarshalJSON_PreservesColumnOrder(t *testing.T) {
	// Columns deliberately out of alphabetical order so a map-based
	// decode would scramble them.
	in := `{"Strength":"250 mg","Drug":"Penicillin V","Form":"tablet"}`

	var row Row
	if err := json.Unmarshal([]byte(in), &row); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantCols := []string{"Strength", "Drug", "Form"}
	gotCols := row.Columns()
	if len(gotCols) != len(wantCols) {
		t.Fatalf("expected %d columns, got %d", len(wantCols), len(gotCols))
	}
	for i, c := range wantCols {
		if gotCols[i] != c {
			t.Errorf("column %d: expected %q, got %q", i, c, gotCols[i])
		}
	}

	if v, ok := row.Get("Drug"); !ok || v != "Penicillin V" {
		t.Errorf("expected Drug=Penicillin V, got %q (present=%v)", v, ok)
	}
	if _, ok := row.Get("Missing"); ok {
		t.Error("expected Missing column to be absent")
	}
}

func TestRowUnmarshalJSON_RejectsNonObject(t *testing.T) {
	var row Row
	if err := json.Unmarshal([]byte(`["a","b"]`), &row); err == nil {
		t.Error("expected error for array input")
	}
}

func TestNewTOCEntry(t *testing.T) {
	tests := []struct {
		name    string
		ref     string
		wantInt bool
	}{
		{"numeric page", "42", true},
		{"roman numeral", "iv", false},
		{"range", "12-14", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewTOCEntry("Antibiotics", tt.ref)
			_, isInt := e.PageReference.(int)
			if isInt != tt.wantInt {
				t.Errorf("NewTOCEntry(%q): expected int=%v, got %T", tt.ref, tt.wantInt, e.PageReference)
			}
		})
	}
}

func TestExtractionResultCounts(t *testing.T) {
	res := &ExtractionResult{
		Categories: []Category{
			{Name: "Antibiotics", SubCategories: []SubCategory{
				{Name: "Penicillins", Rows: []Row{{}, {}}},
				{Name: "Macrolides", Rows: []Row{{}}},
			}},
			{Name: "Analgesics", SubCategories: []SubCategory{
				{Name: "NSAIDs", Rows: []Row{{}, {}, {}}},
			}},
		},
		Warnings: []Warning{
			{Reason: ReasonMalformedRow},
			{Reason: ReasonMalformedRow},
			{Reason: ReasonRowBeforeSubcategory},
		},
	}

	if got := res.TotalSubCategories(); got != 3 {
		t.Errorf("expected 3 subcategories, got %d", got)
	}
	if got := res.TotalRows(); got != 6 {
		t.Errorf("expected 6 rows, got %d", got)
	}
	if got := res.WarningCount(ReasonMalformedRow); got != 2 {
		t.Errorf("expected 2 malformed_row warnings, got %d", got)
	}
	if got := res.WarningCount(ReasonUnclassifiableHeader); got != 0 {
		t.Errorf("expected 0 unclassifiable_header warnings, got %d", got)
	}
}

func TestReadCategoriesFile(t *testing.T) {
	data := `[
  {
    "name": "Antibiotics",
    "subCategories": [
      {
        "name": "Penicillins",
        "rows": [
          {"Drug": "Amoxicillin", "Strength": "500 mg"}
        ]
      }
    ]
  }
]`
	dir := t.TempDir()
	path := filepath.Join(dir, "extracted_data.json")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	cats, err := ReadCategoriesFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Antibiotics" {
		t.Fatalf("expected 1 category Antibiotics, got %+v", cats)
	}
	rows := cats[0].SubCategories[0].Rows
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	cols := rows[0].Columns()
	if len(cols) != 2 || cols[0] != "Drug" || cols[1] != "Strength" {
		t.Errorf("expected columns [Drug Strength], got %v", cols)
	}
}

func TestReadCategories_BadJSON(t *testing.T) {
	_, err := ReadCategories(strings.NewReader(`{not json`))
	if err == nil {
		t.Error("expected error for malformed JSON")
	}
}
