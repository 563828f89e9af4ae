// Package excel renders an extracted formulary hierarchy as a formatted
// workbook: each category becomes a banded section, each subcategory a
// sub-header row, each row a data row, all in document order.
package excel

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pharmaflow/formulex/internal/formulary"
)

const sheetName = "Formulary"

const (
	minColWidth = 12.0
	maxColWidth = 60.0
)

// Render writes the categories to an xlsx file at path. It consumes the
// same shape as the persisted JSON, so it can run directly after an
// extraction or later against a stored extracted_data.json.
func Render(categories []formulary.Category, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return fmt.Errorf("register styles: %w", err)
	}

	width := maxRowWidth(categories)
	if width == 0 {
		width = 1
	}

	widths := make([]float64, width)
	rowNum := 1
	for _, cat := range categories {
		if err := writeBanner(f, rowNum, width, cat.Name, st.category); err != nil {
			return err
		}
		rowNum++

		for _, sub := range cat.SubCategories {
			if err := writeBanner(f, rowNum, width, sub.Name, st.subcategory); err != nil {
				return err
			}
			rowNum++

			if len(sub.Rows) > 0 {
				cols := sub.Rows[0].Columns()
				if err := writeCells(f, rowNum, cols, st.header, widths); err != nil {
					return err
				}
				rowNum++
			}
			for _, row := range sub.Rows {
				values := make([]string, len(row.Cells))
				for i, c := range row.Cells {
					values[i] = c.Value
				}
				if err := writeCells(f, rowNum, values, st.data, widths); err != nil {
					return err
				}
				rowNum++
			}
		}
		// Blank separator between category sections.
		rowNum++
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if w < minColWidth {
			w = minColWidth
		}
		if w > maxColWidth {
			w = maxColWidth
		}
		if err := f.SetColWidth(sheetName, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

type styles struct {
	category    int
	subcategory int
	header      int
	data        int
}

func newStyles(f *excelize.File) (styles, error) {
	var st styles
	var err error

	st.category, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 13, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"305496"}},
		Alignment: &excelize.Alignment{
			Vertical: "center",
		},
	})
	if err != nil {
		return st, err
	}

	st.subcategory, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D9E1F2"}},
	})
	if err != nil {
		return st, err
	}

	st.header, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Border: []excelize.Border{
			{Type: "bottom", Style: 1, Color: "808080"},
		},
	})
	if err != nil {
		return st, err
	}

	st.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	return st, err
}

// writeBanner writes a merged, styled section row spanning all columns.
func writeBanner(f *excelize.File, row, width int, text string, style int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return err
	}
	if err := f.SetCellValue(sheetName, start, text); err != nil {
		return fmt.Errorf("write banner row %d: %w", row, err)
	}
	if width > 1 {
		if err := f.MergeCell(sheetName, start, end); err != nil {
			return fmt.Errorf("merge banner row %d: %w", row, err)
		}
	}
	return f.SetCellStyle(sheetName, start, end, style)
}

// writeCells writes one row of values left to right and widens the
// tracked column widths to fit.
func writeCells(f *excelize.File, row int, values []string, style int, widths []float64) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, style); err != nil {
			return err
		}
		if w := float64(len([]rune(v))) + 2; i < len(widths) && w > widths[i] {
			widths[i] = w
		}
	}
	return nil
}

// maxRowWidth finds the widest column count across all rows, which sets
// the merge span for banner rows.
func maxRowWidth(categories []formulary.Category) int {
	width := 0
	for _, cat := range categories {
		for _, sub := range cat.SubCategories {
			for _, row := range sub.Rows {
				if len(row.Cells) > width {
					width = len(row.Cells)
				}
			}
		}
	}
	return width
}
