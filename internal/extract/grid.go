package extract

import (
	"fmt"
	"math"
	"strings"

	"github.com/pharmaflow/formulex/internal/formulary"
)

// gridColumn anchors one named column at a horizontal position.
type gridColumn struct {
	name string
	x    float64
}

// columnGrid is the active column layout of an open subcategory table.
type columnGrid struct {
	cols []gridColumn
}

// gridFromHeader builds a grid from a column-header line. Blank or
// duplicate names are disambiguated so rows marshal to valid objects.
func gridFromHeader(ln Line) *columnGrid {
	g := &columnGrid{cols: make([]gridColumn, 0, len(ln.Cells))}
	seen := map[string]int{}
	for i, c := range ln.Cells {
		name := strings.TrimSpace(c.Text)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		seen[name]++
		if n := seen[name]; n > 1 {
			name = fmt.Sprintf("%s (%d)", name, n)
		}
		g.cols = append(g.cols, gridColumn{name: name, x: c.X})
	}
	return g
}

// gridFromRow derives a synthetic grid from a data row's own cell
// positions, for tables that never printed a column header.
func gridFromRow(ln Line) *columnGrid {
	g := &columnGrid{cols: make([]gridColumn, 0, len(ln.Cells))}
	for i, c := range ln.Cells {
		g.cols = append(g.cols, gridColumn{name: fmt.Sprintf("Column %d", i+1), x: c.X})
	}
	return g
}

// assign maps a line's cells onto the grid. Every cell must land within
// the tolerance of some column anchor; cells sharing a column are joined
// with a space, columns left unmatched become empty values. One cell
// outside every column makes the whole row malformed.
func (g *columnGrid) assign(ln Line, tol float64) (formulary.Row, bool) {
	values := make([]string, len(g.cols))
	for _, c := range ln.Cells {
		idx := g.nearest(c.X)
		if idx < 0 || math.Abs(c.X-g.cols[idx].x) > tol {
			return formulary.Row{}, false
		}
		if values[idx] == "" {
			values[idx] = c.Text
		} else {
			values[idx] += " " + c.Text
		}
	}

	row := formulary.Row{Cells: make([]formulary.Cell, len(g.cols))}
	for i, col := range g.cols {
		row.Cells[i] = formulary.Cell{Column: col.name, Value: values[i]}
	}
	return row, true
}

func (g *columnGrid) nearest(x float64) int {
	best := -1
	bestDist := math.MaxFloat64
	for i, col := range g.cols {
		if d := math.Abs(x - col.x); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
