package extract

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// textFolds maps ligatures and typographic punctuation that PDF fonts
// commonly emit back to plain equivalents.
var textFolds = strings.NewReplacer(
	"ﬀ", "ff",
	"ﬁ", "fi",
	"ﬂ", "fl",
	"ﬃ", "ffi",
	"ﬄ", "ffl",
	"‘", "'",
	"’", "'",
	"“", `"`,
	"”", `"`,
	"–", "-",
	"—", "-",
	" ", " ",
	"​", "",
)

func normalizeText(s string) string {
	return norm.NFC.String(textFolds.Replace(s))
}

var boldMarkers = []string{"bold", "black", "heavy"}

func isBoldFont(font string) bool {
	f := strings.ToLower(font)
	for _, m := range boldMarkers {
		if strings.Contains(f, m) {
			return true
		}
	}
	return false
}

// assembleLines turns one page's tokens into ordered logical lines:
// tokens are grouped by baseline, sorted left to right, and merged into
// cells wherever the gap stays below the column-scale threshold.
func assembleLines(page int, tokens []Token, cfg *Config) []Line {
	kept := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		t.Text = normalizeText(t.Text)
		if strings.TrimSpace(t.Text) == "" {
			continue
		}
		kept = append(kept, t)
	}
	if len(kept) == 0 {
		return nil
	}

	rows := groupByBaseline(kept, cfg.LineTolerance)

	lines := make([]Line, 0, len(rows))
	for _, row := range rows {
		ln := mergeRow(row, cfg)
		ln.Page = page
		lines = append(lines, ln)
	}

	// Higher Y is higher on the page.
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Y > lines[j].Y })
	return lines
}

// groupByBaseline buckets tokens whose Y coordinates are within the line
// tolerance of each other.
func groupByBaseline(tokens []Token, tol float64) [][]Token {
	sorted := make([]Token, len(tokens))
	copy(sorted, tokens)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	type bucket struct {
		yMin, yMax float64
		tokens     []Token
	}

	var buckets []bucket
	for _, t := range sorted {
		placed := false
		if n := len(buckets); n > 0 {
			b := &buckets[n-1]
			if t.Y >= b.yMin-tol && t.Y <= b.yMax+tol {
				b.tokens = append(b.tokens, t)
				if t.Y < b.yMin {
					b.yMin = t.Y
				}
				if t.Y > b.yMax {
					b.yMax = t.Y
				}
				placed = true
			}
		}
		if !placed {
			buckets = append(buckets, bucket{yMin: t.Y, yMax: t.Y, tokens: []Token{t}})
		}
	}

	rows := make([][]Token, len(buckets))
	for i, b := range buckets {
		row := b.tokens
		sort.SliceStable(row, func(a, c int) bool { return row[a].X < row[c].X })
		rows[i] = row
	}
	return rows
}

// mergeRow joins a baseline-sorted token run into cells. Gaps below the
// word threshold concatenate directly, gaps up to the cell threshold
// insert a space, larger gaps start a new cell.
func mergeRow(row []Token, cfg *Config) Line {
	var (
		cells    []Cell
		cur      strings.Builder
		curX     float64
		curEnd   float64
		open     bool
		boldLen  int
		totalLen int
		sizeLen  = map[float64]int{}
		y        float64
	)

	flush := func() {
		if !open {
			return
		}
		cells = append(cells, Cell{Text: strings.TrimSpace(cur.String()), X: curX, End: curEnd})
		cur.Reset()
		open = false
	}

	for _, t := range row {
		size := t.FontSize
		if size <= 0 {
			size = 10
		}
		wordGap := cfg.WordGapScale * size
		cellGap := cfg.CellGapScale * size

		if open {
			gap := t.X - curEnd
			switch {
			case gap > cellGap:
				flush()
			case gap > wordGap:
				cur.WriteByte(' ')
			}
		}
		if !open {
			curX = t.X
			open = true
		}
		cur.WriteString(t.Text)
		if end := t.X + t.W; end > curEnd {
			curEnd = end
		}

		n := len(t.Text)
		totalLen += n
		if isBoldFont(t.Font) {
			boldLen += n
		}
		sizeLen[t.FontSize] += n
		y += t.Y * float64(n)
	}
	flush()

	ln := Line{Cells: cells}
	if len(cells) > 0 {
		ln.Indent = cells[0].X
	}
	if totalLen > 0 {
		ln.Y = y / float64(totalLen)
		ln.Bold = boldLen*2 > totalLen
	}
	ln.FontSize = dominantSize(sizeLen)

	parts := make([]string, len(cells))
	for i, c := range cells {
		parts[i] = c.Text
	}
	ln.Text = strings.Join(parts, "  ")
	return ln
}

// dominantSize picks the font size carrying the most characters,
// preferring the smaller size on ties for determinism.
func dominantSize(sizeLen map[float64]int) float64 {
	var best float64
	bestLen := -1
	for size, n := range sizeLen {
		if n > bestLen || (n == bestLen && size < best) {
			best, bestLen = size, n
		}
	}
	return best
}
