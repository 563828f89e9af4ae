package extract

// Token is one positioned text fragment supplied by the token source.
// Coordinates follow PDF conventions: origin bottom-left, so a higher Y
// is higher on the page.
type Token struct {
	Text     string
	X, Y     float64
	W        float64 // advance width
	Font     string
	FontSize float64
}

// TokenSource supplies positioned text per page. Pages are 1-based and
// must be requested in any order without affecting results.
type TokenSource interface {
	PageCount() int
	PageTokens(page int) ([]Token, error)
}

// Role classifies an assembled line. The enumeration is closed; every
// consumer switches over all values.
type Role int

const (
	RoleNoise Role = iota
	RoleCategoryHeader
	RoleSubcategoryHeader
	RoleColumnHeader
	RoleDataRow
	RoleTOCEntry
	RoleAmbiguousHeader
)

func (r Role) String() string {
	switch r {
	case RoleNoise:
		return "noise"
	case RoleCategoryHeader:
		return "category_header"
	case RoleSubcategoryHeader:
		return "subcategory_header"
	case RoleColumnHeader:
		return "column_header"
	case RoleDataRow:
		return "data_row"
	case RoleTOCEntry:
		return "toc_entry"
	case RoleAmbiguousHeader:
		return "ambiguous_header"
	}
	return "unknown"
}

// Cell is a merged run of tokens separated from its neighbors by a
// column-scale gap.
type Cell struct {
	Text string
	X    float64 // left edge
	End  float64 // right edge
}

// Line is one assembled logical line with the metadata classification
// relies on.
type Line struct {
	Role     Role
	Page     int
	Text     string
	Cells    []Cell
	Y        float64
	Indent   float64 // left edge of the first cell
	FontSize float64 // dominant size on the line
	Bold     bool    // majority of the line set in a bold-weight font
}

// Config holds the extraction engine's tuning knobs. FrontMatterPageLimit
// and ColumnTolerance are the interface-level options; the rest are layout
// heuristics with defaults calibrated against formulary samples.
type Config struct {
	// FrontMatterPageLimit bounds the TOC scan window: front-matter mode
	// ends at the first category header or after this many pages,
	// whichever comes first.
	FrontMatterPageLimit int

	// ColumnTolerance is the maximum horizontal distance in points
	// between a cell's left edge and its grid column anchor.
	ColumnTolerance float64

	// LineTolerance groups tokens into one line when their baselines are
	// within this many points.
	LineTolerance float64

	// WordGapScale scales font size into the horizontal gap that still
	// joins two tokens into the same word.
	WordGapScale float64

	// CellGapScale scales font size into the gap that splits a line into
	// separate cells.
	CellGapScale float64

	// HeaderSizeDelta above the body font size marks header typography.
	HeaderSizeDelta float64

	// CategorySizeDelta above the body font size marks category rank.
	CategorySizeDelta float64

	// IndentTolerance is the band around the left margin within which a
	// header counts as margin-aligned.
	IndentTolerance float64

	// MaxHeaderIndent is the deepest indent at which header typography is
	// still classified as a header rather than flagged ambiguous.
	MaxHeaderIndent float64

	// RepeatedLineMinPages: identical text at the same height on at least
	// this many pages is treated as a running header or footer.
	RepeatedLineMinPages int

	// MinRowCells is the minimum cell count for a data-row candidate.
	MinRowCells int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		FrontMatterPageLimit: 20,
		ColumnTolerance:      5.0,
		LineTolerance:        3.0,
		WordGapScale:         0.3,
		CellGapScale:         1.0,
		HeaderSizeDelta:      1.0,
		CategorySizeDelta:    2.5,
		IndentTolerance:      6.0,
		MaxHeaderIndent:      72.0,
		RepeatedLineMinPages: 3,
		MinRowCells:          2,
	}
}
