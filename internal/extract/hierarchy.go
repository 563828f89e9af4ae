package extract

import (
	"github.com/pharmaflow/formulex/internal/formulary"
)

// buildState tracks which level of the hierarchy is currently open.
type buildState int

const (
	stateNoCategory buildState = iota
	stateCategoryOpen
	stateSubcategoryOpen
)

// Builder assembles the category → subcategory → row tree from
// classified lines in document order. Open nodes are tracked as indices
// into append-only slices and survive page boundaries: only an explicit
// new header closes a node, never a page break. Closed nodes are never
// reopened; a repeated name starts a fresh instance.
type Builder struct {
	cfg *Config

	categories []formulary.Category
	warnings   []formulary.Warning

	st     buildState
	curCat int // index into categories, -1 when none open
	curSub int // index into the open category's SubCategories, -1 when none open
	grid   *columnGrid

	rowCandidates int
	lastHeader    string
}

func NewBuilder(cfg *Config) *Builder {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Builder{cfg: cfg, curCat: -1, curSub: -1}
}

// Consume processes one classified line.
func (b *Builder) Consume(ln Line) {
	switch ln.Role {
	case RoleCategoryHeader:
		b.openCategory(ln.Text)
		b.lastHeader = ln.Text
	case RoleSubcategoryHeader:
		b.openSubcategory(ln)
		b.lastHeader = ln.Text
	case RoleColumnHeader:
		b.setGrid(ln)
	case RoleDataRow:
		b.appendRow(ln)
	case RoleAmbiguousHeader:
		b.warn(ln, formulary.ReasonUnclassifiableHeader)
	case RoleTOCEntry, RoleNoise:
		// Not the builder's concern.
	}
}

func (b *Builder) openCategory(name string) {
	b.categories = append(b.categories, formulary.Category{
		Name:          name,
		SubCategories: []formulary.SubCategory{},
	})
	b.curCat = len(b.categories) - 1
	b.curSub = -1
	b.grid = nil
	b.st = stateCategoryOpen
}

func (b *Builder) openSubcategory(ln Line) {
	if b.st == stateNoCategory {
		b.warn(ln, formulary.ReasonSubcategoryNoCategory)
		b.openCategory(formulary.PlaceholderCategory)
	}
	cat := &b.categories[b.curCat]
	cat.SubCategories = append(cat.SubCategories, formulary.SubCategory{
		Name: ln.Text,
		Rows: []formulary.Row{},
	})
	b.curSub = len(cat.SubCategories) - 1
	b.grid = nil
	b.st = stateSubcategoryOpen
}

// setGrid anchors the open subcategory's columns. Continuation pages
// often reprint the column header above ongoing rows; once rows have
// landed the grid is locked and the reprint is ignored.
func (b *Builder) setGrid(ln Line) {
	if b.st != stateSubcategoryOpen {
		return
	}
	if len(b.openSub().Rows) > 0 {
		return
	}
	b.grid = gridFromHeader(ln)
}

func (b *Builder) appendRow(ln Line) {
	b.rowCandidates++
	if b.st != stateSubcategoryOpen {
		b.warn(ln, formulary.ReasonRowBeforeSubcategory)
		return
	}
	if b.grid == nil {
		b.grid = gridFromRow(ln)
	}
	row, ok := b.grid.assign(ln, b.cfg.ColumnTolerance)
	if !ok {
		b.warn(ln, formulary.ReasonMalformedRow)
		return
	}
	sub := b.openSub()
	sub.Rows = append(sub.Rows, row)
}

func (b *Builder) openSub() *formulary.SubCategory {
	return &b.categories[b.curCat].SubCategories[b.curSub]
}

func (b *Builder) warn(ln Line, reason string) {
	b.warnings = append(b.warnings, formulary.Warning{
		PageNumber: ln.Page,
		RawText:    ln.Text,
		Reason:     reason,
		Context:    b.lastHeader,
	})
}

// Finish closes any open nodes and returns the assembled tree plus the
// collected warnings. Slices are always non-nil so persisted JSON
// renders empty arrays rather than null.
func (b *Builder) Finish() ([]formulary.Category, []formulary.Warning) {
	b.st = stateNoCategory
	b.curCat, b.curSub = -1, -1
	b.grid = nil
	if b.categories == nil {
		b.categories = []formulary.Category{}
	}
	if b.warnings == nil {
		b.warnings = []formulary.Warning{}
	}
	return b.categories, b.warnings
}

// RowCandidates reports how many data-row lines the builder has seen.
// Rows placed plus malformed and misplaced row warnings always equals
// this count; no candidate is ever dropped silently.
func (b *Builder) RowCandidates() int { return b.rowCandidates }
