package extract

import (
	"regexp"
	"unicode"
)

// classifier assigns a Role to each assembled line using document-level
// typography statistics: size deltas against the body font, indentation
// relative to the left margin, and cell structure.
type classifier struct {
	cfg   *Config
	stats *docStats
}

func newClassifier(cfg *Config, stats *docStats) *classifier {
	return &classifier{cfg: cfg, stats: stats}
}

// role classifies a single line. TOC entries are only recognized while
// the coordinator is still in front-matter mode, so the same line text
// classifies differently before and after the body transition.
func (c *classifier) role(ln Line, frontMatter bool) Role {
	if c.isNoise(ln) {
		return RoleNoise
	}
	if frontMatter {
		if _, _, ok := parseTOCLine(ln); ok {
			return RoleTOCEntry
		}
	}

	headerish := ln.Bold || ln.FontSize >= c.stats.bodySize+c.cfg.HeaderSizeDelta
	if headerish {
		// A styled line split into several cells at modest size anchors a
		// table's columns rather than opening a section.
		if len(ln.Cells) >= c.cfg.MinRowCells && ln.FontSize < c.stats.bodySize+c.cfg.CategorySizeDelta {
			return RoleColumnHeader
		}
		return c.headerRank(ln)
	}

	if len(ln.Cells) >= c.cfg.MinRowCells {
		return RoleDataRow
	}
	return RoleNoise
}

// headerRank separates category from subcategory headers. Category rank
// needs either a large size delta or an all-caps title at the left
// margin; remaining header typography at reasonable indent is a
// subcategory. Header typography floating deeper than MaxHeaderIndent
// fits neither band.
func (c *classifier) headerRank(ln Line) Role {
	margin := c.stats.leftMargin
	if ln.Indent > margin+c.cfg.MaxHeaderIndent {
		return RoleAmbiguousHeader
	}
	atMargin := ln.Indent <= margin+c.cfg.IndentTolerance
	if ln.FontSize >= c.stats.bodySize+c.cfg.CategorySizeDelta || (atMargin && isAllCaps(ln.Text)) {
		return RoleCategoryHeader
	}
	return RoleSubcategoryHeader
}

var (
	pageNumberRE = regexp.MustCompile(`^(?i)(?:page\s+)?\d{1,4}(?:\s+of\s+\d{1,4})?$`)
	romanFolioRE = regexp.MustCompile(`^[ivxlcdm]{1,8}$`)
)

func (c *classifier) isNoise(ln Line) bool {
	if ln.Text == "" {
		return true
	}
	if pageNumberRE.MatchString(ln.Text) || romanFolioRE.MatchString(ln.Text) {
		return true
	}
	return c.stats.isRunningLine(ln)
}

func isAllCaps(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if unicode.IsLower(r) {
				return false
			}
		}
	}
	return hasLetter
}
