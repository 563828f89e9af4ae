package extract

import (
	"fmt"
	"math"
)

// docStats holds document-level typography measurements gathered in a
// pre-pass over all assembled lines, before any classification.
type docStats struct {
	// bodySize is the font size carrying the most text in the document.
	bodySize float64
	// leftMargin is the leftmost line start seen on any page.
	leftMargin float64
	// repeated maps a text+height fingerprint to the number of distinct
	// pages it appears on; used to drop running headers and footers.
	repeated map[string]int
}

// collectStats walks every page's lines once. Font sizes are bucketed to
// half-point granularity so slightly jittered embeddings still vote for
// the same body size.
func collectStats(pages [][]Line, cfg *Config) *docStats {
	sizeLen := map[float64]int{}
	margin := math.MaxFloat64
	fingerprints := map[string]map[int]bool{}

	for _, lines := range pages {
		for _, ln := range lines {
			n := len(ln.Text)
			if n == 0 {
				continue
			}
			sizeLen[roundHalf(ln.FontSize)] += n
			if ln.Indent < margin {
				margin = ln.Indent
			}
			fp := lineFingerprint(ln)
			if fingerprints[fp] == nil {
				fingerprints[fp] = map[int]bool{}
			}
			fingerprints[fp][ln.Page] = true
		}
	}

	repeated := make(map[string]int, len(fingerprints))
	for fp, pageSet := range fingerprints {
		if len(pageSet) >= cfg.RepeatedLineMinPages {
			repeated[fp] = len(pageSet)
		}
	}

	if margin == math.MaxFloat64 {
		margin = 0
	}
	return &docStats{
		bodySize:   dominantSize(sizeLen),
		leftMargin: margin,
		repeated:   repeated,
	}
}

// isRunningLine reports whether a line matches a fingerprint repeated on
// enough pages to be a running header or footer.
func (s *docStats) isRunningLine(ln Line) bool {
	_, ok := s.repeated[lineFingerprint(ln)]
	return ok
}

// lineFingerprint identifies a line by its text and approximate height.
// Repeated section names land at varying heights and stay distinct;
// running headers repeat at the same height page after page.
func lineFingerprint(ln Line) string {
	return fmt.Sprintf("%s@%.0f", ln.Text, math.Round(ln.Y/4))
}

func roundHalf(v float64) float64 {
	return math.Round(v*2) / 2
}
