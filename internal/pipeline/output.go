package pipeline

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

var (
	// titleStyle for bold headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for muted metadata text
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for success indicators
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for warning counts
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	// errorStyle for error indicators
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	// boxStyle for the per-document summary box
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// headerBoxStyle for the run header
	headerBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("33")).
			Padding(0, 1)

	// batchBannerStyle for the batch start banner
	batchBannerStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("255")).
				Background(lipgloss.Color("33")).
				Padding(0, 2)
)

// FormatHeader renders the run header with configuration info.
func FormatHeader(w io.Writer, input, outputDir string, jsonOnly bool) {
	mode := "json + xlsx"
	if jsonOnly {
		mode = "json only"
	}
	content := fmt.Sprintf("%s %s\n%s %s\n%s %s",
		dimStyle.Render("Input:"), titleStyle.Render(input),
		dimStyle.Render("Output:"), outputDir,
		dimStyle.Render("Mode:"), mode,
	)
	fmt.Fprintln(w, headerBoxStyle.Render(content))
}

// FormatBatchBanner renders the batch start banner.
func FormatBatchBanner(w io.Writer, workers int) {
	banner := fmt.Sprintf(" BATCH MODE / %d workers ", workers)
	fmt.Fprintln(w)
	fmt.Fprintln(w, batchBannerStyle.Render(banner))
	fmt.Fprintln(w)
}

// FormatReport renders the per-document summary box.
func FormatReport(w io.Writer, r *Report) {
	warnings := successStyle.Render("0")
	if r.Warnings > 0 {
		warnings = warnStyle.Render(formatNumber(r.Warnings))
	}

	line1 := fmt.Sprintf("%s %s  %s %s  %s %s",
		dimStyle.Render("Categories:"), formatNumber(r.Categories),
		dimStyle.Render("Subcategories:"), formatNumber(r.SubCategories),
		dimStyle.Render("Rows:"), formatNumber(r.Rows),
	)
	line2 := fmt.Sprintf("%s %s  %s %s",
		dimStyle.Render("TOC entries:"), formatNumber(r.TOCEntries),
		dimStyle.Render("Warnings:"), warnings,
	)
	line3 := fmt.Sprintf("%s %s", dimStyle.Render("Output:"), r.Dir)

	content := titleStyle.Render(filepath.Base(r.Path)) + "\n" + line1 + "\n" + line2 + "\n" + line3
	if r.RenderErr != nil {
		content += "\n" + errorStyle.Render("workbook failed: ") + r.RenderErr.Error()
	}
	fmt.Fprintln(w, boxStyle.Render(content))
}

// FormatDocStatus renders a one-line batch progress entry.
func FormatDocStatus(w io.Writer, path string, r *Report, err error) {
	name := filepath.Base(path)
	if err != nil {
		fmt.Fprintf(w, "%s %s  %s\n", errorStyle.Render("✗"), name, dimStyle.Render(err.Error()))
		return
	}
	detail := fmt.Sprintf("%s rows, %s warnings", formatNumber(r.Rows), formatNumber(r.Warnings))
	if r.RenderErr != nil {
		detail += ", " + errorStyle.Render("xlsx failed")
	}
	fmt.Fprintf(w, "%s %s  %s\n", successStyle.Render("✓"), name, dimStyle.Render(detail))
}

// FormatBatchSummary renders the final batch totals.
func FormatBatchSummary(w io.Writer, b *BatchResult) {
	rows, warnings := 0, 0
	for _, r := range b.Reports {
		rows += r.Rows
		warnings += r.Warnings
	}

	var status string
	if len(b.Failed) == 0 {
		status = successStyle.Render("OK")
	} else {
		status = errorStyle.Render(fmt.Sprintf("%d FAILED", len(b.Failed)))
	}

	line := fmt.Sprintf("%s %s  %s %s  %s %s  %s",
		dimStyle.Render("Documents:"), formatNumber(len(b.Reports)),
		dimStyle.Render("Rows:"), formatNumber(rows),
		dimStyle.Render("Warnings:"), formatNumber(warnings),
		status,
	)
	content := titleStyle.Render("Batch Complete") + "\n" + line
	fmt.Fprintln(w, boxStyle.Render(content))
}

// formatNumber adds commas to large numbers for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 1000000 {
		return fmt.Sprintf("%d,%03d", n/1000, n%1000)
	}
	return fmt.Sprintf("%d,%03d,%03d", n/1000000, (n/1000)%1000, n%1000)
}
