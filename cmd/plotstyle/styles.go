package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Status styles for command output.
var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
)

const (
	markOK   = "✓"
	markWarn = "!"
	markFail = "✗"
)

// table lays out rows in left-aligned columns separated by two spaces.
// Widths are measured in terminal cells, ignoring ANSI styling.
func table(rows [][]string) string {
	var widths []int
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				widths = append(widths, 0)
			}
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	var b strings.Builder
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				b.WriteString(cell)
				break
			}
			b.WriteString(cell)
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(cell)))
			b.WriteString("  ")
		}
		b.WriteString("\n")
	}

	return b.String()
}

func status(ok bool) string {
	if ok {
		return okStyle.Render(markOK)
	}

	return errorStyle.Render(markFail)
}

// truncate shortens s to at most w cells, keeping the tail, which for paths
// is the informative part.
func truncate(s string, w int) string {
	if w <= 0 || runewidth.StringWidth(s) <= w {
		return s
	}

	r := []rune(s)
	for len(r) > 0 && runewidth.StringWidth(string(r))+1 > w {
		r = r[1:]
	}

	return "…" + string(r)
}
