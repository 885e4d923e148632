package components

import (
	"fmt"

	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForCoverage returns red/orange/yellow/green as coverage rises.
// Low coverage means few weekdays (or samples) backed the forecast.
func ColorForCoverage(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.99:
		return string(t.Green)
	case pct >= 0.7:
		return string(t.Yellow)
	case pct >= 0.4:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// CoverageBar renders a labeled "n/total" bar, e.g. weekdays seen in the window.
func CoverageBar(label string, n, total, labelW, barWidth int) string {
	t := theme.Active

	pct := 0.0
	if total > 0 {
		pct = float64(n) / float64(total)
	}
	if pct > 1 {
		pct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForCoverage(pct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	countStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForCoverage(pct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(pct) +
		spaceStyle.Render(" ") +
		countStyle.Render(fmt.Sprintf("%d/%d", n, total))
}
