package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/tui/components"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderPeriodTab(period model.Period, cw int) string {
	t := theme.Active
	pf := a.sess.Forecast(period)
	if pf == nil {
		key := "a"
		if period == model.PeriodPM {
			key = "p"
		}
		body := lipgloss.NewStyle().Foreground(t.TextMuted).
			Render(fmt.Sprintf("No %s sales file loaded. Press %s to choose one.", period, key))
		return components.ContentCard(period.Label(), body, cw)
	}

	means := make([]float64, 0, len(pf.Rows))
	for _, r := range pf.Rows {
		means = append(means, r.Mean.InexactFloat64())
	}

	metrics := []components.Metric{
		{Label: "File", Value: filepath.Base(pf.Source), Note: filepath.Dir(pf.Source)},
		{Label: "Window", Value: cli.FormatDateRange(pf.StartDate, pf.EndDate)},
		{Label: "Rows used", Value: fmt.Sprintf("%d of %d", pf.InWindow, pf.Records),
			Note: skippedNote(pf.Skipped)},
		{Label: "Trend", Value: components.Sparkline(means, t.Accent), Note: "anchor day first"},
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	valueStyle := lipgloss.NewStyle().Foreground(t.Green)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-10s %12s %8s", "Weekday", "Mean", "Days")))
	b.WriteString("\n")
	for _, r := range pf.Rows {
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-10s ", r.Name)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%12s", cli.FormatAmount(r.Mean))))
		b.WriteString(mutedStyle.Render(fmt.Sprintf(" %8d", r.Samples)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	barW := max(10, min(30, cw-30))
	b.WriteString(components.CoverageBar("Weekdays", len(pf.Rows), 7, 9, barW))

	return components.MetricCardRow(metrics, cw) + "\n" +
		components.ContentCard(period.Label(), b.String(), cw)
}

func skippedNote(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d undated rows skipped", n)
}
