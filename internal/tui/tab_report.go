package tui

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/report"
	"github.com/theirongolddev/shiftcast/internal/tui/components"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func (a App) renderReportTab(cw int) string {
	if a.result == nil {
		return a.renderLoadState(cw)
	}
	cf := a.result.Forecast
	t := theme.Active

	metrics := []components.Metric{
		{Label: "Week of", Value: cli.FormatDate(cf.NextAnchor)},
		{Label: "Data through", Value: cli.FormatDate(cf.Latest)},
		{Label: "AM source", Value: filepath.Base(cf.AMSource)},
		{Label: "PM source", Value: filepath.Base(cf.PMSource)},
	}

	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	table := textStyle.Render(strings.TrimRight(a.result.Text, "\n"))

	labels := make([]string, 0, len(cf.Rows))
	am := make([]float64, 0, len(cf.Rows))
	pm := make([]float64, 0, len(cf.Rows))
	for _, r := range cf.Rows {
		labels = append(labels, r.Name[:3])
		am = append(am, chartValue(r.AM))
		pm = append(pm, chartValue(r.PM))
	}

	tableW := lipgloss.Width(table) + 4
	chartW := cw - tableW
	var panel string
	if chartW >= 36 {
		chart := components.GroupedBarChart(labels, []components.Series{
			{Name: model.PeriodAM.Label(), Values: am, Color: t.Accent},
			{Name: model.PeriodPM.Label(), Values: pm, Color: t.Orange},
		}, components.CardInnerWidth(chartW), 10)
		panel = components.CardRow([]string{
			components.AccentCard("Saved to "+a.result.Path, table, tableW),
			components.ContentCard("By weekday", chart, chartW),
		})
	} else {
		panel = components.AccentCard("Saved to "+a.result.Path, table, cw)
	}

	return components.MetricCardRow(metrics, cw) + "\n" + panel
}

// renderLoadState shows which files are loaded before the first submit.
func (a App) renderLoadState(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	okStyle := lipgloss.NewStyle().Foreground(t.Green)
	missStyle := lipgloss.NewStyle().Foreground(t.Orange)

	var b strings.Builder
	for _, p := range model.Periods {
		b.WriteString(mutedStyle.Render(string(p) + " sales  "))
		if pf := a.sess.Forecast(p); pf != nil {
			b.WriteString(okStyle.Render(filepath.Base(pf.Source)))
			b.WriteString(mutedStyle.Render("  through " + cli.FormatDate(pf.EndDate)))
		} else {
			b.WriteString(missStyle.Render("not loaded"))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Press a or p to choose a file, s to submit, P to print the last report."))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("The report is written to " + a.sess.OutputPath()))

	return components.ContentCard("Sales files", b.String(), cw)
}

func chartValue(d *decimal.Decimal) float64 {
	if d == nil {
		return math.NaN()
	}
	return d.InexactFloat64()
}

// reportCells is the plain table for a past run.
func reportCells(run model.Run) string {
	return report.Text(&model.CombinedForecast{NextAnchor: run.NextAnchor, Rows: run.Rows})
}
