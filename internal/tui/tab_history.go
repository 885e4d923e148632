package tui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/tui/components"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHistoryTab(cw int) string {
	t := theme.Active
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	if a.cache == nil {
		return components.ContentCard("History", mutedStyle.Render("History is off (--no-cache)."), cw)
	}
	if len(a.runs) == 0 {
		return components.ContentCard("History", mutedStyle.Render("No reports submitted yet."), cw)
	}

	listW := min(48, cw/2)
	detailW := cw - listW

	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	inner := components.CardInnerWidth(listW)

	var b strings.Builder
	for i, r := range a.runs {
		line := fmt.Sprintf("#%-4d %s  week of %s", r.ID,
			r.CreatedAt.Local().Format("Jan 02 15:04"), r.NextAnchor.Format("01/02"))
		line = fmt.Sprintf("%-*s", inner, line)
		if i == a.runCursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("↑/↓ to browse"))
	list := components.ContentCard(fmt.Sprintf("Reports (%d)", len(a.runs)), b.String(), listW)

	detail := components.ContentCard("", mutedStyle.Render("Loading..."), detailW)
	if d := a.runDetail; d != nil {
		var db strings.Builder
		db.WriteString(mutedStyle.Render(fmt.Sprintf("AM: %s\nPM: %s\nSaved to %s",
			filepath.Base(d.AMSource), filepath.Base(d.PMSource), d.OutputPath)))
		db.WriteString("\n\n")
		db.WriteString(lipgloss.NewStyle().Foreground(t.TextPrimary).Render(strings.TrimRight(reportCells(*d), "\n")))
		detail = components.AccentCard("Week of "+cli.FormatDate(d.NextAnchor), db.String(), detailW)
	}

	return components.CardRow([]string{list, detail})
}
