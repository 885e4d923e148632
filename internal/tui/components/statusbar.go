package components

import (
	"strings"

	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the color of the status message.
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusOK
	StatusWarn
	StatusError
)

// RenderStatusBar renders the bottom status bar: key hints on the left,
// the latest message on the right.
func RenderStatusBar(width int, hints, msg string, kind StatusKind) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface).
		Width(width)

	msgColor := t.TextMuted
	switch kind {
	case StatusOK:
		msgColor = t.Green
	case StatusWarn:
		msgColor = t.Orange
	case StatusError:
		msgColor = t.Red
	}
	msgStyle := lipgloss.NewStyle().Foreground(msgColor).Background(t.Surface)

	left := " " + hints
	right := ""
	if msg != "" {
		right = msg + " "
	}

	maxRight := width - lipgloss.Width(left) - 1
	if maxRight < 0 {
		maxRight = 0
	}
	if lipgloss.Width(right) > maxRight {
		right = truncate(right, maxRight)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return style.Render(left + strings.Repeat(" ", padding) + msgStyle.Render(right))
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	if limit <= 3 {
		return string(r[:limit])
	}
	return string(r[:limit-3]) + "..."
}
