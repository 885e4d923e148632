package components

import (
	"strings"

	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name string
	Key  rune
}

// Tabs defines all available views.
var Tabs = []Tab{
	{Name: "Report", Key: '1'},
	{Name: "AM Sales", Key: '2'},
	{Name: "PM Sales", Key: '3'},
	{Name: "History", Key: '4'},
}

// TabWidth returns the rendered width of tab i, including its padding.
func TabWidth(i, activeIdx int) int {
	w := len(Tabs[i].Name) + 2
	if i != activeIdx {
		w += 3 // "[n]" prefix
	}
	return w
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Padding(0, 1)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	sepStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		parts = append(parts, keyStyle.Render("["+string(tab.Key)+"]")+inactiveStyle.Render(tab.Name))
	}

	bar := strings.Join(parts, sepStyle.Render("│"))
	if gap := width - lipgloss.Width(bar); gap > 0 {
		bar += strings.Repeat(" ", gap)
	}
	return bar
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabAtX returns the tab under column x, or -1.
func TabAtX(x, activeIdx int) int {
	pos := 0
	for i := range Tabs {
		w := TabWidth(i, activeIdx)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 1 // separator
	}
	return -1
}
