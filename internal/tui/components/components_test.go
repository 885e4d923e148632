package components

import (
	"math"
	"strings"
	"testing"

	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToWidth(t *testing.T) {
	for _, n := range []int{1, 3, 4, 7} {
		widths := LayoutRow(101, n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != 101 {
			t.Errorf("LayoutRow(101, %d) sums to %d", n, sum)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestCardRowHeightMatchesTallest(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := AccentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4", 22)

	joined := CardRow([]string{tall, short})
	if got, want := lipgloss.Height(joined), lipgloss.Height(tall); got != want {
		t.Errorf("joined height = %d, want %d", got, want)
	}
	if got, want := lipgloss.Width(joined), 44; got != want {
		t.Errorf("joined width = %d, want %d", got, want)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Week of", Value: "Wed Mar 13"},
		{Label: "AM through", Value: "Mar 10"},
		{Label: "PM through", Value: "Mar 11", Note: "cached"},
	}, 90)
	if got := lipgloss.Width(row); got != 90 {
		t.Errorf("row width = %d, want 90", got)
	}
}

func TestTabAtXMatchesTabWidths(t *testing.T) {
	for active := range Tabs {
		pos := 0
		for i := range Tabs {
			w := TabWidth(i, active)
			x := pos + w/2
			if got := TabAtX(x, active); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w + 1
		}
	}
}

func TestTabBarWidthMatchesTabWidths(t *testing.T) {
	for active := range Tabs {
		want := len(Tabs) - 1 // separators
		for i := range Tabs {
			want += TabWidth(i, active)
		}
		if got := lipgloss.Width(RenderTabBar(active, 0)); got != want {
			t.Errorf("active=%d: tab bar width = %d, want %d", active, got, want)
		}
	}
}

func TestGroupedBarChart(t *testing.T) {
	out := GroupedBarChart(
		[]string{"Wed", "Thu", "Fri"},
		[]Series{
			{Name: "AM", Values: []float64{15, math.NaN(), 22.1}, Color: theme.Active.Accent},
			{Name: "PM", Values: []float64{40, 12, 0}, Color: theme.Active.Orange},
		},
		60, 8,
	)
	if out == "" {
		t.Fatal("expected chart output")
	}
	for _, want := range []string{"Wed", "Fri", "AM", "PM", "$"} {
		if !strings.Contains(out, want) {
			t.Errorf("chart missing %q", want)
		}
	}
	if GroupedBarChart(nil, nil, 60, 8) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.5, "$0.50"},
		{20, "$20"},
		{1000, "$1k"},
		{1500, "$1.5k"},
		{2000000, "$2M"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.in); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderStatusBarWidth(t *testing.T) {
	bar := RenderStatusBar(80, "[a]m [p]m", "a very long message that would overflow the bar if nothing truncated it at all", StatusWarn)
	if got := lipgloss.Width(bar); got != 80 {
		t.Errorf("status bar width = %d, want 80", got)
	}
}

func TestSparklineMarksMissingValues(t *testing.T) {
	theme.SetActive("flexoki-dark")

	line := Sparkline([]float64{0, math.NaN(), 8}, theme.Active.Accent)
	if got := lipgloss.Width(line); got != 3 {
		t.Errorf("sparkline width = %d, want 3", got)
	}
	if !strings.Contains(line, "▁ █") {
		t.Errorf("sparkline = %q, want blocks around a gap", line)
	}
	if Sparkline(nil, theme.Active.Accent) != "" {
		t.Error("empty sparkline should render nothing")
	}
}
