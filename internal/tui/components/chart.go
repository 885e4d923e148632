package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Series is one set of bar values. NaN marks a missing value.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := 0.0
	for _, v := range values {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	for _, v := range values {
		if math.IsNaN(v) {
			buf.WriteRune(' ')
			continue
		}
		idx := int(v / peak * float64(len(blocks)-1))
		idx = max(0, min(idx, len(blocks)-1))
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// GroupedBarChart renders one group of bars per label, one bar per series,
// with a y-axis scaled to currency ticks.
func GroupedBarChart(labels []string, series []Series, width, height int) string {
	if len(labels) == 0 || len(series) == 0 {
		return ""
	}
	t := theme.Active

	maxVal := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			if !math.IsNaN(v) && v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	tickStep := chartTickStep(maxVal)
	maxIntervals := max(2, height/2)
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := max(1, int(math.Round(ceiling/tickStep)))
	rowsPerTick := max(1, height/numIntervals)
	chartH := rowsPerTick * numIntervals

	yLabelW := max(5, len(formatChartLabel(ceiling))+1)
	tickLabels := make(map[int]string, numIntervals)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	// Each group: one bar per series plus a gap column.
	n := len(labels)
	chartW := max(n*(len(series)+1), width-yLabelW-1)
	groupW := chartW / n
	barW := max(1, (groupW-1)/len(series))
	barW = min(barW, 4)
	groupW = barW*len(series) + 1

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blank := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i := range labels {
			for _, s := range series {
				v := math.NaN()
				if i < len(s.Values) {
					v = s.Values[i]
				}
				style := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
				switch {
				case math.IsNaN(v) || v <= rowBottom:
					b.WriteString(blank.Render(strings.Repeat(" ", barW)))
				case v >= rowTop:
					b.WriteString(style.Render(strings.Repeat("█", barW)))
				default:
					idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
					idx = max(1, min(idx, 8))
					b.WriteString(style.Render(strings.Repeat(string(blocks[idx]), barW)))
				}
			}
			b.WriteString(blank.Render(" "))
		}
		b.WriteString("\n")
	}

	axisLen := groupW * n
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	var xl strings.Builder
	for _, l := range labels {
		if len(l) > groupW {
			l = l[:groupW]
		}
		fmt.Fprintf(&xl, "%-*s", groupW, l)
	}
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(axisStyle.Render(strings.TrimRight(xl.String(), " ")))
	b.WriteString("\n")

	var legend []string
	for _, s := range series {
		legend = append(legend,
			lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("█")+
				axisStyle.Render(" "+s.Name))
	}
	b.WriteString(blank.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(strings.Join(legend, blank.Render("  ")))

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

// formatChartLabel formats a currency tick, e.g. 1500 -> "$1.5k".
func formatChartLabel(v float64) string {
	switch {
	case v >= 1e6:
		return "$" + trimZero(fmt.Sprintf("%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return "$" + trimZero(fmt.Sprintf("%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
