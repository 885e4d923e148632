// Package report renders the combined forecast as a fixed-width text table
// and handles writing and printing the report file.
package report

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/shopspring/decimal"
)

// ErrNothingToPrint is returned by Print when no report file exists yet.
var ErrNothingToPrint = errors.New("no report to print, submit the sales files first")

// DayHeader is the header of the label column.
const DayHeader = "Day with Date"

// Headers returns the three report column headers.
func Headers() []string {
	return []string{DayHeader, model.PeriodAM.Label(), model.PeriodPM.Label()}
}

// Cells returns the table body: one row per weekday, missing values blank.
func Cells(cf *model.CombinedForecast) [][]string {
	rows := make([][]string, 0, len(cf.Rows))
	for _, r := range cf.Rows {
		rows = append(rows, []string{r.Label, amount(r.AM), amount(r.PM)})
	}
	return rows
}

func amount(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(2)
}

// Text renders the plain report: a header line then one line per weekday.
// The label column is left-aligned and the amount columns right-aligned,
// separated by two spaces, with no trailing whitespace.
func Text(cf *model.CombinedForecast) string {
	headers := Headers()
	cells := Cells(cf)

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			if len(c) > widths[i] {
				widths[i] = len(c)
			}
		}
	}

	var b strings.Builder
	writeLine := func(row []string) {
		var line strings.Builder
		for i, c := range row {
			if i == 0 {
				fmt.Fprintf(&line, "%-*s", widths[i], c)
				continue
			}
			fmt.Fprintf(&line, "  %*s", widths[i], c)
		}
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
	}

	writeLine(headers)
	for _, row := range cells {
		writeLine(row)
	}
	return b.String()
}

// Styled renders the report as a bordered lipgloss table for the terminal.
func Styled(cf *model.CombinedForecast) string {
	return cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Week of %s", cf.NextAnchor.Format("Mon Jan 2, 2006")),
		Headers: Headers(),
		Rows:    Cells(cf),
	})
}

// Write saves the report text to path, replacing any previous report.
func Write(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating report dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil { //nolint:gosec // report is meant to be shared
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// DefaultPrintCommand returns the platform print command.
func DefaultPrintCommand() string {
	if runtime.GOOS == "windows" {
		return "notepad /p"
	}
	return "lp"
}

// Print sends the report file to the printer using command, split on
// whitespace with the file path appended. An empty command uses the
// platform default.
func Print(ctx context.Context, path, command string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNothingToPrint
	}
	if err != nil {
		return fmt.Errorf("checking report: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	if strings.TrimSpace(command) == "" {
		command = DefaultPrintCommand()
	}
	args := strings.Fields(command)
	args = append(args, path)

	out, err := exec.CommandContext(ctx, args[0], args[1:]...).CombinedOutput() //nolint:gosec // command comes from the user's config
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return fmt.Errorf("printing with %s: %w: %s", args[0], err, msg)
		}
		return fmt.Errorf("printing with %s: %w", args[0], err)
	}
	return nil
}
