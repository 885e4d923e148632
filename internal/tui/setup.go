package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/report"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// SetupValues holds the answers of the setup form as strings, the way huh
// fields bind them.
type SetupValues struct {
	Anchor   string
	Window   string
	Output   string
	PrintCmd string
	Theme    string
}

// SetupValuesFrom seeds the form with an existing config.
func SetupValuesFrom(cfg config.Config) *SetupValues {
	return &SetupValues{
		Anchor:   cfg.Anchor().String(),
		Window:   strconv.Itoa(cfg.General.WindowDays),
		Output:   cfg.General.OutputPath,
		PrintCmd: cfg.Print.Command,
		Theme:    cfg.Appearance.Theme,
	}
}

// Apply copies the answers into cfg and validates the result.
func (v *SetupValues) Apply(cfg *config.Config) error {
	days, err := strconv.Atoi(strings.TrimSpace(v.Window))
	if err != nil {
		return fmt.Errorf("window days: %w", err)
	}
	cfg.General.AnchorWeekday = v.Anchor
	cfg.General.WindowDays = days
	cfg.General.OutputPath = strings.TrimSpace(v.Output)
	cfg.Print.Command = strings.TrimSpace(v.PrintCmd)
	cfg.Appearance.Theme = v.Theme
	return cfg.Validate()
}

// NewSetupForm builds the first-run configuration form.
func NewSetupForm(v *SetupValues) *huh.Form {
	weekdays := make([]huh.Option[string], 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		weekdays = append(weekdays, huh.NewOption(d.String(), d.String()))
	}

	themes := huh.NewOptions(theme.Names()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to shiftcast!").
				Description("Forecast next week's AM and PM sales from your report exports.\nA few settings first; all of them can be changed later with `shiftcast setup`."),
			huh.NewSelect[string]().
				Title("Reporting week starts on").
				Options(weekdays...).
				Value(&v.Anchor),
			huh.NewInput().
				Title("Trailing window (days)").
				Description("Sales from this many days before the latest date are averaged.").
				Value(&v.Window).
				Validate(validateWindow),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Report file").
				Value(&v.Output).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("report file is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Print command").
				Description("Leave empty for the system default.").
				Placeholder(report.DefaultPrintCommand()).
				Value(&v.PrintCmd),
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themes...).
				Value(&v.Theme),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateWindow(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a whole number of days")
	}
	if n < 1 {
		return errors.New("window must be at least 1 day")
	}
	return nil
}
