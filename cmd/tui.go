package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/tui"
	"github.com/theirongolddev/shiftcast/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive interface",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	// Log lines would tear the alt screen; the status bar reports instead
	logger := log.New(io.Discard)

	cfg, err := loadConfig(newLogger())
	if err != nil {
		return err
	}
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	cache := openCache(newLogger())
	if cache != nil {
		defer cache.Close()
	}

	if err := resolveInputs(newLogger()); err != nil {
		return err
	}
	sess := newSession(cfg, cache, logger)
	for _, in := range []struct {
		period model.Period
		path   string
	}{
		{model.PeriodAM, flagAM},
		{model.PeriodPM, flagPM},
	} {
		if in.path == "" {
			continue
		}
		if _, err := sess.Load(in.period, in.path); err != nil {
			fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("cannot process %s sales file: %s", in.period, err)))
		}
	}

	wd, _ := os.Getwd()
	if flagDir != "" {
		wd = flagDir
	}
	app := tui.NewApp(tui.Options{
		Session:  sess,
		Cache:    cache,
		Config:   cfg,
		StartDir: wd,
		Setup:    !config.Exists(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
