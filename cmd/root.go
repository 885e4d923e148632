// Package cmd implements the shiftcast CLI commands.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/session"
	"github.com/theirongolddev/shiftcast/internal/source"
	"github.com/theirongolddev/shiftcast/internal/store"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	flagAM      string
	flagPM      string
	flagDir     string
	flagAnchor  string
	flagWindow  int
	flagOutput  string
	flagNoCache bool
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "shiftcast",
	Short: "Forecast next week's AM and PM sales",
	Long: "Read AM and PM sales report exports, average sales per weekday over the\n" +
		"trailing window and write next week's forecast as a text report.\n\n" +
		"With --am and --pm the report is built directly; otherwise the\n" +
		"interactive interface starts.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagAM == "" && flagPM == "" && flagDir == "" {
			return runTUI(cmd, args)
		}
		return runReport(cmd, args)
	},
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, cli.RenderError(err.Error()))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAM, "am", "", "AM sales export (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVar(&flagPM, "pm", "", "PM sales export (.csv or .xlsx)")
	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "d", "", "Folder of exports; the newest *AM* and *PM* files fill --am/--pm")
	rootCmd.PersistentFlags().StringVar(&flagAnchor, "anchor", "", "First weekday of the reporting week (default from config, Wednesday)")
	rootCmd.PersistentFlags().IntVarP(&flagWindow, "window", "w", 0, "Trailing window in days (default from config, 28)")
	rootCmd.PersistentFlags().StringVarP(&flagOutput, "output", "o", "", "Report file (default from config, sales_predictions.txt)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the SQLite cache and report history")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print debug output")
}

// newLogger builds the stderr logger for CLI commands.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: flagVerbose,
		TimeFormat:      time.Kitchen,
		Prefix:          "shiftcast",
	})
	switch {
	case flagQuiet:
		logger.SetLevel(log.WarnLevel)
	case flagVerbose:
		logger.SetLevel(log.DebugLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// loadConfig loads the config file and applies flag overrides.
// An invalid config file is reported and the defaults are used.
func loadConfig(logger *log.Logger) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using default config", "path", config.Path(), "err", err)
	}

	if flagAnchor != "" {
		if _, err := config.ParseWeekday(flagAnchor); err != nil {
			return cfg, fmt.Errorf("--anchor: %w", err)
		}
		cfg.General.AnchorWeekday = flagAnchor
	}
	if flagWindow != 0 {
		if flagWindow < 1 {
			return cfg, fmt.Errorf("--window must be at least 1, got %d", flagWindow)
		}
		cfg.General.WindowDays = flagWindow
	}
	if flagOutput != "" {
		cfg.General.OutputPath = flagOutput
	}
	return cfg, nil
}

func columnsFromConfig(cfg config.Config) source.Columns {
	return source.Columns{
		Date:        cfg.Columns.Date,
		Amount:      cfg.Columns.Amount,
		DateIndex:   cfg.Columns.DateIndex,
		AmountIndex: cfg.Columns.AmountIndex,
	}
}

// openCache opens the SQLite cache unless --no-cache. A cache that cannot
// be opened is not an error; the caller continues without it.
func openCache(logger *log.Logger) *store.Cache {
	if flagNoCache {
		return nil
	}
	cache, err := store.Open(pipeline.CachePath())
	if err != nil {
		logger.Warn("cache unavailable, continuing without it", "err", err)
		return nil
	}
	return cache
}

// newSession wires config, cache and logger into a session.
func newSession(cfg config.Config, cache *store.Cache, logger *log.Logger) *session.Session {
	return session.New(session.Config{
		Options:    pipeline.OptionsFromConfig(cfg),
		Columns:    columnsFromConfig(cfg),
		OutputPath: cfg.General.OutputPath,
		Cache:      cache,
		Logger:     logger,
	})
}

// resolveInputs fills --am and --pm from the newest exports in --dir.
// Explicit file flags always win.
func resolveInputs(logger *log.Logger) error {
	if flagDir == "" || (flagAM != "" && flagPM != "") {
		return nil
	}
	files, err := source.ScanDir(flagDir)
	if err != nil {
		return fmt.Errorf("--dir: %w", err)
	}
	latest := source.Latest(files)
	if f, ok := latest[model.PeriodAM]; ok && flagAM == "" {
		flagAM = f.Path
		logger.Debug("found AM export", "path", f.Path)
	}
	if f, ok := latest[model.PeriodPM]; ok && flagPM == "" {
		flagPM = f.Path
		logger.Debug("found PM export", "path", f.Path)
	}
	return nil
}
