package cmd

import (
	"fmt"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/report"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig(newLogger())
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Week starts on:  %s\n", cfg.Anchor())
	fmt.Printf("    Window:          %d days\n", cfg.General.WindowDays)
	fmt.Printf("    Report file:     %s\n", cfg.General.OutputPath)
	fmt.Println()

	fmt.Println("  [Columns]")
	fmt.Printf("    Date:            %s (else column %d)\n", cfg.Columns.Date, cfg.Columns.DateIndex)
	fmt.Printf("    Amount:          %s (else column %d)\n", cfg.Columns.Amount, cfg.Columns.AmountIndex)
	fmt.Printf("    Date layout:     %s\n", cfg.Columns.DateLayout)
	fmt.Println()

	fmt.Println("  [Print]")
	if cfg.Print.Command != "" {
		fmt.Printf("    Command:         %s\n", cfg.Print.Command)
	} else {
		fmt.Printf("    Command:         %s (system default)\n", report.DefaultPrintCommand())
	}
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme:           %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Cache: %s\n", pipeline.CachePath())
	fmt.Println("  Run `shiftcast setup` to reconfigure.")
	return nil
}
