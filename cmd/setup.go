package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	// An unreadable config still yields defaults to start from
	cfg, _ := config.Load()

	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing saved.")
			return nil
		}
		return err
	}

	if err := vals.Apply(&cfg); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `shiftcast setup` anytime to reconfigure.")
	fmt.Println()
	return nil
}
