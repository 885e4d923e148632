package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/report"

	"github.com/spf13/cobra"
)

var flagPrintCommand string

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Send the last saved report to the printer",
	RunE:  runPrint,
}

func init() {
	printCmd.Flags().StringVar(&flagPrintCommand, "command", "", "Print command (default from config, else lp / notepad /p)")
	rootCmd.AddCommand(printCmd)
}

func runPrint(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}

	command := cfg.Print.Command
	if flagPrintCommand != "" {
		command = flagPrintCommand
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	path := cfg.General.OutputPath
	err = report.Print(ctx, path, command)
	if errors.Is(err, report.ErrNothingToPrint) {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(fmt.Sprintf("%s does not exist yet: submit the sales files first", path)))
		return nil
	}
	if err != nil {
		return err
	}

	logger.Info("sent report to printer", "path", path)
	return nil
}
