package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/report"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build next week's forecast from --am and --pm and save it",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func runReport(_ *cobra.Command, _ []string) error {
	logger := newLogger()
	if err := resolveInputs(logger); err != nil {
		return err
	}

	// Missing input is a user mistake, not a failure: warn and leave any
	// existing report alone.
	if flagAM == "" || flagPM == "" {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(missingFlagsText()))
		return nil
	}

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	cache := openCache(logger)
	if cache != nil {
		defer cache.Close()
	}
	sess := newSession(cfg, cache, logger)

	for _, in := range []struct {
		period model.Period
		path   string
	}{
		{model.PeriodAM, flagAM},
		{model.PeriodPM, flagPM},
	} {
		if _, err := sess.Load(in.period, in.path); err != nil {
			return fmt.Errorf("cannot process %s sales file: %w", in.period, err)
		}
	}

	res, err := sess.Submit()
	if errors.Is(err, pipeline.ErrMissingPeriod) {
		fmt.Fprintln(os.Stderr, cli.RenderWarning(err.Error()))
		return nil
	}
	if err != nil {
		return err
	}

	if !flagQuiet {
		fmt.Println()
		fmt.Print(report.Styled(res.Forecast))
		fmt.Println()
		fmt.Println(cli.RenderKeyValue("Saved to", res.Path))
		if res.RunID > 0 {
			fmt.Println(cli.RenderKeyValue("History", fmt.Sprintf("run #%d", res.RunID)))
		}
		fmt.Println()
	}
	return nil
}

func missingFlagsText() string {
	switch {
	case flagAM == "" && flagPM == "":
		return "Please choose both the AM and PM sales files (--am and --pm)"
	case flagAM == "":
		return "Please choose the AM sales file (--am)"
	default:
		return "Please choose the PM sales file (--pm)"
	}
}
