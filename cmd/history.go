package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/report"
	"github.com/theirongolddev/shiftcast/internal/store"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit int
	flagHistoryShow  int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previously submitted reports",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&flagHistoryLimit, "limit", "l", 20, "Number of reports to list")
	historyCmd.Flags().Int64Var(&flagHistoryShow, "show", 0, "Show the report with this id")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	if flagNoCache {
		return errors.New("history is stored in the cache; drop --no-cache")
	}
	logger := newLogger()
	cache := openCache(logger)
	if cache == nil {
		return errors.New("history unavailable: cache could not be opened")
	}
	defer cache.Close()

	if flagHistoryShow > 0 {
		run, err := cache.GetRun(flagHistoryShow)
		if errors.Is(err, store.ErrRunNotFound) {
			return fmt.Errorf("no report #%d (see `shiftcast history`)", flagHistoryShow)
		}
		if err != nil {
			return err
		}
		printRun(run)
		return nil
	}

	runs, err := cache.ListRuns(flagHistoryLimit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("\n  No reports submitted yet.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			fmt.Sprintf("#%d", r.ID),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
			r.NextAnchor.Format("2006-01-02"),
			filepath.Base(r.AMSource),
			filepath.Base(r.PMSource),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("Submitted reports (%d)", len(runs)),
		Headers: []string{"Run", "Submitted", "Week of", "AM file", "PM file"},
		Rows:    rows,
	}))
	fmt.Println()
	return nil
}

func printRun(run model.Run) {
	cf := &model.CombinedForecast{
		Latest:     run.Latest,
		NextAnchor: run.NextAnchor,
		AMSource:   run.AMSource,
		PMSource:   run.PMSource,
		Rows:       run.Rows,
	}

	fmt.Println()
	fmt.Print(report.Styled(cf))
	fmt.Println()
	amTotal, pmTotal := weekTotals(run.Rows)
	fmt.Println(cli.RenderKeyValue("Week AM total", cli.FormatOptionalAmount(amTotal)))
	fmt.Println(cli.RenderKeyValue("Week PM total", cli.FormatOptionalAmount(pmTotal)))
	fmt.Println(cli.RenderKeyValue("Submitted", run.CreatedAt.Local().Format("2006-01-02 15:04")))
	fmt.Println(cli.RenderKeyValue("AM file", run.AMSource))
	fmt.Println(cli.RenderKeyValue("PM file", run.PMSource))
	fmt.Println(cli.RenderKeyValue("Saved to", run.OutputPath))
	fmt.Println()
}

// weekTotals sums the predicted amounts per side. A side with no prediction
// on any day returns nil.
func weekTotals(rows []model.CombinedRow) (am, pm *decimal.Decimal) {
	add := func(total, v *decimal.Decimal) *decimal.Decimal {
		if v == nil {
			return total
		}
		if total == nil {
			sum := *v
			return &sum
		}
		sum := total.Add(*v)
		return &sum
	}
	for _, r := range rows {
		am = add(am, r.AM)
		pm = add(pm, r.PM)
	}
	return am, pm
}
