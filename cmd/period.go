package cmd

import (
	"fmt"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/spf13/cobra"
)

var periodCmd = &cobra.Command{
	Use:   "period <AM|PM> <file>",
	Short: "Show the per-weekday forecast of one sales file",
	Args:  cobra.ExactArgs(2),
	RunE:  runPeriod,
}

func init() {
	rootCmd.AddCommand(periodCmd)
}

func runPeriod(_ *cobra.Command, args []string) error {
	period, err := model.ParsePeriod(args[0])
	if err != nil {
		return err
	}

	logger := newLogger()
	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	cache := openCache(logger)
	if cache != nil {
		defer cache.Close()
	}

	pf, err := newSession(cfg, cache, logger).Load(period, args[1])
	if err != nil {
		return fmt.Errorf("cannot process %s sales file: %w", period, err)
	}

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  |  %s", period.Label(), cli.FormatDateRange(pf.StartDate, pf.EndDate))))
	fmt.Println()

	rows := make([][]string, 0, len(pf.Rows)+2)
	means := make([]float64, 0, len(pf.Rows))
	maxMean := 0.0
	for _, r := range pf.Rows {
		v := r.Mean.InexactFloat64()
		means = append(means, v)
		maxMean = max(maxMean, v)
		rows = append(rows, []string{r.Name, cli.FormatAmount(r.Mean), fmt.Sprintf("%d", r.Samples)})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"Rows in window", cli.FormatNumber(int64(pf.InWindow)), ""})

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Weekday", "Mean", "Days"},
		Rows:    rows,
	}))
	fmt.Println()

	for _, r := range pf.Rows {
		fmt.Println(cli.RenderHorizontalBar(fmt.Sprintf("%-3s", cli.FormatDayOfWeek(r.Weekday)),
			r.Mean.InexactFloat64(), maxMean, 30, cli.FormatAmount(r.Mean)))
	}
	fmt.Printf("\n  Trend  %s\n\n", cli.RenderSparkline(means))

	if pf.Skipped > 0 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("%d rows without a valid date were skipped", pf.Skipped)))
	}
	if len(pf.Rows) < 7 {
		fmt.Println(cli.RenderWarning(fmt.Sprintf("only %d of 7 weekdays have sales in the window", len(pf.Rows))))
	}
	return nil
}
