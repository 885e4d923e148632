// Package pipeline turns sales exports into per-weekday forecasts and merges
// the AM and PM forecasts into next week's report.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/source"

	"github.com/shopspring/decimal"
)

// Options controls the forecast computation.
type Options struct {
	Anchor     time.Weekday // first day of the reporting week
	WindowDays int          // trailing window length, end date inclusive
	DateLayout string
}

// DefaultOptions returns Wednesday-anchored, 28-day options.
func DefaultOptions() Options {
	return Options{
		Anchor:     time.Wednesday,
		WindowDays: 28,
		DateLayout: config.DefaultDateLayout,
	}
}

// OptionsFromConfig builds forecast options from the loaded config.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Anchor:     cfg.Anchor(),
		WindowDays: cfg.General.WindowDays,
		DateLayout: cfg.Columns.DateLayout,
	}
}

// DayOrder ranks a weekday relative to the anchor: anchor=0 .. anchor-1=6.
func DayOrder(w, anchor time.Weekday) int {
	return (int(w) - int(anchor) + 7) % 7
}

// WeekdayAt returns the weekday with the given day-order index.
func WeekdayAt(order int, anchor time.Weekday) time.Weekday {
	return time.Weekday((int(anchor) + order) % 7)
}

// Window returns the [start, end] bounds for the trailing window ending at
// the latest record date.
func Window(records []model.SalesRecord, days int) (start, end time.Time, ok bool) {
	if len(records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	end = records[0].Date
	for _, r := range records[1:] {
		if r.Date.After(end) {
			end = r.Date
		}
	}
	return end.AddDate(0, 0, -days), end, true
}

// FilterByDate returns records dated within [start, end], both inclusive.
func FilterByDate(records []model.SalesRecord, start, end time.Time) []model.SalesRecord {
	var result []model.SalesRecord
	for _, r := range records {
		if r.Date.Before(start) || r.Date.After(end) {
			continue
		}
		result = append(result, r)
	}
	return result
}

// AggregateWeekdays computes the mean amount per weekday, rounded to cents
// half to even and sorted by day order. Weekdays without a valued record
// are omitted.
func AggregateWeekdays(records []model.SalesRecord, anchor time.Weekday) []model.WeekdayForecast {
	type bucket struct {
		sum decimal.Decimal
		n   int
	}
	var buckets [7]*bucket

	for _, r := range records {
		if r.Blank {
			continue
		}
		w := r.Date.Weekday()
		b := buckets[w]
		if b == nil {
			b = &bucket{}
			buckets[w] = b
		}
		b.sum = b.sum.Add(r.Amount)
		b.n++
	}

	rows := make([]model.WeekdayForecast, 0, 7)
	for w, b := range buckets {
		if b == nil {
			continue
		}
		wd := time.Weekday(w)
		rows = append(rows, model.WeekdayForecast{
			Weekday: wd,
			Name:    wd.String(),
			Order:   DayOrder(wd, anchor),
			Mean:    b.sum.Div(decimal.NewFromInt(int64(b.n))).RoundBank(2),
			Samples: b.n,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Order < rows[j].Order
	})
	return rows
}

// Forecast runs clean, window and aggregate over one export's raw rows.
func Forecast(rows []source.RawRow, period model.Period, opts Options) (*model.PeriodForecast, error) {
	records, skipped, err := Clean(rows, opts.DateLayout)
	if err != nil {
		return nil, err
	}

	start, end, ok := Window(records, opts.WindowDays)
	if !ok {
		return nil, ErrNoUsableRows
	}
	inWindow := FilterByDate(records, start, end)

	return &model.PeriodForecast{
		Period:    period,
		StartDate: start,
		EndDate:   end,
		Rows:      AggregateWeekdays(inWindow, opts.Anchor),
		Records:   len(records),
		Skipped:   skipped,
		InWindow:  len(inWindow),
	}, nil
}
