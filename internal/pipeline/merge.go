package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"
)

// NextAnchor returns the first anchor weekday strictly after latest.
func NextAnchor(latest time.Time, anchor time.Weekday) time.Time {
	delta := (int(anchor) - int(latest.Weekday()) + 7) % 7
	if delta == 0 {
		delta = 7
	}
	return latest.AddDate(0, 0, delta)
}

// DayLabel formats a report row label, e.g. "Wednesday 03/13".
func DayLabel(w time.Weekday, date time.Time) string {
	return fmt.Sprintf("%s %s", w, date.Format("01/02"))
}

// Merge outer-joins the AM and PM forecasts on weekday and labels each
// weekday with its date in the week starting at the next anchor day after
// the later of the two end dates.
func Merge(am, pm *model.PeriodForecast, anchor time.Weekday) (*model.CombinedForecast, error) {
	switch {
	case am == nil && pm == nil:
		return nil, fmt.Errorf("%w: neither is loaded", ErrMissingPeriod)
	case am == nil:
		return nil, fmt.Errorf("%w: AM is not loaded", ErrMissingPeriod)
	case pm == nil:
		return nil, fmt.Errorf("%w: PM is not loaded", ErrMissingPeriod)
	}

	latest := am.EndDate
	if pm.EndDate.After(latest) {
		latest = pm.EndDate
	}
	next := NextAnchor(latest, anchor)

	rowMap := make(map[time.Weekday]*model.CombinedRow)
	rowFor := func(w time.Weekday) *model.CombinedRow {
		cr, ok := rowMap[w]
		if !ok {
			order := DayOrder(w, anchor)
			date := next.AddDate(0, 0, order)
			cr = &model.CombinedRow{
				Weekday: w,
				Name:    w.String(),
				Order:   order,
				Date:    date,
				Label:   DayLabel(w, date),
			}
			rowMap[w] = cr
		}
		return cr
	}

	for _, r := range am.Rows {
		v := r.Mean
		rowFor(r.Weekday).AM = &v
	}
	for _, r := range pm.Rows {
		v := r.Mean
		rowFor(r.Weekday).PM = &v
	}

	rows := make([]model.CombinedRow, 0, len(rowMap))
	for _, cr := range rowMap {
		rows = append(rows, *cr)
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Order < rows[j].Order
	})

	return &model.CombinedForecast{
		Anchor:     anchor,
		Latest:     latest,
		NextAnchor: next,
		AMSource:   am.Source,
		PMSource:   pm.Source,
		Rows:       rows,
	}, nil
}
