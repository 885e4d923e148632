package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WeekdayForecast holds the windowed mean for one weekday.
type WeekdayForecast struct {
	Weekday time.Weekday
	Name    string
	Order   int // 0-6, relative to the anchor weekday
	Mean    decimal.Decimal
	Samples int
}

// PeriodForecast is the per-weekday forecast computed from one export.
// Rows are sorted by Order and only contain weekdays seen in the window.
type PeriodForecast struct {
	Period    Period
	Source    string
	StartDate time.Time
	EndDate   time.Time
	Rows      []WeekdayForecast

	Records  int // rows with a parseable date
	Skipped  int // rows dropped for an unparseable date
	InWindow int // records inside the trailing window
}

// Lookup returns the row for a weekday, if present.
func (pf *PeriodForecast) Lookup(w time.Weekday) (WeekdayForecast, bool) {
	if pf == nil {
		return WeekdayForecast{}, false
	}
	for _, r := range pf.Rows {
		if r.Weekday == w {
			return r, true
		}
	}
	return WeekdayForecast{}, false
}

// CombinedRow is one weekday of the merged AM/PM forecast.
// AM or PM is nil when that side had no data for the weekday.
type CombinedRow struct {
	Weekday time.Weekday
	Name    string
	Order   int
	Date    time.Time
	Label   string
	AM      *decimal.Decimal
	PM      *decimal.Decimal
}

// CombinedForecast is the merged forecast labeled with next week's dates.
type CombinedForecast struct {
	Anchor     time.Weekday
	Latest     time.Time
	NextAnchor time.Time
	AMSource   string
	PMSource   string
	Rows       []CombinedRow
}
