// Package model defines domain types for shift sales records and forecasts.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period identifies one of the two daily sales shifts.
type Period string

const (
	PeriodAM Period = "AM"
	PeriodPM Period = "PM"
)

// Periods lists both shifts in report column order.
var Periods = []Period{PeriodAM, PeriodPM}

// ParsePeriod accepts "am"/"pm" in any case.
func ParsePeriod(s string) (Period, error) {
	switch Period(strings.ToUpper(strings.TrimSpace(s))) {
	case PeriodAM:
		return PeriodAM, nil
	case PeriodPM:
		return PeriodPM, nil
	}
	return "", fmt.Errorf("unknown period %q (want AM or PM)", s)
}

// Label returns the report column header for the period.
func (p Period) Label() string {
	return fmt.Sprintf("Predicted %s Sales", string(p))
}

// SalesRecord is one parsed row of a sales export. Blank is set when the
// amount cell was empty; such a record dates the window but is left out of
// the weekday mean.
type SalesRecord struct {
	Date   time.Time
	Amount decimal.Decimal
	Blank  bool
	Row    int // 1-based data row, header excluded
}
