// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatAmount formats a currency amount with a dollar sign, thousands
// separators and two decimals. e.g., 1234.5 -> "$1,234.50", -3 -> "-$3.00"
func FormatAmount(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatAmount(d.Neg())
	}
	s := d.StringFixed(2)
	whole, frac, _ := strings.Cut(s, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return "$" + s
	}
	return "$" + FormatNumber(n) + "." + frac
}

// FormatOptionalAmount formats a possibly missing amount, "-" when nil.
func FormatOptionalAmount(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return FormatAmount(*d)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatDate formats a calendar date as "Wed Mar 13, 2024".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("Mon Jan 2, 2006")
}

// FormatDateRange formats an inclusive date range with its day count.
// e.g., "Feb 7 - Mar 6, 2024 (29 days)"
func FormatDateRange(start, end time.Time) string {
	days := int(end.Sub(start).Hours()/24) + 1
	if start.Year() == end.Year() {
		return fmt.Sprintf("%s - %s (%d days)", start.Format("Jan 2"), end.Format("Jan 2, 2006"), days)
	}
	return fmt.Sprintf("%s - %s (%d days)", start.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"), days)
}

// FormatDayOfWeek returns a 3-letter day abbreviation.
func FormatDayOfWeek(w time.Weekday) string {
	if w >= time.Sunday && w <= time.Saturday {
		return w.String()[:3]
	}
	return "???"
}
