package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/source"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer("$", "", ",", "", " ", "", "\u00a0", "")

// ParseDate parses an export date such as "Wednesday, March 6, 2024".
func ParseDate(s, layout string) (time.Time, error) {
	return time.Parse(layout, strings.TrimSpace(s))
}

// ParseAmount parses a currency string: "$1,234.50", "-12", "(7.25)".
func ParseAmount(s string) (decimal.Decimal, error) {
	v := amountReplacer.Replace(strings.TrimSpace(s))

	negative := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		negative = true
		v = v[1 : len(v)-1]
	}
	if v == "" {
		return decimal.Zero, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// Clean converts raw rows into sales records. Rows with an unparseable date
// are dropped and counted in skipped. Amounts are only parsed on dated rows:
// an empty cell yields a Blank record, any other failure rejects the file
// with an *AmountError listing every offending row.
func Clean(rows []source.RawRow, layout string) (records []model.SalesRecord, skipped int, err error) {
	var issues []RowIssue

	valued := 0
	records = make([]model.SalesRecord, 0, len(rows))
	for _, r := range rows {
		date, derr := ParseDate(r.Date, layout)
		if derr != nil {
			skipped++
			continue
		}
		if strings.TrimSpace(r.Amount) == "" {
			records = append(records, model.SalesRecord{Date: date, Blank: true, Row: r.Row})
			continue
		}
		amount, aerr := ParseAmount(r.Amount)
		if aerr != nil {
			issues = append(issues, RowIssue{Row: r.Row, Value: r.Amount, Err: aerr})
			continue
		}
		records = append(records, model.SalesRecord{Date: date, Amount: amount, Row: r.Row})
		valued++
	}

	if len(issues) > 0 {
		return nil, skipped, &AmountError{Rows: issues}
	}
	if valued == 0 {
		return nil, skipped, ErrNoUsableRows
	}
	return records, skipped, nil
}
