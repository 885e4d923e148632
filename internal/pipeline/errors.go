package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNoUsableRows means no row had a parseable date, so there is no
	// end date to anchor the trailing window on.
	ErrNoUsableRows = errors.New("no rows with a valid date")

	// ErrMalformedAmount means at least one dated row had an amount that is
	// not a currency value. The whole file is rejected.
	ErrMalformedAmount = errors.New("malformed sales amount")

	// ErrMissingPeriod means a merge was requested before both periods were loaded.
	ErrMissingPeriod = errors.New("both AM and PM sales files are required")
)

// RowIssue describes one rejected row.
type RowIssue struct {
	Row   int
	Value string
	Err   error
}

// AmountError lists every row whose amount could not be parsed.
type AmountError struct {
	Rows []RowIssue
}

const maxListedIssues = 5

func (e *AmountError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s in %d row(s): ", ErrMalformedAmount, len(e.Rows))
	for i, r := range e.Rows {
		if i == maxListedIssues {
			fmt.Fprintf(&b, ", and %d more", len(e.Rows)-maxListedIssues)
			break
		}
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "row %d (%q)", r.Row, r.Value)
	}
	return b.String()
}

func (e *AmountError) Unwrap() error {
	return ErrMalformedAmount
}
