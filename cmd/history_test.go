package cmd

import (
	"testing"

	"github.com/theirongolddev/shiftcast/internal/cli"
	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/shopspring/decimal"
)

func TestWeekTotals(t *testing.T) {
	amt := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	rows := []model.CombinedRow{
		{AM: amt("10.50"), PM: nil},
		{AM: nil, PM: nil},
		{AM: amt("1234.25"), PM: nil},
	}

	am, pm := weekTotals(rows)
	if am == nil || am.StringFixed(2) != "1244.75" {
		t.Errorf("AM total = %v, want 1244.75", am)
	}
	if pm != nil {
		t.Errorf("PM total = %v, want nil", pm)
	}
	if rows[0].AM.StringFixed(2) != "10.50" {
		t.Error("weekTotals must not modify row amounts")
	}

	if got := cli.FormatOptionalAmount(am); got != "$1,244.75" {
		t.Errorf("FormatOptionalAmount(AM) = %q", got)
	}
	if got := cli.FormatOptionalAmount(pm); got != "-" {
		t.Errorf("FormatOptionalAmount(PM) = %q, want -", got)
	}
}
