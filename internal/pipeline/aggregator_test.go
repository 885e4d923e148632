package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/shiftcast/internal/config"
	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/source"

	"github.com/shopspring/decimal"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func raw(d time.Time, amount string) source.RawRow {
	return source.RawRow{Date: d.Format(config.DefaultDateLayout), Amount: amount}
}

func TestDayOrder_WednesdayAnchor(t *testing.T) {
	want := map[time.Weekday]int{
		time.Wednesday: 0, time.Thursday: 1, time.Friday: 2, time.Saturday: 3,
		time.Sunday: 4, time.Monday: 5, time.Tuesday: 6,
	}
	for w, order := range want {
		if got := DayOrder(w, time.Wednesday); got != order {
			t.Errorf("DayOrder(%v) = %d, want %d", w, got, order)
		}
		if back := WeekdayAt(order, time.Wednesday); back != w {
			t.Errorf("WeekdayAt(%d) = %v, want %v", order, back, w)
		}
	}
}

func TestDayOrder_IsPermutationForEveryAnchor(t *testing.T) {
	for anchor := time.Sunday; anchor <= time.Saturday; anchor++ {
		seen := make(map[int]bool)
		for w := time.Sunday; w <= time.Saturday; w++ {
			o := DayOrder(w, anchor)
			if o < 0 || o > 6 {
				t.Fatalf("DayOrder(%v, %v) = %d out of range", w, anchor, o)
			}
			seen[o] = true
		}
		if len(seen) != 7 {
			t.Errorf("anchor %v: orders not a permutation of 0..6: %v", anchor, seen)
		}
		if DayOrder(anchor, anchor) != 0 {
			t.Errorf("anchor %v does not map to 0", anchor)
		}
	}
}

func TestForecast_WednesdayMean(t *testing.T) {
	rows := []source.RawRow{
		raw(day(2024, 2, 28), "$10.00"),
		raw(day(2024, 3, 6), "$20.00"),
	}

	pf, err := Forecast(rows, model.PeriodAM, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pf.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(pf.Rows))
	}
	got := pf.Rows[0]
	if got.Weekday != time.Wednesday || got.Order != 0 {
		t.Errorf("row = %+v, want Wednesday order 0", got)
	}
	if got.Mean.StringFixed(2) != "15.00" {
		t.Errorf("Mean = %s, want 15.00", got.Mean.StringFixed(2))
	}
	if got.Samples != 2 {
		t.Errorf("Samples = %d, want 2", got.Samples)
	}
}

func TestForecast_ConstantAmountIsExact(t *testing.T) {
	var rows []source.RawRow
	for d := day(2024, 2, 8); !d.After(day(2024, 3, 6)); d = d.AddDate(0, 0, 1) {
		rows = append(rows, raw(d, "$33.33"))
	}

	pf, err := Forecast(rows, model.PeriodPM, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pf.Rows) != 7 {
		t.Fatalf("len(Rows) = %d, want 7", len(pf.Rows))
	}
	for _, r := range pf.Rows {
		if r.Mean.StringFixed(2) != "33.33" {
			t.Errorf("%s mean = %s, want 33.33", r.Name, r.Mean.StringFixed(2))
		}
	}
}

func TestForecast_WindowBounds(t *testing.T) {
	end := day(2024, 3, 6)
	rows := []source.RawRow{
		raw(end.AddDate(0, 0, -29), "$1000.00"), // one day too old
		raw(end.AddDate(0, 0, -28), "$10.00"),   // start date, inclusive
		raw(end.AddDate(0, 0, -14), "$20.00"),
		raw(end, "$30.00"),
	}

	pf, err := Forecast(rows, model.PeriodAM, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !pf.EndDate.Equal(end) {
		t.Errorf("EndDate = %v, want %v", pf.EndDate, end)
	}
	if !pf.StartDate.Equal(end.AddDate(0, 0, -28)) {
		t.Errorf("StartDate = %v, want end-28d", pf.StartDate)
	}
	if pf.InWindow != 3 || pf.Records != 4 {
		t.Errorf("InWindow/Records = %d/%d, want 3/4", pf.InWindow, pf.Records)
	}
	// All four dates are Wednesdays; the old $1000 must not leak into the mean.
	if len(pf.Rows) != 1 || pf.Rows[0].Mean.StringFixed(2) != "20.00" {
		t.Errorf("Rows = %+v, want Wednesday mean 20.00", pf.Rows)
	}
}

func TestFilterByDate_RetainedWithinWindow(t *testing.T) {
	var records []model.SalesRecord
	base := day(2024, 1, 1)
	for i := 0; i < 90; i++ {
		records = append(records, model.SalesRecord{Date: base.AddDate(0, 0, i), Amount: decimal.NewFromInt(1)})
	}

	start, end, ok := Window(records, 28)
	if !ok {
		t.Fatal("Window returned !ok")
	}
	kept := FilterByDate(records, start, end)
	if len(kept) != 29 {
		t.Errorf("len(kept) = %d, want 29", len(kept))
	}
	for _, r := range kept {
		days := int(end.Sub(r.Date).Hours() / 24)
		if days < 0 || days > 28 {
			t.Errorf("retained %v is %d days before end", r.Date, days)
		}
	}
}

func TestForecast_MissingWeekdaysAbsentAndSorted(t *testing.T) {
	rows := []source.RawRow{
		raw(day(2024, 3, 5), "$6.00"),  // Tuesday
		raw(day(2024, 3, 2), "$3.00"),  // Saturday
		raw(day(2024, 2, 29), "$1.00"), // Thursday
	}

	pf, err := Forecast(rows, model.PeriodAM, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantOrder := []time.Weekday{time.Thursday, time.Saturday, time.Tuesday}
	if len(pf.Rows) != len(wantOrder) {
		t.Fatalf("len(Rows) = %d, want %d", len(pf.Rows), len(wantOrder))
	}
	for i, w := range wantOrder {
		if pf.Rows[i].Weekday != w {
			t.Errorf("Rows[%d] = %v, want %v", i, pf.Rows[i].Weekday, w)
		}
		if i > 0 && pf.Rows[i].Order < pf.Rows[i-1].Order {
			t.Errorf("rows not sorted by order at %d", i)
		}
	}
	if _, ok := pf.Lookup(time.Wednesday); ok {
		t.Error("Wednesday should be absent, not zero-filled")
	}
}

func TestForecast_RoundsToCents(t *testing.T) {
	rows := []source.RawRow{
		raw(day(2024, 3, 6), "$10.00"),
		raw(day(2024, 2, 28), "$10.00"),
		raw(day(2024, 2, 21), "$10.01"),
	}
	pf, err := Forecast(rows, model.PeriodAM, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 30.01 / 3 = 10.00333...
	if got := pf.Rows[0].Mean.String(); got != "10" {
		t.Errorf("Mean = %s, want 10", got)
	}
}

func TestForecast_RoundsHalfToEven(t *testing.T) {
	tests := []struct {
		amounts []string
		want    string
	}{
		{[]string{"$10.125"}, "10.12"},
		{[]string{"$10.135"}, "10.14"},
		{[]string{"$0.01", "$0.00"}, "0"},
		{[]string{"$0.03", "$0.00"}, "0.02"},
	}
	for _, tt := range tests {
		var rows []source.RawRow
		for i, a := range tt.amounts {
			rows = append(rows, raw(day(2024, 3, 6).AddDate(0, 0, -7*i), a))
		}
		pf, err := Forecast(rows, model.PeriodAM, DefaultOptions())
		if err != nil {
			t.Fatalf("Forecast(%v): %v", tt.amounts, err)
		}
		if got := pf.Rows[0].Mean.String(); got != tt.want {
			t.Errorf("Mean of %v = %s, want %s", tt.amounts, got, tt.want)
		}
	}
}

func TestForecast_Errors(t *testing.T) {
	_, err := Forecast([]source.RawRow{{Date: "Total", Amount: "$5"}}, model.PeriodAM, DefaultOptions())
	if !errors.Is(err, ErrNoUsableRows) {
		t.Errorf("undated input err = %v, want ErrNoUsableRows", err)
	}

	_, err = Forecast([]source.RawRow{raw(day(2024, 3, 6), "abc")}, model.PeriodAM, DefaultOptions())
	if !errors.Is(err, ErrMalformedAmount) {
		t.Errorf("bad amount err = %v, want ErrMalformedAmount", err)
	}
}

func TestForecast_CustomAnchor(t *testing.T) {
	opts := DefaultOptions()
	opts.Anchor = time.Monday
	rows := []source.RawRow{
		raw(day(2024, 3, 4), "$1.00"), // Monday
		raw(day(2024, 3, 3), "$2.00"), // Sunday
	}
	pf, err := Forecast(rows, model.PeriodAM, opts)
	if err != nil {
		t.Fatal(err)
	}
	if pf.Rows[0].Weekday != time.Monday || pf.Rows[1].Order != 6 {
		t.Errorf("Rows = %+v, want Monday first and Sunday at order 6", pf.Rows)
	}
}
