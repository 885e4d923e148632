package pipeline

import (
	"errors"
	"testing"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/shopspring/decimal"
)

func TestNextAnchor_FromMonday(t *testing.T) {
	latest := day(2024, 3, 11) // Monday
	got := NextAnchor(latest, time.Wednesday)
	want := day(2024, 3, 13)
	if !got.Equal(want) {
		t.Errorf("NextAnchor = %v, want %v", got, want)
	}
}

func TestNextAnchor_SameDayGoesAFullWeek(t *testing.T) {
	latest := day(2024, 3, 6) // Wednesday
	got := NextAnchor(latest, time.Wednesday)
	want := day(2024, 3, 13)
	if !got.Equal(want) {
		t.Errorf("NextAnchor = %v, want %v", got, want)
	}
}

func TestNextAnchor_AlwaysStrictlyFutureAnchorDay(t *testing.T) {
	for anchor := time.Sunday; anchor <= time.Saturday; anchor++ {
		for i := 0; i < 21; i++ {
			latest := day(2024, 2, 1).AddDate(0, 0, i)
			next := NextAnchor(latest, anchor)
			if !next.After(latest) {
				t.Fatalf("NextAnchor(%v, %v) = %v, not after latest", latest, anchor, next)
			}
			if next.Weekday() != anchor {
				t.Fatalf("NextAnchor(%v, %v) = %v (%v)", latest, anchor, next, next.Weekday())
			}
			if next.Sub(latest) > 7*24*time.Hour {
				t.Fatalf("NextAnchor(%v, %v) more than a week out", latest, anchor)
			}
		}
	}
}

func forecastOf(p model.Period, end time.Time, means map[time.Weekday]string) *model.PeriodForecast {
	pf := &model.PeriodForecast{Period: p, EndDate: end, Source: string(p) + ".csv"}
	for w := time.Sunday; w <= time.Saturday; w++ {
		m, ok := means[w]
		if !ok {
			continue
		}
		pf.Rows = append(pf.Rows, model.WeekdayForecast{
			Weekday: w, Name: w.String(), Order: DayOrder(w, time.Wednesday),
			Mean: decimal.RequireFromString(m),
		})
	}
	return pf
}

func TestMerge_OuterJoinAndLabels(t *testing.T) {
	am := forecastOf(model.PeriodAM, day(2024, 3, 10), map[time.Weekday]string{
		time.Wednesday: "15.00",
		time.Monday:    "8.50",
	})
	pm := forecastOf(model.PeriodPM, day(2024, 3, 11), map[time.Weekday]string{
		time.Wednesday: "40.00",
		time.Friday:    "22.10",
	})

	cf, err := Merge(am, pm, time.Wednesday)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cf.Latest.Equal(day(2024, 3, 11)) {
		t.Errorf("Latest = %v, want PM end date", cf.Latest)
	}
	if !cf.NextAnchor.Equal(day(2024, 3, 13)) {
		t.Errorf("NextAnchor = %v, want 2024-03-13", cf.NextAnchor)
	}

	if len(cf.Rows) != 3 {
		t.Fatalf("len(Rows) = %d, want 3", len(cf.Rows))
	}

	wed, fri, mon := cf.Rows[0], cf.Rows[1], cf.Rows[2]
	if wed.Label != "Wednesday 03/13" || fri.Label != "Friday 03/15" || mon.Label != "Monday 03/18" {
		t.Errorf("labels = %q, %q, %q", wed.Label, fri.Label, mon.Label)
	}
	if wed.AM == nil || wed.PM == nil {
		t.Fatal("Wednesday should have both sides")
	}
	if fri.AM != nil || fri.PM == nil {
		t.Errorf("Friday AM=%v PM=%v, want AM missing", fri.AM, fri.PM)
	}
	if mon.AM == nil || mon.PM != nil {
		t.Errorf("Monday AM=%v PM=%v, want PM missing", mon.AM, mon.PM)
	}
	if !mon.AM.Equal(decimal.RequireFromString("8.5")) {
		t.Errorf("Monday AM = %s, want 8.50", mon.AM)
	}
}

func TestMerge_RowDatesFollowDayOrder(t *testing.T) {
	all := map[time.Weekday]string{}
	for w := time.Sunday; w <= time.Saturday; w++ {
		all[w] = "1"
	}
	cf, err := Merge(forecastOf(model.PeriodAM, day(2024, 3, 6), all), forecastOf(model.PeriodPM, day(2024, 3, 1), all), time.Wednesday)
	if err != nil {
		t.Fatal(err)
	}
	if len(cf.Rows) != 7 {
		t.Fatalf("len(Rows) = %d, want 7", len(cf.Rows))
	}
	for i, r := range cf.Rows {
		if r.Order != i {
			t.Errorf("Rows[%d].Order = %d", i, r.Order)
		}
		if !r.Date.Equal(cf.NextAnchor.AddDate(0, 0, i)) {
			t.Errorf("Rows[%d].Date = %v, want next anchor + %d", i, r.Date, i)
		}
		if r.Date.Weekday() != r.Weekday {
			t.Errorf("Rows[%d] date %v falls on %v, not %v", i, r.Date, r.Date.Weekday(), r.Weekday)
		}
	}
}

func TestMerge_MissingPeriod(t *testing.T) {
	pf := forecastOf(model.PeriodAM, day(2024, 3, 6), map[time.Weekday]string{time.Wednesday: "1"})

	tests := []struct {
		name   string
		am, pm *model.PeriodForecast
	}{
		{"only AM", pf, nil},
		{"only PM", nil, pf},
		{"neither", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := Merge(tt.am, tt.pm, time.Wednesday)
			if !errors.Is(err, ErrMissingPeriod) {
				t.Errorf("err = %v, want ErrMissingPeriod", err)
			}
			if cf != nil {
				t.Error("expected no forecast")
			}
		})
	}
}
