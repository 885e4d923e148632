package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/shopspring/decimal"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(filepath.Join(t.TempDir(), "nested", "shiftcast.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func samplePeriod() *model.PeriodForecast {
	return &model.PeriodForecast{
		Period:    model.PeriodAM,
		Source:    "/data/am.csv",
		StartDate: date(2024, 2, 7),
		EndDate:   date(2024, 3, 6),
		Records:   40,
		Skipped:   2,
		InWindow:  29,
		Rows: []model.WeekdayForecast{
			{Weekday: time.Wednesday, Name: "Wednesday", Order: 0, Mean: decimal.RequireFromString("15.00"), Samples: 5},
			{Weekday: time.Friday, Name: "Friday", Order: 2, Mean: decimal.RequireFromString("1234.57"), Samples: 4},
		},
	}
}

func TestForecastRoundTrip(t *testing.T) {
	c := openTestCache(t)
	pf := samplePeriod()
	fi := FileInfo{MtimeNs: 100, SizeBytes: 2048}

	if err := c.SaveForecast(pf, "k1", fi); err != nil {
		t.Fatalf("SaveForecast: %v", err)
	}

	got, ok, err := c.GetForecast(pf.Source, model.PeriodAM, "k1", fi)
	if err != nil {
		t.Fatalf("GetForecast: %v", err)
	}
	if !ok {
		t.Fatal("GetForecast missed an unchanged entry")
	}
	if !got.EndDate.Equal(pf.EndDate) {
		t.Errorf("EndDate = %v, want %v", got.EndDate, pf.EndDate)
	}
	if got.Skipped != 2 || got.InWindow != 29 {
		t.Errorf("Skipped/InWindow = %d/%d, want 2/29", got.Skipped, got.InWindow)
	}
	if len(got.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(got.Rows))
	}
	if got.Rows[1].Weekday != time.Friday || !got.Rows[1].Mean.Equal(decimal.RequireFromString("1234.57")) {
		t.Errorf("Rows[1] = %+v", got.Rows[1])
	}
}

func TestForecastInvalidation(t *testing.T) {
	c := openTestCache(t)
	pf := samplePeriod()
	fi := FileInfo{MtimeNs: 100, SizeBytes: 2048}
	if err := c.SaveForecast(pf, "k1", fi); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		key    string
		fi     FileInfo
		period model.Period
	}{
		{"options changed", "k2", fi, model.PeriodAM},
		{"mtime changed", "k1", FileInfo{MtimeNs: 101, SizeBytes: 2048}, model.PeriodAM},
		{"size changed", "k1", FileInfo{MtimeNs: 100, SizeBytes: 1}, model.PeriodAM},
		{"other period", "k1", fi, model.PeriodPM},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok, err := c.GetForecast(pf.Source, tt.period, tt.key, tt.fi)
			if err != nil {
				t.Fatalf("GetForecast: %v", err)
			}
			if ok {
				t.Error("expected cache miss")
			}
		})
	}
}

func TestSaveForecastReplacesRows(t *testing.T) {
	c := openTestCache(t)
	pf := samplePeriod()
	fi := FileInfo{MtimeNs: 1, SizeBytes: 1}
	if err := c.SaveForecast(pf, "k", fi); err != nil {
		t.Fatal(err)
	}

	pf.Rows = pf.Rows[:1]
	if err := c.SaveForecast(pf, "k", fi); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.GetForecast(pf.Source, pf.Period, "k", fi)
	if err != nil || !ok {
		t.Fatalf("GetForecast ok=%v err=%v", ok, err)
	}
	if len(got.Rows) != 1 {
		t.Errorf("len(Rows) = %d, want 1 after overwrite", len(got.Rows))
	}

	n, err := c.ForecastCount()
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("ForecastCount = %d, want 1", n)
	}
}

func TestRunHistory(t *testing.T) {
	c := openTestCache(t)

	am := decimal.RequireFromString("15.00")
	cf := &model.CombinedForecast{
		Anchor:     time.Wednesday,
		Latest:     date(2024, 3, 11),
		NextAnchor: date(2024, 3, 13),
		AMSource:   "am.csv",
		PMSource:   "pm.csv",
		Rows: []model.CombinedRow{
			{Weekday: time.Wednesday, Order: 0, Date: date(2024, 3, 13), Label: "Wednesday 03/13", AM: &am},
		},
	}

	id1, err := c.SaveRun(cf, "out.txt", "report one")
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	id2, err := c.SaveRun(cf, "out.txt", "report two")
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	runs, err := c.ListRuns(10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != id2 {
		t.Fatalf("ListRuns = %+v, want newest first", runs)
	}

	run, err := c.GetRun(id1)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Report != "report one" {
		t.Errorf("Report = %q", run.Report)
	}
	if len(run.Rows) != 1 {
		t.Fatalf("len(Rows) = %d, want 1", len(run.Rows))
	}
	if run.Rows[0].AM == nil || !run.Rows[0].AM.Equal(am) {
		t.Errorf("AM = %v, want 15.00", run.Rows[0].AM)
	}
	if run.Rows[0].PM != nil {
		t.Errorf("PM = %v, want nil", run.Rows[0].PM)
	}
	if !run.NextAnchor.Equal(cf.NextAnchor) {
		t.Errorf("NextAnchor = %v, want %v", run.NextAnchor, cf.NextAnchor)
	}

	if _, err := c.GetRun(999); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun(999) err = %v, want ErrRunNotFound", err)
	}
}
