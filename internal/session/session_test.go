package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/source"
	"github.com/theirongolddev/shiftcast/internal/store"
)

var testCols = source.Columns{Date: "TextBox4", Amount: "TextBox3", DateIndex: 0, AmountIndex: 1}

func writeCSV(t *testing.T, dir, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	body := "TextBox4,TextBox3\n" + strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func newSession(t *testing.T, dir string, cache *store.Cache) *Session {
	t.Helper()
	return New(Config{
		Options:    pipeline.DefaultOptions(),
		Columns:    testCols,
		OutputPath: filepath.Join(dir, "sales_predictions.txt"),
		Cache:      cache,
	})
}

func TestSubmit_WritesReport(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, nil)

	am := writeCSV(t, dir, "am.csv",
		`"Wednesday, February 28, 2024",$10.00`,
		`"Wednesday, March 6, 2024",$20.00`,
	)
	pm := writeCSV(t, dir, "pm.csv",
		`"Monday, March 11, 2024","$1,000.00"`,
	)

	if _, err := s.Load(model.PeriodAM, am); err != nil {
		t.Fatalf("Load AM: %v", err)
	}
	if _, err := s.Load(model.PeriodPM, pm); err != nil {
		t.Fatalf("Load PM: %v", err)
	}
	if !s.Ready() {
		t.Fatal("session should be ready")
	}

	res, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if len(res.Forecast.Rows) != 2 {
		t.Fatalf("len(Rows) = %d, want 2", len(res.Forecast.Rows))
	}

	data, err := os.ReadFile(s.OutputPath())
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if string(data) != res.Text {
		t.Error("file content differs from returned text")
	}
	for _, want := range []string{"Wednesday 03/13", "15.00", "Monday 03/18", "1000.00"} {
		if !strings.Contains(res.Text, want) {
			t.Errorf("report missing %q:\n%s", want, res.Text)
		}
	}
}

func TestSubmit_OnlyAMLoaded(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, nil)

	am := writeCSV(t, dir, "am.csv", `"Wednesday, March 6, 2024",$20.00`)
	if _, err := s.Load(model.PeriodAM, am); err != nil {
		t.Fatal(err)
	}

	_, err := s.Submit()
	if !errors.Is(err, pipeline.ErrMissingPeriod) {
		t.Fatalf("err = %v, want ErrMissingPeriod", err)
	}
	if _, err := os.Stat(s.OutputPath()); !os.IsNotExist(err) {
		t.Error("no report file should be written")
	}
}

func TestSubmit_MissingPeriodKeepsOldReport(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, nil)
	if err := os.WriteFile(s.OutputPath(), []byte("previous\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := s.Submit(); !errors.Is(err, pipeline.ErrMissingPeriod) {
		t.Fatalf("err = %v, want ErrMissingPeriod", err)
	}
	data, _ := os.ReadFile(s.OutputPath())
	if string(data) != "previous\n" {
		t.Errorf("existing report was overwritten: %q", data)
	}
}

func TestLoad_FailureKeepsPreviousSlot(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, nil)

	good := writeCSV(t, dir, "good.csv", `"Wednesday, March 6, 2024",$20.00`)
	bad := writeCSV(t, dir, "bad.csv", `"Wednesday, March 6, 2024",lots`)

	first, err := s.Load(model.PeriodPM, good)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(model.PeriodPM, bad); !errors.Is(err, pipeline.ErrMalformedAmount) {
		t.Fatalf("err = %v, want ErrMalformedAmount", err)
	}
	if s.Forecast(model.PeriodPM) != first {
		t.Error("failed load replaced the PM forecast")
	}
	if s.Forecast(model.PeriodAM) != nil {
		t.Error("AM slot should still be empty")
	}
}

func TestLoad_RejectsUnknownPeriod(t *testing.T) {
	s := newSession(t, t.TempDir(), nil)
	if _, err := s.Load(model.Period("NOON"), "whatever.csv"); err == nil {
		t.Error("expected error for unknown period")
	}
}

func TestReset(t *testing.T) {
	dir := t.TempDir()
	s := newSession(t, dir, nil)
	path := writeCSV(t, dir, "am.csv", `"Wednesday, March 6, 2024",$20.00`)
	if _, err := s.Load(model.PeriodAM, path); err != nil {
		t.Fatal(err)
	}
	s.Reset()
	if s.Forecast(model.PeriodAM) != nil {
		t.Error("Reset should clear the AM slot")
	}
}

func TestSubmit_RecordsHistory(t *testing.T) {
	dir := t.TempDir()
	cache, err := store.Open(filepath.Join(dir, "cache.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	s := newSession(t, dir, cache)
	am := writeCSV(t, dir, "am.csv", `"Wednesday, March 6, 2024",$20.00`)
	pm := writeCSV(t, dir, "pm.csv", `"Thursday, March 7, 2024",$30.00`)
	if _, err := s.Load(model.PeriodAM, am); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Load(model.PeriodPM, pm); err != nil {
		t.Fatal(err)
	}

	res, err := s.Submit()
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if res.RunID == 0 {
		t.Fatal("expected a recorded run id")
	}

	run, err := cache.GetRun(res.RunID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if run.Report != res.Text {
		t.Error("stored report differs from submitted text")
	}
	if len(run.Rows) != 2 {
		t.Errorf("len(run.Rows) = %d, want 2", len(run.Rows))
	}
}
