package tui

import (
	"testing"
	"time"

	"github.com/theirongolddev/shiftcast/internal/config"
)

func TestSetupValuesApply(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	if v.Anchor != "Wednesday" || v.Window != "28" {
		t.Fatalf("seeded values = %+v", v)
	}

	v.Anchor = "Monday"
	v.Window = " 14 "
	v.Output = "out/report.txt"
	v.Theme = "tokyo-night"
	if err := v.Apply(&cfg); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if cfg.Anchor() != time.Monday || cfg.General.WindowDays != 14 {
		t.Errorf("cfg = %+v", cfg.General)
	}
	if cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("theme = %q", cfg.Appearance.Theme)
	}
}

func TestSetupValuesApplyRejectsBadWindow(t *testing.T) {
	cfg := config.DefaultConfig()
	v := SetupValuesFrom(cfg)
	v.Window = "soon"
	if err := v.Apply(&cfg); err == nil {
		t.Error("expected error for non-numeric window")
	}

	v.Window = "0"
	if err := v.Apply(&cfg); err == nil {
		t.Error("expected error for zero window")
	}
}

func TestValidateWindow(t *testing.T) {
	for in, ok := range map[string]bool{"28": true, "1": true, "0": false, "-3": false, "x": false} {
		if err := validateWindow(in); (err == nil) != ok {
			t.Errorf("validateWindow(%q) err = %v, want ok=%v", in, err, ok)
		}
	}
}
