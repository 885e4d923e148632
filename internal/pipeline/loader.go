package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/source"
	"github.com/theirongolddev/shiftcast/internal/store"
)

// LoadResult holds one loaded period forecast and where it came from.
type LoadResult struct {
	Forecast  *model.PeriodForecast
	FromCache bool
}

// keyVersion changes whenever the forecast math changes, retiring old
// cache entries.
const keyVersion = 2

// Key identifies the options and column selection a forecast was computed
// with. A cached forecast is only reused under the same key.
func Key(opts Options, cols source.Columns) string {
	return fmt.Sprintf("v%d;anchor=%d;window=%d;layout=%s;date=%s@%d;amount=%s@%d",
		keyVersion, opts.Anchor, opts.WindowDays, opts.DateLayout,
		cols.Date, cols.DateIndex, cols.Amount, cols.AmountIndex)
}

// Load reads one export and computes its period forecast. The cache may be
// nil; when present, an unchanged file computed under the same options is
// served from it and fresh results are written back.
func Load(path string, period model.Period, cols source.Columns, opts Options, cache *store.Cache) (*LoadResult, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var fi store.FileInfo
	key := Key(opts, cols)
	if cache != nil {
		fi, err = store.StatFile(abs)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if pf, ok, cerr := cache.GetForecast(abs, period, key, fi); cerr == nil && ok {
			return &LoadResult{Forecast: pf, FromCache: true}, nil
		}
	}

	rows, err := source.ReadFile(abs, cols)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	pf, err := Forecast(rows, period, opts)
	if err != nil {
		if cache != nil {
			_ = cache.DeleteForecast(abs, period)
		}
		return nil, fmt.Errorf("processing %s: %w", path, err)
	}
	pf.Source = abs

	if cache != nil {
		// Best effort: a cache write failure never fails the load
		_ = cache.SaveForecast(pf, key, fi)
	}

	return &LoadResult{Forecast: pf}, nil
}

// CacheDir returns the platform-appropriate cache directory.
func CacheDir() string {
	if xdg := os.Getenv("XDG_CACHE_HOME"); xdg != "" {
		return filepath.Join(xdg, "shiftcast")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".cache", "shiftcast")
}

// CachePath returns the full path to the cache database.
func CachePath() string {
	return filepath.Join(CacheDir(), "shiftcast.db")
}
