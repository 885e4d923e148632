// Package session holds the AM and PM forecasts loaded so far and turns them
// into a submitted report.
package session

import (
	"fmt"
	"io"
	"sync"

	"github.com/theirongolddev/shiftcast/internal/model"
	"github.com/theirongolddev/shiftcast/internal/pipeline"
	"github.com/theirongolddev/shiftcast/internal/report"
	"github.com/theirongolddev/shiftcast/internal/source"
	"github.com/theirongolddev/shiftcast/internal/store"

	"github.com/charmbracelet/log"
)

// Session is the state shared by the CLI and TUI actions. It is safe for
// concurrent use; the TUI loads files from background commands.
type Session struct {
	mu sync.Mutex
	am *model.PeriodForecast
	pm *model.PeriodForecast

	opts       pipeline.Options
	cols       source.Columns
	outputPath string
	cache      *store.Cache
	logger     *log.Logger
}

// Config carries everything a Session needs besides the loaded forecasts.
type Config struct {
	Options    pipeline.Options
	Columns    source.Columns
	OutputPath string
	Cache      *store.Cache // optional
	Logger     *log.Logger  // optional
}

// Result is a successfully submitted report.
type Result struct {
	Text     string
	Forecast *model.CombinedForecast
	Path     string
	RunID    int64 // 0 when history was not recorded
}

// New creates an empty session.
func New(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		opts:       cfg.Options,
		cols:       cfg.Columns,
		outputPath: cfg.OutputPath,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

// Load reads one export into the slot for period. On failure the slot keeps
// its previous forecast.
func (s *Session) Load(period model.Period, path string) (*model.PeriodForecast, error) {
	if _, err := model.ParsePeriod(string(period)); err != nil {
		return nil, err
	}

	res, err := pipeline.Load(path, period, s.cols, s.opts, s.cache)
	if err != nil {
		s.logger.Warn("cannot process file", "period", period, "path", path, "err", err)
		return nil, err
	}
	pf := res.Forecast
	s.logger.Info("loaded sales file",
		"period", period,
		"path", pf.Source,
		"end", pf.EndDate.Format("2006-01-02"),
		"weekdays", len(pf.Rows),
		"cached", res.FromCache,
	)
	if pf.Skipped > 0 {
		s.logger.Debug("dropped rows without a date", "period", period, "count", pf.Skipped)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if period == model.PeriodAM {
		s.am = pf
	} else {
		s.pm = pf
	}
	return pf, nil
}

// Forecast returns the loaded forecast for period, or nil.
func (s *Session) Forecast(period model.Period) *model.PeriodForecast {
	s.mu.Lock()
	defer s.mu.Unlock()
	if period == model.PeriodAM {
		return s.am
	}
	return s.pm
}

// Ready reports whether both periods are loaded.
func (s *Session) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.am != nil && s.pm != nil
}

// OutputPath returns where Submit writes the report.
func (s *Session) OutputPath() string {
	return s.outputPath
}

// Submit merges both forecasts, writes the report file and records the run.
// With either period missing it returns pipeline.ErrMissingPeriod and leaves
// any existing report file untouched.
func (s *Session) Submit() (*Result, error) {
	s.mu.Lock()
	am, pm := s.am, s.pm
	s.mu.Unlock()

	cf, err := pipeline.Merge(am, pm, s.opts.Anchor)
	if err != nil {
		return nil, err
	}

	text := report.Text(cf)
	if err := report.Write(s.outputPath, text); err != nil {
		return nil, fmt.Errorf("saving %s: %w", s.outputPath, err)
	}
	s.logger.Info("report written", "path", s.outputPath, "week_of", cf.NextAnchor.Format("2006-01-02"))

	res := &Result{Text: text, Forecast: cf, Path: s.outputPath}
	if s.cache != nil {
		id, err := s.cache.SaveRun(cf, s.outputPath, text)
		if err != nil {
			s.logger.Warn("run history unavailable", "err", err)
		} else {
			res.RunID = id
		}
	}
	return res, nil
}

// Reset clears both loaded forecasts.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.am, s.pm = nil, nil
}
