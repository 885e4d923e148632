// Package store provides a SQLite-backed forecast cache and report history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // register sqlite driver
)

const dateLayout = "2006-01-02"

// Cache provides SQLite-backed forecast caching and run history.
type Cache struct {
	db *sql.DB
}

// Open opens or creates the cache database at the given path.
func Open(dbPath string) (*Cache, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening cache db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the cache database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// FileInfo holds the tracked mtime and size for a file.
type FileInfo struct {
	MtimeNs   int64
	SizeBytes int64
}

// StatFile returns the FileInfo used to detect changed exports.
func StatFile(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{MtimeNs: info.ModTime().UnixNano(), SizeBytes: info.Size()}, nil
}

// GetForecast returns the cached forecast for a file and period if the file
// is unchanged and it was computed with the same options key.
func (c *Cache) GetForecast(path string, period model.Period, optionsKey string, fi FileInfo) (*model.PeriodForecast, bool, error) {
	var (
		key              string
		mtime, size      int64
		startStr, endStr string
	)
	pf := &model.PeriodForecast{Period: period, Source: path}

	err := c.db.QueryRow(`SELECT options_key, mtime_ns, size_bytes, start_date, end_date,
		records, skipped, in_window
		FROM forecasts WHERE file_path = ? AND period = ?`, path, string(period)).
		Scan(&key, &mtime, &size, &startStr, &endStr, &pf.Records, &pf.Skipped, &pf.InWindow)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if key != optionsKey || mtime != fi.MtimeNs || size != fi.SizeBytes {
		return nil, false, nil
	}

	if pf.StartDate, err = time.Parse(dateLayout, startStr); err != nil {
		return nil, false, err
	}
	if pf.EndDate, err = time.Parse(dateLayout, endStr); err != nil {
		return nil, false, err
	}

	rows, err := c.db.Query(`SELECT weekday, day_order, mean, samples
		FROM forecast_rows WHERE file_path = ? AND period = ?
		ORDER BY day_order`, path, string(period))
	if err != nil {
		return nil, false, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var wf model.WeekdayForecast
		var wd int
		if err := rows.Scan(&wd, &wf.Order, &wf.Mean, &wf.Samples); err != nil {
			return nil, false, err
		}
		wf.Weekday = time.Weekday(wd)
		wf.Name = wf.Weekday.String()
		pf.Rows = append(pf.Rows, wf)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}

	return pf, true, nil
}

// SaveForecast stores a computed forecast and the file state it came from.
func (c *Cache) SaveForecast(pf *model.PeriodForecast, optionsKey string, fi FileInfo) error {
	tx, err := c.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339)

	_, err = tx.Exec(`INSERT OR REPLACE INTO forecasts
		(file_path, period, options_key, mtime_ns, size_bytes, start_date, end_date,
		 records, skipped, in_window, parsed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		pf.Source, string(pf.Period), optionsKey, fi.MtimeNs, fi.SizeBytes,
		pf.StartDate.Format(dateLayout), pf.EndDate.Format(dateLayout),
		pf.Records, pf.Skipped, pf.InWindow, now,
	)
	if err != nil {
		return err
	}

	// Clear old weekday rows before reinserting
	_, err = tx.Exec("DELETE FROM forecast_rows WHERE file_path = ? AND period = ?",
		pf.Source, string(pf.Period))
	if err != nil {
		return err
	}

	for _, r := range pf.Rows {
		_, err = tx.Exec(`INSERT INTO forecast_rows
			(file_path, period, weekday, day_order, mean, samples)
			VALUES (?, ?, ?, ?, ?, ?)`,
			pf.Source, string(pf.Period), int(r.Weekday), r.Order, r.Mean.String(), r.Samples,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteForecast removes a cached forecast.
func (c *Cache) DeleteForecast(path string, period model.Period) error {
	_, err := c.db.Exec("DELETE FROM forecasts WHERE file_path = ? AND period = ?", path, string(period))
	return err
}

// ForecastCount returns the number of cached forecasts.
func (c *Cache) ForecastCount() (int, error) {
	var count int
	err := c.db.QueryRow("SELECT COUNT(*) FROM forecasts").Scan(&count)
	return count, err
}

// nullableDecimal converts an optional value for a nullable TEXT column.
func nullableDecimal(d *decimal.Decimal) sql.NullString {
	if d == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: d.String(), Valid: true}
}

func decimalPtr(ns sql.NullString) (*decimal.Decimal, error) {
	if !ns.Valid {
		return nil, nil
	}
	d, err := decimal.NewFromString(ns.String)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
