package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/theirongolddev/shiftcast/internal/model"
)

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// SaveRun records a submitted report and returns its id.
func (c *Cache) SaveRun(cf *model.CombinedForecast, outputPath, report string) (int64, error) {
	tx, err := c.db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`INSERT INTO runs
		(created_at, anchor, latest, next_anchor, am_source, pm_source, output_path, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		time.Now().UTC().Format(time.RFC3339), int(cf.Anchor),
		cf.Latest.Format(dateLayout), cf.NextAnchor.Format(dateLayout),
		cf.AMSource, cf.PMSource, outputPath, report,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	for _, r := range cf.Rows {
		_, err = tx.Exec(`INSERT INTO run_rows
			(run_id, weekday, day_order, date, label, am, pm)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			id, int(r.Weekday), r.Order, r.Date.Format(dateLayout), r.Label,
			nullableDecimal(r.AM), nullableDecimal(r.PM),
		)
		if err != nil {
			return 0, err
		}
	}

	return id, tx.Commit()
}

// ListRuns returns the most recent runs, newest first, without their rows.
func (c *Cache) ListRuns(limit int) ([]model.Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := c.db.Query(`SELECT id, created_at, latest, next_anchor,
		am_source, pm_source, output_path, report
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var runs []model.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun returns one run including its per-weekday rows.
func (c *Cache) GetRun(id int64) (model.Run, error) {
	row := c.db.QueryRow(`SELECT id, created_at, latest, next_anchor,
		am_source, pm_source, output_path, report
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Run{}, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return model.Run{}, err
	}

	rows, err := c.db.Query(`SELECT weekday, day_order, date, label, am, pm
		FROM run_rows WHERE run_id = ? ORDER BY day_order`, id)
	if err != nil {
		return model.Run{}, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var cr model.CombinedRow
		var wd int
		var dateStr string
		var am, pm sql.NullString
		if err := rows.Scan(&wd, &cr.Order, &dateStr, &cr.Label, &am, &pm); err != nil {
			return model.Run{}, err
		}
		cr.Weekday = time.Weekday(wd)
		cr.Name = cr.Weekday.String()
		cr.Date, _ = time.Parse(dateLayout, dateStr)
		if cr.AM, err = decimalPtr(am); err != nil {
			return model.Run{}, err
		}
		if cr.PM, err = decimalPtr(pm); err != nil {
			return model.Run{}, err
		}
		run.Rows = append(run.Rows, cr)
	}
	return run, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (model.Run, error) {
	var r model.Run
	var created, latest, next string
	var am, pm, out sql.NullString

	if err := s.Scan(&r.ID, &created, &latest, &next, &am, &pm, &out, &r.Report); err != nil {
		return model.Run{}, err
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, created)
	r.Latest, _ = time.Parse(dateLayout, latest)
	r.NextAnchor, _ = time.Parse(dateLayout, next)
	r.AMSource = am.String
	r.PMSource = pm.String
	r.OutputPath = out.String
	return r, nil
}
