package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS forecasts (
    file_path            TEXT NOT NULL,
    period               TEXT NOT NULL,
    options_key          TEXT NOT NULL,
    mtime_ns             INTEGER NOT NULL,
    size_bytes           INTEGER NOT NULL,
    start_date           TEXT NOT NULL,
    end_date             TEXT NOT NULL,
    records              INTEGER NOT NULL,
    skipped              INTEGER NOT NULL,
    in_window            INTEGER NOT NULL,
    parsed_at            TEXT NOT NULL,
    PRIMARY KEY (file_path, period)
);

CREATE TABLE IF NOT EXISTS forecast_rows (
    file_path            TEXT NOT NULL,
    period               TEXT NOT NULL,
    weekday              INTEGER NOT NULL,
    day_order            INTEGER NOT NULL,
    mean                 TEXT NOT NULL,
    samples              INTEGER NOT NULL,
    PRIMARY KEY (file_path, period, weekday),
    FOREIGN KEY (file_path, period) REFERENCES forecasts(file_path, period) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at           TEXT NOT NULL,
    anchor               INTEGER NOT NULL,
    latest               TEXT NOT NULL,
    next_anchor          TEXT NOT NULL,
    am_source            TEXT,
    pm_source            TEXT,
    output_path          TEXT,
    report               TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS run_rows (
    run_id               INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    weekday              INTEGER NOT NULL,
    day_order            INTEGER NOT NULL,
    date                 TEXT NOT NULL,
    label                TEXT NOT NULL,
    am                   TEXT,
    pm                   TEXT,
    PRIMARY KEY (run_id, weekday)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
`
