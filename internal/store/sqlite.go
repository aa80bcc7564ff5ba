package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/ridgeline-comms/meshplan/internal/rollup"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures
// WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS coverage_runs (
	id          TEXT PRIMARY KEY,
	started_at  DATETIME NOT NULL,
	sites_path  TEXT NOT NULL,
	cells_path  TEXT NOT NULL,
	satisfied   INTEGER NOT NULL,
	tiera_used  INTEGER NOT NULL,
	flagged     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS coverage_run_zones (
	run_id          TEXT NOT NULL REFERENCES coverage_runs(id),
	zone_id         TEXT NOT NULL,
	required_before INTEGER NOT NULL,
	required_after  INTEGER NOT NULL,
	alt_total       INTEGER NOT NULL,
	tiera_sites     INTEGER NOT NULL,
	PRIMARY KEY (run_id, zone_id)
);

CREATE INDEX IF NOT EXISTS idx_coverage_runs_started_at ON coverage_runs(started_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// RecordRun inserts a run and its per-zone rollup rows. The run ID is
// assigned here if the caller did not set one.
func (s *SQLiteStore) RecordRun(ctx context.Context, run *CoverageRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin record run")
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO coverage_runs (id, started_at, sites_path, cells_path, satisfied, tiera_used, flagged)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.SitesPath, run.CellsPath, run.Satisfied, run.TierAUsed, run.Flagged,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
	}

	for _, r := range run.Rollups {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO coverage_run_zones (run_id, zone_id, required_before, required_after, alt_total, tiera_sites)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, r.ZoneID, r.RequiredBefore, r.RequiredAfter, r.AltTotal, r.TierASites,
		)
		if err != nil {
			return eris.Wrapf(err, "sqlite: insert run zone %s/%s", run.ID, r.ZoneID)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit record run")
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*CoverageRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, sites_path, cells_path, satisfied, tiera_used, flagged
		 FROM coverage_runs WHERE id = ?`, runID)

	var run CoverageRun
	err := row.Scan(&run.ID, &run.StartedAt, &run.SitesPath, &run.CellsPath,
		&run.Satisfied, &run.TierAUsed, &run.Flagged)
	if err != nil {
		if eris.Is(err, sql.ErrNoRows) {
			return nil, eris.Errorf("sqlite: run %s not found", runID)
		}
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT zone_id, required_before, required_after, alt_total, tiera_sites
		 FROM coverage_run_zones WHERE run_id = ? ORDER BY zone_id`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run zones %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	for rows.Next() {
		var r rollup.Row
		if err := rows.Scan(&r.ZoneID, &r.RequiredBefore, &r.RequiredAfter, &r.AltTotal, &r.TierASites); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run zone")
		}
		run.Rollups = append(run.Rollups, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate run zones")
	}
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]CoverageRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, sites_path, cells_path, satisfied, tiera_used, flagged
		 FROM coverage_runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []CoverageRun
	for rows.Next() {
		var run CoverageRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.SitesPath, &run.CellsPath,
			&run.Satisfied, &run.TierAUsed, &run.Flagged); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate runs")
	}
	return runs, nil
}
