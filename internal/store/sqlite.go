package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS cluster_runs (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	records        INTEGER NOT NULL,
	countries      INTEGER NOT NULL,
	iterations     INTEGER NOT NULL,
	converged      INTEGER NOT NULL,
	stable_cluster INTEGER NOT NULL,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS country_profiles (
	run_id   TEXT NOT NULL REFERENCES cluster_runs(id),
	country  TEXT NOT NULL,
	cluster  INTEGER NOT NULL,
	label    TEXT NOT NULL,
	profile  TEXT NOT NULL,
	PRIMARY KEY (run_id, country)
);

CREATE INDEX IF NOT EXISTS idx_cluster_runs_created_at ON cluster_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_country_profiles_run_id ON country_profiles(run_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *model.ClusterRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cluster_runs (id, source, records, countries, iterations, converged, stable_cluster, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Records, run.Countries, run.Iterations,
		boolToInt(run.Converged), run.StableCluster, run.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: insert run %s", run.ID)
}

func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*model.ClusterRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, records, countries, iterations, converged, stable_cluster, created_at
		 FROM cluster_runs WHERE id = ?`, runID)

	var run model.ClusterRun
	var converged int
	err := row.Scan(&run.ID, &run.Source, &run.Records, &run.Countries,
		&run.Iterations, &converged, &run.StableCluster, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get run %s", runID)
	}
	run.Converged = converged != 0
	return &run, nil
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]model.ClusterRun, error) {
	query := `SELECT id, source, records, countries, iterations, converged, stable_cluster, created_at
	          FROM cluster_runs ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list runs")
	}
	defer rows.Close() //nolint:errcheck

	var runs []model.ClusterRun
	for rows.Next() {
		var run model.ClusterRun
		var converged int
		if err := rows.Scan(&run.ID, &run.Source, &run.Records, &run.Countries,
			&run.Iterations, &converged, &run.StableCluster, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan run")
		}
		run.Converged = converged != 0
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "sqlite: iterate runs")
}

func (s *SQLiteStore) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM cluster_runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if err == sql.ErrNoRows {
		return "", ErrNotFound
	}
	return id, eris.Wrap(err, "sqlite: latest run")
}

func (s *SQLiteStore) SaveProfiles(ctx context.Context, runID string, profiles map[string]model.CountryProfile) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: begin profiles tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO country_profiles (run_id, country, cluster, label, profile) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare profile insert")
	}
	defer stmt.Close() //nolint:errcheck

	for _, country := range sortedCountries(profiles) {
		p := profiles[country]
		payload, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "sqlite: marshal profile %s", country)
		}
		if _, err := stmt.ExecContext(ctx, runID, country, p.Cluster, string(p.Label), string(payload)); err != nil {
			return eris.Wrapf(err, "sqlite: insert profile %s", country)
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: commit profiles")
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, runID string) ([]model.CountryProfile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT profile FROM country_profiles WHERE run_id = ? ORDER BY country`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: list profiles for run %s", runID)
	}
	defer rows.Close() //nolint:errcheck

	var profiles []model.CountryProfile
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan profile")
		}
		var p model.CountryProfile
		if err := json.Unmarshal([]byte(payload), &p); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal profile")
		}
		profiles = append(profiles, p)
	}
	return profiles, eris.Wrap(rows.Err(), "sqlite: iterate profiles")
}

func (s *SQLiteStore) GetProfile(ctx context.Context, runID, country string) (*model.CountryProfile, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT profile FROM country_profiles WHERE run_id = ? AND country = ?`,
		runID, country).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get profile %s/%s", runID, country)
	}

	var p model.CountryProfile
	if err := json.Unmarshal([]byte(payload), &p); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal profile")
	}
	return &p, nil
}

// sortedCountries returns the map keys sorted so inserts are deterministic.
func sortedCountries(profiles map[string]model.CountryProfile) []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
