package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/db"
	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS cluster_runs (
	id             TEXT PRIMARY KEY,
	source         TEXT NOT NULL,
	records        INTEGER NOT NULL,
	countries      INTEGER NOT NULL,
	iterations     INTEGER NOT NULL,
	converged      BOOLEAN NOT NULL,
	stable_cluster INTEGER NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS country_profiles (
	run_id   TEXT NOT NULL REFERENCES cluster_runs(id),
	country  TEXT NOT NULL,
	cluster  INTEGER NOT NULL,
	label    TEXT NOT NULL,
	profile  JSONB NOT NULL,
	PRIMARY KEY (run_id, country)
);

CREATE INDEX IF NOT EXISTS idx_cluster_runs_created_at ON cluster_runs(created_at);
CREATE INDEX IF NOT EXISTS idx_country_profiles_run_id ON country_profiles(run_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *model.ClusterRun) error {
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO cluster_runs (id, source, records, countries, iterations, converged, stable_cluster, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		run.ID, run.Source, run.Records, run.Countries, run.Iterations,
		run.Converged, run.StableCluster, run.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: insert run %s", run.ID)
}

func (s *PostgresStore) GetRun(ctx context.Context, runID string) (*model.ClusterRun, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, source, records, countries, iterations, converged, stable_cluster, created_at
		 FROM cluster_runs WHERE id = $1`, runID)

	var run model.ClusterRun
	err := row.Scan(&run.ID, &run.Source, &run.Records, &run.Countries,
		&run.Iterations, &run.Converged, &run.StableCluster, &run.CreatedAt)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get run %s", runID)
	}
	return &run, nil
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]model.ClusterRun, error) {
	query := `SELECT id, source, records, countries, iterations, converged, stable_cluster, created_at
	          FROM cluster_runs ORDER BY created_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list runs")
	}
	defer rows.Close()

	var runs []model.ClusterRun
	for rows.Next() {
		var run model.ClusterRun
		if err := rows.Scan(&run.ID, &run.Source, &run.Records, &run.Countries,
			&run.Iterations, &run.Converged, &run.StableCluster, &run.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan run")
		}
		runs = append(runs, run)
	}
	return runs, eris.Wrap(rows.Err(), "postgres: iterate runs")
}

func (s *PostgresStore) LatestRunID(ctx context.Context) (string, error) {
	var id string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM cluster_runs ORDER BY created_at DESC, id DESC LIMIT 1`).Scan(&id)
	if eris.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, eris.Wrap(err, "postgres: latest run")
}

func (s *PostgresStore) SaveProfiles(ctx context.Context, runID string, profiles map[string]model.CountryProfile) error {
	rows := make([][]any, 0, len(profiles))
	for _, country := range sortedCountries(profiles) {
		p := profiles[country]
		payload, err := json.Marshal(p)
		if err != nil {
			return eris.Wrapf(err, "postgres: marshal profile %s", country)
		}
		rows = append(rows, []any{runID, country, p.Cluster, string(p.Label), payload})
	}

	_, err := db.CopyFrom(ctx, s.pool, "country_profiles",
		[]string{"run_id", "country", "cluster", "label", "profile"}, rows)
	return eris.Wrapf(err, "postgres: save profiles for run %s", runID)
}

func (s *PostgresStore) ListProfiles(ctx context.Context, runID string) ([]model.CountryProfile, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT profile FROM country_profiles WHERE run_id = $1 ORDER BY country`, runID)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: list profiles for run %s", runID)
	}
	defer rows.Close()

	var profiles []model.CountryProfile
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, eris.Wrap(err, "postgres: scan profile")
		}
		var p model.CountryProfile
		if err := json.Unmarshal(payload, &p); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal profile")
		}
		profiles = append(profiles, p)
	}
	return profiles, eris.Wrap(rows.Err(), "postgres: iterate profiles")
}

func (s *PostgresStore) GetProfile(ctx context.Context, runID, country string) (*model.CountryProfile, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT profile FROM country_profiles WHERE run_id = $1 AND country = $2`,
		runID, country).Scan(&payload)
	if eris.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get profile %s/%s", runID, country)
	}

	var p model.CountryProfile
	if err := json.Unmarshal(payload, &p); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal profile")
	}
	return &p, nil
}
