// Package store persists cluster runs and country profiles behind a
// backend-neutral interface with SQLite and PostgreSQL implementations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/model"
)

// ErrNotFound is returned when a requested run or profile does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for clustering results.
type Store interface {
	// Runs
	SaveRun(ctx context.Context, run *model.ClusterRun) error
	GetRun(ctx context.Context, runID string) (*model.ClusterRun, error)
	ListRuns(ctx context.Context, limit int) ([]model.ClusterRun, error)
	LatestRunID(ctx context.Context) (string, error)

	// Profiles
	SaveProfiles(ctx context.Context, runID string, profiles map[string]model.CountryProfile) error
	ListProfiles(ctx context.Context, runID string) ([]model.CountryProfile, error)
	GetProfile(ctx context.Context, runID, country string) (*model.CountryProfile, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
