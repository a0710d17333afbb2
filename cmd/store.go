package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/MuhammadHaseebUlHaqq/dv-dashboard/internal/store"
)

// openStore opens the configured store backend.
func openStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Store.Driver)
	}
}
