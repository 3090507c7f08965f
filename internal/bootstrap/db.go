package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sdr-assist/sdr-backend/config"
	"github.com/sdr-assist/sdr-backend/internal/storage/postgres"
)

// OpenDB connects to Postgres and bootstraps the schema.
func OpenDB(ctx context.Context, cfg *config.DatabaseConfig) (*sql.DB, error) {
	db, err := postgres.NewConnection(cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
