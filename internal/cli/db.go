package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // PostgreSQL driver
)

// connect opens a pooled connection using the database section of cfg.
func connect(ctx context.Context, url string, cfg *Config) (*sqlx.DB, error) {
	if url == "" {
		return nil, fmt.Errorf("database URL is required (use --url, DATABASE_URL or database.url)")
	}

	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	return db, nil
}
