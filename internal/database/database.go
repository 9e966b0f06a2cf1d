// Package database opens the shared Postgres pool and applies schema migrations.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"lecturer/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// Open connects to Postgres through the pgx stdlib driver, pings it and sets pool limits.
func Open(ctx context.Context, cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("pgx", PrepareDSN(cfg.DBConnectionString, cfg.IsDevelopment()))
	if err != nil {
		return nil, fmt.Errorf("failed to open DB connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	return db, nil
}

// PrepareDSN disables SSL for local development and, elsewhere, forces the simple query
// protocol so transaction poolers like pgbouncer do not trip over prepared statements.
// Settings already present in dsn are left alone.
func PrepareDSN(dsn string, development bool) string {
	if development && !strings.Contains(dsn, "sslmode") {
		dsn += paramSeparator(dsn) + "sslmode=disable"
	}
	if !development && !strings.Contains(dsn, "prefer_simple_protocol") {
		dsn += paramSeparator(dsn) + "prefer_simple_protocol=true"
	}
	return dsn
}

func isURL(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func paramSeparator(dsn string) string {
	if !isURL(dsn) {
		return " "
	}
	if strings.Contains(dsn, "?") {
		return "&"
	}
	return "?"
}
