package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	dbPingTimeout  = 3 * time.Second
	dbPingAttempts = 10
	dbPingInterval = 2 * time.Second

	dbMaxOpenConns    = 10
	dbMaxIdleConns    = 5
	dbConnMaxLifetime = 30 * time.Minute
)

// openDatabase opens a pooled connection and waits for the instance to
// answer, since the database container may still be starting.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(dbMaxOpenConns)
	db.SetMaxIdleConns(dbMaxIdleConns)
	db.SetConnMaxLifetime(dbConnMaxLifetime)

	var lastErr error
	for attempt := 1; attempt <= dbPingAttempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}
		if ctx.Err() != nil {
			break
		}
		if attempt < dbPingAttempts {
			time.Sleep(dbPingInterval)
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database after %d attempts: %w", dbPingAttempts, lastErr)
}
