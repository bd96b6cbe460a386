// Package storage opens the database connection and applies the schema
// registry's DDL. Both MySQL and SQLite are supported; queries elsewhere
// stick to the shared ?-placeholder subset.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"

	"rideshare/internal/config"
	"rideshare/internal/schema"
)

// Open connects, applies pool limits, and verifies the connection with a
// short ping.
func Open(cfg config.DB) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Driver, err)
	}

	if cfg.Driver == config.DriverMySQL {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(10 * time.Minute)
		db.SetConnMaxIdleTime(5 * time.Minute)
	} else {
		// modernc sqlite serializes writes; one writer connection avoids
		// SQLITE_BUSY under concurrent handlers.
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	return db, nil
}

// Dialect maps a configured driver to the schema DDL dialect.
func Dialect(driver string) schema.Dialect {
	if driver == config.DriverMySQL {
		return schema.DialectMySQL
	}
	return schema.DialectSQLite
}
