package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// driverNames maps a backend name to its registered database/sql driver.
var driverNames = map[string]string{
	"postgres": "pgx",
	"mysql":    "mysql",
	"sqlite":   "sqlite",
}

// Connect opens a database for backend ("postgres", "mysql" or "sqlite") and
// checks that it answers.
func Connect(ctx context.Context, backend, dsn string) (*sql.DB, error) {
	driver, ok := driverNames[backend]
	if !ok {
		return nil, fmt.Errorf("unsupported database backend %q", backend)
	}
	if dsn == "" {
		return nil, fmt.Errorf("database URL for %s not configured", backend)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if backend == "sqlite" {
		// a single writer avoids SQLITE_BUSY between pooled connections
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}
