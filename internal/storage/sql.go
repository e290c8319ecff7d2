package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Dialect holds the statements SQLKV needs for one database engine.
type Dialect struct {
	Name        string
	CreateTable string
	Select      string
	Upsert      string
}

var (
	PostgresDialect = Dialect{
		Name: "postgres",
		CreateTable: `CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		Select: `SELECT value FROM kv_store WHERE key = $1`,
		Upsert: `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
	}

	MySQLDialect = Dialect{
		Name: "mysql",
		CreateTable: "CREATE TABLE IF NOT EXISTS kv_store (" +
			"`key` VARCHAR(255) PRIMARY KEY, " +
			"value LONGBLOB NOT NULL, " +
			"updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP)",
		Select: "SELECT value FROM kv_store WHERE `key` = ?",
		Upsert: "INSERT INTO kv_store (`key`, value) VALUES (?, ?) ON DUPLICATE KEY UPDATE value = VALUES(value)",
	}

	SQLiteDialect = Dialect{
		Name: "sqlite",
		CreateTable: `CREATE TABLE IF NOT EXISTS kv_store (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		Select: `SELECT value FROM kv_store WHERE key = ?`,
		Upsert: `INSERT INTO kv_store (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	}
)

const queryTimeout = 3 * time.Second

// SQLKV keeps values in a kv_store table.
type SQLKV struct {
	db      *sql.DB
	dialect Dialect
}

func NewSQLKV(db *sql.DB, dialect Dialect) *SQLKV {
	return &SQLKV{db: db, dialect: dialect}
}

// EnsureSchema creates the kv_store table when it does not exist yet.
func (s *SQLKV) EnsureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if _, err := s.db.ExecContext(ctx, s.dialect.CreateTable); err != nil {
		return fmt.Errorf("failed to create kv_store table: %w", err)
	}
	return nil
}

func (s *SQLKV) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.Select, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s get %s: %w", s.dialect.Name, key, err)
	}
	return value, nil
}

func (s *SQLKV) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value); err != nil {
		return fmt.Errorf("%s set %s: %w", s.dialect.Name, key, err)
	}
	return nil
}

func (s *SQLKV) Close() error {
	return s.db.Close()
}
