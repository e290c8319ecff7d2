package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/VasKaleev/internetmag-comp/internal/db"
)

// Options selects and configures a backend.
type Options struct {
	// Backend is one of memory, file, redis, postgres, mysql or sqlite.
	Backend  string
	Dir      string
	MaxBytes int

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string

	DatabaseURL string
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (KV, error) {
	switch opts.Backend {
	case "memory":
		return NewMemoryKV(opts.MaxBytes), nil
	case "", "file":
		return NewFileKV(opts.Dir, opts.MaxBytes)
	case "redis":
		rdb, err := DialRedis(ctx, &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisKV(rdb, opts.RedisPrefix), nil
	case "postgres", "mysql", "sqlite":
		database, err := db.Connect(ctx, opts.Backend, opts.DatabaseURL)
		if err != nil {
			return nil, err
		}
		kv := NewSQLKV(database, dialectFor(opts.Backend))
		if err := kv.EnsureSchema(ctx); err != nil {
			database.Close()
			return nil, err
		}
		return kv, nil
	}
	return nil, fmt.Errorf("unsupported storage backend %q", opts.Backend)
}

func dialectFor(backend string) Dialect {
	switch backend {
	case "mysql":
		return MySQLDialect
	case "sqlite":
		return SQLiteDialect
	}
	return PostgresDialect
}
