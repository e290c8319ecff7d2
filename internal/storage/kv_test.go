package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseKV runs the behavior every backend must share.
func exerciseKV(t *testing.T, kv KV) {
	t.Helper()
	ctx := context.Background()

	_, err := kv.Get(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[{"id":1,"quantity":2}]`)))
	got, err := kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":1,"quantity":2}]`, string(got))

	require.NoError(t, kv.Set(ctx, "cart", []byte(`[]`)))
	got, err = kv.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestMemoryKV(t *testing.T) {
	exerciseKV(t, NewMemoryKV(0))
}

func TestMemoryKV_Quota(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(10)

	require.NoError(t, kv.Set(ctx, "a", []byte("12345")))
	require.NoError(t, kv.Set(ctx, "b", []byte("12345")))
	err := kv.Set(ctx, "c", []byte("1"))
	require.ErrorIs(t, err, ErrQuotaExceeded)

	// overwriting a key only counts the new value
	require.NoError(t, kv.Set(ctx, "a", []byte("abcde")))
}

func TestMemoryKV_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV(0)
	value := []byte("abc")
	require.NoError(t, kv.Set(ctx, "k", value))
	value[0] = 'z'

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestFileKV(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(filepath.Join(dir, "nested"), 0)
	require.NoError(t, err)
	exerciseKV(t, kv)

	entries, err := os.ReadDir(filepath.Join(dir, "nested"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
	assert.Equal(t, "cart.json", entries[0].Name())
}

func TestFileKV_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	first, err := NewFileKV(dir, 0)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "cart", []byte("[1]")))

	second, err := NewFileKV(dir, 0)
	require.NoError(t, err)
	got, err := second.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "[1]", string(got))
}

func TestFileKV_QuotaAndKeys(t *testing.T) {
	ctx := context.Background()
	kv, err := NewFileKV(t.TempDir(), 4)
	require.NoError(t, err)

	require.ErrorIs(t, kv.Set(ctx, "cart", []byte("12345")), ErrQuotaExceeded)
	require.ErrorIs(t, kv.Set(ctx, "../cart", []byte("1")), ErrInvalidKey)
	_, err = kv.Get(ctx, "")
	require.ErrorIs(t, err, ErrInvalidKey)
}

func TestSQLKV_SQLite(t *testing.T) {
	kv, err := Open(context.Background(), Options{
		Backend:     "sqlite",
		DatabaseURL: filepath.Join(t.TempDir(), "cart.db"),
	})
	require.NoError(t, err)
	defer kv.Close()

	exerciseKV(t, kv)
}

func TestSQLKV_Postgres(t *testing.T) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	kv, err := Open(context.Background(), Options{Backend: "postgres", DatabaseURL: dsn})
	if err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	defer kv.Close()

	kv.(*SQLKV).db.Exec(`DELETE FROM kv_store WHERE key IN ('cart', 'missing')`)
	exerciseKV(t, kv)
}

func TestSQLKV_MySQL(t *testing.T) {
	dsn := os.Getenv("MYSQL_DSN")
	if dsn == "" {
		t.Skip("MYSQL_DSN not set")
	}
	kv, err := Open(context.Background(), Options{Backend: "mysql", DatabaseURL: dsn})
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	defer kv.Close()

	kv.(*SQLKV).db.Exec("DELETE FROM kv_store WHERE `key` IN ('cart', 'missing')")
	exerciseKV(t, kv)
}

func TestRedisKV(t *testing.T) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	ctx := context.Background()
	rdb, err := DialRedis(ctx, &redis.Options{Addr: addr})
	if err != nil {
		t.Skipf("Redis not available: %v", err)
	}

	kv := NewRedisKV(rdb, "storefront-test:")
	defer kv.Close()
	rdb.Del(ctx, "storefront-test:cart", "storefront-test:missing")

	exerciseKV(t, kv)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "etcd"})
	assert.ErrorContains(t, err, "unsupported storage backend")
}
