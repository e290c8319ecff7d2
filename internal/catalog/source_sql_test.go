package catalog

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/VasKaleev/internetmag-comp/internal/db"
)

func getPostgres(t *testing.T) *sql.DB {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	if err := db.PingContext(context.Background()); err != nil {
		t.Skipf("Postgres not available: %v", err)
	}
	// temp tables are per connection
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLSource_Postgres(t *testing.T) {
	db := getPostgres(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `CREATE TEMP TABLE products (
		id INT PRIMARY KEY,
		name TEXT NOT NULL,
		price NUMERIC NOT NULL,
		category TEXT,
		rating DOUBLE PRECISION,
		date DATE,
		image TEXT,
		description TEXT
	)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO products VALUES
		(2, 'Bread', 5, 'bakery', 3.9, '2023-11-20', 'bread.png', NULL),
		(1, 'Apple', 10.5, 'fruit', NULL, NULL, NULL, 'Green apple')`)
	require.NoError(t, err)

	store := NewStore(language.Und)
	report, err := NewLoader(SQLSource{DB: db}, nil).Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Accepted)

	products := store.Products()
	assert.Equal(t, []int{1, 2}, ids(products))
	assert.Equal(t, 10.5, products[0].Price)
	assert.Equal(t, "2023-11-20", products[1].Date.String())
}

func TestSQLSource_SQLite(t *testing.T) {
	ctx := context.Background()
	database, err := db.Connect(ctx, "sqlite", filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	_, err = database.ExecContext(ctx, `CREATE TABLE products (
		id INTEGER PRIMARY KEY,
		name TEXT,
		price REAL,
		category TEXT,
		rating REAL,
		date DATE,
		image TEXT,
		description TEXT
	)`)
	require.NoError(t, err)
	_, err = database.ExecContext(ctx, `INSERT INTO products VALUES
		(3, 'Чай', 250, 'Напитки', 4.9, '2024-02-02', NULL, NULL),
		(1, '', 10, 'Напитки', 4.0, NULL, NULL, NULL),
		(4, NULL, 99, 'Напитки', 4.0, NULL, NULL, NULL),
		(5, 'Кофе', NULL, 'Напитки', 4.2, NULL, NULL, NULL)`)
	require.NoError(t, err)

	store := NewStore(language.Russian)
	report, err := NewLoader(SQLSource{DB: database}, nil).Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, LoadReport{Accepted: 1, Dropped: 3}, report, "rows with NULL name or price are dropped, not fatal")

	p, ok := store.GetByID(3)
	require.True(t, ok)
	assert.Equal(t, "2024-02-02", p.Date.String())
	assert.Equal(t, 4.9, p.Rating)
}
