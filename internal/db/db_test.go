package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_SQLite(t *testing.T) {
	database, err := Connect(context.Background(), "sqlite", filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	defer database.Close()

	var one int
	require.NoError(t, database.QueryRow("SELECT 1").Scan(&one))
	assert.Equal(t, 1, one)
}

func TestConnect_Errors(t *testing.T) {
	_, err := Connect(context.Background(), "oracle", "dsn")
	assert.ErrorContains(t, err, "unsupported")

	_, err = Connect(context.Background(), "postgres", "")
	assert.ErrorContains(t, err, "not configured")
}
