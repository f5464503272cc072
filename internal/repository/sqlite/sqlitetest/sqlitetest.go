// Package sqlitetest provides in-memory SQLite databases for tests.
package sqlitetest

import (
	"context"
	"strings"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"findash/internal/config"
	"findash/internal/repository/sqlite"
)

// NewDB returns a private in-memory database with the schema applied. The
// database is dropped when the test finishes.
func NewDB(t testing.TB) *sqlx.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := sqlite.NewDB(&config.DBConfig{
		Path:          "file:" + name + "?mode=memory&cache=shared",
		BusyTimeoutMS: 1000,
		MaxOpen:       1,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, sqlite.EnsureSchema(context.Background(), db))
	return db
}
