// Package sqldbtest opens migrated databases for tests.
package sqldbtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vncsmyrnk/jobboard/internal/adapters/repository/sqldb"
)

// NewSQLite returns a migrated sqlite database in a temporary directory. It is
// closed when the test ends.
func NewSQLite(t *testing.T) *sqldb.DB {
	t.Helper()

	ctx := context.Background()
	db, err := sqldb.Open(ctx, sqldb.DriverSQLite, filepath.Join(t.TempDir(), "jobboard.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate(ctx)
	require.NoError(t, err)
	return db
}
