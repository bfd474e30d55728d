// Package testutil provides registration fixtures and test databases.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jasicon/jasreg/internal/infrastructure/sqlite"
)

// NewTestDB opens a migrated registration database in a temporary directory.
func NewTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	return OpenTestDB(t, filepath.Join(t.TempDir(), "jasreg.db"))
}

// OpenTestDB opens the registration database at path. It is closed when
// the test ends.
func OpenTestDB(t *testing.T, path string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.NewDB(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}
