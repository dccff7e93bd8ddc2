// Package dbtest opens throwaway SQL stores for tests.
package dbtest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ravi-codingcity/FreightPro-B/pkg/config"
	"github.com/ravi-codingcity/FreightPro-B/pkg/db"
	"github.com/ravi-codingcity/FreightPro-B/pkg/log"
)

// NewRepository returns a migrated repository over a private in-memory sqlite database.
// A single pooled connection keeps the memory database alive for the life of the test.
func NewRepository(t testing.TB) *db.Repository {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	cfg := &config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		Database:     "file:" + name + "?mode=memory&cache=shared",
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}

	database, err := db.New(cfg, log.NewDiscard())
	require.NoError(t, err)
	require.NoError(t, database.Migrate())

	t.Cleanup(func() {
		_ = database.Close()
	})

	return db.NewRepository(database)
}
