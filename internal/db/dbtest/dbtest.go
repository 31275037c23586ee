// Package dbtest starts throwaway MongoDB containers for repository tests.
package dbtest

import (
	"context"
	"testing"

	"storefront/internal/config"
	"storefront/internal/db"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
)

// NewDatabase starts mongo:7 and returns a connected database. The container
// is terminated when the test ends. Skipped under -short.
func NewDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MongoDB integration test in short mode")
	}

	ctx := context.Background()

	mongoContainer, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err)

	t.Cleanup(func() {
		if err := mongoContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	uri, err := mongoContainer.ConnectionString(ctx)
	require.NoError(t, err)

	database, err := db.ConnectMongo(ctx, config.Mongo{URI: uri, Database: "storefront_test"})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = database.Client().Disconnect(ctx)
	})

	return database
}
