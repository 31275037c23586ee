package cart

import (
	"context"
	"testing"
	"time"

	"storefront/internal/db/dbtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRepository_Integration(t *testing.T) {
	database := dbtest.NewDatabase(t)
	coll := database.Collection("carts")
	ctx := context.Background()
	require.NoError(t, CreateIndexes(ctx, coll))

	repo := NewRepository(coll)
	userID := primitive.NewObjectID()

	t.Run("Missing cart is nil", func(t *testing.T) {
		c, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Nil(t, c)
	})

	t.Run("Save upserts one cart per user", func(t *testing.T) {
		productID := primitive.NewObjectID()
		c := &Cart{UserID: userID, Items: []Item{{ProductID: productID, Quantity: 2, Selected: true}}, TotalAmount: 20}
		require.NoError(t, repo.Save(ctx, c))
		assert.False(t, c.ID.IsZero())
		createdAt := c.CreatedAt

		got, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		require.Len(t, got.Items, 1)
		assert.Equal(t, 2, got.Items[0].Quantity)

		got.Items[0].Quantity = 5
		got.TotalAmount = 50
		require.NoError(t, repo.Save(ctx, got))

		n, err := coll.CountDocuments(ctx, bson.M{"user": userID})
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		again, err := repo.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, again.TotalAmount)
		assert.WithinDuration(t, createdAt, again.CreatedAt, time.Millisecond)
	})
}
