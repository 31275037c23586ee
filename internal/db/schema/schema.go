// Package schema creates the indexes every collection relies on.
package schema

import (
	"context"
	"fmt"

	"storefront/internal/cart"
	"storefront/internal/db"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// EnsureIndexes is idempotent; creating an existing index is a no-op.
func EnsureIndexes(ctx context.Context, database *mongo.Database) error {
	steps := []struct {
		collection string
		create     func(context.Context, *mongo.Collection) error
	}{
		{db.UsersCollection, user.CreateIndexes},
		{db.ProductsCollection, product.CreateIndexes},
		{db.CartsCollection, cart.CreateIndexes},
		{db.OrdersCollection, order.CreateIndexes},
	}

	for _, s := range steps {
		if err := s.create(ctx, database.Collection(s.collection)); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", s.collection, err)
		}
	}
	return nil
}
