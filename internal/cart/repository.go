package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront/internal/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Repository interface {
	// Get returns the user's cart, or nil when the user has none yet.
	Get(ctx context.Context, userID primitive.ObjectID) (*Cart, error)
	// Save upserts the cart keyed by its owner.
	Save(ctx context.Context, cart *Cart) error
}

type repository struct {
	carts *mongo.Collection
}

func NewRepository(carts *mongo.Collection) Repository {
	return &repository{carts: carts}
}

// CreateIndexes keeps one cart per user.
func CreateIndexes(ctx context.Context, carts *mongo.Collection) error {
	_, err := carts.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "user", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("user_unique"),
	})
	return err
}

func (r *repository) Get(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	var c Cart
	err := r.carts.FindOne(ctx, bson.M{"user": userID}).Decode(&c)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get cart",
			zap.String("layer", "repository"),
			zap.String("method", "Get"),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return &c, nil
}

func (r *repository) Save(ctx context.Context, c *Cart) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Save"),
	)

	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []Item{}
	}

	filter := bson.M{"user": c.UserID}
	update := bson.M{
		"$set": bson.M{
			"items":       c.Items,
			"totalAmount": c.TotalAmount,
			"updatedAt":   c.UpdatedAt,
		},
		"$setOnInsert": bson.M{"createdAt": c.CreatedAt},
	}
	opts := options.Update().SetUpsert(true)

	res, err := r.carts.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		log.Error("failed to upsert cart", zap.Error(err))
		return fmt.Errorf("failed to upsert cart: %w", err)
	}
	if id, ok := res.UpsertedID.(primitive.ObjectID); ok {
		c.ID = id
	}

	return nil
}
