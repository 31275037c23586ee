package order

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
	Insert(ctx context.Context, o *Order) error
	ListByUser(ctx context.Context, userID primitive.ObjectID, skip, limit int64) ([]Order, int64, error)
	GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*Order, error)
	// Transition applies t only if the order is owned by userID and still
	// pending. It returns ErrOrderNotPending when nothing matched.
	Transition(ctx context.Context, id, userID primitive.ObjectID, t Transition) (*Order, error)
}

type repository struct {
	orders *mongo.Collection
}

func NewRepository(orders *mongo.Collection) Repository {
	return &repository{orders: orders}
}

func CreateIndexes(ctx context.Context, orders *mongo.Collection) error {
	_, err := orders.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("user_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}},
			Options: options.Index().SetName("status"),
		},
		{
			Keys:    bson.D{{Key: "orderNo", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("orderNo_unique"),
		},
	})
	return err
}

func (r *repository) Insert(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Insert"),
		zap.String("order_no", o.OrderNo),
	)

	if o.ID.IsZero() {
		o.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	if o.CreatedAt.IsZero() {
		o.CreatedAt = now
	}
	o.UpdatedAt = o.CreatedAt

	if _, err := r.orders.InsertOne(ctx, o); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			log.Warn("order number already exists")
			return fmt.Errorf("%w: %s", ErrDuplicateOrderNo, o.OrderNo)
		}
		log.Error("failed to insert order", zap.Error(err))
		return fmt.Errorf("failed to insert order: %w", err)
	}

	log.Debug("order inserted", zap.String("order_id", o.ID.Hex()))
	return nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID primitive.ObjectID,
	skip, limit int64,
) ([]Order, int64, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ListByUser"),
		zap.Int64("skip", skip),
		zap.Int64("limit", limit),
	)

	filter := bson.M{"user": userID}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := r.orders.Find(ctx, filter, opts)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer cur.Close(ctx)

	orders := []Order{}
	if err := cur.All(ctx, &orders); err != nil {
		log.Error("failed to decode orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to decode orders: %w", err)
	}

	total, err := r.orders.CountDocuments(ctx, filter)
	if err != nil {
		log.Error("failed to count orders", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	return orders, total, nil
}

func (r *repository) GetForUser(ctx context.Context, id, userID primitive.ObjectID) (*Order, error) {
	var o Order
	err := r.orders.FindOne(ctx, bson.M{"_id": id, "user": userID}).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("failed to get order",
			zap.String("layer", "repository"),
			zap.String("method", "GetForUser"),
			zap.String("order_id", id.Hex()),
			zap.Error(err),
		)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

func (r *repository) Transition(
	ctx context.Context,
	id, userID primitive.ObjectID,
	t Transition,
) (*Order, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "Transition"),
		zap.String("order_id", id.Hex()),
		zap.String("to", string(t.To)),
	)

	at := t.At.UTC()
	set := bson.M{
		"status":    t.To,
		"updatedAt": at,
	}
	switch t.To {
	case StatusPaid:
		set["paymentTime"] = at
		set["paymentMethod"] = t.PaymentMethod
		if t.PaymentRef != "" {
			set["paymentRef"] = t.PaymentRef
		}
	case StatusCancelled:
		set["cancelTime"] = at
	default:
		return nil, fmt.Errorf("unsupported order transition to %q", t.To)
	}

	filter := bson.M{"_id": id, "user": userID, "status": StatusPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var o Order
	err := r.orders.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&o)
	if errors.Is(err, mongo.ErrNoDocuments) {
		log.Debug("no pending order matched")
		return nil, ErrOrderNotPending
	}
	if err != nil {
		log.Error("failed to transition order", zap.Error(err))
		return nil, fmt.Errorf("failed to transition order: %w", err)
	}

	return &o, nil
}
