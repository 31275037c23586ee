package product

import (
	"context"
	"errors"

	"storefront/internal/logger"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type Repository interface {
	List(ctx context.Context, skip, limit int64) ([]Product, int64, error)
	Search(ctx context.Context, keyword string, limit int64) ([]Product, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*Product, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error)
	Count(ctx context.Context) (int64, error)
	InsertMany(ctx context.Context, products []Product) error
}

type repository struct {
	products *mongo.Collection
}

func NewRepository(products *mongo.Collection) Repository {
	return &repository{products: products}
}

// CreateIndexes builds the text index used by Search plus the listing index.
func CreateIndexes(ctx context.Context, products *mongo.Collection) error {
	_, err := products.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "name", Value: "text"},
				{Key: "description", Value: "text"},
				{Key: "specs.value", Value: "text"},
			},
			Options: options.Index().SetName("product_text"),
		},
		{
			Keys:    bson.D{{Key: "isActive", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("active_created"),
		},
	})
	return err
}

func (r *repository) List(ctx context.Context, skip, limit int64) ([]Product, int64, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "List"),
		zap.Int64("skip", skip),
		zap.Int64("limit", limit),
	)

	filter := bson.M{"isActive": true}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)

	products, err := r.find(ctx, filter, opts)
	if err != nil {
		log.Error("find failed", zap.Error(err))
		return nil, 0, err
	}

	total, err := r.products.CountDocuments(ctx, filter)
	if err != nil {
		log.Error("count failed", zap.Error(err))
		return nil, 0, err
	}

	return products, total, nil
}

func (r *repository) Search(ctx context.Context, keyword string, limit int64) ([]Product, error) {
	filter := bson.M{
		"$text":    bson.M{"$search": keyword},
		"isActive": true,
	}
	score := bson.M{"score": bson.M{"$meta": "textScore"}}
	opts := options.Find().
		SetProjection(score).
		SetSort(score).
		SetLimit(limit)

	products, err := r.find(ctx, filter, opts)
	if err != nil {
		logger.FromCtx(ctx).Error("search failed",
			zap.String("layer", "repository"),
			zap.String("method", "Search"),
			zap.String("keyword", keyword),
			zap.Error(err),
		)
		return nil, err
	}
	return products, nil
}

func (r *repository) GetByID(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	var p Product
	err := r.products.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("find one failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetByID"),
			zap.String("product_id", id.Hex()),
			zap.Error(err),
		)
		return nil, err
	}
	return &p, nil
}

// GetByIDs returns the products that exist among ids, in no particular order.
func (r *repository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]Product, error) {
	if len(ids) == 0 {
		return []Product{}, nil
	}

	products, err := r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		logger.FromCtx(ctx).Error("find many failed",
			zap.String("layer", "repository"),
			zap.String("method", "GetByIDs"),
			zap.Int("count", len(ids)),
			zap.Error(err),
		)
		return nil, err
	}
	return products, nil
}

func (r *repository) Count(ctx context.Context) (int64, error) {
	return r.products.CountDocuments(ctx, bson.M{})
}

func (r *repository) InsertMany(ctx context.Context, products []Product) error {
	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(products))
	for i := range products {
		p := products[i]
		if p.ID.IsZero() {
			p.ID = primitive.NewObjectID()
		}
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		p.UpdatedAt = now
		docs = append(docs, p)
	}

	_, err := r.products.InsertMany(ctx, docs)
	return err
}

func (r *repository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]Product, error) {
	cur, err := r.products.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}
