package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"time"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/db/schema"
	"storefront/internal/logger"
	"storefront/internal/product"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

//go:embed catalog.json
var catalogJSON []byte

func main() {
	mode := flag.String("mode", "seed", "seed mode: seed or reset")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}
	logger.Init(cfg.App.Env)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	database, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.L().Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		_ = database.Client().Disconnect(context.Background())
	}()

	redisClient, err := db.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		logger.L().Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()

	catalog, err := loadCatalog(catalogJSON, time.Now().UTC())
	if err != nil {
		logger.L().Fatal("invalid catalog", zap.Error(err))
	}

	if err := run(ctx, database, product.NewRedisCache(redisClient), *mode, catalog); err != nil {
		logger.L().Fatal("seed failed", zap.Error(err))
	}
}

func run(
	ctx context.Context,
	database *mongo.Database,
	cache product.Cache,
	mode string,
	catalog []product.Product,
) error {

	log := logger.FromCtx(ctx)

	if err := schema.EnsureIndexes(ctx, database); err != nil {
		return err
	}
	log.Info("indexes ensured")

	products := database.Collection(db.ProductsCollection)

	switch mode {
	case "seed":
	case "reset":
		if err := clearProducts(ctx, products, cache); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown mode: %s (use 'seed' or 'reset')", mode)
	}

	repo := product.NewRepository(products)
	count, err := repo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info("catalog not empty, skipping", zap.Int64("products", count))
		return nil
	}

	if err := repo.InsertMany(ctx, catalog); err != nil {
		return err
	}
	log.Info("catalog seeded", zap.Int("products", len(catalog)))
	return nil
}

// clearProducts deletes every product and evicts its cached detail.
func clearProducts(ctx context.Context, products *mongo.Collection, cache product.Cache) error {
	log := logger.FromCtx(ctx)

	ids, err := products.Distinct(ctx, "_id", bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}

	res, err := products.DeleteMany(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to clear products: %w", err)
	}

	for _, raw := range ids {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			continue
		}
		if err := cache.Delete(ctx, id); err != nil {
			log.Warn("failed to evict cached product", zap.String("product_id", id.Hex()), zap.Error(err))
		}
	}

	log.Info("products cleared", zap.Int64("deleted", res.DeletedCount))
	return nil
}

// loadCatalog decodes and validates the sample products. Entries are spaced a
// second apart so listing order follows the file.
func loadCatalog(data []byte, now time.Time) ([]product.Product, error) {
	var catalog []product.Product
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode catalog: %w", err)
	}

	for i := range catalog {
		p := &catalog[i]
		if p.Name == "" {
			return nil, fmt.Errorf("product %d has no name", i)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product %q: %w", p.Name, err)
		}
		p.ID = primitive.NewObjectID()
		p.IsActive = true
		p.CreatedAt = now.Add(-time.Duration(len(catalog)-i) * time.Second)
		p.UpdatedAt = p.CreatedAt
	}
	return catalog, nil
}
