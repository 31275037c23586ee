package product

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/logger"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ImageSigner turns a stored image key into a URL the browser can fetch.
type ImageSigner interface {
	SignURL(ctx context.Context, key string) (string, error)
}

type Service interface {
	List(ctx context.Context, page, limit int) (*ListResult, error)
	Search(ctx context.Context, keyword string) (*ListResult, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Product, error)

	// GetMany reads live catalog data for ids, bypassing the cache. Missing
	// products are absent from the map.
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Product, error)
}

type service struct {
	repo   Repository
	cache  Cache
	signer ImageSigner
	group  singleflight.Group
}

// NewService builds the catalog service. cache and signer may be nil.
func NewService(repo Repository, cache Cache, signer ImageSigner) Service {
	return &service{
		repo:   repo,
		cache:  cache,
		signer: signer,
	}
}

func (s *service) List(
	ctx context.Context,
	page, limit int,
) (*ListResult, error) {

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductList"),
	)

	page, limit = utils.NormalizePage(page, limit, DefaultListLimit)

	log.Debug("get product list requested",
		zap.Int("page", page),
		zap.Int("limit", limit),
	)

	products, total, err := s.repo.List(ctx, utils.Skip(page, limit), int64(limit))
	if err != nil {
		log.Error("failed to get product list", zap.Error(err))
		return nil, err
	}

	for i := range products {
		s.signImages(ctx, &products[i])
	}

	return &ListResult{Products: products, TotalCount: total}, nil
}

func (s *service) Search(ctx context.Context, keyword string) (*ListResult, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return nil, ErrKeywordRequired
	}

	products, err := s.repo.Search(ctx, keyword, SearchLimit)
	if err != nil {
		return nil, err
	}

	for i := range products {
		s.signImages(ctx, &products[i])
	}

	logger.FromCtx(ctx).Debug("search results",
		zap.String("layer", "service"),
		zap.String("keyword", keyword),
		zap.Int("count", len(products)),
	)

	return &ListResult{Products: products, TotalCount: int64(len(products))}, nil
}

func (s *service) Get(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	p, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	out := *p
	out.Images = append([]string(nil), p.Images...)
	s.signImages(ctx, &out)
	return &out, nil
}

// load reads through the cache. Concurrent misses for the same id share
// one database read.
func (s *service) load(ctx context.Context, id primitive.ObjectID) (*Product, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "GetProductByID"),
		zap.String("product_id", id.Hex()),
	)

	if s.cache != nil {
		p, err := s.cache.Get(ctx, id)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			log.Warn("product cache read failed", zap.Error(err))
		}
	}

	v, err, _ := s.group.Do(id.Hex(), func() (interface{}, error) {
		p, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if s.cache != nil {
			if err := s.cache.Set(ctx, p); err != nil {
				log.Warn("product cache write failed", zap.Error(err))
			}
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Product), nil
}

func (s *service) GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*Product, error) {
	products, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make(map[primitive.ObjectID]*Product, len(products))
	for i := range products {
		s.signImages(ctx, &products[i])
		out[products[i].ID] = &products[i]
	}
	return out, nil
}

// signImages rewrites stored object keys to signed URLs. Absolute URLs are
// left alone.
func (s *service) signImages(ctx context.Context, p *Product) {
	if s.signer == nil {
		return
	}
	for i, img := range p.Images {
		if img == "" || strings.HasPrefix(img, "http://") || strings.HasPrefix(img, "https://") {
			continue
		}
		url, err := s.signer.SignURL(ctx, img)
		if err != nil {
			logger.FromCtx(ctx).Warn("failed to sign product image",
				zap.String("product_id", p.ID.Hex()),
				zap.String("key", img),
				zap.Error(err),
			)
			continue
		}
		p.Images[i] = url
	}
}
