package cart

import (
	"context"
	"errors"
	"math"

	"storefront/internal/logger"
	"storefront/internal/product"
	"storefront/internal/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductReader is the slice of the catalog the cart needs.
type ProductReader interface {
	Get(ctx context.Context, id primitive.ObjectID) (*product.Product, error)
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*product.Product, error)
}

// Service operates on the caller's own cart. Every call returns the cart
// with its total recomputed against live catalog prices.
type Service interface {
	GetCart(ctx context.Context) (*View, error)
	AddItem(ctx context.Context, productID primitive.ObjectID, quantity int) (*View, error)
	SetQuantity(ctx context.Context, productID primitive.ObjectID, quantity int) (*View, error)
	RemoveItem(ctx context.Context, productID primitive.ObjectID) (*View, error)
	SetSelection(ctx context.Context, productIDs []primitive.ObjectID, selected bool) (*View, error)
}

type service struct {
	repo     Repository
	products ProductReader
}

func NewService(repo Repository, products ProductReader) Service {
	return &service{repo: repo, products: products}
}

func (s *service) GetCart(ctx context.Context) (*View, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return toView(nil, nil), nil
	}

	before := c.TotalAmount
	products, err := s.recompute(ctx, c)
	if err != nil {
		return nil, err
	}

	if c.TotalAmount != before {
		logger.FromCtx(ctx).Debug("cart total drifted",
			zap.String("layer", "service"),
			zap.String("method", "GetCart"),
			zap.Float64("stored", before),
			zap.Float64("live", c.TotalAmount),
		)
		if err := s.repo.Save(ctx, c); err != nil {
			return nil, err
		}
	}

	return toView(c, products), nil
}

func (s *service) AddItem(
	ctx context.Context,
	productID primitive.ObjectID,
	quantity int,
) (*View, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "AddItem"),
		zap.String("product_id", productID.Hex()),
	)

	if productID.IsZero() {
		return nil, ErrProductIDMissing
	}
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	if _, err := s.products.Get(ctx, productID); err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		c = &Cart{UserID: userID, Items: []Item{}}
	}

	if it := c.find(productID); it != nil {
		if it.Quantity > math.MaxInt-quantity {
			log.Warn("cart quantity would overflow", zap.Int("current", it.Quantity), zap.Int("quantity", quantity))
			return nil, ErrQuantityTooLarge
		}
		it.Quantity += quantity
	} else {
		c.Items = append(c.Items, Item{
			ProductID: productID,
			Quantity:  quantity,
			Selected:  true,
		})
	}

	view, err := s.save(ctx, c)
	if err != nil {
		log.Error("failed to add cart item", zap.Error(err))
		return nil, err
	}

	log.Info("cart item added", zap.Int("quantity", quantity))
	return view, nil
}

func (s *service) SetQuantity(
	ctx context.Context,
	productID primitive.ObjectID,
	quantity int,
) (*View, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	it := c.find(productID)
	if it == nil {
		return nil, ErrCartItemNotFound
	}
	it.Quantity = quantity

	return s.save(ctx, c)
}

func (s *service) RemoveItem(
	ctx context.Context,
	productID primitive.ObjectID,
) (*View, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return toView(nil, nil), nil
	}

	kept := c.Items[:0]
	for _, it := range c.Items {
		if it.ProductID != productID {
			kept = append(kept, it)
		}
	}
	c.Items = kept

	return s.save(ctx, c)
}

func (s *service) SetSelection(
	ctx context.Context,
	productIDs []primitive.ObjectID,
	selected bool,
) (*View, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUserNotAuthenticated
	}

	c, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCartNotFound
	}

	set := make(map[primitive.ObjectID]struct{}, len(productIDs))
	for _, id := range productIDs {
		set[id] = struct{}{}
	}
	for i := range c.Items {
		if _, ok := set[c.Items[i].ProductID]; ok {
			c.Items[i].Selected = selected
		}
	}

	return s.save(ctx, c)
}

// save recomputes the total and persists the cart.
func (s *service) save(ctx context.Context, c *Cart) (*View, error) {
	products, err := s.recompute(ctx, c)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}
	return toView(c, products), nil
}

func (s *service) recompute(ctx context.Context, c *Cart) (map[primitive.ObjectID]*product.Product, error) {
	products, err := s.products.GetMany(ctx, c.productIDs())
	if err != nil {
		return nil, err
	}
	c.TotalAmount = computeTotal(c.Items, products)
	return products, nil
}
