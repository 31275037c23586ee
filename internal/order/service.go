package order

import (
	"context"
	"errors"
	"strings"
	"time"

	"storefront/internal/apperror"
	"storefront/internal/logger"
	"storefront/internal/metrics"
	"storefront/internal/payment"
	"storefront/internal/product"
	"storefront/internal/utils"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ProductReader resolves authoritative prices at checkout.
type ProductReader interface {
	GetMany(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]*product.Product, error)
}

type Service interface {
	CreateOrder(ctx context.Context, input CreateInput) (*Order, error)
	ListOrders(ctx context.Context, page, limit int) (*ListResult, error)
	GetOrder(ctx context.Context, id primitive.ObjectID) (*Order, error)
	CancelOrder(ctx context.Context, id primitive.ObjectID) (*Order, error)
	PayOrder(ctx context.Context, id primitive.ObjectID, method payment.Method) (*Order, error)
}

type service struct {
	repo     Repository
	products ProductReader
	gateway  payment.Gateway
	now      func() time.Time
}

func NewService(repo Repository, products ProductReader, gateway payment.Gateway) Service {
	return &service{
		repo:     repo,
		products: products,
		gateway:  gateway,
		now:      time.Now,
	}
}

func (s *service) CreateOrder(ctx context.Context, input CreateInput) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.Int("items", len(input.Items)),
	)

	order, err := s.buildOrder(ctx, userID, input)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("create", resultOf(err)).Inc()
		return nil, err
	}

	err = s.repo.Insert(ctx, order)
	if errors.Is(err, ErrDuplicateOrderNo) {
		log.Warn("order number collision, retrying", zap.String("order_no", order.OrderNo))
		order.OrderNo = utils.GenerateOrderNumber(s.now())
		err = s.repo.Insert(ctx, order)
	}
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("create", metrics.ResultFailed).Inc()
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues("create", metrics.ResultOK).Inc()
	log.Info("order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("order_no", order.OrderNo),
		zap.Float64("total", order.TotalAmount),
	)
	return order, nil
}

// buildOrder prices every line from the catalog and freezes the total.
func (s *service) buildOrder(
	ctx context.Context,
	userID primitive.ObjectID,
	input CreateInput,
) (*Order, error) {

	if len(input.Items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]primitive.ObjectID, 0, len(input.Items))
	for _, in := range input.Items {
		id, err := primitive.ObjectIDFromHex(in.productRef())
		if err != nil {
			return nil, ErrInvalidProductID
		}
		if in.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		ids = append(ids, id)
	}

	products, err := s.products.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}

	log := logger.FromCtx(ctx)
	total := decimal.Zero
	items := make([]Item, 0, len(ids))
	for i, in := range input.Items {
		p, ok := products[ids[i]]
		if !ok {
			return nil, ErrProductNotFound
		}
		if !p.IsActive {
			return nil, ErrProductInactive
		}

		price := decimal.NewFromFloat(p.Price)
		if !decimal.NewFromFloat(in.Price).Equal(price) {
			log.Warn("client price differs from catalog",
				zap.String("product_id", p.ID.Hex()),
				zap.Float64("client_price", in.Price),
				zap.Float64("catalog_price", p.Price),
			)
		}

		total = total.Add(price.Mul(decimal.NewFromInt(int64(in.Quantity))))
		items = append(items, Item{
			ProductID:   p.ID,
			Name:        p.Name,
			Image:       p.Image(),
			Price:       p.Price,
			ClientPrice: in.Price,
			Quantity:    in.Quantity,
		})
	}

	now := s.now().UTC()
	return &Order{
		UserID:          userID,
		OrderNo:         utils.GenerateOrderNumber(now),
		Items:           items,
		ShippingAddress: trimAddress(input.ShippingAddress),
		TotalAmount:     total.Round(2).InexactFloat64(),
		Status:          StatusPending,
		CreatedAt:       now,
	}, nil
}

func (s *service) ListOrders(ctx context.Context, page, limit int) (*ListResult, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	page, limit = utils.NormalizePage(page, limit, DefaultListLimit)

	orders, total, err := s.repo.ListByUser(ctx, userID, utils.Skip(page, limit), int64(limit))
	if err != nil {
		return nil, err
	}

	return &ListResult{List: orders, TotalCount: total}, nil
}

func (s *service) GetOrder(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}
	return s.repo.GetForUser(ctx, id, userID)
}

func (s *service) CancelOrder(ctx context.Context, id primitive.ObjectID) (*Order, error) {
	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CancelOrder"),
		zap.String("order_id", id.Hex()),
	)

	o, err := s.repo.Transition(ctx, id, userID, Transition{
		To: StatusCancelled,
		At: s.now(),
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("cancel", resultOf(err)).Inc()
		log.Info("cancel rejected", zap.Error(err))
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues("cancel", metrics.ResultOK).Inc()
	log.Info("order cancelled")
	return o, nil
}

// PayOrder charges a pending order. The final status flip is conditional on
// the order still being pending, so of two concurrent calls only one wins.
func (s *service) PayOrder(
	ctx context.Context,
	id primitive.ObjectID,
	method payment.Method,
) (*Order, error) {

	userID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "PayOrder"),
		zap.String("order_id", id.Hex()),
		zap.String("payment_method", string(method)),
	)

	if !method.Valid() {
		metrics.OrdersTotal.WithLabelValues("pay", metrics.ResultInvalid).Inc()
		return nil, payment.ErrInvalidMethod
	}

	current, err := s.repo.GetForUser(ctx, id, userID)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("pay", resultOf(err)).Inc()
		return nil, err
	}
	if current.Status != StatusPending {
		metrics.OrdersTotal.WithLabelValues("pay", metrics.ResultInvalid).Inc()
		return nil, ErrOrderNotPending
	}

	receipt, err := s.gateway.Authorize(ctx, payment.ChargeRequest{
		OrderID: current.ID.Hex(),
		OrderNo: current.OrderNo,
		Amount:  decimal.NewFromFloat(current.TotalAmount),
		Method:  method,
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("pay", resultOf(err)).Inc()
		log.Error("payment authorization failed", zap.Error(err))
		return nil, err
	}

	o, err := s.repo.Transition(ctx, id, userID, Transition{
		To:            StatusPaid,
		At:            receipt.PaidAt,
		PaymentMethod: method,
		PaymentRef:    receipt.Reference,
	})
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("pay", resultOf(err)).Inc()
		log.Warn("order left pending state during payment", zap.Error(err))
		return nil, err
	}

	metrics.OrdersTotal.WithLabelValues("pay", metrics.ResultOK).Inc()
	log.Info("order paid", zap.String("reference", receipt.Reference))
	return o, nil
}

func resultOf(err error) string {
	switch apperror.KindOf(err) {
	case apperror.KindInternal:
		return metrics.ResultFailed
	default:
		return metrics.ResultInvalid
	}
}

func trimAddress(a ShippingAddress) ShippingAddress {
	return ShippingAddress{
		Name:     strings.TrimSpace(a.Name),
		Phone:    strings.TrimSpace(a.Phone),
		Address:  strings.TrimSpace(a.Address),
		City:     strings.TrimSpace(a.City),
		Province: strings.TrimSpace(a.Province),
		ZipCode:  strings.TrimSpace(a.ZipCode),
	}
}
