package payment

import (
	"context"
	"time"

	"storefront/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Gateway interface {
	Authorize(ctx context.Context, req ChargeRequest) (*Receipt, error)
}

// SimulatedGateway approves every well-formed charge. No money moves.
type SimulatedGateway struct {
	now func() time.Time
}

func NewSimulatedGateway() *SimulatedGateway {
	return &SimulatedGateway{now: time.Now}
}

func (g *SimulatedGateway) Authorize(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "gateway"),
		zap.String("method", "Authorize"),
		zap.String("order_id", req.OrderID),
		zap.String("payment_method", string(req.Method)),
	)

	if req.OrderID == "" {
		return nil, ErrMissingOrderID
	}
	if !req.Method.Valid() {
		return nil, ErrInvalidMethod
	}
	if req.Amount.IsNegative() {
		return nil, ErrInvalidAmount
	}

	receipt := &Receipt{
		Reference: "PAY-" + uuid.NewString(),
		Method:    req.Method,
		Amount:    req.Amount,
		PaidAt:    g.now().UTC(),
	}

	log.Info("payment authorized",
		zap.String("reference", receipt.Reference),
		zap.String("amount", req.Amount.StringFixed(2)),
	)
	return receipt, nil
}
