package captcha

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"

	"storefront/internal/logger"
	"storefront/internal/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Challenge struct {
	Key   string `json:"key"`
	Image string `json:"image"`
}

type Service interface {
	Issue(ctx context.Context) (*Challenge, error)
	// Verify consumes the challenge under key. A challenge can be verified
	// once, whatever the outcome.
	Verify(ctx context.Context, key, candidate string) (bool, error)
}

type service struct {
	store    Store
	renderer Renderer
	ttl      time.Duration
	length   int
}

func NewService(store Store, renderer Renderer, ttl time.Duration, length int) Service {
	return &service{
		store:    store,
		renderer: renderer,
		ttl:      ttl,
		length:   length,
	}
}

func (s *service) Issue(ctx context.Context) (*Challenge, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Issue"),
	)

	code, err := randomCode(s.length)
	if err != nil {
		log.Error("failed to generate captcha code", zap.Error(err))
		return nil, err
	}

	image, err := s.renderer.Render(code)
	if err != nil {
		log.Error("failed to render captcha", zap.Error(err))
		return nil, err
	}

	key := uuid.NewString()
	if err := s.store.Set(ctx, key, strings.ToLower(code), s.ttl); err != nil {
		log.Error("failed to store captcha", zap.Error(err))
		return nil, err
	}

	metrics.CaptchaTotal.WithLabelValues("issue", metrics.ResultOK).Inc()
	log.Debug("captcha issued", zap.String("key", key))

	return &Challenge{Key: key, Image: image}, nil
}

func (s *service) Verify(ctx context.Context, key, candidate string) (bool, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Verify"),
		zap.String("key", key),
	)

	if key == "" {
		return false, nil
	}

	stored, found, err := s.store.Take(ctx, key)
	if err != nil {
		log.Error("failed to read captcha", zap.Error(err))
		return false, err
	}
	if !found {
		metrics.CaptchaTotal.WithLabelValues("verify", metrics.ResultInvalid).Inc()
		log.Info("captcha missing or expired")
		return false, nil
	}

	ok := candidate != "" && stored == strings.ToLower(candidate)
	result := metrics.ResultOK
	if !ok {
		result = metrics.ResultInvalid
	}
	metrics.CaptchaTotal.WithLabelValues("verify", result).Inc()

	return ok, nil
}

func randomCode(length int) (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(Alphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random captcha code: %w", err)
		}
		sb.WriteByte(Alphabet[n.Int64()])
	}
	return sb.String(), nil
}
