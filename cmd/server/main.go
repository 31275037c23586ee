package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront/internal/address"
	"storefront/internal/auth"
	"storefront/internal/captcha"
	"storefront/internal/cart"
	"storefront/internal/category"
	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/db/schema"
	"storefront/internal/logger"
	"storefront/internal/mailer"
	"storefront/internal/metrics"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/payment"
	"storefront/internal/product"
	"storefront/internal/storage/minio"
	"storefront/internal/transport"
	"storefront/internal/user"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

const serviceName = "storefront"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatal("failed to load config", zap.Error(err))
	}

	logger.Init(cfg.App.Env)
	defer logger.Sync()
	log := logger.L()

	metrics.MustRegister(serviceName)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("failed to connect to MongoDB", zap.Error(err))
	}
	defer func() {
		_ = database.Client().Disconnect(context.Background())
	}()
	log.Info("connected to MongoDB", zap.String("database", cfg.Mongo.Database))

	if err := schema.EnsureIndexes(ctx, database); err != nil {
		log.Fatal("failed to create indexes", zap.Error(err))
	}

	redisClient, err := db.ConnectRedis(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	log.Info("connected to Redis", zap.String("addr", cfg.Redis.Addr))

	services, err := buildServices(ctx, cfg, database, redisClient)
	if err != nil {
		log.Fatal("failed to build services", zap.Error(err))
	}

	router := transport.NewRouter(services, transport.Options{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Limiter:            middleware.NewRateLimiter(ctx, cfg.InternalSecretKey),
	})

	srv := newHTTPServer(cfg.App.Port, router)

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.App.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}

func buildServices(
	ctx context.Context,
	cfg *config.Config,
	database *mongo.Database,
	redisClient *redis.Client,
) (transport.Services, error) {

	log := logger.L()

	sender, err := mailer.NewSender(cfg.Mail)
	if err != nil {
		return transport.Services{}, err
	}
	if cfg.Mail.Host == "" {
		log.Warn("MAIL_HOST not set, verification emails are disabled")
	}

	var signer product.ImageSigner
	if cfg.Minio.Endpoint != "" {
		s, err := minio.Connect(ctx, cfg.Minio)
		if err != nil {
			return transport.Services{}, err
		}
		signer = s
	}

	captchaSvc := captcha.NewService(
		captcha.NewRedisStore(redisClient),
		captcha.NewImageRenderer(cfg.Captcha.Width, cfg.Captcha.Height, cfg.Captcha.Length),
		cfg.Captcha.TTL,
		cfg.Captcha.Length,
	)

	users := database.Collection(db.UsersCollection)
	userSvc := user.NewService(
		user.NewRepository(users),
		captchaSvc,
		mailer.NewVerificationMailer(sender, cfg.App.ClientURL),
		auth.NewSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.SessionTTL, cfg.JWT.VerifyTTL),
	)

	productSvc := product.NewService(
		product.NewRepository(database.Collection(db.ProductsCollection)),
		product.NewRedisCache(redisClient),
		signer,
	)

	return transport.Services{
		Captcha:    captchaSvc,
		Users:      userSvc,
		Addresses:  address.NewService(address.NewRepository(users)),
		Products:   productSvc,
		Categories: category.NewService(),
		Carts:      cart.NewService(cart.NewRepository(database.Collection(db.CartsCollection)), productSvc),
		Orders: order.NewService(
			order.NewRepository(database.Collection(db.OrdersCollection)),
			productSvc,
			payment.NewSimulatedGateway(),
		),
	}, nil
}

func newHTTPServer(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}
