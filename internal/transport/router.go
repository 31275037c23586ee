package transport

import (
	"net/http"

	"storefront/internal/address"
	"storefront/internal/captcha"
	"storefront/internal/cart"
	"storefront/internal/category"
	"storefront/internal/logger"
	"storefront/internal/middleware"
	"storefront/internal/order"
	"storefront/internal/product"
	"storefront/internal/user"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Captcha    captcha.Service
	Users      user.Service
	Addresses  address.Service
	Products   product.Service
	Categories category.Service
	Carts      cart.Service
	Orders     order.Service
}

type Options struct {
	CORSAllowedOrigins []string
	// Limiter is optional; nil disables rate limiting.
	Limiter *middleware.RateLimiter
}

func NewRouter(svc Services, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", logger.RequestIDHeader, "X-Device-ID"},
		ExposedHeaders:   []string{logger.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.Metrics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeNotFound(w)
	})

	r.Handle("/metrics", promhttp.Handler())

	h := &handler{svc: svc}
	limit := func(r chi.Router) {
		if opts.Limiter != nil {
			r.Use(opts.Limiter.Middleware)
		}
	}

	r.Route("/api", func(r chi.Router) {
		// Public
		r.Group(func(r chi.Router) {
			limit(r)

			r.Get("/health", h.health)

			r.Get("/auth/captcha", h.captcha)
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
			r.Get("/auth/verify-email", h.verifyEmail)

			r.Get("/products", h.listProducts)
			r.Get("/products/search", h.searchProducts)
			r.Get("/products/{id}", h.getProduct)
			r.Get("/categories", h.listCategories)
		})

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(svc.Users))
			limit(r)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.getCart)
				r.Post("/", h.addCartItem)
				r.Put("/quantity", h.setCartQuantity)
				r.Put("/select", h.setCartSelection)
				r.Delete("/{id}", h.removeCartItem)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Post("/", h.createOrder)
				r.Get("/", h.listOrders)
				r.Get("/{id}", h.getOrder)
				r.Put("/{id}/cancel", h.cancelOrder)
				r.Post("/{id}/pay", h.payOrder)
			})

			r.Route("/user", func(r chi.Router) {
				r.Get("/profile", h.getProfile)
				r.Put("/profile", h.updateProfile)

				r.Get("/addresses", h.listAddresses)
				r.Post("/addresses", h.createAddress)
				r.Put("/addresses/{id}", h.updateAddress)
				r.Delete("/addresses/{id}", h.deleteAddress)
				r.Put("/addresses/{id}/default", h.setDefaultAddress)
			})
		})
	})

	return r
}
