package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bluelight/shop/internal/service/models/cart"
	"github.com/bluelight/shop/internal/service/models/diagnostics"
	"github.com/bluelight/shop/internal/service/models/order"
	"github.com/bluelight/shop/internal/service/models/product"
	"github.com/bluelight/shop/internal/transport/http/checkout"
	diaghandler "github.com/bluelight/shop/internal/transport/http/diagnostics"
	listorders "github.com/bluelight/shop/internal/transport/http/list_orders"
	listproducts "github.com/bluelight/shop/internal/transport/http/list_products"
	seedproducts "github.com/bluelight/shop/internal/transport/http/seed_products"
	"github.com/bluelight/shop/pkg/http/middleware/trace"
	"github.com/bluelight/shop/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	Checkout(ctx context.Context, c cart.Cart) (*order.Order, error)
	ListProducts(ctx context.Context) ([]product.Product, error)
	SeedProducts(ctx context.Context) (int, error)
	GetOrders(ctx context.Context, filter order.QueryOrdersModel) ([]order.Order, error)
	Diagnostics(ctx context.Context) diagnostics.Report
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Get("/", h.root)
	h.router.Get("/test", h.diagnostics)
	h.router.Post("/seed", h.seedProducts)
	h.router.Get("/products", h.listProducts)
	h.router.Get("/orders", h.listOrders)
	h.router.Post("/checkout", h.checkout)
}

func (h *HTTPTransport) root(w http.ResponseWriter, r *http.Request) {
	diaghandler.Root(w, r)
}

func (h *HTTPTransport) diagnostics(w http.ResponseWriter, r *http.Request) {
	diaghandler.Diagnostics(w, r, h.service)
}

func (h *HTTPTransport) seedProducts(w http.ResponseWriter, r *http.Request) {
	seedproducts.SeedProducts(w, r, h.service)
}

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	listproducts.ListProducts(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) checkout(w http.ResponseWriter, r *http.Request) {
	checkout.Checkout(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(trace.NewTraceMiddleware)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
