package app

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bluelight/shop/internal/dal/postgres"
	"github.com/bluelight/shop/internal/dal/rabbitmq"
	outboxrepo "github.com/bluelight/shop/internal/dal/repositories/outbox/postgres"
	"github.com/bluelight/shop/internal/otel"
	"github.com/bluelight/shop/internal/service/services/shopsvc"
	httptransport "github.com/bluelight/shop/internal/transport/http"
	outboxworker "github.com/bluelight/shop/internal/worker/outbox"
)

const ordersExchange = "orders"

// App represents the application.
type App struct {
	shopSvc        *shopsvc.ShopService
	transport      *httptransport.HTTPTransport
	postgresClient *postgres.Client
	rabbitClient   *rabbitmq.Client
	outboxWorker   *outboxworker.Worker
	otelController *otel.OtelController
}

// MustNewApp creates a new application.
func MustNewApp() *App {
	otelController := otel.MustInitOtel()

	postgresClient := postgres.MustNewClient()

	rabbitClient := rabbitmq.MustNewClient()
	if err := rabbitClient.DeclareExchange(ordersExchange); err != nil {
		panic("failed to declare orders exchange: " + err.Error())
	}

	shopSvc := shopsvc.MustNewShopService(
		shopsvc.WithPostgresClient(postgresClient),
	)

	transport := httptransport.NewHTTPTransport(shopSvc)
	transport.RegisterRoutes()

	outboxWorker := outboxworker.NewWorker(
		outboxrepo.NewPostgresOutboxRepository(postgresClient.DB()),
		rabbitClient,
	)

	return &App{
		shopSvc:        shopSvc,
		transport:      transport,
		postgresClient: postgresClient,
		rabbitClient:   rabbitClient,
		outboxWorker:   outboxWorker,
		otelController: otelController,
	}
}

// Run starts the application.
// Tracks interrupt signal to gracefully shut down the application.
func (a *App) Run() {
	// Create a channel to receive OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	workerCtx, cancelWorker := context.WithCancel(context.Background())
	go a.outboxWorker.Start(workerCtx)

	go func() {
		slog.Info("Starting HTTP server")
		if err := a.transport.Run(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	<-stop
	slog.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.transport.Shutdown(ctx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped gracefully")
	}

	cancelWorker()

	if err := a.rabbitClient.Close(); err != nil {
		slog.Error("RabbitMQ connection close error", "error", err)
	} else {
		slog.Info("RabbitMQ connection closed gracefully")
	}

	a.postgresClient.Close()
	slog.Info("Database connection closed gracefully")

	if err := a.otelController.Shutdown(); err != nil {
		slog.Error("Trace provider shutdown error", "error", err)
	}

	slog.Info("Application shutdown complete")
}
