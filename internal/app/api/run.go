package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/external/callmebot"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/external/distancematrix"
	ordersmemory "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/memory"
	ordersobs "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/observability"
	ordersmongo "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/persistence/mongo"
	receiptspdf "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/receipts/pdf"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/application"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/domain"
	"github.com/terangalabs/livraison-webhook/internal/domains/orders/ports"
	platformmongo "github.com/terangalabs/livraison-webhook/internal/platform/mongo"
	platformobservability "github.com/terangalabs/livraison-webhook/internal/platform/observability"

	ordershttp "github.com/terangalabs/livraison-webhook/internal/domains/orders/adapters/http"
)

// Run boots the fulfillment webhook with observability, the order store,
// and the external service clients wired.
func Run(ctx context.Context) error {
	const serviceName = "livraison-webhook"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	repo, probe, cleanupRepo := buildOrderRepository(ctx, cfg, logger)
	defer cleanupRepo()

	distanceClient, err := distancematrix.NewClient(cfg.MapsBaseURL, cfg.MapsAPIKey)
	if err != nil {
		return fmt.Errorf("configure distance matrix client: %w", err)
	}
	receiptWriter, err := receiptspdf.NewWriter(cfg.ReceiptDir)
	if err != nil {
		return fmt.Errorf("configure receipt writer: %w", err)
	}
	notifier, err := buildNotifier(cfg, logger)
	if err != nil {
		return fmt.Errorf("configure notifier: %w", err)
	}

	meter := instruments.Meter("internal.domains.orders.application")
	coreService := application.NewService(repo, distanceClient, receiptWriter, notifier, cfg.PublicBaseURL,
		application.WithLogger(logger),
		application.WithCompletionFailureHook(ordersobs.CompletionFailureHook(meter)),
	)
	orderService := ordersobs.New(coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(meter),
	)

	webhookAPI := ordershttp.NewWebhookAPI(orderService, logger)
	router := ordershttp.NewRouter(webhookAPI, ordershttp.RouterConfig{
		ServiceName: serviceName,
		ReceiptDir:  cfg.ReceiptDir,
		Probe:       probe,
	})

	addr := ":" + cfg.Port
	logger.Info("fulfillment webhook listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("fulfillment webhook exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

func buildOrderRepository(ctx context.Context, cfg Config, logger *slog.Logger) (ports.Repository, func(context.Context) error, func()) {
	if cfg.MongoURI == "" {
		logger.Warn("MONGO_URI not set, falling back to in-memory order repository")
		return ordersmemory.NewRepository(), nil, func() {}
	}
	client, err := platformmongo.Connect(ctx, cfg.MongoURI)
	if err != nil {
		logger.Warn("failed to connect to mongodb, falling back to memory", slog.String("error", err.Error()))
		return ordersmemory.NewRepository(), nil, func() {}
	}
	logger.Info("order repository configured with mongodb", slog.String("database", cfg.MongoDatabase))
	repo := ordersmongo.NewRepository(client.Database(cfg.MongoDatabase))
	probe := func(ctx context.Context) error { return client.Ping(ctx, readpref.Primary()) }
	cleanup := func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}
	return repo, probe, cleanup
}

func buildNotifier(cfg Config, logger *slog.Logger) (ports.Notifier, error) {
	if !cfg.NotificationsConfigured() {
		logger.Warn("CallMeBot credentials not set, confirmations will not notify the customer")
		return nopNotifier{logger: logger}, nil
	}
	return callmebot.NewClient(cfg.CallMeBotBaseURL, cfg.WhatsAppPhone, cfg.CallMeBotAPIKey)
}

// nopNotifier stands in when no messaging credentials are configured.
type nopNotifier struct {
	logger *slog.Logger
}

var _ ports.Notifier = nopNotifier{}

func (n nopNotifier) OrderConfirmed(_ context.Context, order *domain.Order, _ string) error {
	n.logger.Info("notification skipped, CallMeBot not configured", slog.String("reference", order.Reference))
	return nil
}
