package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"eventmarketplace/config"
	_ "eventmarketplace/docs"
	"eventmarketplace/internal/adapters/auth"
	"eventmarketplace/internal/adapters/cache"
	"eventmarketplace/internal/adapters/email"
	"eventmarketplace/internal/adapters/payments"
	deliveryhttp "eventmarketplace/internal/delivery/http"
	"eventmarketplace/internal/delivery/http/controllers"
	"eventmarketplace/internal/delivery/http/middleware"
	"eventmarketplace/internal/domain"
	"eventmarketplace/internal/repository/postgres"
	"eventmarketplace/internal/services"
)

// @title Event Marketplace Settlement API
// @version 1.0
// @description Ticket purchases, refunds, event cancellation and organizer earnings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxIdleTime(5 * time.Minute)
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return err
	}

	earningsCache := domain.EarningsCache(cache.NewNoopEarningsCache())
	if cfg.RedisAddr != "" {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return err
		}
		defer client.Close()
		earningsCache = cache.NewRedisEarningsCache(client, cfg.EarningsCacheTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, earnings reports are not cached")
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.EmailProvider,
		FromAddress: cfg.EmailFromAddress,
		FromName:    cfg.EmailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.AWSInsecureSkipTLS,
		},
	}, logger)
	if err != nil {
		return err
	}
	renderer, err := email.NewTemplateRenderer()
	if err != nil {
		return err
	}

	// Repositories
	tx := postgres.NewTransactor(db)
	eventRepo := postgres.NewEventRepository(db)
	operationRepo := postgres.NewOperationRepository(db)
	refundRepo := postgres.NewRefundRepository(db)
	cancellationRepo := postgres.NewCancellationRepository(db)
	organizerRepo := postgres.NewOrganizerRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Services
	notifier := services.NewEmailNotifier(mailer, renderer, userRepo, logger)
	resolver := services.NewCommissionResolver(organizerRepo, cfg.PlatformCommissionRate, logger)
	operationSvc := services.NewOperationService(tx, eventRepo, operationRepo, refundRepo, cancellationRepo,
		resolver, notifier, earningsCache, logger, cfg.ServiceTimeout)
	refundSvc := services.NewRefundService(operationRepo, eventRepo, refundRepo, notifier, earningsCache, logger, cfg.ServiceTimeout)
	cancellationSvc := services.NewCancellationService(tx, eventRepo, operationRepo, refundRepo, cancellationRepo,
		notifier, earningsCache, logger, services.CancellationConfig{
			ChunkSize:       cfg.CancellationChunkSize,
			ChunksPerSecond: cfg.CancellationChunksPerSecond,
			ChunkTimeout:    cfg.CancellationChunkTimeout,
		})
	earningsSvc := services.NewEarningsService(operationRepo, earningsCache, logger, cfg.ServiceTimeout)

	var parsers []domain.PaymentWebhookParser
	if cfg.StripeWebhookSecret != "" {
		parsers = append(parsers, payments.NewStripeWebhookParser(cfg.StripeWebhookSecret))
	}
	if cfg.PayPalWebhookToken != "" {
		parsers = append(parsers, payments.NewPayPalWebhookParser(cfg.PayPalWebhookToken))
	}
	webhookSvc := services.NewPaymentWebhookService(operationSvc, logger, parsers...)

	router := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Operations:    controllers.NewOperationController(logger, operationSvc),
		Refunds:       controllers.NewRefundController(logger, refundSvc),
		Cancellations: controllers.NewCancellationController(logger, cancellationSvc),
		Earnings:      controllers.NewEarningsController(logger, earningsSvc),
		Webhooks:      controllers.NewWebhookController(logger, webhookSvc),
	}, auth.NewJWTVerifier(cfg.JWTSecret), middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst), logger)

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORSAllowedOrigins, handler)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		// a cancellation fan-out may run several chunks within one request
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "env", cfg.Environment)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()
	return srv.Shutdown(shutdownCtx)
}
