// Package app assembles the storefront: storage, services, the public API
// server and the ops listener, with graceful shutdown on context cancel.
package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/daralkutub/storefront/internal/health"
	"github.com/daralkutub/storefront/internal/messaging/kafka"
	"github.com/daralkutub/storefront/internal/metrics"
	"github.com/daralkutub/storefront/internal/service/admin"
	"github.com/daralkutub/storefront/internal/service/cart"
	"github.com/daralkutub/storefront/internal/service/catalog"
	"github.com/daralkutub/storefront/internal/service/checkout"
	"github.com/daralkutub/storefront/internal/service/outbox"
	"github.com/daralkutub/storefront/internal/service/rest"
	"github.com/daralkutub/storefront/internal/version"
)

// Run starts the storefront and blocks until the context is cancelled or a
// listener fails.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer deps.Close()

	if cfg.AdminPassword == DefaultConfig().AdminPassword {
		logger.Warn("admin password is the development default, set STOREFRONT_ADMIN_PASSWORD")
	}

	storeMetrics := metrics.NewStoreMetrics()

	// Kafka is optional: without brokers the outbox just accumulates and
	// orders still persist.
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	if kafkaProducer != nil {
		publisher := kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicOrderEvents)
		worker := outbox.NewWorker(deps.Outbox, publisher,
			outbox.WithLogger(logger.WithField("component", "outbox")))
		go worker.Run(ctx)
	}

	catalogSvc := catalog.NewService(deps.Catalog, logger.WithField("component", "catalog"))
	carts := cart.NewManager(deps.Snapshots, logger.WithField("component", "cart"), storeMetrics)
	checkoutSvc := checkout.NewService(deps.Orders, deps.Outbox,
		logger.WithField("component", "checkout"), checkout.WithMetrics(storeMetrics))
	sessions := admin.NewSessionManager(cfg.AdminUsername, cfg.AdminPassword,
		[]byte(cfg.AdminTokenSecret), logger.WithField("component", "admin"))
	adminOrders := admin.NewOrdersService(deps.Orders, deps.Outbox,
		logger.WithField("component", "admin"))

	restLogger := logger.WithField("component", "rest")
	router := rest.NewRouter(rest.Handlers{
		Catalog:  rest.NewCatalogHandler(catalogSvc, restLogger),
		Cart:     rest.NewCartHandler(carts, catalogSvc, restLogger),
		Checkout: rest.NewCheckoutHandler(checkoutSvc, carts, deps.Orders, restLogger),
		Admin:    rest.NewAdminHandler(sessions, adminOrders, catalogSvc, restLogger),
		Sessions: sessions,
	})

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.Store != nil {
		store := deps.Store
		healthHandler.RegisterChecker("postgres", healthcheck.NewSimpleChecker("postgres", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}
	if deps.Redis != nil {
		client := deps.Redis
		healthHandler.RegisterChecker("redis", healthcheck.NewSimpleChecker("redis", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Ping(pingCtx).Err()
		}))
	}

	opsSrv := startOpsServer(ctx, cfg.OpsAddr, logger, healthHandler)

	lis, err := net.Listen("tcp", cfg.HTTPAddr)
	if err != nil {
		return err
	}

	apiSrv := &http.Server{
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("storefront API listening on %s", lis.Addr())
		errCh <- apiSrv.Serve(lis)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("API server shutdown with error")
		}
		cancel()
		shutdownHTTP(opsSrv, logger)
		closeKafka(kafkaProducer, logger)
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(opsSrv, logger)
		closeKafka(kafkaProducer, logger)
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startOpsServer serves /metrics and the health endpoints on the ops
// listener, away from the public API.
func startOpsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("metrics available at %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("ops server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP stops an HTTP server with a bounded grace period.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("ops server shutdown with error")
	}
}
