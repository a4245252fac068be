package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	portsevt "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/events"
	portsrepo "github.com/Pyrocube-Network/EconomyApi/internal/core/ports/repositories"
	"github.com/Pyrocube-Network/EconomyApi/internal/core/services"
	"github.com/Pyrocube-Network/EconomyApi/internal/middleware"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/config"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/metrics"
	"github.com/Pyrocube-Network/EconomyApi/internal/platform/publisher"
	"github.com/Pyrocube-Network/EconomyApi/internal/repositories/database/memory"
	"github.com/Pyrocube-Network/EconomyApi/internal/repositories/database/pgsql"
	"github.com/Pyrocube-Network/EconomyApi/internal/utils/mapping"
	"github.com/Pyrocube-Network/EconomyApi/pkg/database"
	"github.com/Pyrocube-Network/EconomyApi/pkg/economy"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize structured logger
	var level slog.LevelVar
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level.Set(slog.LevelInfo)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: &level}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = middleware.WithLogger(ctx, logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("Economy service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	repos, closeStore, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	var events portsevt.TransactionPublisher = publisher.NoopTransactionPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		events = publisher.NewKafkaTransactionPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		logger.Info("Publishing transactions to Kafka", slog.String("topic", cfg.KafkaTopic))
	}
	defer func() {
		if err := events.Close(); err != nil {
			logger.Error("Failed to close transaction publisher", slog.String("error", err.Error()))
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	economyMetrics := metrics.NewEconomyMetrics(registry)

	container, err := services.NewServiceContainer(cfg, repos,
		services.WithPublisher(events),
		services.WithMetrics(economyMetrics),
	)
	if err != nil {
		return err
	}
	provider := services.NewEconomyProvider(container,
		services.WithPoolSize(cfg.WorkerPoolSize),
		services.WithOperationTimeout(cfg.OperationTimeout),
		services.WithProviderMetrics(economyMetrics),
	)
	defer provider.Close()

	if err := container.Currency.Restore(ctx); err != nil {
		return err
	}
	if err := registerConfiguredCurrencies(ctx, cfg, provider, logger); err != nil {
		return err
	}

	r, err := newRouter(cfg, logger, registry, provider)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting", slog.String("addr", cfg.MetricsAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newRouter serves the operational endpoints.
func newRouter(cfg *config.Config, logger *slog.Logger, registry *prometheus.Registry, provider economy.Provider) (*gin.Engine, error) {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) {
		if _, err := provider.PrimaryCurrency(); err != nil {
			middleware.GetLoggerFromContext(c).Warn("Health check failed", slog.String("error", err.Error()))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	return r, nil
}

// openStore selects the repositories for cfg.StoreDriver.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	if cfg.StoreDriver != config.StorePostgres {
		logger.Info("Using in-memory store")
		return memory.NewRepositoryProvider(), func() {}, nil
	}

	if cfg.RunMigrations {
		logger.Info("Running database migrations...")
		if err := database.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
	}

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		return portsrepo.RepositoryProvider{}, nil, err
	}
	logger.Info("Database connection pool established.")
	return pgsql.NewRepositoryProvider(dbPool), func() { database.ClosePgxPool(dbPool) }, nil
}

// registerConfiguredCurrencies registers every currency from the currencies
// file that is not registered yet.
func registerConfiguredCurrencies(ctx context.Context, cfg *config.Config, provider *services.EconomyProvider, logger *slog.Logger) error {
	if cfg.CurrenciesFile == "" {
		return nil
	}
	defs, err := config.LoadCurrencyDefinitions(cfg.CurrenciesFile)
	if err != nil {
		return err
	}

	for _, def := range defs {
		if _, ok := provider.FindCurrency(def.ID); ok {
			logger.Debug("Currency already registered", slog.String("currency_id", def.ID))
			continue
		}
		stored, err := mapping.FromCurrencyDefinition(def, time.Now().UTC())
		if err != nil {
			return err
		}
		currency, err := mapping.ToEconomyCurrency(stored)
		if err != nil {
			return err
		}
		if _, err := provider.RegisterCurrency(ctx, currency).Await(ctx); err != nil {
			return err
		}
	}
	return nil
}
