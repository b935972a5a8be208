package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkravets/fx_exchange_app/internal/adapters/database/pgsql"
	"github.com/mkravets/fx_exchange_app/internal/adapters/ratesfeed"
	portsrepo "github.com/mkravets/fx_exchange_app/internal/core/ports/repositories"
	"github.com/mkravets/fx_exchange_app/internal/core/services"
	"github.com/mkravets/fx_exchange_app/internal/handlers"
	"github.com/mkravets/fx_exchange_app/internal/middleware"
	"github.com/mkravets/fx_exchange_app/internal/platform/config"
	"github.com/mkravets/fx_exchange_app/internal/platform/scheduler"
	"github.com/mkravets/fx_exchange_app/pkg/database"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title FXA Backend API
// @version 1.0
// @description Currency exchange service: ISO-4217 catalog, exchange-rate snapshots and conversions.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	// Snapshot persistence is optional: without a database the service keeps
	// rates in memory only and rebuilds history from the feed on startup.
	repos := &portsrepo.RepositoryProvider{}
	if cfg.DatabaseURL != "" {
		dbPool, poolErr := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if poolErr != nil {
			logger.Error("Failed to initialize database pool", slog.String("error", poolErr.Error()))
			os.Exit(1)
		}
		defer database.ClosePgxPool(dbPool)

		if migErr := runMigrations(cfg.DatabaseURL, logger); migErr != nil {
			logger.Error("Failed to apply migrations", slog.String("error", migErr.Error()))
			os.Exit(1)
		}

		repos.RateSnapshotRepo = pgsql.NewRateSnapshotRepository(dbPool)
	} else {
		logger.Warn("No database configured, rate snapshots will not be persisted")
	}

	latestURL := cfg.FeedLatestURL
	if latestURL == "" {
		latestURL = ratesfeed.DefaultLatestURL
	}
	historyURL := cfg.FeedHistoryURL
	if historyURL == "" {
		historyURL = ratesfeed.DefaultHistoryURL
	}
	feed := ratesfeed.NewECBClient(&http.Client{Timeout: 30 * time.Second}, latestURL, historyURL)

	container := services.NewContainer(feed, repos)

	// Bootstrap rates before serving. Neither step is fatal: the service can
	// start empty and publish on the first successful refresh.
	if err := container.Rates.LoadHistory(ctx); err != nil {
		logger.Warn("Failed to load rate history on startup", slog.String("error", err.Error()))
	}
	if _, err := container.Rates.RefreshRates(ctx); err != nil {
		logger.Warn("Failed to refresh rates on startup", slog.String("error", err.Error()))
	}

	refreshScheduler := scheduler.NewRefreshScheduler(container.Rates, cfg.RefreshInterval, logger)
	if err := refreshScheduler.Start(ctx); err != nil {
		logger.Error("Failed to start refresh scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if sdErr := refreshScheduler.Shutdown(); sdErr != nil {
			logger.Error("Scheduler shutdown error", slog.String("error", sdErr.Error()))
		}
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, rate limiting)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	rate, rateErr := limiter.NewRateFromFormatted(cfg.RateLimit)
	if rateErr != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("value", cfg.RateLimit), slog.String("error", rateErr.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending "up" migrations over a temporary
// database/sql connection compatible with the pgx pool.
func runMigrations(databaseURL string, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	migrationDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
