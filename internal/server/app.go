// Package server initializes and runs the marketplace server: it wires the
// database, cache, message broker and policy layer together, starts the HTTP
// endpoint and handles graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/DyarAbdulla/carwiseiq-sub006/internal/logging"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/cache"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/config"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/httpapi"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/policy"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/queue"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/repositories/repomanager"
	"github.com/DyarAbdulla/carwiseiq-sub006/internal/server/services"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewPostgresRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("repository manager init error: %w", err)
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migration error: %w", err)
	}

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}
	listingCache := cache.NewListingCache(cache.NewCache(ctx, redisClient))

	publisher := queue.NewPublisher(cfg.AMQPURL, logger)

	// The policy layer reads user rows through the privileged repository
	// path; every other read and write goes through the evaluator.
	users := rm.Users(db)
	evaluator := policy.NewEvaluator(policy.NewAdminOracle(users, logger), logger)
	resolver := policy.NewResolver(users, []byte(cfg.SecretKey))

	userService := services.NewUserService(db, rm, evaluator, cfg)
	activityService := services.NewActivityService(db, rm, evaluator, publisher, logger)
	listingService := services.NewListingService(db, rm, evaluator, listingCache, activityService, logger)
	favoriteService := services.NewFavoriteService(db, rm, evaluator, activityService, logger)
	storageService := services.NewStorageService(evaluator, cfg)

	server := httpapi.NewHTTPServer(cfg.EndpointAddrHTTP, logger, resolver,
		userService, listingService, favoriteService, activityService, storageService)

	return &App{config: cfg, logger: logger, db: db, server: server}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
}
