package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	_ "github.com/beautyshop/storefront-api/docs"
	"github.com/beautyshop/storefront-api/internal/api"
	"github.com/beautyshop/storefront-api/internal/api/handler"
	"github.com/beautyshop/storefront-api/internal/core/ports"
	"github.com/beautyshop/storefront-api/internal/core/service"
	"github.com/beautyshop/storefront-api/internal/infrastructure/db/mongo"
	"github.com/beautyshop/storefront-api/internal/infrastructure/db/redis"
	"github.com/beautyshop/storefront-api/internal/infrastructure/queue"
	"github.com/beautyshop/storefront-api/internal/infrastructure/storage"
	"github.com/beautyshop/storefront-api/internal/pkg/config"
	"github.com/beautyshop/storefront-api/internal/pkg/password"
	"github.com/beautyshop/storefront-api/internal/pkg/token"
	"github.com/beautyshop/storefront-api/pkg/logger"
)

// @title                       Storefront API
// @version                     1.0
// @description                 Beauty storefront backend: customer and admin authentication, catalog, orders and back-office management.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the token.
func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}

	lg := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "storefront-api",
	})

	// --- MongoDB ---
	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	switch {
	case errors.Is(err, mongo.ErrUnreachable):
		lg.Error().Err(err).Msg("mongodb unreachable; requests will fail until it is")
	case err != nil:
		lg.Fatal().Err(err).Msg("mongodb client could not be created")
	default:
		lg.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")
		if err := mongo.EnsureIndexes(ctx, db); err != nil {
			lg.Error().Err(err).Msg("failed to ensure indexes")
		}
	}

	// --- Redis (optional) ---
	var (
		rdb  *goredis.Client
		idem ports.IdempotencyStore
	)
	rdb, err = redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		lg.Warn().Err(err).Msg("redis unavailable; idempotency keys disabled")
	} else {
		idem = redis.NewIdempotencyStore(rdb, cfg.Redis.IdempotencyTTL)
	}

	// --- Core ---
	tokens, err := token.NewService(cfg.JWTSecret, cfg.Auth.CustomerTokenTTL, cfg.Auth.AdminTokenTTL)
	if err != nil {
		lg.Fatal().Err(err).Msg("token service")
	}
	hasher := password.NewBcryptHasher(cfg.Auth.BcryptCost)

	images, err := storage.NewLocalImageStore(cfg.UploadsDir, "/uploads")
	if err != nil {
		lg.Fatal().Err(err).Msg("uploads directory")
	}

	customerRepo := mongo.NewCustomerRepository(db)
	adminRepo := mongo.NewAdminRepository(db)
	productRepo := mongo.NewProductRepository(db)
	orderRepo := mongo.NewOrderRepository(db)
	eventRepo := mongo.NewOrderEventRepository(db)

	// The audit workers outlive the signal so requests still in flight during
	// shutdown get their events recorded.
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	dispatcher := queue.NewDispatcher(0, service.NewOrderEventService(eventRepo, lg), lg)
	dispatcher.Start(workerCtx)

	var origins []string
	if !cfg.IsProduction() {
		origins = cfg.CORSOrigins
	}

	e := api.NewRouter(api.Dependencies{
		Log:            lg,
		Tokens:         tokens,
		Auth:           service.NewAuthService(customerRepo, adminRepo, hasher, tokens, lg),
		Customers:      service.NewCustomerService(customerRepo, hasher, lg),
		Products:       service.NewProductService(productRepo, images, lg),
		Orders:         service.NewOrderService(orderRepo, productRepo, customerRepo, eventRepo, dispatcher, idem, lg),
		Health:         handler.NewHealthHandler(db, rdb),
		UploadsDir:     images.Dir(),
		AllowedOrigins: origins,
	})

	go func() {
		lg.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal().Err(err).Msg("http server")
		}
	}()

	<-ctx.Done()
	lg.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("http shutdown")
	}
	stopWorkers()
	dispatcher.Wait()

	if rdb != nil {
		_ = rdb.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("mongodb disconnect")
	}
}
