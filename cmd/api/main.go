package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/orderlink/orderlink-backend/api/routes"
	cartsvc "github.com/orderlink/orderlink-backend/internal/cart"
	"github.com/orderlink/orderlink-backend/internal/catalog"
	"github.com/orderlink/orderlink-backend/internal/order"
	"github.com/orderlink/orderlink-backend/pkg/config"
	"github.com/orderlink/orderlink-backend/pkg/db"
	"github.com/orderlink/orderlink-backend/pkg/kv"
	"github.com/orderlink/orderlink-backend/pkg/logger"
	"github.com/orderlink/orderlink-backend/pkg/metrics"
	"github.com/orderlink/orderlink-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	registry := prometheus.NewRegistry()
	storeMetrics := metrics.NewStorefrontMetrics(registry)

	pingers := map[string]db.Pinger{}
	var slot kv.Store

	switch cfg.Cart.Backend {
	case config.CartBackendRedis:
		redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		slot, err = kv.NewRedisStore(redisClient)
		if err != nil {
			logg.Error(context.Background(), "failed to create redis cart slot", err)
			os.Exit(1)
		}
		pingers["redis"] = redisClient

	default:
		dbClient, err := db.New(context.Background(), cfg.DB, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap database", err)
			os.Exit(1)
		}
		defer func() {
			if err := dbClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing database", err)
			}
		}()
		slot, err = kv.NewGormStore(dbClient.DB())
		if err != nil {
			logg.Error(context.Background(), "failed to create sql cart slot", err)
			os.Exit(1)
		}
		pingers["db"] = dbClient
	}

	loader := catalog.NewLoader(cfg.Catalog, cfg.Store)
	catalogStore := catalog.NewStore()
	catalogService, err := catalog.NewService(loader, catalogStore, storeMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	if count, err := catalogService.Reload(context.Background()); err != nil {
		logg.Warn(context.Background(), "initial catalog load failed, waiting for manual upload")
	} else {
		ctx := logg.WithField(context.Background(), "products", count)
		logg.Info(ctx, "initial catalog loaded")
	}

	cartService, err := cartsvc.NewService(catalogStore, slot, cfg.Cart.Key, storeMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}
	if err := cartService.Load(context.Background()); err != nil {
		logg.Error(context.Background(), "failed to restore persisted cart", err)
		os.Exit(1)
	}
	cartService.Subscribe(func(event cartsvc.Event) {
		if event.Op == cartsvc.OpAdd {
			ctx := logg.WithProductID(context.Background(), event.ProductID)
			logg.Info(ctx, "cart.item_added")
		}
	})

	orderService, err := order.NewService(
		cartService,
		order.Formatter{CurrencySymbol: cfg.Store.CurrencySymbol},
		cfg.Store.WhatsAppNumber,
		storeMetrics,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	if cfg.Catalog.Watch && cfg.Catalog.Path != "" {
		watcher, err := catalog.NewWatcher(cfg.Catalog.Path, catalogService, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to create catalog watcher", err)
			os.Exit(1)
		}
		go func() {
			if err := watcher.Run(context.Background()); err != nil && err != context.Canceled {
				logg.Error(context.Background(), "catalog watcher stopped", err)
			}
		}()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, pingers, catalogService, cartService, orderService, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
