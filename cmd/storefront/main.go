package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/feastly/storefront/internal/cart"
	"github.com/feastly/storefront/internal/checkout"
	checklogsqlite "github.com/feastly/storefront/internal/checkout/checklog/sqlite"
	"github.com/feastly/storefront/internal/config"
	"github.com/feastly/storefront/internal/httpx"
	"github.com/feastly/storefront/internal/ordering/adapters/rest"
	"github.com/feastly/storefront/internal/pkg/kv"
	"github.com/feastly/storefront/internal/pkg/telemetry"
	"github.com/feastly/storefront/internal/session"
)

const serviceName = "storefront"

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	telemetry.InitLogger(serviceName)

	shutdown, err := telemetry.SetupTracer(ctx, serviceName)
	if err != nil {
		log.Fatalf("setup tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Error("tracer shutdown failed", "error", err)
		}
	}()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer rdb.Close()

	store := kv.NewRedisStore(rdb, serviceName)
	carts := cart.NewStore(store)
	sessions := session.NewManager(store)

	platform := rest.NewClient(cfg.PlatformBaseURL, cfg.PlatformTimeout)

	opts := []checkout.Option{}
	if cfg.CheckoutLogPath != "" {
		funnelLog, err := checklogsqlite.Open(cfg.CheckoutLogPath)
		if err != nil {
			log.Fatalf("open checkout log: %v", err)
		}
		defer funnelLog.Close()
		opts = append(opts, checkout.WithCheckoutLog(funnelLog))
	}
	if cfg.RequireDeliveryAddress {
		opts = append(opts, checkout.WithRequiredDeliveryAddress())
	}

	coordinator := checkout.NewCoordinator(carts, sessions, platform, platform, opts...)

	handler := httpx.NewHandler(carts, platform, coordinator)
	router := httpx.NewRouter(handler)

	slog.Info("storefront listening", "addr", cfg.ListenAddr, "platform", cfg.PlatformBaseURL)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("http server failed: %v", err)
	}
}
