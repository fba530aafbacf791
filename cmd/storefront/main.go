package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/prathameshdeogirkar/agrimart-frontend/internal/app"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/catalog"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/config"
	h "github.com/prathameshdeogirkar/agrimart-frontend/internal/http"
	"github.com/prathameshdeogirkar/agrimart-frontend/internal/upstream"
)

func main() {
	cfg := config.Load()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis not reachable, catalog cache degraded: %v", err)
	}
	cancelPing()

	base := upstream.New(cfg.UpstreamBaseURL)
	registry := app.NewRegistry(base, cfg.ShopperIdleTTL)
	cat := catalog.NewService(base, catalog.NewRedisCache(redisClient))

	pruneCtx, cancelPrune := context.WithCancel(context.Background())
	defer cancelPrune()
	go registry.Run(pruneCtx, cfg.PruneInterval)

	router := h.NewRouter(registry, cat, cfg.RequestTimeout)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("storefront starting on :%s (upstream %s)", cfg.HTTPPort, cfg.UpstreamBaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("server exited")
}
