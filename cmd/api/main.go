package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gamestore/internal/cache"
	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/httpserver"
	"gamestore/internal/provider"
	cartrepo "gamestore/internal/repository/cart"
	cartsvc "gamestore/internal/service/cart"
	checkoutsvc "gamestore/internal/service/checkout"
	sessionsvc "gamestore/internal/service/session"
	storesvc "gamestore/internal/service/store"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect to db: %v", err)
	}
	defer dbpool.Close()

	providerClient := provider.NewClient(cfg.ProviderBaseURL, cfg.ProviderAPIKey, cfg.StoreID, logger)
	storeService := storesvc.New(providerClient, cache.New[any](cfg.CacheTTL), cfg.StoreID)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	cartService := cartsvc.New(cartRepo)
	checkoutService := checkoutsvc.New(providerClient, cfg.PublicBaseURL)
	sessionService := sessionsvc.New(cfg.SessionTTL)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		StoreSvc:     storeService,
		CartSvc:      cartService,
		CheckoutSvc:  checkoutService,
		Sessions:     sessionService,
		CookieSecure: cfg.SessionCookieSecure,
	}, cfg.CORSOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
