package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"mahirash.com/app/internal/config"
	apphttp "mahirash.com/app/internal/http"
	"mahirash.com/app/internal/http/clientcookie"
	"mahirash.com/app/internal/http/middleware"
	"mahirash.com/app/internal/mailer"
	"mahirash.com/app/internal/modules/catalog"
	"mahirash.com/app/internal/modules/checkout"
	"mahirash.com/app/internal/modules/orders"
	"mahirash.com/app/internal/modules/showcase"
	"mahirash.com/app/internal/storage"
)

func main() {
	cfg := config.Load()

	logger := slog.New(middleware.NewContextHandler(
		slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}),
	))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *gorm.DB
	if cfg.DBDSN != "" {
		var err error
		db, err = gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect to database: %v", err)
		}
	}

	src, err := catalog.Open(ctx, cfg.Catalog)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}
	defer func() { _ = src.Close(context.Background()) }()

	cache := catalog.NewCache(src.Source, logger)
	cache.Start(ctx, cfg.Catalog.Refresh)
	defer cache.Stop()
	products := catalog.NewService(cache, logger, cfg.Catalog.PreferredSizes...)

	st, err := storage.FromConfig(ctx, cfg.Storage, db)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	rot := showcase.NewRotator(products, showcase.Config{
		Sizes:    cfg.Showcase.Sizes,
		Window:   cfg.Showcase.Window,
		Interval: cfg.Showcase.Interval,
	}, logger)
	rot.Start(ctx)
	defer rot.Stop()

	deps := apphttp.Deps{
		Logger:   logger,
		Catalog:  products,
		Showcase: rot,
		State:    st.Storage,
		Cookie:   clientcookie.New(cfg.CookieSecret, cfg.ClientCookieName, cfg.CookieSecure),
		Currency: cfg.Currency,
	}
	if db != nil {
		deps.Checkout = checkout.NewService(products, orders.NewRepo(db), checkout.Options{
			Mail:     mailer.New(cfg.SMTP, mailer.Log{Logger: logger}),
			From:     cfg.SMTP.From,
			FromName: cfg.SMTP.FromName,
			Currency: cfg.Currency,
			Logger:   logger,
		})
	} else {
		logger.Warn("checkout_disabled", slog.String("reason", "DB_DSN not set"))
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           apphttp.NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server_started",
			slog.String("addr", cfg.Addr),
			slog.String("catalog", src.Driver),
			slog.String("storage", st.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("server_stopping")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown_failed", slog.Any("err", err))
	}
}
