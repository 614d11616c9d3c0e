package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/database"
	"github.com/iliyamo/shareit/internal/handler"
	"github.com/iliyamo/shareit/internal/middleware"
	"github.com/iliyamo/shareit/internal/queue"
	"github.com/iliyamo/shareit/internal/router"
	"github.com/iliyamo/shareit/internal/service"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(config.Load(), log); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

// run serves until SIGINT or SIGTERM. Deferred cleanup runs on every
// return path.
func run(cfg config.Config, log *slog.Logger) error {
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBLoc)
	if err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	var events service.BookingEvents = service.NoEvents{}
	if cfg.EventsEnabled {
		pub := queue.NewPublisher(cfg.AMQPURL, log)
		defer pub.Close()
		events = pub
	}

	store := service.NewSQLStore(db)
	users := handler.NewUserHandler(service.NewUserService(store), log)
	items := handler.NewItemHandler(service.NewItemService(store, nil), log)
	requests := handler.NewRequestHandler(service.NewRequestService(store, nil), log)
	bookings := handler.NewBookingHandler(service.NewBookingService(store, nil, events), log)

	// cache and rate limiting are skipped when Redis is unreachable
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn("redis unavailable, running without cache and rate limiting")
	} else {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(config.LoadCacheConfig(), rdb)
	limit := middleware.RateLimit(config.LoadRateLimitConfig(), rdb, log)

	e := echo.New()
	e.HideBanner = true
	middleware.Register(e, log)
	router.RegisterRoutes(e)
	router.RegisterUsers(e, users, limit)
	router.RegisterItems(e, items, limit, cache)
	router.RegisterRequests(e, requests, limit)
	router.RegisterBookings(e, bookings, limit)

	serveErr := make(chan error, 1)
	go func() {
		addr := ":" + cfg.Port
		log.Info("listening", "addr", addr, "env", cfg.Env)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("server stopped: %w", err)
	case <-ctx.Done():
	}
	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
