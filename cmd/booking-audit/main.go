// Command booking-audit consumes booking events from RabbitMQ and appends
// them to the audit log.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/iliyamo/shareit/internal/config"
	"github.com/iliyamo/shareit/internal/queue"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	cfg := config.LoadAudit()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	consumer := &queue.AuditConsumer{URL: cfg.AMQPURL, LogPath: cfg.LogPath, Log: log}
	log.Info("audit consumer started", "queue", queue.BookingEventQueue, "log_path", cfg.LogPath)
	if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("audit consumer stopped", "err", err)
		os.Exit(1)
	}
}
