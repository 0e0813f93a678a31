package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/magabrotheeeer/milk-delivery/internal/config"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/sl"
	"github.com/magabrotheeeer/milk-delivery/internal/lib/smtp"
	senderservice "github.com/magabrotheeeer/milk-delivery/internal/services/sender"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	logger.Info("starting notification-sender", slog.String("env", cfg.Env))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conn, ch, err := rabbitmq.Connect(cfg.AddressRabbit)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = ch.Close()
		_ = conn.Close()
	}()

	if err := rabbitmq.SetupQueues(ch); err != nil {
		logger.Error("failed to declare queues", sl.Err(err))
		os.Exit(1)
	}

	transport := smtp.NewTransport(cfg, logger)
	sender := senderservice.NewSenderService(transport, logger)

	msgs, err := ch.Consume(rabbitmq.OrdersQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to start consuming", sl.Err(err))
		os.Exit(1)
	}

	logger.Info("notification-sender is waiting for order events")
	for {
		select {
		case <-ctx.Done():
			logger.Info("notification-sender stopped gracefully")
			return
		case msg, ok := <-msgs:
			if !ok {
				logger.Error("rabbitmq channel closed")
				return
			}
			if err := sender.HandleMessage(msg.Body); err != nil {
				logger.Error("failed to handle order event", sl.Err(err))
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
	}
}
