package main

import (
	"context"
	"os/signal"
	"syscall"

	"guesthouse/internal/notify"
	"guesthouse/pkg/config"
	"guesthouse/pkg/kafka"
)

const (
	ServiceName   = "notifier"
	consumerGroup = "booking-notifier"
)

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Notifier service")

	deliverer := notify.NewDeliverer(cfg.Log, &notify.LogSender{Log: cfg.Log}, cfg.CredentialSealKey)
	consumer, err := kafka.NewConsumer(cfg.KafkaBrokers, cfg.KafkaNotificationTopic, consumerGroup, deliverer.Handle)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize consumer", "error", err)
	}
	defer func() {
		if err := consumer.Close(); err != nil {
			cfg.Log.Warn("Failed to close consumer", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := consumer.Start(ctx); err != nil && ctx.Err() == nil {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}

	cfg.Log.Info("Notifier service stopped")
}
