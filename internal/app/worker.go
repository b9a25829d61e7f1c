package app

import (
	"context"

	"go-worktrack/internal/bootstrap"
	"go-worktrack/internal/config"
	"go-worktrack/internal/messaging/kafka"
	"go-worktrack/internal/messaging/kafka/producer"
	"go-worktrack/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until the process is signalled.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Database.MaxRetries, log)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, log, cfg.Kafka.PollInterval)
	}()

	bootstrap.WaitForSignal("outbox worker", bootstrap.NewAuditLogger("worker", log))
	cancel()
	<-done

	return nil
}
