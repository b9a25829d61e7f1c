package app

import (
	"context"

	"go-worktrack/internal/bootstrap"
	"go-worktrack/internal/config"
	"go-worktrack/internal/messaging/kafka/consumer"
	"go-worktrack/internal/notification"
	"go-worktrack/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer turns approval decisions into in-app notifications until the
// process is signalled.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database, log)
	if err != nil {
		return err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	notificationService := notification.NewService(notification.NewRepository(gormDB), logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Kafka.Brokers,
		Topic:          cfg.Kafka.DecisionTopic,
		GroupID:        cfg.Kafka.ConsumerGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeApprovalDecisions(ctx, reader, notificationService, consumer.RetryPolicy{
			Attempts: cfg.Kafka.HandleAttempts,
			Backoff:  cfg.Kafka.HandleBackoff,
		}, log)
	}()

	bootstrap.WaitForSignal("decision consumer", bootstrap.NewAuditLogger("consumer", log))
	cancel()
	<-done

	return nil
}
