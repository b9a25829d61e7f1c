package producer

import (
	"context"
	"time"

	"go-worktrack/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	outboxBatchSize = 50
	// sent rows older than this are purged once per purgeEvery polls.
	sentRetention = 72 * time.Hour
	purgeEvery    = 1200
)

// ProcessOutboxEvents relays pending outbox rows to Kafka until ctx is cancelled.
func ProcessOutboxEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
	pollInterval time.Duration,
) {
	if pollInterval <= 0 {
		pollInterval = 3 * time.Second
	}

	log := logger.Named("kafka.producer.worker")
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	log.Info("outbox worker started", zap.Duration("poll_interval", pollInterval))

	polls := 0
	for {
		select {
		case <-ctx.Done():
			log.Info("outbox worker stopped")
			return
		case <-ticker.C:
			if _, err := ProcessPendingEvents(ctx, repo, writer, log); err != nil {
				log.Error("process outbox events failed", zap.Error(err))
			}
			polls++
			if polls%purgeEvery == 0 {
				PurgeSentEvents(ctx, repo, log, time.Now().Add(-sentRetention))
			}
		}
	}
}

// ProcessPendingEvents publishes one batch and reports how many rows were sent.
func ProcessPendingEvents(
	ctx context.Context,
	repo kafka.OutboxRepository,
	writer MessageWriter,
	logger *zap.Logger,
) (int, error) {
	events, err := repo.ListPending(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}

	if len(events) == 0 {
		return 0, nil
	}

	logger.Info("processing pending outbox events", zap.Int("count", len(events)))

	sent := 0
	for _, event := range events {
		if err := publishEvent(ctx, writer, event); err != nil {
			logger.Error("publish outbox event failed",
				zap.String("outbox_id", event.ID),
				zap.String("event_type", event.EventType),
				zap.String("topic", event.Topic),
				zap.Error(err),
			)
			if markErr := repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				logger.Error("mark outbox failed failed", zap.String("outbox_id", event.ID), zap.Error(markErr))
			}
			continue
		}

		if err := repo.MarkSent(ctx, event.ID); err != nil {
			logger.Error("mark outbox sent failed",
				zap.String("outbox_id", event.ID),
				zap.Error(err),
			)
			continue
		}

		sent++
		logger.Info("outbox event sent",
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		)
	}

	return sent, nil
}

// PurgeSentEvents drops relayed rows processed before cutoff. Failures are
// logged and retried on the next purge cycle.
func PurgeSentEvents(ctx context.Context, repo kafka.OutboxRepository, logger *zap.Logger, cutoff time.Time) int64 {
	n, err := repo.PurgeSent(ctx, cutoff)
	if err != nil {
		logger.Warn("purge sent outbox events failed", zap.Error(err))
		return 0
	}
	if n > 0 {
		logger.Info("purged sent outbox events", zap.Int64("count", n), zap.Time("before", cutoff))
	}
	return n
}
