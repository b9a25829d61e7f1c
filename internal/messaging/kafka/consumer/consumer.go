package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-worktrack/internal/events"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const maxBackoff = 30 * time.Second

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// DecisionHandler reacts to a decided leave or expense request.
type DecisionHandler interface {
	HandleApprovalDecided(ctx context.Context, event events.ApprovalDecidedEvent) error
}

// RetryPolicy controls how often a failing message is handled again before it
// is dropped. The wait doubles after every attempt, up to 30s.
type RetryPolicy struct {
	Attempts int
	Backoff  time.Duration
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.Attempts < 1 {
		p.Attempts = 1
	}
	if p.Backoff <= 0 {
		p.Backoff = 500 * time.Millisecond
	}
	return p
}

// ConsumeApprovalDecisions handles decision events in partition order. A
// handler failure is retried in place, since committing any later offset
// would skip it. Once the attempts are exhausted the message is logged and
// committed. Cancelling ctx mid-retry leaves it uncommitted.
func ConsumeApprovalDecisions(
	ctx context.Context,
	reader MessageReader,
	handler DecisionHandler,
	retry RetryPolicy,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.approval_decided")
	retry = retry.normalized()
	log.Info("approval decision consumer started", zap.Int("handle_attempts", retry.Attempts))

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("approval decision consumer stopped")
				return
			}
			log.Error("fetch approval decision message failed", zap.Error(err))
			continue
		}

		var event events.ApprovalDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil || event.EventID == "" {
			log.Error("decode approval decision event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := handleWithRetry(ctx, handler, event, retry, log); err != nil {
			if ctx.Err() != nil {
				log.Info("approval decision consumer stopped mid-retry", zap.String("event_id", event.EventID))
				return
			}
			log.Error("approval decision dropped after retries",
				zap.String("event_id", event.EventID),
				zap.String("kind", event.Kind),
				zap.Int64("reference_id", event.ReferenceID),
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit approval decision message failed", zap.Error(err))
			continue
		}

		log.Info("approval decision handled",
			zap.String("event_id", event.EventID),
			zap.String("kind", event.Kind),
			zap.Int64("employee_id", event.EmployeeID),
		)
	}
}

func handleWithRetry(
	ctx context.Context,
	handler DecisionHandler,
	event events.ApprovalDecidedEvent,
	retry RetryPolicy,
	log *zap.Logger,
) error {
	wait := retry.Backoff
	var err error
	for attempt := 1; ; attempt++ {
		if err = handler.HandleApprovalDecided(ctx, event); err == nil {
			return nil
		}
		if attempt >= retry.Attempts {
			return err
		}
		log.Warn("handle approval decision failed, retrying",
			zap.String("event_id", event.EventID),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
		wait = min(wait*2, maxBackoff)
	}
}
