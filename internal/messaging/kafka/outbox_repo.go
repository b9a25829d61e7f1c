package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxOutboxAttempts and are no longer polled.
	OutboxStatusDead = "dead"

	MaxOutboxAttempts = 10
)

// OutboxEvent is one row of outbox_events: a domain event written in the same
// transaction as the change it describes and relayed to Kafka later.
type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent marshals payload and wraps it in a pending outbox row.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	return OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       body,
		Status:        OutboxStatusPending,
	}, nil
}

func (e OutboxEvent) Validate() error {
	switch {
	case e.ID == "":
		return errors.New("outbox id is required")
	case e.AggregateType == "" || e.AggregateID == "":
		return errors.New("outbox aggregate is required")
	case e.EventType == "":
		return errors.New("outbox event type is required")
	case e.Topic == "":
		return errors.New("outbox topic is required")
	case len(e.Payload) == 0:
		return errors.New("outbox payload is required")
	case e.Status != OutboxStatusPending:
		return fmt.Errorf("new outbox rows must be pending, got %q", e.Status)
	}
	return nil
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	// MarkFailed schedules a retry with linear backoff, or parks the row as
	// dead once MaxOutboxAttempts is reached.
	MarkFailed(ctx context.Context, id string, reason string) error
	// PurgeSent deletes relayed rows processed before the cutoff.
	PurgeSent(ctx context.Context, before time.Time) (int64, error)
}

type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) conn() dbtx {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const insertOutbox = `INSERT INTO outbox_events
	(id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := event.Validate(); err != nil {
		return err
	}
	_, err := r.conn().ExecContext(ctx, insertOutbox,
		event.ID, event.RequestID, event.AggregateType, event.AggregateID,
		event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

const selectDueOutbox = `SELECT id::text, request_id, aggregate_type, aggregate_id, event_type,
	topic, payload, status, retry_count, COALESCE(next_retry_at, created_at)
FROM outbox_events
WHERE status IN ($1, $2) AND (next_retry_at IS NULL OR next_retry_at <= NOW())
ORDER BY created_at, id
LIMIT $3`

// ListPending returns pending rows and failed rows whose backoff has elapsed,
// oldest first.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	rows, err := r.conn().QueryContext(ctx, selectDueOutbox, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutboxEvent
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.RequestID, &e.AggregateType, &e.AggregateID, &e.EventType,
			&e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

const markOutboxSent = `UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1`

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, markOutboxSent, id, OutboxStatusSent)
	return err
}

const markOutboxFailed = `UPDATE outbox_events
SET retry_count = retry_count + 1,
	status = CASE WHEN retry_count + 1 >= $4 THEN $3 ELSE $2 END,
	error_message = LEFT($5, 500),
	next_retry_at = NOW() + ((retry_count + 1) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1`

func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, markOutboxFailed,
		id, OutboxStatusFailed, OutboxStatusDead, MaxOutboxAttempts, reason,
	)
	return err
}

const purgeOutboxSent = `DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2`

func (r *outboxRepository) PurgeSent(ctx context.Context, before time.Time) (int64, error) {
	res, err := r.conn().ExecContext(ctx, purgeOutboxSent, OutboxStatusSent, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
