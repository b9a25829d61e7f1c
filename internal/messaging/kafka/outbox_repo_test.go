package kafka_test

import (
	"context"
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"go-worktrack/internal/messaging/kafka"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestNewOutboxEvent(t *testing.T) {
	evt, err := kafka.NewOutboxEvent("rid-1", "leave", "12", "approval.decided", "decisions", map[string]any{"status": "approved"})

	assert.NoError(t, err)
	assert.NotEmpty(t, evt.ID)
	assert.Equal(t, kafka.OutboxStatusPending, evt.Status)
	assert.NoError(t, evt.Validate())

	var body map[string]string
	assert.NoError(t, json.Unmarshal(evt.Payload, &body))
	assert.Equal(t, "approved", body["status"])
}

func TestOutboxEvent_Validate(t *testing.T) {
	valid := kafka.OutboxEvent{
		ID: "x", AggregateType: "leave", AggregateID: "1", EventType: "approval.decided",
		Topic: "t", Payload: []byte("{}"), Status: kafka.OutboxStatusPending,
	}
	assert.NoError(t, valid.Validate())

	cases := map[string]func(e *kafka.OutboxEvent){
		"missing id":         func(e *kafka.OutboxEvent) { e.ID = "" },
		"missing aggregate":  func(e *kafka.OutboxEvent) { e.AggregateID = "" },
		"missing event type": func(e *kafka.OutboxEvent) { e.EventType = "" },
		"empty payload":      func(e *kafka.OutboxEvent) { e.Payload = nil },
		"not pending":        func(e *kafka.OutboxEvent) { e.Status = kafka.OutboxStatusSent },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := valid
			mutate(&e)
			assert.Error(t, e.Validate())
		})
	}
}

func TestOutboxRepository_CreateRejectsInvalid(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	assert.Error(t, kafka.NewOutboxRepository(db).Create(context.Background(), kafka.OutboxEvent{}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_CreateUsesTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	evt, _ := kafka.NewOutboxEvent("rid", "leave", "1", "approval.decided", "decisions", map[string]int{"a": 1})

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outbox_events")).
		WithArgs(evt.ID, "rid", "leave", "1", "approval.decided", "decisions", evt.Payload, kafka.OutboxStatusPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := db.Begin()
	assert.NoError(t, err)
	repo := kafka.NewOutboxRepository(db).WithTx(tx)
	assert.NoError(t, repo.Create(context.Background(), evt))
	assert.NoError(t, tx.Commit())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_ListPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "request_id", "aggregate_type", "aggregate_id", "event_type", "topic", "payload", "status", "retry_count", "next_retry_at"}).
		AddRow("e1", "rid-9", "leave", "4", "approval.decided", "decisions", []byte(`{}`), "pending", 0, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM outbox_events")).
		WithArgs(kafka.OutboxStatusPending, kafka.OutboxStatusFailed, 10).
		WillReturnRows(rows)

	got, err := kafka.NewOutboxRepository(db).ListPending(context.Background(), 10)

	assert.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "4", got[0].AggregateID)
	assert.Equal(t, "rid-9", got[0].RequestID)
}

func TestOutboxRepository_MarkFailedParksAfterMaxAttempts(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE outbox_events")).
		WithArgs("e1", kafka.OutboxStatusFailed, kafka.OutboxStatusDead, kafka.MaxOutboxAttempts, "timeout").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, kafka.NewOutboxRepository(db).MarkFailed(context.Background(), "e1", "timeout"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOutboxRepository_PurgeSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	cutoff := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM outbox_events WHERE status = $1 AND processed_at < $2")).
		WithArgs(kafka.OutboxStatusSent, cutoff).
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, err := kafka.NewOutboxRepository(db).PurgeSent(context.Background(), cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
