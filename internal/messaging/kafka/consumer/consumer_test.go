package consumer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-worktrack/internal/events"
	"go-worktrack/internal/messaging/kafka/consumer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeReader struct {
	msgs      []kafkago.Message
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafkago.Message, error) {
	if len(r.msgs) == 0 {
		r.cancel()
		<-ctx.Done()
		return kafkago.Message{}, ctx.Err()
	}
	msg := r.msgs[0]
	r.msgs = r.msgs[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(ctx context.Context, msgs ...kafkago.Message) error {
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

// fakeHandler fails the first failures[id] calls for an event, then succeeds.
type fakeHandler struct {
	failures map[string]int
	calls    map[string]int
	handled  []string
	onFail   func()
}

func (h *fakeHandler) HandleApprovalDecided(ctx context.Context, event events.ApprovalDecidedEvent) error {
	if h.calls == nil {
		h.calls = map[string]int{}
	}
	h.calls[event.EventID]++
	if h.calls[event.EventID] <= h.failures[event.EventID] {
		if h.onFail != nil {
			h.onFail()
		}
		return errors.New("db down")
	}
	h.handled = append(h.handled, event.EventID)
	return nil
}

func message(t *testing.T, offset int64, event events.ApprovalDecidedEvent) kafkago.Message {
	t.Helper()
	body, err := json.Marshal(event)
	assert.NoError(t, err)
	return kafkago.Message{Offset: offset, Value: body}
}

var fastRetry = consumer.RetryPolicy{Attempts: 3, Backoff: time.Millisecond}

func TestConsumeApprovalDecisions(t *testing.T) {
	ok := events.ApprovalDecidedEvent{EventID: "evt-1", Kind: events.KindLeave, ReferenceID: 3, EmployeeID: 8, Status: "approved"}
	flaky := events.ApprovalDecidedEvent{EventID: "evt-2", Kind: events.KindExpense, ReferenceID: 4, EmployeeID: 8, Status: "rejected"}
	broken := events.ApprovalDecidedEvent{EventID: "evt-3", Kind: events.KindLeave, ReferenceID: 5, EmployeeID: 9, Status: "approved"}

	t.Run("transient failure is retried before moving on", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{
			message(t, 1, ok),
			{Offset: 2, Value: []byte("not-json")},
			message(t, 3, flaky),
			message(t, 4, ok),
		}}
		handler := &fakeHandler{failures: map[string]int{"evt-2": 2}}

		consumer.ConsumeApprovalDecisions(ctx, reader, handler, fastRetry, zap.NewNop())

		assert.Equal(t, []string{"evt-1", "evt-2", "evt-1"}, handler.handled)
		assert.Equal(t, 3, handler.calls["evt-2"])
		assert.Equal(t, []int64{1, 2, 3, 4}, reader.committed)
	})

	t.Run("exhausted retries drop the message", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{message(t, 7, broken), message(t, 8, ok)}}
		handler := &fakeHandler{failures: map[string]int{"evt-3": 100}}

		consumer.ConsumeApprovalDecisions(ctx, reader, handler, fastRetry, zap.NewNop())

		assert.Equal(t, fastRetry.Attempts, handler.calls["evt-3"])
		assert.Equal(t, []string{"evt-1"}, handler.handled)
		assert.Equal(t, []int64{7, 8}, reader.committed)
	})

	t.Run("shutdown mid-retry leaves the message uncommitted", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		reader := &fakeReader{cancel: cancel, msgs: []kafkago.Message{message(t, 1, ok), message(t, 2, broken)}}
		handler := &fakeHandler{failures: map[string]int{"evt-3": 100}, onFail: cancel}

		consumer.ConsumeApprovalDecisions(ctx, reader, handler, consumer.RetryPolicy{Attempts: 5, Backoff: time.Hour}, zap.NewNop())

		assert.Equal(t, 1, handler.calls["evt-3"])
		assert.Equal(t, []int64{1}, reader.committed)
	})
}
