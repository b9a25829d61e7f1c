package events_test

import (
	"testing"

	"go-worktrack/internal/events"

	"github.com/stretchr/testify/assert"
)

func TestNewApprovalDecided(t *testing.T) {
	a := events.NewApprovalDecided(events.KindLeave, 12, 7, "approved", 1, "enjoy")
	b := events.NewApprovalDecided(events.KindLeave, 12, 7, "approved", 1, "enjoy")

	assert.Equal(t, events.EventApprovalDecided, a.EventType)
	assert.Equal(t, int64(12), a.ReferenceID)
	assert.Equal(t, int64(7), a.EmployeeID)
	assert.NotEmpty(t, a.EventID)
	assert.NotEqual(t, a.EventID, b.EventID)
	assert.False(t, a.OccurredAt.IsZero())
}
