package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ApprovalDecidedTopic = "worktrack.approval.decided.v1"
	EventApprovalDecided = "approval.decided"
)

const (
	KindLeave   = "leave"
	KindExpense = "expense"
)

// ApprovalDecidedEvent is emitted once per leave or expense decision.
type ApprovalDecidedEvent struct {
	EventID     string    `json:"event_id"`
	EventType   string    `json:"event_type"`
	RequestID   string    `json:"request_id,omitempty"`
	Kind        string    `json:"kind"`
	ReferenceID int64     `json:"reference_id"`
	EmployeeID  int64     `json:"employee_id"`
	Status      string    `json:"status"`
	DecidedBy   int64     `json:"decided_by"`
	Comments    string    `json:"comments,omitempty"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewApprovalDecided(kind string, referenceID, employeeID int64, status string, decidedBy int64, comments string) ApprovalDecidedEvent {
	return ApprovalDecidedEvent{
		EventID:     uuid.NewString(),
		EventType:   EventApprovalDecided,
		Kind:        kind,
		ReferenceID: referenceID,
		EmployeeID:  employeeID,
		Status:      status,
		DecidedBy:   decidedBy,
		Comments:    comments,
		OccurredAt:  time.Now().UTC(),
	}
}
