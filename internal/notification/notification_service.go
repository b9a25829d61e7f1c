package notification

import (
	"context"
	"fmt"
	"time"

	"go-worktrack/internal/events"
	notificationerrors "go-worktrack/internal/notification/errors"
	"go-worktrack/internal/shared/contextutil"

	"go.uber.org/zap"
)

const DefaultPageSize = 20

type Service interface {
	HandleApprovalDecided(ctx context.Context, event events.ApprovalDecidedEvent) error
	ListOwn(ctx context.Context, actor contextutil.Actor, page int) ([]NotificationResponse, int64, error)
	MarkRead(ctx context.Context, actor contextutil.Actor, id int64) error
}

type service struct {
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{repo: repo, now: time.Now, logger: l}
}

// DecisionMessage renders the text shown to the employee for a decision.
func DecisionMessage(kind string, referenceID int64, status string) string {
	subject := "request"
	switch kind {
	case events.KindLeave:
		subject = "leave request"
	case events.KindExpense:
		subject = "expense claim"
	}
	return fmt.Sprintf("Your %s #%d was %s", subject, referenceID, status)
}

// HandleApprovalDecided stores one notification per event. Redelivered
// events are accepted without writing a second row.
func (s *service) HandleApprovalDecided(ctx context.Context, event events.ApprovalDecidedEvent) error {
	n := &Notification{
		EmployeeID:  event.EmployeeID,
		EventID:     event.EventID,
		Kind:        event.Kind,
		ReferenceID: event.ReferenceID,
		Message:     DecisionMessage(event.Kind, event.ReferenceID, event.Status),
	}
	created, err := s.repo.Create(ctx, n)
	if err != nil {
		s.logger.Error("create notification failed",
			zap.String("event_id", event.EventID),
			zap.Int64("employee_id", event.EmployeeID),
			zap.Error(err),
		)
		return err
	}
	if !created {
		s.logger.Info("duplicate decision event ignored", zap.String("event_id", event.EventID))
		return nil
	}
	s.logger.Info("notification created",
		zap.Int64("notification_id", n.ID),
		zap.Int64("employee_id", n.EmployeeID),
	)
	return nil
}

func (s *service) ListOwn(ctx context.Context, actor contextutil.Actor, page int) ([]NotificationResponse, int64, error) {
	rows, total, err := s.repo.FindOwn(ctx, actor.EmployeeID, page, DefaultPageSize)
	if err != nil {
		s.logger.Error("list notifications failed", zap.Int64("employee_id", actor.EmployeeID), zap.Error(err))
		return nil, 0, err
	}
	resp := make([]NotificationResponse, len(rows))
	for i, n := range rows {
		resp[i] = mapNotification(n)
	}
	return resp, total, nil
}

// MarkRead is idempotent for the owner; foreign or unknown ids are not found.
func (s *service) MarkRead(ctx context.Context, actor contextutil.Actor, id int64) error {
	n, err := s.repo.MarkRead(ctx, id, actor.EmployeeID, s.now())
	if err != nil {
		s.logger.Error("mark notification read failed", zap.Int64("notification_id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return nil
	}

	exists, err := s.repo.ExistsOwned(ctx, id, actor.EmployeeID)
	if err != nil {
		return err
	}
	if !exists {
		return notificationerrors.ErrNotificationNotFound
	}
	return nil
}

func mapNotification(n Notification) NotificationResponse {
	resp := NotificationResponse{
		ID:          n.ID,
		Kind:        n.Kind,
		ReferenceID: n.ReferenceID,
		Message:     n.Message,
		Read:        n.ReadAt != nil,
		CreatedAt:   n.CreatedAt.Format(time.RFC3339),
	}
	if n.ReadAt != nil {
		resp.ReadAt = n.ReadAt.Format(time.RFC3339)
	}
	return resp
}
