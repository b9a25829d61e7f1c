package expense

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-worktrack/internal/events"
	expenseerrors "go-worktrack/internal/expense/errors"
	"go-worktrack/internal/messaging/kafka"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/dateutil"
	"go-worktrack/internal/shared/storage"
	"go-worktrack/internal/shared/textutil"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultPageSize = 15

type Service interface {
	CreateType(ctx context.Context, req ExpenseTypeRequest) (ExpenseType, error)
	UpdateType(ctx context.Context, id int64, req ExpenseTypeRequest) (ExpenseType, error)
	ListTypes(ctx context.Context) ([]ExpenseType, error)
	DeleteType(ctx context.Context, id int64) error
	DeleteAllTypes(ctx context.Context) (int64, error)

	Submit(ctx context.Context, actor contextutil.Actor, req SubmitExpenseRequest, invoice *storage.Upload) (ExpenseResponse, error)
	List(ctx context.Context, q ListQuery, page int) ([]ExpenseResponse, int64, error)
	ListOwn(ctx context.Context, actor contextutil.Actor, q ListQuery, page int) ([]ExpenseResponse, int64, error)
	GetByID(ctx context.Context, actor contextutil.Actor, id int64) (ExpenseResponse, error)
	Decide(ctx context.Context, actor contextutil.Actor, id int64, req DecideRequest) (ExpenseResponse, error)
	DeleteOwn(ctx context.Context, actor contextutil.Actor, id int64) error
	Export(ctx context.Context, q ListQuery) (*bytes.Buffer, string, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	store  storage.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("expense.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("expense.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		store:  store,
		now:    time.Now,
		logger: l,
	}
}

func (s *service) CreateType(ctx context.Context, req ExpenseTypeRequest) (ExpenseType, error) {
	et := &ExpenseType{Name: textutil.TitleName(req.Name)}
	if et.Name == "" {
		return ExpenseType{}, apperror.RequiredField("Name")
	}
	if err := s.repo.CreateType(ctx, et); err != nil {
		s.logger.Warn("create expense type failed", zap.String("name", et.Name), zap.Error(err))
		return ExpenseType{}, mapTypeError(err)
	}
	s.logger.Info("create expense type success", zap.Int64("expense_type_id", et.ID), zap.String("name", et.Name))
	return *et, nil
}

func (s *service) UpdateType(ctx context.Context, id int64, req ExpenseTypeRequest) (ExpenseType, error) {
	et := &ExpenseType{ID: id, Name: textutil.TitleName(req.Name)}
	if err := s.repo.UpdateType(ctx, et); err != nil {
		s.logger.Warn("update expense type failed", zap.Int64("expense_type_id", id), zap.Error(err))
		return ExpenseType{}, mapTypeError(err)
	}
	s.logger.Info("update expense type success", zap.Int64("expense_type_id", id))
	return *et, nil
}

func (s *service) ListTypes(ctx context.Context) ([]ExpenseType, error) {
	types, err := s.repo.FindTypes(ctx)
	if err != nil {
		s.logger.Error("list expense types failed", zap.Error(err))
		return nil, err
	}
	if types == nil {
		types = []ExpenseType{}
	}
	return types, nil
}

func (s *service) DeleteType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteType(ctx, id); err != nil {
		s.logger.Warn("delete expense type failed", zap.Int64("expense_type_id", id), zap.Error(err))
		return mapTypeError(err)
	}
	s.logger.Info("delete expense type success", zap.Int64("expense_type_id", id))
	return nil
}

func (s *service) DeleteAllTypes(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAllTypes(ctx)
	if err != nil {
		s.logger.Error("bulk delete expense types failed", zap.Error(err))
		return 0, err
	}
	s.logger.Info("bulk delete expense types success", zap.Int64("deleted", n))
	return n, nil
}

func (s *service) Submit(ctx context.Context, actor contextutil.Actor, req SubmitExpenseRequest, invoice *storage.Upload) (ExpenseResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit expense requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", actor.EmployeeID),
		zap.String("amount", req.Amount),
	)

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || amount.IsNegative() {
		s.logger.Warn("submit expense invalid amount", zap.String("amount", req.Amount))
		return ExpenseResponse{}, expenseerrors.ErrInvalidAmount
	}
	expenseDate, err := dateutil.ParseDate(req.ExpenseDate)
	if err != nil {
		return ExpenseResponse{}, expenseerrors.ErrInvalidDateFormat
	}

	e := &Expense{
		ExpenseTypeID: req.ExpenseTypeID,
		EmployeeID:    actor.EmployeeID,
		Description:   textutil.Truncate(strings.TrimSpace(req.Description), maxDescriptionLen),
		Amount:        amount.Round(2),
		ExpenseDate:   expenseDate,
		ManagerID:     req.ManagerID,
		Status:        StatusPending,
		InsertedAt:    s.now(),
	}
	if actor.IsAdmin() && req.EmployeeID > 0 && req.EmployeeID != actor.EmployeeID {
		givenBy := actor.EmployeeID
		e.EmployeeID = req.EmployeeID
		e.GivenByID = &givenBy
	}

	if invoice != nil {
		contentType, err := storage.Sniff(invoice.Content)
		if err != nil {
			s.logger.Error("submit expense sniff invoice failed", zap.Error(err))
			return ExpenseResponse{}, err
		}
		if !storage.IsImage(contentType) && !storage.IsPDF(contentType) {
			s.logger.Warn("submit expense invoice rejected", zap.String("content_type", contentType))
			return ExpenseResponse{}, expenseerrors.ErrInvalidInvoice
		}
		obj, err := s.store.Save(ctx, storage.ClassInvoice, *invoice)
		if err != nil {
			s.logger.Error("submit expense store invoice failed", zap.Error(err))
			return ExpenseResponse{}, err
		}
		e.InvoicePath = obj.Path
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit expense begin tx failed", zap.Error(err))
		s.discard(ctx, e.InvoicePath)
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, e); err != nil {
		s.logger.Error("submit expense persist failed", zap.Error(err))
		s.discard(ctx, e.InvoicePath)
		return ExpenseResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit expense commit failed", zap.Error(err))
		s.discard(ctx, e.InvoicePath)
		return ExpenseResponse{}, err
	}

	s.logger.Info("submit expense success",
		zap.String("request_id", rid),
		zap.Int64("expense_id", e.ID),
		zap.Int64("employee_id", e.EmployeeID),
		zap.Bool("has_invoice", e.InvoicePath != ""),
	)
	return mapToResponse(ExpenseRow{Expense: *e}), nil
}

func (s *service) buildFilter(q ListQuery, page int) (ListFilter, error) {
	from, err := dateutil.ParseOptional(q.FromDate)
	if err != nil {
		return ListFilter{}, expenseerrors.ErrInvalidDateFormat
	}
	to, err := dateutil.ParseOptional(q.ToDate)
	if err != nil {
		return ListFilter{}, expenseerrors.ErrInvalidDateFormat
	}
	if page < 1 {
		page = 1
	}
	return ListFilter{
		EmployeeID:    q.EmployeeID,
		ExpenseTypeID: q.ExpenseTypeID,
		Status:        q.Status,
		FromDate:      from,
		ToDate:        to,
		SortBy:        strings.ToLower(q.SortBy),
		SortDir:       strings.ToLower(q.SortDir),
		Page:          page,
		PageSize:      DefaultPageSize,
	}, nil
}

func (s *service) List(ctx context.Context, q ListQuery, page int) ([]ExpenseResponse, int64, error) {
	filter, err := s.buildFilter(q, page)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, filter)
}

func (s *service) ListOwn(ctx context.Context, actor contextutil.Actor, q ListQuery, page int) ([]ExpenseResponse, int64, error) {
	filter, err := s.buildFilter(q, page)
	if err != nil {
		return nil, 0, err
	}
	filter.EmployeeID = actor.EmployeeID
	return s.list(ctx, filter)
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]ExpenseResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list expenses failed", zap.Error(err))
		return nil, 0, err
	}
	resp := make([]ExpenseResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

func (s *service) GetByID(ctx context.Context, actor contextutil.Actor, id int64) (ExpenseResponse, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get expense failed", zap.Int64("expense_id", id), zap.Error(err))
		}
		return ExpenseResponse{}, mapRepositoryError(err)
	}
	if !actor.IsAdmin() && row.EmployeeID != actor.EmployeeID {
		return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
	}
	return mapToResponse(*row), nil
}

func (s *service) Decide(ctx context.Context, actor contextutil.Actor, id int64, req DecideRequest) (ExpenseResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	d := Decision{
		Status:    req.Status,
		ManagerID: actor.EmployeeID,
		Comments:  textutil.Truncate(strings.TrimSpace(req.Comments), maxCommentsLen),
	}
	if req.Status == StatusApproved {
		now := s.now()
		d.ApprovedAt = &now
	}
	s.logger.Debug("decide expense requested",
		zap.String("request_id", rid),
		zap.Int64("expense_id", id),
		zap.Int64("manager_id", actor.EmployeeID),
		zap.String("status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide expense begin tx failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	n, err := qtx.Decide(ctx, id, d)
	if err != nil {
		s.logger.Error("decide expense update failed", zap.Int64("expense_id", id), zap.Error(err))
		return ExpenseResponse{}, err
	}

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("decide expense refused, not found", zap.Int64("expense_id", id))
			return ExpenseResponse{}, expenseerrors.ErrExpenseNotFound
		}
		s.logger.Error("decide expense reload failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("decide expense refused, already processed",
			zap.Int64("expense_id", id),
			zap.String("status", row.Status),
		)
		return ExpenseResponse{}, expenseerrors.ErrAlreadyProcessed
	}

	evt := events.NewApprovalDecided(events.KindExpense, id, row.EmployeeID, req.Status, actor.EmployeeID, d.Comments)
	evt.RequestID = rid
	outboxEvent, err := kafka.NewOutboxEvent(rid, "expense", strconv.FormatInt(id, 10),
		events.EventApprovalDecided, events.ApprovalDecidedTopic, evt)
	if err != nil {
		s.logger.Error("decide expense build event failed", zap.Error(err))
		return ExpenseResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("decide expense outbox write failed", zap.Error(err))
		return ExpenseResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide expense commit failed", zap.Error(err))
		return ExpenseResponse{}, err
	}

	s.logger.Info("decide expense success",
		zap.String("request_id", rid),
		zap.Int64("expense_id", id),
		zap.String("status", req.Status),
		zap.String("event_id", evt.EventID),
	)
	return mapToResponse(*row), nil
}

func (s *service) DeleteOwn(ctx context.Context, actor contextutil.Actor, id int64) error {
	s.logger.Debug("delete own expense requested", zap.Int64("expense_id", id), zap.Int64("employee_id", actor.EmployeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete expense begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	e, err := qtx.FindOwned(ctx, id, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("delete expense refused, not found or foreign",
				zap.Int64("expense_id", id),
				zap.Int64("employee_id", actor.EmployeeID),
			)
		}
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete expense failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete expense commit failed", zap.Error(err))
		return err
	}

	s.discard(ctx, e.InvoicePath)
	s.logger.Info("delete expense success", zap.Int64("expense_id", id))
	return nil
}

// discard removes a stored invoice. Failures are logged only.
func (s *service) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Remove(ctx, path); err != nil {
		s.logger.Warn("remove invoice failed", zap.String("path", path), zap.Error(err))
	}
}

func mapToResponse(row ExpenseRow) ExpenseResponse {
	resp := ExpenseResponse{
		ID:               row.ID,
		ExpenseTypeID:    row.ExpenseTypeID,
		ExpenseType:      row.ExpenseTypeName,
		EmployeeID:       row.EmployeeID,
		EmployeeName:     strings.TrimSpace(row.FirstName + " " + row.LastName),
		Amount:           row.Amount.StringFixed(2),
		ExpenseDate:      dateutil.Format(row.ExpenseDate),
		Description:      row.Description,
		InvoicePath:      row.InvoicePath,
		Status:           row.Status,
		ApproverComments: row.ApproverComments,
		ManagerID:        row.ManagerID,
		ApprovedBy:       row.ApprovedBy,
		ApprovedByName:   strings.TrimSpace(row.ApproverFirstName + " " + row.ApproverLastName),
		GivenByID:        row.GivenByID,
		InsertedAt:       row.InsertedAt.Format(time.RFC3339),
	}
	if row.ApprovedAt != nil {
		resp.ApprovedAt = row.ApprovedAt.Format(time.RFC3339)
	}
	return resp
}
