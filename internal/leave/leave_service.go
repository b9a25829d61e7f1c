package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-worktrack/internal/events"
	leaveerrors "go-worktrack/internal/leave/errors"
	"go-worktrack/internal/messaging/kafka"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/dateutil"
	"go-worktrack/internal/shared/textutil"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	DefaultPageSize = 10
	LeaveTypesKey   = "leave_types:all"
	typesCacheTTL   = time.Hour
)

type Service interface {
	CreateType(ctx context.Context, req LeaveTypeRequest) (LeaveType, error)
	UpdateType(ctx context.Context, id int64, req LeaveTypeRequest) (LeaveType, error)
	ListTypes(ctx context.Context) ([]LeaveType, error)
	DeleteType(ctx context.Context, id int64) error
	DeleteAllTypes(ctx context.Context) (int64, error)

	Submit(ctx context.Context, actor contextutil.Actor, req SubmitLeaveRequest) (LeaveResponse, error)
	List(ctx context.Context, q ListQuery, page int) ([]LeaveResponse, int64, error)
	ListOwn(ctx context.Context, actor contextutil.Actor, q ListQuery, page int) ([]LeaveResponse, int64, error)
	Decide(ctx context.Context, actor contextutil.Actor, id int64, req DecideRequest) (LeaveResponse, error)
	DeleteOwn(ctx context.Context, actor contextutil.Actor, id int64) error
	Summary(ctx context.Context, q SummaryQuery) ([]SummaryResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, outbox kafka.OutboxRepository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		now:    time.Now,
		logger: l,
	}
}

func (s *service) CreateType(ctx context.Context, req LeaveTypeRequest) (LeaveType, error) {
	lt := &LeaveType{Name: strings.TrimSpace(req.Name)}
	s.logger.Debug("create leave type requested", zap.String("name", lt.Name))

	if err := s.repo.CreateType(ctx, lt); err != nil {
		s.logger.Warn("create leave type failed", zap.String("name", lt.Name), zap.Error(err))
		return LeaveType{}, mapTypeError(err)
	}

	s.invalidateTypes(ctx)
	s.logger.Info("create leave type success", zap.Int64("leave_type_id", lt.ID))
	return *lt, nil
}

func (s *service) UpdateType(ctx context.Context, id int64, req LeaveTypeRequest) (LeaveType, error) {
	lt := &LeaveType{ID: id, Name: strings.TrimSpace(req.Name)}
	if err := s.repo.UpdateType(ctx, lt); err != nil {
		s.logger.Warn("update leave type failed", zap.Int64("leave_type_id", id), zap.Error(err))
		return LeaveType{}, mapTypeError(err)
	}

	s.invalidateTypes(ctx)
	s.logger.Info("update leave type success", zap.Int64("leave_type_id", id))
	return *lt, nil
}

func (s *service) ListTypes(ctx context.Context) ([]LeaveType, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, LeaveTypesKey).Result(); err == nil {
			var types []LeaveType
			if json.Unmarshal([]byte(cached), &types) == nil {
				return types, nil
			}
		}
	}

	v, err, _ := s.sf.Do(LeaveTypesKey, func() (interface{}, error) {
		types, err := s.repo.FindTypes(ctx)
		if err != nil {
			return nil, err
		}
		if types == nil {
			types = []LeaveType{}
		}
		if s.rdb != nil {
			if body, err := json.Marshal(types); err == nil {
				if err := s.rdb.Set(ctx, LeaveTypesKey, body, typesCacheTTL).Err(); err != nil {
					s.logger.Warn("cache leave types failed", zap.Error(err))
				}
			}
		}
		return types, nil
	})
	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}
	return v.([]LeaveType), nil
}

func (s *service) DeleteType(ctx context.Context, id int64) error {
	if err := s.repo.DeleteType(ctx, id); err != nil {
		s.logger.Warn("delete leave type failed", zap.Int64("leave_type_id", id), zap.Error(err))
		return mapTypeError(err)
	}
	s.invalidateTypes(ctx)
	s.logger.Info("delete leave type success", zap.Int64("leave_type_id", id))
	return nil
}

func (s *service) DeleteAllTypes(ctx context.Context) (int64, error) {
	n, err := s.repo.DeleteAllTypes(ctx)
	if err != nil {
		s.logger.Error("bulk delete leave types failed", zap.Error(err))
		return 0, err
	}
	s.invalidateTypes(ctx)
	s.logger.Info("bulk delete leave types success", zap.Int64("deleted", n))
	return n, nil
}

func (s *service) Submit(ctx context.Context, actor contextutil.Actor, req SubmitLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("submit leave requested",
		zap.String("request_id", rid),
		zap.Int64("employee_id", actor.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	end, err := dateutil.ParseDate(req.EndDate)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidDateFormat
	}
	if start.After(end) {
		s.logger.Warn("submit leave invalid range",
			zap.Int64("employee_id", actor.EmployeeID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidDateRange
	}

	l := &LeaveRequest{
		LeaveTypeID: req.LeaveTypeID,
		EmployeeID:  actor.EmployeeID,
		StartDate:   start,
		EndDate:     end,
		Description: textutil.Truncate(strings.TrimSpace(req.Description), maxDescriptionLen),
		ManagerID:   req.ManagerID,
		Status:      StatusPending,
		InsertedAt:  s.now(),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.Error(err))
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success",
		zap.String("request_id", rid),
		zap.Int64("leave_id", l.ID),
		zap.Int64("employee_id", actor.EmployeeID),
	)
	return mapToResponse(LeaveRow{LeaveRequest: *l}), nil
}

func (s *service) buildFilter(q ListQuery, page int) (ListFilter, error) {
	from, err := dateutil.ParseOptional(q.FromDate)
	if err != nil {
		return ListFilter{}, leaveerrors.ErrInvalidDateFormat
	}
	to, err := dateutil.ParseOptional(q.ToDate)
	if err != nil {
		return ListFilter{}, leaveerrors.ErrInvalidDateFormat
	}
	if page < 1 {
		page = 1
	}
	return ListFilter{
		EmployeeID:  q.EmployeeID,
		LeaveTypeID: q.LeaveTypeID,
		Status:      q.Status,
		FromDate:    from,
		ToDate:      to,
		SortBy:      strings.ToLower(q.SortBy),
		SortDir:     strings.ToLower(q.SortDir),
		Page:        page,
		PageSize:    DefaultPageSize,
	}, nil
}

func (s *service) List(ctx context.Context, q ListQuery, page int) ([]LeaveResponse, int64, error) {
	filter, err := s.buildFilter(q, page)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, filter)
}

func (s *service) ListOwn(ctx context.Context, actor contextutil.Actor, q ListQuery, page int) ([]LeaveResponse, int64, error) {
	filter, err := s.buildFilter(q, page)
	if err != nil {
		return nil, 0, err
	}
	filter.EmployeeID = actor.EmployeeID
	return s.list(ctx, filter)
}

func (s *service) list(ctx context.Context, filter ListFilter) ([]LeaveResponse, int64, error) {
	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, 0, err
	}
	resp := make([]LeaveResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapToResponse(row)
	}
	return resp, total, nil
}

func (s *service) Decide(ctx context.Context, actor contextutil.Actor, id int64, req DecideRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	comments := textutil.Truncate(strings.TrimSpace(req.Comments), maxCommentsLen)
	s.logger.Debug("decide leave requested",
		zap.String("request_id", rid),
		zap.Int64("leave_id", id),
		zap.Int64("manager_id", actor.EmployeeID),
		zap.String("status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	n, err := qtx.Decide(ctx, id, req.Status, actor.EmployeeID, comments)
	if err != nil {
		s.logger.Error("decide leave update failed", zap.Int64("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	row, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("decide leave refused, not found", zap.Int64("leave_id", id))
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		s.logger.Error("decide leave reload failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if n == 0 {
		s.logger.Warn("decide leave refused, already processed",
			zap.Int64("leave_id", id),
			zap.String("status", row.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrAlreadyProcessed
	}

	evt := events.NewApprovalDecided(events.KindLeave, id, row.EmployeeID, req.Status, actor.EmployeeID, comments)
	evt.RequestID = rid
	outboxEvent, err := kafka.NewOutboxEvent(rid, "leave_request", strconv.FormatInt(id, 10),
		events.EventApprovalDecided, events.ApprovalDecidedTopic, evt)
	if err != nil {
		s.logger.Error("decide leave build event failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
		s.logger.Error("decide leave outbox write failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("decide leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("decide leave success",
		zap.String("request_id", rid),
		zap.Int64("leave_id", id),
		zap.String("status", req.Status),
		zap.String("event_id", evt.EventID),
	)
	return mapToResponse(*row), nil
}

func (s *service) DeleteOwn(ctx context.Context, actor contextutil.Actor, id int64) error {
	s.logger.Debug("delete own leave requested", zap.Int64("leave_id", id), zap.Int64("employee_id", actor.EmployeeID))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	n, err := s.repo.WithTx(tx).DeleteOwned(ctx, id, actor.EmployeeID)
	if err != nil {
		s.logger.Error("delete leave failed", zap.Error(err))
		return err
	}
	if n == 0 {
		s.logger.Warn("delete leave refused, not found or foreign",
			zap.Int64("leave_id", id),
			zap.Int64("employee_id", actor.EmployeeID),
		)
		return leaveerrors.ErrLeaveNotFound
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete leave success", zap.Int64("leave_id", id))
	return nil
}

func (s *service) Summary(ctx context.Context, q SummaryQuery) ([]SummaryResponse, error) {
	from, err := dateutil.ParseOptional(q.FromDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}
	to, err := dateutil.ParseOptional(q.ToDate)
	if err != nil {
		return nil, leaveerrors.ErrInvalidDateFormat
	}

	rows, err := s.repo.Summary(ctx, SummaryFilter{FromDate: from, ToDate: to, LeaveTypeID: q.LeaveTypeID})
	if err != nil {
		s.logger.Error("leave summary failed", zap.Error(err))
		return nil, err
	}

	resp := make([]SummaryResponse, len(rows))
	for i, r := range rows {
		resp[i] = SummaryResponse{
			EmployeeID:   r.EmployeeID,
			EmployeeName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			TotalDays:    r.TotalDays,
		}
	}
	return resp, nil
}

func (s *service) invalidateTypes(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, LeaveTypesKey).Err(); err != nil {
		s.logger.Warn("invalidate leave types cache failed", zap.Error(err))
	}
}

func mapToResponse(row LeaveRow) LeaveResponse {
	return LeaveResponse{
		ID:           row.ID,
		LeaveTypeID:  row.LeaveTypeID,
		LeaveType:    row.LeaveTypeName,
		EmployeeID:   row.EmployeeID,
		EmployeeName: strings.TrimSpace(row.FirstName + " " + row.LastName),
		StartDate:    dateutil.Format(row.StartDate),
		EndDate:      dateutil.Format(row.EndDate),
		Days:         dateutil.InclusiveDays(row.StartDate, row.EndDate),
		Description:  row.Description,
		ManagerID:    row.ManagerID,
		Comments:     row.Comments,
		Status:       row.Status,
		InsertedAt:   row.InsertedAt.Format(time.RFC3339),
	}
}
