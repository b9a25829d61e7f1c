package task

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/dateutil"
	taskerrors "go-worktrack/internal/task/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const DefaultPageSize = 10

type Service interface {
	Create(ctx context.Context, req TaskRequest) (TaskResponse, error)
	Update(ctx context.Context, id int64, req TaskRequest) (TaskResponse, error)
	GetByID(ctx context.Context, id int64) (TaskResponse, error)
	Delete(ctx context.Context, id int64) error
	BulkDelete(ctx context.Context) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]TaskResponse, int64, error)
	ListOwn(ctx context.Context, actor contextutil.Actor, status string) ([]TaskResponse, error)
	AddDetail(ctx context.Context, actor contextutil.Actor, taskID int64, req DetailRequest) (DetailResponse, error)
	EditDetail(ctx context.Context, actor contextutil.Actor, detailID int64, req DetailRequest) (DetailResponse, error)
	ListDetails(ctx context.Context, actor contextutil.Actor, taskID int64) ([]DetailResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	now    func() time.Time
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("task.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("task.service")
	}
	return &service{db: db, repo: repo, now: time.Now, logger: l}
}

func (s *service) buildTask(t *Task, req TaskRequest) error {
	start, err := dateutil.ParseDate(req.StartDate)
	if err != nil {
		return taskerrors.ErrInvalidDate
	}
	end, err := dateutil.ParseOptional(req.EndDate)
	if err != nil {
		return taskerrors.ErrInvalidDate
	}
	if end != nil && end.Before(start) {
		return taskerrors.ErrInvalidDateRange
	}

	t.ProjectID = req.ProjectID
	t.EmployeeID = req.EmployeeID
	t.Description = strings.TrimSpace(req.Description)
	t.Priority = req.Priority
	t.StartDate = start
	t.EndDate = end
	if req.Status != "" {
		t.Status = req.Status
	}
	if t.Status == "" {
		t.Status = StatusPending
	}
	return nil
}

func (s *service) Create(ctx context.Context, req TaskRequest) (TaskResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create task requested",
		zap.String("request_id", rid),
		zap.Int64("project_id", req.ProjectID),
		zap.Int64("employee_id", req.EmployeeID),
	)

	t := &Task{}
	if err := s.buildTask(t, req); err != nil {
		s.logger.Warn("create task invalid input", zap.Error(err))
		return TaskResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, t); err != nil {
		s.logger.Warn("create task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("create task success", zap.String("request_id", rid), zap.Int64("task_id", t.ID))
	return mapTask(*t), nil
}

func (s *service) Update(ctx context.Context, id int64, req TaskRequest) (TaskResponse, error) {
	s.logger.Debug("update task requested", zap.Int64("task_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update task begin tx failed", zap.Error(err))
		return TaskResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.FindByID(ctx, id)
	if err != nil {
		return TaskResponse{}, mapRepositoryError(err)
	}
	if err := s.buildTask(t, req); err != nil {
		s.logger.Warn("update task invalid input", zap.Int64("task_id", id), zap.Error(err))
		return TaskResponse{}, err
	}

	if err := qtx.Update(ctx, t); err != nil {
		s.logger.Warn("update task persist failed", zap.Error(err))
		return TaskResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update task commit failed", zap.Error(err))
		return TaskResponse{}, err
	}

	s.logger.Info("update task success", zap.Int64("task_id", id))
	return mapTask(*t), nil
}

func (s *service) GetByID(ctx context.Context, id int64) (TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get task failed", zap.Int64("task_id", id), zap.Error(err))
		}
		return TaskResponse{}, mapRepositoryError(err)
	}
	return mapTask(*t), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete task requested", zap.Int64("task_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete task begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		s.logger.Warn("delete task failed", zap.Int64("task_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete task commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete task success", zap.Int64("task_id", id))
	return nil
}

func (s *service) BulkDelete(ctx context.Context) (int64, error) {
	s.logger.Debug("bulk delete tasks requested")

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("bulk delete tasks begin tx failed", zap.Error(err))
		return 0, err
	}
	defer tx.Rollback()

	n, err := s.repo.WithTx(tx).DeleteAll(ctx)
	if err != nil {
		s.logger.Error("bulk delete tasks failed", zap.Error(err))
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("bulk delete tasks commit failed", zap.Error(err))
		return 0, err
	}

	s.logger.Info("bulk delete tasks success", zap.Int64("deleted", n))
	return n, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]TaskResponse, int64, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = DefaultPageSize
	}
	if filter.Page < 1 {
		filter.Page = 1
	}

	rows, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("list tasks failed", zap.Error(err))
		return nil, 0, err
	}
	return mapRows(rows), total, nil
}

func (s *service) ListOwn(ctx context.Context, actor contextutil.Actor, status string) ([]TaskResponse, error) {
	if status == "all" {
		status = ""
	}
	rows, err := s.repo.FindByEmployee(ctx, actor.EmployeeID, status)
	if err != nil {
		s.logger.Error("list own tasks failed", zap.Int64("employee_id", actor.EmployeeID), zap.Error(err))
		return nil, err
	}
	return mapRows(rows), nil
}

func (s *service) AddDetail(ctx context.Context, actor contextutil.Actor, taskID int64, req DetailRequest) (DetailResponse, error) {
	s.logger.Debug("add task detail requested",
		zap.Int64("task_id", taskID),
		zap.Int64("employee_id", actor.EmployeeID),
		zap.String("status", req.Status),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("add task detail begin tx failed", zap.Error(err))
		return DetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	t, err := qtx.LockByID(ctx, taskID)
	if err != nil {
		return DetailResponse{}, mapRepositoryError(err)
	}
	if t.EmployeeID != actor.EmployeeID {
		s.logger.Warn("add task detail refused, foreign task",
			zap.Int64("task_id", taskID),
			zap.Int64("employee_id", actor.EmployeeID),
		)
		return DetailResponse{}, taskerrors.ErrTaskNotOwned
	}

	now := s.now()
	today := dateutil.StartOfDay(now)
	existing, err := qtx.CountDetailsSince(ctx, taskID, actor.EmployeeID, today)
	if err != nil {
		s.logger.Error("add task detail count failed", zap.Error(err))
		return DetailResponse{}, err
	}
	if existing > 0 {
		s.logger.Warn("add task detail refused, already added today", zap.Int64("task_id", taskID))
		return DetailResponse{}, taskerrors.ErrDetailExistsToday
	}

	d := &Detail{
		TaskID:      taskID,
		EmployeeID:  actor.EmployeeID,
		Description: strings.TrimSpace(req.Description),
		Status:      req.Status,
		InsertedAt:  now,
	}
	if err := qtx.CreateDetail(ctx, d); err != nil {
		s.logger.Error("add task detail persist failed", zap.Error(err))
		return DetailResponse{}, err
	}

	if req.Status == DetailComplete {
		if err := qtx.MarkCompleted(ctx, taskID, today); err != nil {
			s.logger.Error("add task detail complete task failed", zap.Error(err))
			return DetailResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("add task detail commit failed", zap.Error(err))
		return DetailResponse{}, err
	}

	s.logger.Info("add task detail success",
		zap.Int64("task_id", taskID),
		zap.Int64("detail_id", d.ID),
		zap.Bool("task_completed", req.Status == DetailComplete),
	)
	return mapDetail(*d), nil
}

func (s *service) EditDetail(ctx context.Context, actor contextutil.Actor, detailID int64, req DetailRequest) (DetailResponse, error) {
	s.logger.Debug("edit task detail requested",
		zap.Int64("detail_id", detailID),
		zap.Int64("employee_id", actor.EmployeeID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("edit task detail begin tx failed", zap.Error(err))
		return DetailResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	d, err := qtx.FindOwnedDetail(ctx, detailID, actor.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("edit task detail refused, not found or foreign", zap.Int64("detail_id", detailID))
			return DetailResponse{}, taskerrors.ErrDetailNotFound
		}
		s.logger.Error("edit task detail lookup failed", zap.Error(err))
		return DetailResponse{}, err
	}

	now := s.now()
	d.Description = strings.TrimSpace(req.Description)
	d.Status = req.Status
	d.InsertedAt = now
	if err := qtx.UpdateDetail(ctx, d); err != nil {
		s.logger.Error("edit task detail persist failed", zap.Error(err))
		return DetailResponse{}, err
	}

	if req.Status == DetailComplete {
		if err := qtx.MarkCompleted(ctx, d.TaskID, dateutil.StartOfDay(now)); err != nil {
			s.logger.Error("edit task detail complete task failed", zap.Error(err))
			return DetailResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("edit task detail commit failed", zap.Error(err))
		return DetailResponse{}, err
	}

	s.logger.Info("edit task detail success", zap.Int64("detail_id", detailID))
	return mapDetail(*d), nil
}

func (s *service) ListDetails(ctx context.Context, actor contextutil.Actor, taskID int64) ([]DetailResponse, error) {
	t, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	if !actor.IsAdmin() && t.EmployeeID != actor.EmployeeID {
		return nil, taskerrors.ErrTaskNotFound
	}

	rows, err := s.repo.FindDetails(ctx, taskID)
	if err != nil {
		s.logger.Error("list task details failed", zap.Int64("task_id", taskID), zap.Error(err))
		return nil, err
	}

	resp := make([]DetailResponse, len(rows))
	for i, r := range rows {
		resp[i] = DetailResponse{
			ID:           r.ID,
			TaskID:       r.TaskID,
			EmployeeID:   r.EmployeeID,
			EmployeeName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			Description:  r.Description,
			Status:       r.Status,
			InsertedAt:   r.InsertedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func mapTask(t Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		ProjectID:   t.ProjectID,
		EmployeeID:  t.EmployeeID,
		Description: t.Description,
		Priority:    t.Priority,
		Status:      t.Status,
		StartDate:   dateutil.Format(t.StartDate),
		EndDate:     dateutil.FormatPtr(t.EndDate),
	}
}

func mapRows(rows []TaskRow) []TaskResponse {
	resp := make([]TaskResponse, len(rows))
	for i, r := range rows {
		resp[i] = TaskResponse{
			ID:           r.ID,
			ProjectID:    r.ProjectID,
			ProjectName:  r.ProjectName,
			EmployeeID:   r.EmployeeID,
			EmployeeName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			Description:  r.Description,
			Priority:     r.Priority,
			Status:       r.Status,
			StartDate:    dateutil.Format(r.StartDate),
			EndDate:      dateutil.FormatPtr(r.EndDate),
		}
	}
	return resp
}

func mapDetail(d Detail) DetailResponse {
	return DetailResponse{
		ID:          d.ID,
		TaskID:      d.TaskID,
		EmployeeID:  d.EmployeeID,
		Description: d.Description,
		Status:      d.Status,
		InsertedAt:  d.InsertedAt.Format(time.RFC3339),
	}
}
