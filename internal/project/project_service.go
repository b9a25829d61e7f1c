package project

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	projecterrors "go-worktrack/internal/project/errors"
	"go-worktrack/internal/shared/dateutil"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req ProjectRequest) (ProjectResponse, error)
	GetAll(ctx context.Context) ([]ProjectResponse, error)
	GetByID(ctx context.Context, id int64) (ProjectDetailResponse, error)
	Update(ctx context.Context, id int64, req ProjectRequest) (ProjectResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("project.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("project.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func parseDates(start, end string) (time.Time, *time.Time, error) {
	s, err := dateutil.ParseDate(start)
	if err != nil {
		return time.Time{}, nil, projecterrors.ErrInvalidDate
	}
	e, err := dateutil.ParseOptional(end)
	if err != nil {
		return time.Time{}, nil, projecterrors.ErrInvalidDate
	}
	if e != nil && e.Before(s) {
		return time.Time{}, nil, projecterrors.ErrInvalidDateRange
	}
	return s, e, nil
}

func (s *service) Create(ctx context.Context, req ProjectRequest) (ProjectResponse, error) {
	s.logger.Debug("create project requested", zap.String("name", req.Name))

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("create project invalid dates", zap.String("start_date", req.StartDate), zap.String("end_date", req.EndDate))
		return ProjectResponse{}, err
	}

	p := &Project{
		Name:        strings.TrimSpace(req.Name),
		Priority:    req.Priority,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   start,
		EndDate:     end,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	if err := s.repo.WithTx(tx).Create(ctx, p); err != nil {
		s.logger.Error("create project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("create project success", zap.Int64("project_id", p.ID))
	return mapToResponse(*p), nil
}

func (s *service) GetAll(ctx context.Context) ([]ProjectResponse, error) {
	projects, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all projects failed", zap.Error(err))
		return nil, err
	}
	resp := make([]ProjectResponse, len(projects))
	for i, p := range projects {
		resp[i] = mapToResponse(p)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (ProjectDetailResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get project failed", zap.Int64("project_id", id), zap.Error(err))
		}
		return ProjectDetailResponse{}, mapRepositoryError(err)
	}

	tasks, err := s.repo.FindTasks(ctx, id)
	if err != nil {
		s.logger.Error("get project tasks failed", zap.Int64("project_id", id), zap.Error(err))
		return ProjectDetailResponse{}, err
	}

	resp := ProjectDetailResponse{
		ProjectResponse: mapToResponse(*p),
		Tasks:           make([]ProjectTaskResponse, len(tasks)),
	}
	for i, t := range tasks {
		resp.Tasks[i] = ProjectTaskResponse{
			ID:           t.ID,
			Description:  t.Description,
			EmployeeID:   t.EmployeeID,
			EmployeeName: strings.TrimSpace(t.FirstName + " " + t.LastName),
			Priority:     t.Priority,
			Status:       t.Status,
			StartDate:    dateutil.Format(t.StartDate),
			EndDate:      dateutil.FormatPtr(t.EndDate),
		}
	}
	return resp, nil
}

func (s *service) Update(ctx context.Context, id int64, req ProjectRequest) (ProjectResponse, error) {
	s.logger.Debug("update project requested", zap.Int64("project_id", id))

	start, end, err := parseDates(req.StartDate, req.EndDate)
	if err != nil {
		s.logger.Warn("update project invalid dates", zap.Int64("project_id", id))
		return ProjectResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update project begin tx failed", zap.Error(err))
		return ProjectResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		return ProjectResponse{}, mapRepositoryError(err)
	}

	p.Name = strings.TrimSpace(req.Name)
	p.Priority = req.Priority
	p.Description = req.Description
	p.Status = req.Status
	p.StartDate = start
	p.EndDate = end

	if err := qtx.Update(ctx, p); err != nil {
		s.logger.Error("update project persist failed", zap.Error(err))
		return ProjectResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update project commit failed", zap.Error(err))
		return ProjectResponse{}, err
	}

	s.logger.Info("update project success", zap.Int64("project_id", id))
	return mapToResponse(*p), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	s.logger.Debug("delete project requested", zap.Int64("project_id", id))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete project begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	tasks, err := qtx.CountTasks(ctx, id)
	if err != nil {
		s.logger.Error("delete project count tasks failed", zap.Error(err))
		return err
	}
	if tasks > 0 {
		s.logger.Warn("delete project refused, tasks assigned",
			zap.Int64("project_id", id),
			zap.Int64("tasks", tasks),
		)
		return projecterrors.ErrProjectHasTasks
	}

	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Warn("delete project failed", zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete project commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("delete project success", zap.Int64("project_id", id))
	return nil
}

func mapToResponse(p Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Priority:    p.Priority,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   dateutil.Format(p.StartDate),
		EndDate:     dateutil.FormatPtr(p.EndDate),
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
	}
}
