package career

import (
	"context"
	"errors"
	"strings"
	"time"

	careererrors "go-worktrack/internal/career/errors"
	"go-worktrack/internal/shared/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Create(ctx context.Context, req CareerRequest, banner *storage.Upload) (CareerResponse, error)
	Update(ctx context.Context, id int64, req CareerRequest, banner *storage.Upload) (CareerResponse, error)
	List(ctx context.Context) ([]CareerResponse, error)
	GetByID(ctx context.Context, id int64) (CareerResponse, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo   Repository
	store  storage.Store
	logger *zap.Logger
}

func NewService(repo Repository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("career.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("career.service")
	}
	return &service{repo: repo, store: store, logger: l}
}

func mapRepositoryError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return careererrors.ErrCareerNotFound
	}
	return err
}

func (s *service) saveBanner(ctx context.Context, banner *storage.Upload) (string, error) {
	contentType, err := storage.Sniff(banner.Content)
	if err != nil {
		return "", err
	}
	if !storage.IsImage(contentType) {
		s.logger.Warn("career banner rejected", zap.String("content_type", contentType))
		return "", careererrors.ErrInvalidBanner
	}
	obj, err := s.store.Save(ctx, storage.ClassCareer, *banner)
	if err != nil {
		s.logger.Error("store career banner failed", zap.Error(err))
		return "", err
	}
	return obj.Path, nil
}

func (s *service) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Remove(ctx, path); err != nil {
		s.logger.Warn("remove career banner failed", zap.String("path", path), zap.Error(err))
	}
}

func fromRequest(req CareerRequest) Career {
	return Career{
		Title:       strings.TrimSpace(req.Title),
		Experience:  strings.TrimSpace(req.Experience),
		Salary:      strings.TrimSpace(req.Salary),
		Location:    strings.TrimSpace(req.Location),
		Description: req.Description,
	}
}

func (s *service) Create(ctx context.Context, req CareerRequest, banner *storage.Upload) (CareerResponse, error) {
	c := fromRequest(req)
	if banner != nil {
		path, err := s.saveBanner(ctx, banner)
		if err != nil {
			return CareerResponse{}, err
		}
		c.BannerPath = path
	}

	if err := s.repo.Create(ctx, &c); err != nil {
		s.logger.Error("create career failed", zap.Error(err))
		s.discard(ctx, c.BannerPath)
		return CareerResponse{}, err
	}
	s.logger.Info("create career success", zap.Int64("career_id", c.ID))
	return mapCareer(c), nil
}

func (s *service) Update(ctx context.Context, id int64, req CareerRequest, banner *storage.Upload) (CareerResponse, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CareerResponse{}, mapRepositoryError(err)
	}

	c := fromRequest(req)
	c.ID = id
	c.CreatedAt = current.CreatedAt
	c.BannerPath = current.BannerPath
	switch {
	case banner != nil:
		path, err := s.saveBanner(ctx, banner)
		if err != nil {
			return CareerResponse{}, err
		}
		c.BannerPath = path
	case req.RemoveBanner:
		c.BannerPath = ""
	}

	if err := s.repo.Update(ctx, &c); err != nil {
		s.logger.Warn("update career failed", zap.Int64("career_id", id), zap.Error(err))
		if c.BannerPath != current.BannerPath {
			s.discard(ctx, c.BannerPath)
		}
		return CareerResponse{}, mapRepositoryError(err)
	}

	if c.BannerPath != current.BannerPath {
		s.discard(ctx, current.BannerPath)
	}
	s.logger.Info("update career success", zap.Int64("career_id", id))
	return mapCareer(c), nil
}

func (s *service) List(ctx context.Context) ([]CareerResponse, error) {
	careers, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list careers failed", zap.Error(err))
		return nil, err
	}
	resp := make([]CareerResponse, len(careers))
	for i, c := range careers {
		resp[i] = mapCareer(c)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (CareerResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return CareerResponse{}, mapRepositoryError(err)
	}
	return mapCareer(*c), nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return mapRepositoryError(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("delete career failed", zap.Int64("career_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	s.discard(ctx, current.BannerPath)
	s.logger.Info("delete career success", zap.Int64("career_id", id))
	return nil
}

func mapCareer(c Career) CareerResponse {
	resp := CareerResponse{
		ID:          c.ID,
		Title:       c.Title,
		Experience:  c.Experience,
		Salary:      c.Salary,
		Location:    c.Location,
		Description: c.Description,
		BannerPath:  c.BannerPath,
	}
	if !c.CreatedAt.IsZero() {
		resp.CreatedAt = c.CreatedAt.Format(time.RFC3339)
	}
	return resp
}
