package policy

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	policyerrors "go-worktrack/internal/policy/errors"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/storage"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	Upload(ctx context.Context, actor contextutil.Actor, req UploadPolicyRequest, file *storage.Upload) (PolicyResponse, error)
	List(ctx context.Context) ([]PolicyResponse, error)
	Download(ctx context.Context, id int64) (*Policy, io.ReadCloser, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	store  storage.Store
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("policy.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		store:  store,
		logger: l,
	}
}

func (s *service) Upload(ctx context.Context, actor contextutil.Actor, req UploadPolicyRequest, file *storage.Upload) (PolicyResponse, error) {
	name := strings.TrimSpace(req.Name)
	s.logger.Debug("upload policy requested", zap.String("name", name), zap.String("file", file.FileName))

	if !strings.EqualFold(filepath.Ext(file.FileName), ".pdf") {
		return PolicyResponse{}, policyerrors.ErrNotPDF
	}
	contentType, err := storage.Sniff(file.Content)
	if err != nil {
		return PolicyResponse{}, err
	}
	if !storage.IsPDF(contentType) {
		s.logger.Warn("policy upload rejected", zap.String("content_type", contentType))
		return PolicyResponse{}, policyerrors.ErrNotPDF
	}

	exists, err := s.repo.ExistsByName(ctx, name)
	if err != nil {
		s.logger.Error("check policy name failed", zap.Error(err))
		return PolicyResponse{}, err
	}
	if exists {
		return PolicyResponse{}, policyerrors.ErrPolicyAlreadyExists
	}

	obj, err := s.store.Save(ctx, storage.ClassPolicy, *file)
	if err != nil {
		s.logger.Error("store policy file failed", zap.Error(err))
		return PolicyResponse{}, err
	}

	uploadedBy := actor.EmployeeID
	p := &Policy{
		Name:         name,
		FilePath:     obj.Path,
		OriginalName: obj.OriginalName,
		FileSize:     obj.Size,
		UploadedBy:   &uploadedBy,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Warn("create policy failed", zap.String("name", name), zap.Error(err))
		s.discard(ctx, obj.Path)
		return PolicyResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("upload policy success", zap.Int64("policy_id", p.ID), zap.String("path", obj.Path))
	return mapPolicy(*p), nil
}

func (s *service) List(ctx context.Context) ([]PolicyResponse, error) {
	policies, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list policies failed", zap.Error(err))
		return nil, err
	}
	resp := make([]PolicyResponse, len(policies))
	for i, p := range policies {
		resp[i] = mapPolicy(p)
	}
	return resp, nil
}

// Download opens the stored PDF. The caller closes the reader.
func (s *service) Download(ctx context.Context, id int64) (*Policy, io.ReadCloser, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, nil, mapRepositoryError(err)
	}
	rc, err := s.store.Open(ctx, p.FilePath)
	if err != nil {
		s.logger.Error("open policy file failed", zap.Int64("policy_id", id), zap.String("path", p.FilePath), zap.Error(err))
		return nil, nil, mapStorageError(err)
	}
	return p, rc, nil
}

// Delete removes the row first; the file is removed only after commit.
func (s *service) Delete(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete policy begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	p, err := qtx.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("find policy failed", zap.Int64("policy_id", id), zap.Error(err))
		}
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete policy failed", zap.Int64("policy_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete policy commit failed", zap.Error(err))
		return err
	}

	s.discard(ctx, p.FilePath)
	s.logger.Info("delete policy success", zap.Int64("policy_id", id))
	return nil
}

func (s *service) discard(ctx context.Context, path string) {
	if err := s.store.Remove(ctx, path); err != nil {
		s.logger.Warn("remove policy file failed", zap.String("path", path), zap.Error(err))
	}
}

func mapPolicy(p Policy) PolicyResponse {
	resp := PolicyResponse{
		ID:           p.ID,
		Name:         p.Name,
		OriginalName: p.OriginalName,
		FileSize:     p.FileSize,
		UploadedBy:   p.UploadedBy,
	}
	if !p.UploadedAt.IsZero() {
		resp.UploadedAt = p.UploadedAt.Format(time.RFC3339)
	}
	return resp
}
