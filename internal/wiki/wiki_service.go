package wiki

import (
	"context"
	"errors"
	"strings"
	"time"

	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/dateutil"
	"go-worktrack/internal/shared/storage"
	wikierrors "go-worktrack/internal/wiki/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service interface {
	CreateCategory(ctx context.Context, req CategoryRequest, image *storage.Upload) (CategoryResponse, error)
	UpdateCategory(ctx context.Context, id int64, req CategoryRequest, image *storage.Upload) (CategoryResponse, error)
	ListCategories(ctx context.Context) ([]CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePage(ctx context.Context, actor contextutil.Actor, req PageRequest) (PageResponse, error)
	UpdatePage(ctx context.Context, id int64, req PageRequest) (PageResponse, error)
	GetPage(ctx context.Context, actor contextutil.Actor, id int64) (PageResponse, error)
	ListPages(ctx context.Context, actor contextutil.Actor, q PageQuery) ([]PageResponse, error)
	DeletePage(ctx context.Context, id int64) error

	Views(ctx context.Context, q ViewQuery) ([]ViewResponse, error)
	ViewCounts(ctx context.Context, q ViewQuery) ([]ViewCountResponse, error)
}

type service struct {
	repo   Repository
	store  storage.Store
	now    func() time.Time
	logger *zap.Logger
}

func NewService(repo Repository, store storage.Store, logger ...*zap.Logger) Service {
	l := zap.L().Named("wiki.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("wiki.service")
	}
	return &service{
		repo:   repo,
		store:  store,
		now:    time.Now,
		logger: l,
	}
}

// saveImage stores a category image, refusing anything that is not an image.
func (s *service) saveImage(ctx context.Context, image *storage.Upload) (string, error) {
	contentType, err := storage.Sniff(image.Content)
	if err != nil {
		return "", err
	}
	if !storage.IsImage(contentType) {
		s.logger.Warn("category image rejected", zap.String("content_type", contentType))
		return "", wikierrors.ErrInvalidImage
	}
	obj, err := s.store.Save(ctx, storage.ClassWiki, *image)
	if err != nil {
		s.logger.Error("store category image failed", zap.Error(err))
		return "", err
	}
	return obj.Path, nil
}

// discard removes a stored file. Failures are logged only.
func (s *service) discard(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := s.store.Remove(ctx, path); err != nil {
		s.logger.Warn("remove category image failed", zap.String("path", path), zap.Error(err))
	}
}

func (s *service) CreateCategory(ctx context.Context, req CategoryRequest, image *storage.Upload) (CategoryResponse, error) {
	c := &Category{Name: strings.TrimSpace(req.Name), CreatedAt: s.now()}
	if image != nil {
		path, err := s.saveImage(ctx, image)
		if err != nil {
			return CategoryResponse{}, err
		}
		c.ImagePath = path
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		s.logger.Warn("create wiki category failed", zap.String("name", c.Name), zap.Error(err))
		s.discard(ctx, c.ImagePath)
		return CategoryResponse{}, mapCategoryError(err)
	}

	s.logger.Info("create wiki category success", zap.Int64("category_id", c.ID))
	return mapCategory(*c), nil
}

func (s *service) UpdateCategory(ctx context.Context, id int64, req CategoryRequest, image *storage.Upload) (CategoryResponse, error) {
	current, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return CategoryResponse{}, mapCategoryError(err)
	}

	c := &Category{ID: id, Name: strings.TrimSpace(req.Name), ImagePath: current.ImagePath, CreatedAt: current.CreatedAt}
	switch {
	case image != nil:
		path, err := s.saveImage(ctx, image)
		if err != nil {
			return CategoryResponse{}, err
		}
		c.ImagePath = path
	case req.RemoveImage:
		c.ImagePath = ""
	}

	if err := s.repo.UpdateCategory(ctx, c); err != nil {
		s.logger.Warn("update wiki category failed", zap.Int64("category_id", id), zap.Error(err))
		if c.ImagePath != current.ImagePath {
			s.discard(ctx, c.ImagePath)
		}
		return CategoryResponse{}, mapCategoryError(err)
	}

	if c.ImagePath != current.ImagePath {
		s.discard(ctx, current.ImagePath)
	}
	s.logger.Info("update wiki category success", zap.Int64("category_id", id))
	return mapCategory(*c), nil
}

func (s *service) ListCategories(ctx context.Context) ([]CategoryResponse, error) {
	cats, err := s.repo.FindCategories(ctx)
	if err != nil {
		s.logger.Error("list wiki categories failed", zap.Error(err))
		return nil, err
	}
	resp := make([]CategoryResponse, len(cats))
	for i, c := range cats {
		resp[i] = mapCategory(c)
	}
	return resp, nil
}

func (s *service) DeleteCategory(ctx context.Context, id int64) error {
	current, err := s.repo.FindCategory(ctx, id)
	if err != nil {
		return mapCategoryError(err)
	}
	if err := s.repo.DeleteCategory(ctx, id); err != nil {
		s.logger.Warn("delete wiki category failed", zap.Int64("category_id", id), zap.Error(err))
		return mapCategoryError(err)
	}

	s.discard(ctx, current.ImagePath)
	s.logger.Info("delete wiki category success", zap.Int64("category_id", id))
	return nil
}

func (s *service) CreatePage(ctx context.Context, actor contextutil.Actor, req PageRequest) (PageResponse, error) {
	now := s.now()
	createdBy := actor.EmployeeID
	p := &Page{
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		RowStatus:   RowActive,
		CreatedBy:   &createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.CreatePage(ctx, p); err != nil {
		s.logger.Warn("create wiki page failed", zap.Error(err))
		return PageResponse{}, mapPageError(err)
	}

	s.logger.Info("create wiki page success", zap.Int64("wiki_id", p.ID), zap.Int64("category_id", p.CategoryID))
	return mapPage(PageRow{Page: *p}), nil
}

func (s *service) UpdatePage(ctx context.Context, id int64, req PageRequest) (PageResponse, error) {
	p := &Page{
		ID:          id,
		CategoryID:  req.CategoryID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		UpdatedAt:   s.now(),
	}
	if err := s.repo.UpdatePage(ctx, p); err != nil {
		s.logger.Warn("update wiki page failed", zap.Int64("wiki_id", id), zap.Error(err))
		return PageResponse{}, mapPageError(err)
	}

	row, err := s.repo.FindPage(ctx, id)
	if err != nil {
		return PageResponse{}, mapPageError(err)
	}
	s.logger.Info("update wiki page success", zap.Int64("wiki_id", id))
	return mapPage(*row), nil
}

// GetPage returns a page. Admins may read deleted pages; every other reader
// sees live pages only and is recorded as a view.
func (s *service) GetPage(ctx context.Context, actor contextutil.Actor, id int64) (PageResponse, error) {
	row, err := s.repo.FindPage(ctx, id)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("get wiki page failed", zap.Int64("wiki_id", id), zap.Error(err))
		}
		return PageResponse{}, mapPageError(err)
	}
	if actor.IsAdmin() {
		return mapPage(*row), nil
	}
	if row.RowStatus == RowDeleted {
		return PageResponse{}, wikierrors.ErrPageNotFound
	}

	view := &View{WikiID: id, EmployeeID: actor.EmployeeID, ViewedAt: s.now()}
	if err := s.repo.CreateView(ctx, view); err != nil {
		s.logger.Warn("record wiki view failed",
			zap.Int64("wiki_id", id),
			zap.Int64("employee_id", actor.EmployeeID),
			zap.Error(err),
		)
	}
	return mapPage(*row), nil
}

func (s *service) ListPages(ctx context.Context, actor contextutil.Actor, q PageQuery) ([]PageResponse, error) {
	rows, err := s.repo.FindPages(ctx, PageFilter{
		CategoryID:     q.CategoryID,
		IncludeDeleted: q.IncludeDeleted && actor.IsAdmin(),
	})
	if err != nil {
		s.logger.Error("list wiki pages failed", zap.Error(err))
		return nil, err
	}
	resp := make([]PageResponse, len(rows))
	for i, row := range rows {
		resp[i] = mapPage(row)
	}
	return resp, nil
}

func (s *service) DeletePage(ctx context.Context, id int64) error {
	n, err := s.repo.SoftDeletePage(ctx, id)
	if err != nil {
		s.logger.Error("delete wiki page failed", zap.Int64("wiki_id", id), zap.Error(err))
		return err
	}
	if n == 0 {
		return wikierrors.ErrPageNotFound
	}
	s.logger.Info("delete wiki page success", zap.Int64("wiki_id", id))
	return nil
}

func (s *service) viewFilter(q ViewQuery) (ViewFilter, error) {
	from, err := dateutil.ParseOptional(q.FromDate)
	if err != nil {
		return ViewFilter{}, wikierrors.ErrInvalidDateFormat
	}
	to, err := dateutil.ParseOptional(q.ToDate)
	if err != nil {
		return ViewFilter{}, wikierrors.ErrInvalidDateFormat
	}
	return ViewFilter{FromDate: from, ToDate: to, WikiID: q.WikiID}, nil
}

func (s *service) Views(ctx context.Context, q ViewQuery) ([]ViewResponse, error) {
	filter, err := s.viewFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.FindViews(ctx, filter)
	if err != nil {
		s.logger.Error("list wiki views failed", zap.Error(err))
		return nil, err
	}
	resp := make([]ViewResponse, len(rows))
	for i, r := range rows {
		resp[i] = ViewResponse{
			ID:           r.ID,
			WikiID:       r.WikiID,
			Title:        r.Title,
			EmployeeID:   r.EmployeeID,
			EmployeeName: strings.TrimSpace(r.FirstName + " " + r.LastName),
			ViewedAt:     r.ViewedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func (s *service) ViewCounts(ctx context.Context, q ViewQuery) ([]ViewCountResponse, error) {
	filter, err := s.viewFilter(q)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.CountViews(ctx, filter)
	if err != nil {
		s.logger.Error("count wiki views failed", zap.Error(err))
		return nil, err
	}
	resp := make([]ViewCountResponse, len(rows))
	for i, r := range rows {
		resp[i] = ViewCountResponse{
			WikiID:  r.WikiID,
			Title:   r.Title,
			Deleted: r.RowStatus == RowDeleted,
			Views:   r.Views,
		}
	}
	return resp, nil
}

func mapCategory(c Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, ImagePath: c.ImagePath}
}

func mapPage(row PageRow) PageResponse {
	return PageResponse{
		ID:            row.ID,
		CategoryID:    row.CategoryID,
		CategoryName:  row.CategoryName,
		CategoryImage: row.CategoryImage,
		Title:         row.Title,
		Description:   row.Description,
		Deleted:       row.RowStatus == RowDeleted,
		CreatedAt:     row.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     row.UpdatedAt.Format(time.RFC3339),
	}
}
