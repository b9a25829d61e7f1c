package wiki

import (
	"context"
	"database/sql"

	"go-worktrack/internal/shared/dbtx"

	"gorm.io/gorm"
)

//go:generate mockgen -source=wiki_repo.go -destination=mock/wiki_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCategory(ctx context.Context, c *Category) error
	UpdateCategory(ctx context.Context, c *Category) error
	FindCategory(ctx context.Context, id int64) (*Category, error)
	FindCategories(ctx context.Context) ([]Category, error)
	DeleteCategory(ctx context.Context, id int64) error

	CreatePage(ctx context.Context, p *Page) error
	UpdatePage(ctx context.Context, p *Page) error
	FindPage(ctx context.Context, id int64) (*PageRow, error)
	FindPages(ctx context.Context, filter PageFilter) ([]PageRow, error)
	SoftDeletePage(ctx context.Context, id int64) (int64, error)

	CreateView(ctx context.Context, v *View) error
	FindViews(ctx context.Context, filter ViewFilter) ([]ViewRow, error)
	CountViews(ctx context.Context, filter ViewFilter) ([]ViewCount, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) conn(ctx context.Context) *gorm.DB {
	return dbtx.Conn(ctx, r.db, r.tx)
}

func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	return r.conn(ctx).Create(c).Error
}

func (r *repository) UpdateCategory(ctx context.Context, c *Category) error {
	res := r.conn(ctx).
		Model(&Category{}).
		Where("id = ?", c.ID).
		Updates(map[string]interface{}{"name": c.Name, "image_path": c.ImagePath})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	if err := r.conn(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) FindCategories(ctx context.Context) ([]Category, error) {
	var cats []Category
	err := r.conn(ctx).Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	res := r.conn(ctx).Delete(&Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CreatePage(ctx context.Context, p *Page) error {
	return r.conn(ctx).Create(p).Error
}

func (r *repository) UpdatePage(ctx context.Context, p *Page) error {
	res := r.conn(ctx).
		Model(&Page{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"category_id": p.CategoryID,
			"title":       p.Title,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) pages(ctx context.Context) *gorm.DB {
	return r.conn(ctx).
		Table("wiki_pages wp").
		Select("wp.*, wc.name AS category_name, wc.image_path AS category_image").
		Joins("JOIN wiki_categories wc ON wc.id = wp.category_id")
}

func (r *repository) FindPage(ctx context.Context, id int64) (*PageRow, error) {
	var row PageRow
	if err := r.pages(ctx).Where("wp.id = ?", id).Take(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *repository) FindPages(ctx context.Context, filter PageFilter) ([]PageRow, error) {
	q := r.pages(ctx)
	if !filter.IncludeDeleted {
		q = q.Where("wp.row_status = ?", RowActive)
	}
	if filter.CategoryID > 0 {
		q = q.Where("wp.category_id = ?", filter.CategoryID)
	}
	var rows []PageRow
	err := q.Order("wp.created_at DESC").Order("wp.id DESC").Scan(&rows).Error
	return rows, err
}

// SoftDeletePage marks an active page deleted. Zero affected rows means the
// page is absent or already deleted.
func (r *repository) SoftDeletePage(ctx context.Context, id int64) (int64, error) {
	res := r.conn(ctx).
		Model(&Page{}).
		Where("id = ? AND row_status = ?", id, RowActive).
		Update("row_status", RowDeleted)
	return res.RowsAffected, res.Error
}

func (r *repository) CreateView(ctx context.Context, v *View) error {
	return r.conn(ctx).Create(v).Error
}

func applyViewFilter(q *gorm.DB, filter ViewFilter) *gorm.DB {
	if filter.FromDate != nil {
		q = q.Where("wv.viewed_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		q = q.Where("wv.viewed_at < ?", filter.ToDate.AddDate(0, 0, 1))
	}
	if filter.WikiID > 0 {
		q = q.Where("wv.wiki_id = ?", filter.WikiID)
	}
	return q
}

func (r *repository) FindViews(ctx context.Context, filter ViewFilter) ([]ViewRow, error) {
	q := r.conn(ctx).
		Table("wiki_views wv").
		Select("wv.*, wp.title, e.first_name, e.last_name").
		Joins("JOIN wiki_pages wp ON wp.id = wv.wiki_id").
		Joins("JOIN employees e ON e.id = wv.employee_id")

	var rows []ViewRow
	err := applyViewFilter(q, filter).Order("wv.viewed_at DESC").Scan(&rows).Error
	return rows, err
}

// CountViews totals views per page, deleted pages included.
func (r *repository) CountViews(ctx context.Context, filter ViewFilter) ([]ViewCount, error) {
	q := r.conn(ctx).
		Table("wiki_views wv").
		Select("wp.id AS wiki_id, wp.title, wp.row_status, COUNT(*) AS views").
		Joins("JOIN wiki_pages wp ON wp.id = wv.wiki_id")

	var rows []ViewCount
	err := applyViewFilter(q, filter).
		Group("wp.id, wp.title, wp.row_status").
		Order("views DESC").
		Scan(&rows).Error
	return rows, err
}
