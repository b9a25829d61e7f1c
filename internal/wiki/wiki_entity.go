package wiki

import "time"

const (
	RowActive  = "active"
	RowDeleted = "deleted"
)

type Category struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	Name      string    `gorm:"column:name"`
	ImagePath string    `gorm:"column:image_path"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Category) TableName() string {
	return "wiki_categories"
}

type Page struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	CategoryID  int64     `gorm:"column:category_id"`
	Title       string    `gorm:"column:title"`
	Description string    `gorm:"column:description"`
	RowStatus   string    `gorm:"column:row_status"`
	CreatedBy   *int64    `gorm:"column:created_by"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Page) TableName() string {
	return "wiki_pages"
}

// PageRow is a page joined with its category.
type PageRow struct {
	Page
	CategoryName  string `gorm:"column:category_name"`
	CategoryImage string `gorm:"column:category_image"`
}

type View struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	WikiID     int64     `gorm:"column:wiki_id"`
	EmployeeID int64     `gorm:"column:employee_id"`
	ViewedAt   time.Time `gorm:"column:viewed_at"`
}

func (View) TableName() string {
	return "wiki_views"
}

type ViewRow struct {
	View
	Title     string `gorm:"column:title"`
	FirstName string `gorm:"column:first_name"`
	LastName  string `gorm:"column:last_name"`
}

type ViewCount struct {
	WikiID    int64  `gorm:"column:wiki_id"`
	Title     string `gorm:"column:title"`
	RowStatus string `gorm:"column:row_status"`
	Views     int64  `gorm:"column:views"`
}

type PageFilter struct {
	CategoryID     int64
	IncludeDeleted bool
}

// ViewFilter bounds view events by calendar day, inclusive on both ends.
type ViewFilter struct {
	FromDate *time.Time
	ToDate   *time.Time
	WikiID   int64
}
