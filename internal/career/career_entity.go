package career

import "time"

type Career struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	Title       string    `gorm:"column:title"`
	Experience  string    `gorm:"column:experience"`
	Salary      string    `gorm:"column:salary"`
	Location    string    `gorm:"column:location"`
	Description string    `gorm:"column:description"`
	BannerPath  string    `gorm:"column:banner_path"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Career) TableName() string {
	return "careers"
}
