package policy

import "time"

type Policy struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	FilePath     string    `gorm:"column:file_path"`
	OriginalName string    `gorm:"column:original_name"`
	FileSize     int64     `gorm:"column:file_size"`
	UploadedBy   *int64    `gorm:"column:uploaded_by"`
	UploadedAt   time.Time `gorm:"column:uploaded_at"`
}

func (Policy) TableName() string {
	return "policies"
}
