package scope

import "gorm.io/gorm"

// OwnedBy restricts a query to rows belonging to one employee.
func OwnedBy(employeeID int64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("employee_id = ?", employeeID)
	}
}

// MaxPage bounds page numbers so the offset cannot overflow.
const MaxPage = 100_000

// Paginate applies LIMIT/OFFSET for a 1-based page. Pages beyond MaxPage are
// clamped to it.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		page = min(max(page, 1), MaxPage)
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
