package employee_test

import (
	"context"
	"regexp"
	"testing"

	"go-worktrack/internal/employee"
	"go-worktrack/internal/shared/testdb"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRepository_UpdateEmergencyOnce(t *testing.T) {
	gormDB, _, mock := testdb.New(t)
	repo := employee.NewRepository(gormDB)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO employee_profiles (employee_id) VALUES ($1) ON CONFLICT (employee_id) DO NOTHING")).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE "employee_profiles" SET .* WHERE employee_id = \$\d+ AND emergency_updated_by_employee = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.UpdateEmergencyOnce(ctx, 7, "Ravi", "999", "Brother")

	assert.NoError(t, err)
	assert.Zero(t, n)
}

func TestRepository_DeleteMissing(t *testing.T) {
	gormDB, _, mock := testdb.New(t)
	repo := employee.NewRepository(gormDB)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "employees" WHERE id = $1`)).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 3)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_DeleteNonAdminWithoutTasks(t *testing.T) {
	gormDB, _, mock := testdb.New(t)
	repo := employee.NewRepository(gormDB)

	mock.ExpectQuery(`(?s)SELECT x.invoice_path FROM expenses x\s+JOIN employees e .* a.status = \$2\)`).
		WithArgs(employee.TypeAdmin, "Allocated").
		WillReturnRows(sqlmock.NewRows([]string{"invoice_path"}).AddRow("invoices/x.pdf"))
	mock.ExpectExec(`(?s)DELETE FROM employees e WHERE e.emp_type <> \$1\s+AND NOT EXISTS .*asset_allocations a WHERE a.employee_id = e.id AND a.status = \$2`).
		WithArgs(employee.TypeAdmin, "Allocated").
		WillReturnResult(sqlmock.NewResult(0, 4))

	n, paths, err := repo.DeleteNonAdminWithoutTasks(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(4), n)
	assert.Equal(t, []string{"invoices/x.pdf"}, paths)
}

func TestRepository_CountActiveAllocations(t *testing.T) {
	gormDB, _, mock := testdb.New(t)
	repo := employee.NewRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "asset_allocations" WHERE employee_id = $1 AND status = $2`)).
		WithArgs(int64(9), "Allocated").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	n, err := repo.CountActiveAllocations(context.Background(), 9)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
