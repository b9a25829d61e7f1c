package task_test

import (
	"context"
	"testing"

	"go-worktrack/internal/shared/testdb"
	"go-worktrack/internal/task"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestRepository_Delete_RemovesDetailsFirst(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := task.NewRepository(gdb)

	mock.ExpectExec(`DELETE FROM "task_details" WHERE task_id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 4)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_FindOwnedDetail(t *testing.T) {
	gdb, _, mock := testdb.New(t)
	repo := task.NewRepository(gdb)

	mock.ExpectQuery(`SELECT td\.\* FROM task_details td JOIN tasks t ON t\.id = td\.task_id WHERE td\.id = \$1 AND t\.employee_id = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "task_id", "employee_id", "description", "status"}).
			AddRow(40, 3, 7, "wip", "incomplete"))

	d, err := repo.FindOwnedDetail(context.Background(), 40, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), d.TaskID)
}
