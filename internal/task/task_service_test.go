package task_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/task"
	taskerrors "go-worktrack/internal/task/errors"
	taskMock "go-worktrack/internal/task/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service task.Service
	repo    *taskMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := taskMock.NewMockRepository(ctrl)
	t.Cleanup(func() { db.Close() })

	return &serviceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: task.NewService(db, repo),
		repo:    repo,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

var employeeActor = contextutil.Actor{EmployeeID: 7, FirstName: "Asha", Role: contextutil.RoleEmployee}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults status to pending", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, tk *task.Task) error {
			assert.Equal(t, task.StatusPending, tk.Status)
			tk.ID = 12
			return nil
		})

		resp, err := deps.service.Create(ctx, task.TaskRequest{
			ProjectID: 1, EmployeeID: 7, Description: "Build login", Priority: "high", StartDate: "2024-03-01",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(12), resp.ID)
		assert.Equal(t, task.StatusPending, resp.Status)
	})

	t.Run("unknown project", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23503", ConstraintName: "tasks_project_id_fkey"})

		_, err := deps.service.Create(ctx, task.TaskRequest{
			ProjectID: 99, EmployeeID: 7, Description: "x", Priority: "low", StartDate: "2024-03-01",
		})
		assert.ErrorIs(t, err, taskerrors.ErrProjectNotFound)
	})
}

func TestTaskService_List(t *testing.T) {
	deps := setupServiceTest(t)
	ctx := context.Background()

	deps.repo.EXPECT().FindAll(ctx, task.ListFilter{Status: "pending", Page: 1, PageSize: task.DefaultPageSize}).
		Return([]task.TaskRow{{ID: 1, ProjectName: "Apollo", FirstName: "Asha", LastName: "Rao"}}, int64(21), nil)

	resp, total, err := deps.service.List(ctx, task.ListFilter{Status: "pending"})
	assert.NoError(t, err)
	assert.Equal(t, int64(21), total)
	assert.Equal(t, "Asha Rao", resp[0].EmployeeName)
}

func TestTaskService_AddDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("complete closes the task", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockByID(ctx, int64(3)).Return(&task.Task{ID: 3, EmployeeID: 7}, nil)
		deps.repo.EXPECT().CountDetailsSince(ctx, int64(3), int64(7), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ int64, since time.Time) (int64, error) {
				assert.Equal(t, 0, since.Hour())
				return 0, nil
			})
		deps.repo.EXPECT().CreateDetail(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *task.Detail) error {
			assert.Equal(t, int64(7), d.EmployeeID)
			d.ID = 40
			return nil
		})
		deps.repo.EXPECT().MarkCompleted(ctx, int64(3), gomock.Any()).Return(nil)

		resp, err := deps.service.AddDetail(ctx, employeeActor, 3, task.DetailRequest{Description: "done", Status: task.DetailComplete})
		assert.NoError(t, err)
		assert.Equal(t, int64(40), resp.ID)
	})

	t.Run("incomplete leaves the task open", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockByID(ctx, int64(3)).Return(&task.Task{ID: 3, EmployeeID: 7}, nil)
		deps.repo.EXPECT().CountDetailsSince(ctx, int64(3), int64(7), gomock.Any()).Return(int64(0), nil)
		deps.repo.EXPECT().CreateDetail(ctx, gomock.Any()).Return(nil)

		_, err := deps.service.AddDetail(ctx, employeeActor, 3, task.DetailRequest{Description: "wip", Status: task.DetailIncomplete})
		assert.NoError(t, err)
	})

	t.Run("foreign task", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockByID(ctx, int64(3)).Return(&task.Task{ID: 3, EmployeeID: 8}, nil)

		_, err := deps.service.AddDetail(ctx, employeeActor, 3, task.DetailRequest{Description: "x", Status: task.DetailIncomplete})
		assert.ErrorIs(t, err, taskerrors.ErrTaskNotOwned)
	})

	t.Run("second update on the same day", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockByID(ctx, int64(3)).Return(&task.Task{ID: 3, EmployeeID: 7}, nil)
		deps.repo.EXPECT().CountDetailsSince(ctx, int64(3), int64(7), gomock.Any()).Return(int64(1), nil)

		_, err := deps.service.AddDetail(ctx, employeeActor, 3, task.DetailRequest{Description: "x", Status: task.DetailIncomplete})
		assert.ErrorIs(t, err, taskerrors.ErrDetailExistsToday)
	})

	t.Run("missing task", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockByID(ctx, int64(3)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.AddDetail(ctx, employeeActor, 3, task.DetailRequest{Description: "x", Status: task.DetailIncomplete})
		assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)
	})
}

func TestTaskService_EditDetail(t *testing.T) {
	ctx := context.Background()

	t.Run("foreign detail looks absent", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindOwnedDetail(ctx, int64(40), int64(7)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.EditDetail(ctx, employeeActor, 40, task.DetailRequest{Description: "x", Status: task.DetailComplete})
		assert.ErrorIs(t, err, taskerrors.ErrDetailNotFound)
	})

	t.Run("complete resets timestamp and closes task", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		old := time.Now().Add(-48 * time.Hour)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().FindOwnedDetail(ctx, int64(40), int64(7)).
			Return(&task.Detail{ID: 40, TaskID: 3, EmployeeID: 7, InsertedAt: old}, nil)
		deps.repo.EXPECT().UpdateDetail(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, d *task.Detail) error {
			assert.True(t, d.InsertedAt.After(old))
			assert.Equal(t, "final", d.Description)
			return nil
		})
		deps.repo.EXPECT().MarkCompleted(ctx, int64(3), gomock.Any()).Return(nil)

		_, err := deps.service.EditDetail(ctx, employeeActor, 40, task.DetailRequest{Description: " final ", Status: task.DetailComplete})
		assert.NoError(t, err)
	})
}

func TestTaskService_ListDetails(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)

	deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(&task.Task{ID: 3, EmployeeID: 8}, nil).Times(2)
	deps.repo.EXPECT().FindDetails(ctx, int64(3)).Return([]task.DetailRow{{ID: 1, FirstName: "Ravi"}}, nil)

	_, err := deps.service.ListDetails(ctx, employeeActor, 3)
	assert.ErrorIs(t, err, taskerrors.ErrTaskNotFound)

	resp, err := deps.service.ListDetails(ctx, contextutil.Actor{EmployeeID: 1, Role: contextutil.RoleAdmin}, 3)
	assert.NoError(t, err)
	assert.Equal(t, "Ravi", resp[0].EmployeeName)
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	expectTx(t, deps.sqlMock, false)
	deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
	deps.repo.EXPECT().Delete(ctx, int64(5)).Return(gorm.ErrRecordNotFound)

	assert.ErrorIs(t, deps.service.Delete(ctx, 5), taskerrors.ErrTaskNotFound)
}
