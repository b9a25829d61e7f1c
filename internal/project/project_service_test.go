package project_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worktrack/internal/project"
	projecterrors "go-worktrack/internal/project/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepo struct {
	createFn     func(ctx context.Context, p *project.Project) error
	findAllFn    func(ctx context.Context) ([]project.Project, error)
	findByIDFn   func(ctx context.Context, id int64) (*project.Project, error)
	findTasksFn  func(ctx context.Context, projectID int64) ([]project.ProjectTask, error)
	updateFn     func(ctx context.Context, p *project.Project) error
	deleteFn     func(ctx context.Context, id int64) error
	countTasksFn func(ctx context.Context, id int64) (int64, error)
}

func (f *fakeRepo) WithTx(tx *sql.Tx) project.Repository { return f }

func (f *fakeRepo) Create(ctx context.Context, p *project.Project) error {
	return f.createFn(ctx, p)
}

func (f *fakeRepo) FindAll(ctx context.Context) ([]project.Project, error) {
	return f.findAllFn(ctx)
}

func (f *fakeRepo) FindByID(ctx context.Context, id int64) (*project.Project, error) {
	return f.findByIDFn(ctx, id)
}

func (f *fakeRepo) FindTasks(ctx context.Context, projectID int64) ([]project.ProjectTask, error) {
	return f.findTasksFn(ctx, projectID)
}

func (f *fakeRepo) Update(ctx context.Context, p *project.Project) error {
	return f.updateFn(ctx, p)
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	return f.deleteFn(ctx, id)
}

func (f *fakeRepo) CountTasks(ctx context.Context, id int64) (int64, error) {
	return f.countTasksFn(ctx, id)
}

func setupService(t *testing.T, repo *fakeRepo) (project.Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		db.Close()
	})
	return project.NewService(db, repo), mock
}

func TestProjectService_Create(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo := &fakeRepo{createFn: func(ctx context.Context, p *project.Project) error {
			assert.Equal(t, "Apollo", p.Name)
			assert.Nil(t, p.EndDate)
			p.ID = 3
			return nil
		}}
		svc, mock := setupService(t, repo)
		mock.ExpectBegin()
		mock.ExpectCommit()

		resp, err := svc.Create(context.Background(), project.ProjectRequest{
			Name: " Apollo ", Priority: "high", Status: "active", StartDate: "2024-01-10",
		})
		assert.NoError(t, err)
		assert.Equal(t, int64(3), resp.ID)
		assert.Equal(t, "2024-01-10", resp.StartDate)
	})

	t.Run("end before start", func(t *testing.T) {
		svc, _ := setupService(t, &fakeRepo{})
		_, err := svc.Create(context.Background(), project.ProjectRequest{
			Name: "Apollo", Priority: "high", Status: "active", StartDate: "2024-01-10", EndDate: "2024-01-01",
		})
		assert.ErrorIs(t, err, projecterrors.ErrInvalidDateRange)
	})

	t.Run("bad date", func(t *testing.T) {
		svc, _ := setupService(t, &fakeRepo{})
		_, err := svc.Create(context.Background(), project.ProjectRequest{StartDate: "10/01/2024"})
		assert.ErrorIs(t, err, projecterrors.ErrInvalidDate)
	})
}

func TestProjectService_GetByID(t *testing.T) {
	end := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	repo := &fakeRepo{
		findByIDFn: func(ctx context.Context, id int64) (*project.Project, error) {
			if id != 1 {
				return nil, gorm.ErrRecordNotFound
			}
			return &project.Project{ID: 1, Name: "Apollo", StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)}, nil
		},
		findTasksFn: func(ctx context.Context, projectID int64) ([]project.ProjectTask, error) {
			return []project.ProjectTask{{ID: 9, FirstName: "Asha", LastName: "Rao", EndDate: &end}}, nil
		},
	}
	svc, _ := setupService(t, repo)

	resp, err := svc.GetByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, resp.Tasks, 1)
	assert.Equal(t, "Asha Rao", resp.Tasks[0].EmployeeName)
	assert.Equal(t, "2024-02-01", resp.Tasks[0].EndDate)

	_, err = svc.GetByID(context.Background(), 2)
	assert.ErrorIs(t, err, projecterrors.ErrProjectNotFound)
}

func TestProjectService_Delete(t *testing.T) {
	t.Run("refused with tasks", func(t *testing.T) {
		deleted := false
		repo := &fakeRepo{
			countTasksFn: func(ctx context.Context, id int64) (int64, error) { return 2, nil },
			deleteFn: func(ctx context.Context, id int64) error {
				deleted = true
				return nil
			},
		}
		svc, mock := setupService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		err := svc.Delete(context.Background(), 5)
		assert.ErrorIs(t, err, projecterrors.ErrProjectHasTasks)
		assert.False(t, deleted)
	})

	t.Run("removed without tasks", func(t *testing.T) {
		repo := &fakeRepo{
			countTasksFn: func(ctx context.Context, id int64) (int64, error) { return 0, nil },
			deleteFn:     func(ctx context.Context, id int64) error { return nil },
		}
		svc, mock := setupService(t, repo)
		mock.ExpectBegin()
		mock.ExpectCommit()

		assert.NoError(t, svc.Delete(context.Background(), 5))
	})

	t.Run("missing", func(t *testing.T) {
		repo := &fakeRepo{
			countTasksFn: func(ctx context.Context, id int64) (int64, error) { return 0, nil },
			deleteFn:     func(ctx context.Context, id int64) error { return gorm.ErrRecordNotFound },
		}
		svc, mock := setupService(t, repo)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.ErrorIs(t, svc.Delete(context.Background(), 5), projecterrors.ErrProjectNotFound)
	})
}
