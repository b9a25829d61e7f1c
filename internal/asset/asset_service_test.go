package asset_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"go-worktrack/internal/asset"
	asseterrors "go-worktrack/internal/asset/errors"
	assetMock "go-worktrack/internal/asset/mock"
	"go-worktrack/internal/shared/apperror"
	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/counter"
	counterMock "go-worktrack/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	db       *sql.DB
	sqlMock  sqlmock.Sqlmock
	service  asset.Service
	repo     *assetMock.MockRepository
	counters *counterMock.MockRepository
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	db, sqlMock, _ := sqlmock.New()
	repo := assetMock.NewMockRepository(ctrl)
	counters := counterMock.NewMockRepository(ctrl)
	t.Cleanup(func() {
		assert.NoError(t, sqlMock.ExpectationsWereMet())
		db.Close()
	})

	return &serviceDeps{
		db:       db,
		sqlMock:  sqlMock,
		service:  asset.NewService(db, repo, counters),
		repo:     repo,
		counters: counters,
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

var (
	admin = contextutil.Actor{EmployeeID: 1, FirstName: "Ada", Role: contextutil.RoleAdmin}
	emp   = contextutil.Actor{EmployeeID: 7, FirstName: "Asha", Role: contextutil.RoleEmployee}
)

func TestAssetService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("tags asset from the counter", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.counters.EXPECT().WithTx(gomock.Any()).Return(deps.counters)
		deps.counters.EXPECT().GetNextValue(ctx, counter.TypeAssetTag).Return(int64(42), nil)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *asset.Asset) error {
			assert.Equal(t, "AST-000042", a.AssetTag)
			assert.Equal(t, asset.StatusAvailable, a.Status)
			a.ID = 3
			return nil
		})

		resp, err := deps.service.Create(ctx, asset.AssetRequest{ItemName: " Laptop ", Price: "1200.5"})
		assert.NoError(t, err)
		assert.Equal(t, "AST-000042", resp.AssetTag)
		assert.Equal(t, "1200.50", resp.Price)
		assert.Equal(t, "Laptop", resp.ItemName)
	})

	t.Run("negative price", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, asset.AssetRequest{ItemName: "Laptop", Price: "-1"})
		assert.ErrorIs(t, err, asseterrors.ErrInvalidPrice)
	})
}

func TestAssetService_Delete_WithHistory(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().Delete(ctx, int64(3)).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "asset_allocations_asset_id_fkey"})

	err := deps.service.Delete(ctx, 3)
	assert.ErrorIs(t, err, asseterrors.ErrAssetHasAllocations)
}

func TestAssetService_Allocate(t *testing.T) {
	ctx := context.Background()
	req := asset.AllocateRequest{AssetID: 3, EmployeeID: 7, Description: "onboarding"}

	t.Run("available asset", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().MarkAllocated(ctx, int64(3)).Return(int64(1), nil)
		deps.repo.EXPECT().CreateAllocation(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, a *asset.Allocation) error {
			assert.Equal(t, asset.AllocationActive, a.Status)
			require.NotNil(t, a.AllocatedBy)
			assert.Equal(t, int64(1), *a.AllocatedBy)
			assert.Equal(t, 0, a.AllocateDate.Hour())
			a.ID = 11
			return nil
		})

		resp, err := deps.service.Allocate(ctx, admin, req)
		assert.NoError(t, err)
		assert.Equal(t, int64(11), resp.ID)
	})

	t.Run("already allocated asset conflicts", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().MarkAllocated(ctx, int64(3)).Return(int64(0), nil)
		deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(&asset.Asset{ID: 3, Status: asset.StatusAllocated}, nil)

		_, err := deps.service.Allocate(ctx, admin, req)
		assert.ErrorIs(t, err, asseterrors.ErrAssetNotAvailable)
	})

	t.Run("missing asset", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().MarkAllocated(ctx, int64(3)).Return(int64(0), nil)
		deps.repo.EXPECT().FindByID(ctx, int64(3)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.Allocate(ctx, admin, req)
		assert.ErrorIs(t, err, asseterrors.ErrAssetNotFound)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().MarkAllocated(ctx, int64(3)).Return(int64(1), nil)
		deps.repo.EXPECT().CreateAllocation(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23503", ConstraintName: "asset_allocations_employee_id_fkey"})

		_, err := deps.service.Allocate(ctx, admin, req)
		assert.ErrorIs(t, err, asseterrors.ErrEmployeeNotFound)
	})
}

func TestAssetService_Return(t *testing.T) {
	ctx := context.Background()

	t.Run("closes allocation and frees asset", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockAllocation(ctx, int64(11)).Return(&asset.Allocation{ID: 11, AssetID: 3, Status: asset.AllocationActive}, nil)
		deps.repo.EXPECT().CloseAllocation(ctx, int64(11), gomock.Any()).Return(int64(1), nil)
		deps.repo.EXPECT().MarkAvailable(ctx, int64(3)).Return(nil)

		assert.NoError(t, deps.service.Return(ctx, admin, 11))
	})

	t.Run("returned allocation", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.EXPECT().WithTx(gomock.Any()).Return(deps.repo)
		deps.repo.EXPECT().LockAllocation(ctx, int64(11)).Return(&asset.Allocation{ID: 11, AssetID: 3, Status: asset.AllocationReturned}, nil)

		assert.ErrorIs(t, deps.service.Return(ctx, admin, 11), asseterrors.ErrAllocationReturned)
	})
}

func TestAssetService_ListAllocations_AttachesOpenIssues(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindAllocations(ctx, asset.AllocationFilter{}).Return([]asset.AllocationRow{
		{Allocation: asset.Allocation{ID: 1}, FirstName: "Asha", LastName: "Rao"},
		{Allocation: asset.Allocation{ID: 2}},
	}, nil)
	deps.repo.EXPECT().FindIssues(ctx, []int64{1, 2}, asset.IssueOpen).Return([]asset.Issue{
		{ID: 5, AllocationID: 2, Issue: "Broken key", Status: asset.IssueOpen},
	}, nil)

	resp, err := deps.service.ListAllocations(ctx, asset.AllocationQuery{})
	require.NoError(t, err)
	require.Len(t, resp, 2)
	assert.Equal(t, "Asha Rao", resp[0].EmployeeName)
	assert.Empty(t, resp[0].OpenIssues)
	require.Len(t, resp[1].OpenIssues, 1)
	assert.Equal(t, "Broken key", resp[1].OpenIssues[0].Issue)
}

func TestAssetService_MyAssets_GroupsIssues(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindAllocations(ctx, asset.AllocationFilter{EmployeeID: 7, Status: asset.AllocationActive}).
		Return([]asset.AllocationRow{{Allocation: asset.Allocation{ID: 1, EmployeeID: 7}}}, nil)
	deps.repo.EXPECT().FindIssues(ctx, []int64{1}, "").Return([]asset.Issue{
		{ID: 1, AllocationID: 1, Status: asset.IssueOpen},
		{ID: 2, AllocationID: 1, Status: asset.IssueResolved},
		{ID: 3, AllocationID: 1, Status: asset.IssueResolved},
	}, nil)

	resp, err := deps.service.MyAssets(ctx, emp)
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Len(t, resp[0].Issues.Open, 1)
	assert.Len(t, resp[0].Issues.Resolved, 2)
}

func TestAssetService_ReportIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("blank text", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.ReportIssue(ctx, emp, 1, asset.ReportIssueRequest{Issue: "   "})
		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.CodeValidation, appErr.Code)
	})

	t.Run("foreign allocation looks absent", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllocation(ctx, int64(1)).Return(&asset.Allocation{ID: 1, EmployeeID: 9, Status: asset.AllocationActive}, nil)

		_, err := deps.service.ReportIssue(ctx, emp, 1, asset.ReportIssueRequest{Issue: "screen flicker"})
		assert.ErrorIs(t, err, asseterrors.ErrAllocationNotFound)
	})

	t.Run("returned allocation", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllocation(ctx, int64(1)).Return(&asset.Allocation{ID: 1, EmployeeID: 7, Status: asset.AllocationReturned}, nil)

		_, err := deps.service.ReportIssue(ctx, emp, 1, asset.ReportIssueRequest{Issue: "screen flicker"})
		assert.ErrorIs(t, err, asseterrors.ErrAllocationInactive)
	})

	t.Run("owner of active allocation", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindAllocation(ctx, int64(1)).Return(&asset.Allocation{ID: 1, EmployeeID: 7, Status: asset.AllocationActive}, nil)
		deps.repo.EXPECT().CreateIssue(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, i *asset.Issue) error {
			assert.Equal(t, "screen flicker", i.Issue)
			assert.Equal(t, asset.IssueOpen, i.Status)
			i.ID = 4
			return nil
		})

		resp, err := deps.service.ReportIssue(ctx, emp, 1, asset.ReportIssueRequest{Issue: "  screen flicker "})
		assert.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
	})
}

func TestAssetService_ResolveIssue(t *testing.T) {
	ctx := context.Background()

	t.Run("blank resolution", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.ResolveIssue(ctx, admin, 4, asset.ResolveIssueRequest{Resolution: " "})
		assert.Error(t, err)
	})

	t.Run("resolves open issue", func(t *testing.T) {
		deps := setupServiceTest(t)
		at := time.Now()
		deps.repo.EXPECT().ResolveIssue(ctx, int64(4), "replaced", int64(1), gomock.Any()).Return(int64(1), nil)
		deps.repo.EXPECT().FindIssue(ctx, int64(4)).Return(&asset.Issue{ID: 4, Status: asset.IssueResolved, ResolvedAt: &at}, nil)

		resp, err := deps.service.ResolveIssue(ctx, admin, 4, asset.ResolveIssueRequest{Resolution: "replaced"})
		assert.NoError(t, err)
		assert.Equal(t, asset.IssueResolved, resp.Status)
		assert.NotEmpty(t, resp.ResolvedAt)
	})

	t.Run("already resolved", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ResolveIssue(ctx, int64(4), "again", int64(1), gomock.Any()).Return(int64(0), nil)
		deps.repo.EXPECT().FindIssue(ctx, int64(4)).Return(&asset.Issue{ID: 4, Status: asset.IssueResolved}, nil)

		_, err := deps.service.ResolveIssue(ctx, admin, 4, asset.ResolveIssueRequest{Resolution: "again"})
		assert.ErrorIs(t, err, asseterrors.ErrIssueResolved)
	})

	t.Run("missing issue", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().ResolveIssue(ctx, int64(4), "x", int64(1), gomock.Any()).Return(int64(0), nil)
		deps.repo.EXPECT().FindIssue(ctx, int64(4)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.ResolveIssue(ctx, admin, 4, asset.ResolveIssueRequest{Resolution: "x"})
		assert.ErrorIs(t, err, asseterrors.ErrIssueNotFound)
	})
}
