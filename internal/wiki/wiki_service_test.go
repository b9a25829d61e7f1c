package wiki_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-worktrack/internal/shared/contextutil"
	"go-worktrack/internal/shared/storage"
	storageMock "go-worktrack/internal/shared/storage/mock"
	"go-worktrack/internal/wiki"
	wikierrors "go-worktrack/internal/wiki/errors"
	wikiMock "go-worktrack/internal/wiki/mock"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service wiki.Service
	repo    *wikiMock.MockRepository
	store   *storageMock.MockStore
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	repo := wikiMock.NewMockRepository(ctrl)
	store := storageMock.NewMockStore(ctrl)
	return &serviceDeps{
		service: wiki.NewService(repo, store),
		repo:    repo,
		store:   store,
	}
}

var (
	admin = contextutil.Actor{EmployeeID: 1, Role: contextutil.RoleAdmin}
	emp   = contextutil.Actor{EmployeeID: 7, Role: contextutil.RoleEmployee}
)

const pngBody = "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00"

func imageUpload() *storage.Upload {
	return &storage.Upload{FileName: "cover.png", Size: int64(len(pngBody)), Content: strings.NewReader(pngBody)}
}

func TestWikiService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("with image", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Save(ctx, storage.ClassWiki, gomock.Any()).Return(storage.Object{Path: "wiki/a.png"}, nil)
		deps.repo.EXPECT().CreateCategory(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *wiki.Category) error {
			assert.Equal(t, "HR", c.Name)
			assert.Equal(t, "wiki/a.png", c.ImagePath)
			c.ID = 2
			return nil
		})

		resp, err := deps.service.CreateCategory(ctx, wiki.CategoryRequest{Name: " HR "}, imageUpload())
		assert.NoError(t, err)
		assert.Equal(t, int64(2), resp.ID)
	})

	t.Run("non image upload is rejected", func(t *testing.T) {
		deps := setupServiceTest(t)
		up := &storage.Upload{FileName: "x.png", Size: 5, Content: strings.NewReader("hello")}

		_, err := deps.service.CreateCategory(ctx, wiki.CategoryRequest{Name: "HR"}, up)
		assert.ErrorIs(t, err, wikierrors.ErrInvalidImage)
	})

	t.Run("duplicate name drops the stored image", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Save(ctx, storage.ClassWiki, gomock.Any()).Return(storage.Object{Path: "wiki/a.png"}, nil)
		deps.repo.EXPECT().CreateCategory(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505", ConstraintName: "uq_wiki_category_name"})
		deps.store.EXPECT().Remove(ctx, "wiki/a.png").Return(nil)

		_, err := deps.service.CreateCategory(ctx, wiki.CategoryRequest{Name: "HR"}, imageUpload())
		assert.ErrorIs(t, err, wikierrors.ErrCategoryAlreadyExists)
	})
}

func TestWikiService_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("replacing the image removes the old file", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindCategory(ctx, int64(2)).Return(&wiki.Category{ID: 2, Name: "HR", ImagePath: "wiki/old.png"}, nil)
		deps.store.EXPECT().Save(ctx, storage.ClassWiki, gomock.Any()).Return(storage.Object{Path: "wiki/new.png"}, nil)
		deps.repo.EXPECT().UpdateCategory(ctx, &wiki.Category{ID: 2, Name: "People", ImagePath: "wiki/new.png"}).Return(nil)
		deps.store.EXPECT().Remove(ctx, "wiki/old.png").Return(errors.New("gone"))

		resp, err := deps.service.UpdateCategory(ctx, 2, wiki.CategoryRequest{Name: "People"}, imageUpload())
		assert.NoError(t, err)
		assert.Equal(t, "wiki/new.png", resp.ImagePath)
	})

	t.Run("remove image flag clears it", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindCategory(ctx, int64(2)).Return(&wiki.Category{ID: 2, Name: "HR", ImagePath: "wiki/old.png"}, nil)
		deps.repo.EXPECT().UpdateCategory(ctx, &wiki.Category{ID: 2, Name: "HR"}).Return(nil)
		deps.store.EXPECT().Remove(ctx, "wiki/old.png").Return(nil)

		resp, err := deps.service.UpdateCategory(ctx, 2, wiki.CategoryRequest{Name: "HR", RemoveImage: true}, nil)
		assert.NoError(t, err)
		assert.Empty(t, resp.ImagePath)
	})

	t.Run("name only keeps the image", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindCategory(ctx, int64(2)).Return(&wiki.Category{ID: 2, Name: "HR", ImagePath: "wiki/old.png"}, nil)
		deps.repo.EXPECT().UpdateCategory(ctx, &wiki.Category{ID: 2, Name: "People", ImagePath: "wiki/old.png"}).Return(nil)

		_, err := deps.service.UpdateCategory(ctx, 2, wiki.CategoryRequest{Name: "People"}, nil)
		assert.NoError(t, err)
	})
}

func TestWikiService_DeleteCategory_WithPages(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindCategory(ctx, int64(2)).Return(&wiki.Category{ID: 2, ImagePath: "wiki/a.png"}, nil)
	deps.repo.EXPECT().DeleteCategory(ctx, int64(2)).
		Return(&pgconn.PgError{Code: "23503", ConstraintName: "wiki_pages_category_id_fkey"})

	err := deps.service.DeleteCategory(ctx, 2)
	assert.ErrorIs(t, err, wikierrors.ErrCategoryHasPages)
}

func TestWikiService_GetPage(t *testing.T) {
	ctx := context.Background()
	live := &wiki.PageRow{Page: wiki.Page{ID: 5, Title: "Leave policy", RowStatus: wiki.RowActive}}
	deleted := &wiki.PageRow{Page: wiki.Page{ID: 5, Title: "Old", RowStatus: wiki.RowDeleted}}

	t.Run("employee view is recorded", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, int64(5)).Return(live, nil)
		deps.repo.EXPECT().CreateView(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, v *wiki.View) error {
			assert.Equal(t, int64(5), v.WikiID)
			assert.Equal(t, int64(7), v.EmployeeID)
			return nil
		})

		resp, err := deps.service.GetPage(ctx, emp, 5)
		assert.NoError(t, err)
		assert.Equal(t, "Leave policy", resp.Title)
	})

	t.Run("recording failure still returns the page", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, int64(5)).Return(live, nil)
		deps.repo.EXPECT().CreateView(ctx, gomock.Any()).Return(errors.New("insert failed"))

		resp, err := deps.service.GetPage(ctx, emp, 5)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), resp.ID)
	})

	t.Run("deleted page is hidden from employees", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, int64(5)).Return(deleted, nil)

		_, err := deps.service.GetPage(ctx, emp, 5)
		assert.ErrorIs(t, err, wikierrors.ErrPageNotFound)
	})

	t.Run("admin reads deleted page without a view", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, int64(5)).Return(deleted, nil)

		resp, err := deps.service.GetPage(ctx, admin, 5)
		assert.NoError(t, err)
		assert.True(t, resp.Deleted)
	})

	t.Run("missing page", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindPage(ctx, int64(5)).Return(nil, gorm.ErrRecordNotFound)

		_, err := deps.service.GetPage(ctx, emp, 5)
		assert.ErrorIs(t, err, wikierrors.ErrPageNotFound)
	})
}

func TestWikiService_ListPages_DeletedOnlyForAdmins(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindPages(ctx, wiki.PageFilter{CategoryID: 2}).Return(nil, nil)
	deps.repo.EXPECT().FindPages(ctx, wiki.PageFilter{CategoryID: 2, IncludeDeleted: true}).Return(nil, nil)

	_, err := deps.service.ListPages(ctx, emp, wiki.PageQuery{CategoryID: 2, IncludeDeleted: true})
	require.NoError(t, err)
	_, err = deps.service.ListPages(ctx, admin, wiki.PageQuery{CategoryID: 2, IncludeDeleted: true})
	require.NoError(t, err)
}

func TestWikiService_DeletePage(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().SoftDeletePage(ctx, int64(5)).Return(int64(1), nil)
	deps.repo.EXPECT().SoftDeletePage(ctx, int64(6)).Return(int64(0), nil)

	assert.NoError(t, deps.service.DeletePage(ctx, 5))
	assert.ErrorIs(t, deps.service.DeletePage(ctx, 6), wikierrors.ErrPageNotFound)
}

func TestWikiService_ViewCounts(t *testing.T) {
	ctx := context.Background()

	t.Run("includes deleted pages", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().CountViews(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, f wiki.ViewFilter) ([]wiki.ViewCount, error) {
			require.NotNil(t, f.FromDate)
			assert.Nil(t, f.ToDate)
			return []wiki.ViewCount{
				{WikiID: 1, Title: "A", RowStatus: wiki.RowActive, Views: 4},
				{WikiID: 2, Title: "B", RowStatus: wiki.RowDeleted, Views: 1},
			}, nil
		})

		resp, err := deps.service.ViewCounts(ctx, wiki.ViewQuery{FromDate: "2024-05-01"})
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.True(t, resp[1].Deleted)
	})

	t.Run("bad date", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Views(ctx, wiki.ViewQuery{ToDate: "05/01/2024"})
		assert.ErrorIs(t, err, wikierrors.ErrInvalidDateFormat)
	})
}
