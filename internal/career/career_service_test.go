package career_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go-worktrack/internal/career"
	careererrors "go-worktrack/internal/career/errors"
	careerMock "go-worktrack/internal/career/mock"
	"go-worktrack/internal/shared/storage"
	storageMock "go-worktrack/internal/shared/storage/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type serviceDeps struct {
	service career.Service
	repo    *careerMock.MockRepository
	store   *storageMock.MockStore
}

func setupServiceTest(t *testing.T) *serviceDeps {
	ctrl := gomock.NewController(t)
	repo := careerMock.NewMockRepository(ctrl)
	store := storageMock.NewMockStore(ctrl)
	return &serviceDeps{
		service: career.NewService(repo, store),
		repo:    repo,
		store:   store,
	}
}

const gifBody = "GIF89a\x01\x00\x01\x00\x80\x00\x00\xff\xff\xff\x00\x00\x00,\x00\x00\x00\x00\x01\x00\x01\x00\x00\x02\x02D\x01\x00;"

func banner(body string) *storage.Upload {
	return &storage.Upload{FileName: "banner.gif", Size: int64(len(body)), Content: strings.NewReader(body)}
}

func TestCareerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("with banner", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Save(ctx, storage.ClassCareer, gomock.Any()).Return(storage.Object{Path: "careers/b.gif"}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *career.Career) error {
			assert.Equal(t, "Go Engineer", c.Title)
			assert.Equal(t, "careers/b.gif", c.BannerPath)
			c.ID = 4
			return nil
		})

		resp, err := deps.service.Create(ctx, career.CareerRequest{Title: " Go Engineer ", Location: "Remote"}, banner(gifBody))
		require.NoError(t, err)
		assert.Equal(t, int64(4), resp.ID)
		assert.Equal(t, "careers/b.gif", resp.BannerPath)
	})

	t.Run("banner must be an image", func(t *testing.T) {
		deps := setupServiceTest(t)
		_, err := deps.service.Create(ctx, career.CareerRequest{Title: "Go Engineer"}, banner("%PDF-1.4\n%%EOF\n"))
		assert.ErrorIs(t, err, careererrors.ErrInvalidBanner)
	})

	t.Run("insert failure drops the banner", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.store.EXPECT().Save(ctx, storage.ClassCareer, gomock.Any()).Return(storage.Object{Path: "careers/b.gif"}, nil)
		deps.repo.EXPECT().Create(ctx, gomock.Any()).Return(errors.New("db down"))
		deps.store.EXPECT().Remove(ctx, "careers/b.gif").Return(nil)

		_, err := deps.service.Create(ctx, career.CareerRequest{Title: "Go Engineer"}, banner(gifBody))
		assert.Error(t, err)
	})
}

func TestCareerService_Update_ReplacesBanner(t *testing.T) {
	ctx := context.Background()
	deps := setupServiceTest(t)
	deps.repo.EXPECT().FindByID(ctx, int64(4)).Return(&career.Career{ID: 4, Title: "Old", BannerPath: "careers/old.gif"}, nil)
	deps.store.EXPECT().Save(ctx, storage.ClassCareer, gomock.Any()).Return(storage.Object{Path: "careers/new.gif"}, nil)
	deps.repo.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, c *career.Career) error {
		assert.Equal(t, "careers/new.gif", c.BannerPath)
		return nil
	})
	deps.store.EXPECT().Remove(ctx, "careers/old.gif").Return(errors.New("busy"))

	resp, err := deps.service.Update(ctx, 4, career.CareerRequest{Title: "New"}, banner(gifBody))
	require.NoError(t, err)
	assert.Equal(t, "New", resp.Title)
}

func TestCareerService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes banner", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, int64(4)).Return(&career.Career{ID: 4, BannerPath: "careers/b.gif"}, nil)
		deps.repo.EXPECT().Delete(ctx, int64(4)).Return(nil)
		deps.store.EXPECT().Remove(ctx, "careers/b.gif").Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, 4))
	})

	t.Run("no banner nothing to remove", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, int64(5)).Return(&career.Career{ID: 5}, nil)
		deps.repo.EXPECT().Delete(ctx, int64(5)).Return(nil)

		assert.NoError(t, deps.service.Delete(ctx, 5))
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.repo.EXPECT().FindByID(ctx, int64(6)).Return(nil, gorm.ErrRecordNotFound)

		assert.ErrorIs(t, deps.service.Delete(ctx, 6), careererrors.ErrCareerNotFound)
	})
}
