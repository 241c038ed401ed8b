package services_test

import (
	"context"
	"net/http"
	"testing"

	"audition_backend/internal/metrics"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"
	"audition_backend/internal/testutil"
	"audition_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVideoService() services.VideoService {
	return services.NewVideoService(repositories.NewVideoRepository(), metrics.New())
}

func TestVideoService_Create(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService()
	ctx := context.Background()
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)

	resp, err := svc.Create(ctx, db, actorOf(applicant), &dto.CreateVideoRequest{
		Title:    "Dance cover",
		VideoURL: "https://youtu.be/abc123XYZ",
		Duration: 95,
		Category: models.CategoryDancer,
	})
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusPublished, resp.Status)
	assert.Equal(t, "https://img.youtube.com/vi/abc123XYZ/maxresdefault.jpg", resp.ThumbnailURL)
	assert.Equal(t, "https://www.youtube.com/embed/abc123XYZ", resp.EmbedURL)

	_, err = svc.Create(ctx, db, actorOf(applicant), &dto.CreateVideoRequest{
		Title:    "Vimeo",
		VideoURL: "https://vimeo.com/123456",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidVideoURL)
}

func TestVideoService_GetCountsViews(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService()
	ctx := context.Background()
	video := testutil.CreateVideo(t, db, testutil.CreateUser(t, db, models.UserTypeApplicant).ID)

	first, err := svc.Get(ctx, db, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ViewCount)

	second, err := svc.Get(ctx, db, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.ViewCount)

	_, err = svc.Get(ctx, db, "missing")
	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)
}

func TestVideoService_DeleteIsLogical(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService()
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, models.UserTypeApplicant)
	other := testutil.CreateUser(t, db, models.UserTypeApplicant)
	video := testutil.CreateVideo(t, db, owner.ID)

	err := svc.Delete(ctx, db, actorOf(other), video.ID)
	requireAppError(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(ctx, db, actorOf(owner), video.ID))

	// Строка остается доступной, просмотры не считаются
	resp, err := svc.Get(ctx, db, video.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VideoStatusDeleted, resp.Status)
	assert.Zero(t, resp.ViewCount)

	_, err = svc.Like(ctx, db, video.ID)
	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)

	public, err := svc.List(ctx, db, &dto.VideoListQuery{}, repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Empty(t, public.Content)

	mine, err := svc.ListMine(ctx, db, actorOf(owner), repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Empty(t, mine.Content)
}

func TestVideoService_UpdateAndLike(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService()
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, models.UserTypeApplicant)
	video := testutil.CreateVideo(t, db, owner.ID)

	resp, err := svc.Update(ctx, db, actorOf(owner), video.ID, &dto.UpdateVideoRequest{
		VideoURL: strPtr("https://www.youtube.com/shorts/short42"),
		Status:   func() *models.VideoStatus { s := models.VideoStatusPrivate; return &s }(),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://img.youtube.com/vi/short42/maxresdefault.jpg", resp.ThumbnailURL)
	assert.Equal(t, models.VideoStatusPrivate, resp.Status)
	assert.Equal(t, video.Title, resp.Title)

	_, err = svc.Update(ctx, db, actorOf(owner), video.ID, &dto.UpdateVideoRequest{VideoURL: strPtr("https://example.com/v.mp4")})
	assert.ErrorIs(t, err, apperrors.ErrInvalidVideoURL)

	liked, err := svc.Like(ctx, db, video.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), liked.LikeCount)

	// Приватное видео видно владельцу, но не в публичном списке
	mine, err := svc.ListMine(ctx, db, actorOf(owner), repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Len(t, mine.Content, 1)
	public, err := svc.List(ctx, db, &dto.VideoListQuery{UserID: owner.ID}, repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Empty(t, public.Content)
}

func TestVideoService_CustomThumbnail(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newVideoService()
	ctx := context.Background()
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)

	resp, err := svc.Create(ctx, db, actorOf(applicant), &dto.CreateVideoRequest{
		Title:        "Vocal take",
		VideoURL:     "https://www.youtube.com/watch?v=first111",
		ThumbnailURL: "https://cdn.example.com/cover.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", resp.ThumbnailURL)

	// Новая ссылка без превью - превью снова с YouTube
	newURL := "https://youtu.be/second22"
	updated, err := svc.Update(ctx, db, actorOf(applicant), resp.ID, &dto.UpdateVideoRequest{VideoURL: &newURL})
	require.NoError(t, err)
	assert.Equal(t, "https://img.youtube.com/vi/second22/maxresdefault.jpg", updated.ThumbnailURL)

	cover := "https://cdn.example.com/cover-2.jpg"
	updated, err = svc.Update(ctx, db, actorOf(applicant), resp.ID, &dto.UpdateVideoRequest{ThumbnailURL: &cover})
	require.NoError(t, err)
	assert.Equal(t, cover, updated.ThumbnailURL)
	assert.Equal(t, newURL, updated.VideoURL)
}
