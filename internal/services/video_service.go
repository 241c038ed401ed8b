package services

import (
	"context"
	"errors"
	"strings"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/internal/youtube"
	"audition_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type VideoService interface {
	Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateVideoRequest) (*dto.VideoResponse, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.VideoResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.VideoListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.VideoResponse], error)
	ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, page repositories.Pagination) (*dto.PageResponse[*dto.VideoResponse], error)
	Update(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateVideoRequest) (*dto.VideoResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
	Like(ctx context.Context, db *gorm.DB, id string) (*dto.VideoResponse, error)
}

type videoService struct {
	videoRepo repositories.VideoRepository
	metrics   *metrics.Metrics
}

func NewVideoService(videoRepo repositories.VideoRepository, m *metrics.Metrics) VideoService {
	return &videoService{videoRepo: videoRepo, metrics: m}
}

func (s *videoService) Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateVideoRequest) (*dto.VideoResponse, error) {
	videoID, err := youtube.ExtractID(req.VideoURL)
	if err != nil {
		return nil, apperrors.ErrInvalidVideoURL
	}

	status := req.Status
	if status == "" {
		status = models.VideoStatusPublished
	}
	if status == models.VideoStatusDeleted {
		return nil, apperrors.ErrInvalidStatus("video", "A new video cannot be DELETED")
	}

	thumbnail := strings.TrimSpace(req.ThumbnailURL)
	if thumbnail == "" {
		thumbnail = youtube.ThumbnailURL(videoID)
	}

	video := &models.VideoContent{
		UserID:       actor.ID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		ThumbnailURL: thumbnail,
		Duration:     req.Duration,
		Category:     req.Category,
		Status:       status,
	}
	if err := s.videoRepo.Create(db, video); err != nil {
		return nil, handleVideoError(err)
	}

	logger.CtxInfo(ctx, "Video created", "video_id", video.ID, "user_id", actor.ID)
	return s.get(db, video.ID)
}

// Get увеличивает счетчик просмотров. Удаленное видео отдается без инкремента.
func (s *videoService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.VideoResponse, error) {
	err := s.videoRepo.IncrementViewCount(db, id)
	switch {
	case err == nil:
		s.metrics.VideoViewed()
	case errors.Is(err, repositories.ErrVideoNotFound):
		// строки нет или она в статусе DELETED - решит FindByID
	default:
		return nil, handleVideoError(err)
	}
	return s.get(db, id)
}

func (s *videoService) get(db *gorm.DB, id string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByID(db, id)
	if err != nil {
		return nil, handleVideoError(err)
	}
	return dto.NewVideoResponse(video), nil
}

// List - публичный список опубликованных видео
func (s *videoService) List(ctx context.Context, db *gorm.DB, query *dto.VideoListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.VideoResponse], error) {
	filter := repositories.VideoFilter{
		Statuses: []models.VideoStatus{models.VideoStatusPublished},
		Sort:     repositories.VideoSortNewest,
	}
	if query != nil {
		filter.UserID = query.UserID
		if query.Sort == string(repositories.VideoSortPopular) {
			filter.Sort = repositories.VideoSortPopular
		}
	}
	return s.list(db, filter, page)
}

// ListMine - все неудаленные видео текущего пользователя
func (s *videoService) ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, page repositories.Pagination) (*dto.PageResponse[*dto.VideoResponse], error) {
	return s.list(db, repositories.VideoFilter{
		UserID:   actor.ID,
		Statuses: []models.VideoStatus{models.VideoStatusPublished, models.VideoStatusPrivate},
		Sort:     repositories.VideoSortNewest,
	}, page)
}

func (s *videoService) list(db *gorm.DB, filter repositories.VideoFilter, page repositories.Pagination) (*dto.PageResponse[*dto.VideoResponse], error) {
	items, total, err := s.videoRepo.List(db, filter, page)
	if err != nil {
		return nil, handleVideoError(err)
	}
	return dto.NewPage(dto.NewVideoList(items), total, page.Page, page.Size), nil
}

func (s *videoService) Update(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateVideoRequest) (*dto.VideoResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	video, err := s.videoRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleVideoError(err)
	}
	if err := auth.RequireOwner(actor, video.UserID, "video"); err != nil {
		return nil, err
	}
	if video.Status == models.VideoStatusDeleted {
		return nil, apperrors.ErrVideoNotFound
	}

	if req.VideoURL != nil {
		videoID, err := youtube.ExtractID(*req.VideoURL)
		if err != nil {
			return nil, apperrors.ErrInvalidVideoURL
		}
		video.VideoURL = *req.VideoURL
		video.ThumbnailURL = youtube.ThumbnailURL(videoID)
	}
	// Явное превью важнее производного от новой ссылки
	if req.ThumbnailURL != nil && strings.TrimSpace(*req.ThumbnailURL) != "" {
		video.ThumbnailURL = strings.TrimSpace(*req.ThumbnailURL)
	}
	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = *req.Description
	}
	if req.Duration != nil {
		video.Duration = *req.Duration
	}
	if req.Category != nil {
		video.Category = *req.Category
	}
	if req.Status != nil {
		if *req.Status == models.VideoStatusDeleted {
			return nil, apperrors.ErrInvalidStatus("video", "Use DELETE to remove a video")
		}
		video.Status = *req.Status
	}

	if err := s.videoRepo.Update(tx, video); err != nil {
		return nil, handleVideoError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.get(db, id)
}

// Delete - логическое удаление (статус DELETED)
func (s *videoService) Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	video, err := s.videoRepo.FindByID(db, id)
	if err != nil {
		return handleVideoError(err)
	}
	if err := auth.RequireOwner(actor, video.UserID, "video"); err != nil {
		return err
	}
	if video.Status == models.VideoStatusDeleted {
		return nil
	}

	if err := s.videoRepo.MarkDeleted(db, id); err != nil {
		return handleVideoError(err)
	}
	logger.CtxInfo(ctx, "Video deleted", "video_id", id)
	return nil
}

// Like - 404 для отсутствующих и удаленных видео
func (s *videoService) Like(ctx context.Context, db *gorm.DB, id string) (*dto.VideoResponse, error) {
	if err := s.videoRepo.IncrementLikeCount(db, id); err != nil {
		return nil, handleVideoError(err)
	}
	return s.get(db, id)
}

func handleVideoError(err error) error {
	if errors.Is(err, repositories.ErrVideoNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrVideoNotFound
	}
	return apperrors.InternalError(err)
}
