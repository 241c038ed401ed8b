package dto

import (
	"time"

	"audition_backend/internal/models"
	"audition_backend/internal/youtube"
)

// CreateVideoRequest: без thumbnailUrl превью берется с YouTube
type CreateVideoRequest struct {
	Title        string                  `json:"title" validate:"required,max=200"`
	Description  string                  `json:"description" validate:"max=5000"`
	VideoURL     string                  `json:"videoUrl" validate:"required,url,max=500"`
	ThumbnailURL string                  `json:"thumbnailUrl" validate:"omitempty,url,max=500"`
	Duration     int                     `json:"duration" validate:"min=0"`
	Category     models.AuditionCategory `json:"category" validate:"audition-category"`
	Status       models.VideoStatus      `json:"status" validate:"omitempty,oneof=PUBLISHED PRIVATE"`
}

type UpdateVideoRequest struct {
	Title        *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	Description  *string                  `json:"description" validate:"omitempty,max=5000"`
	VideoURL     *string                  `json:"videoUrl" validate:"omitempty,url,max=500"`
	ThumbnailURL *string                  `json:"thumbnailUrl" validate:"omitempty,url,max=500"`
	Duration     *int                     `json:"duration" validate:"omitempty,min=0"`
	Category     *models.AuditionCategory `json:"category" validate:"omitempty,audition-category"`
	Status       *models.VideoStatus      `json:"status" validate:"omitempty,oneof=PUBLISHED PRIVATE"`
}

type VideoListQuery struct {
	UserID string `form:"userId"`
	Sort   string `form:"sort" validate:"omitempty,oneof=newest popular"`
}

type VideoResponse struct {
	ID           string                  `json:"id"`
	UserID       string                  `json:"userId"`
	UserName     string                  `json:"userName,omitempty"`
	Title        string                  `json:"title"`
	Description  string                  `json:"description"`
	VideoURL     string                  `json:"videoUrl"`
	EmbedURL     string                  `json:"embedUrl,omitempty"`
	ThumbnailURL string                  `json:"thumbnailUrl"`
	Duration     int                     `json:"duration"`
	ViewCount    int64                   `json:"viewCount"`
	LikeCount    int64                   `json:"likeCount"`
	CommentCount int64                   `json:"commentCount"`
	Category     models.AuditionCategory `json:"category,omitempty"`
	Status       models.VideoStatus      `json:"status"`
	CreatedAt    time.Time               `json:"createdAt"`
	UpdatedAt    time.Time               `json:"updatedAt"`
}

func NewVideoResponse(v *models.VideoContent) *VideoResponse {
	resp := &VideoResponse{
		ID:           v.ID,
		UserID:       v.UserID,
		Title:        v.Title,
		Description:  v.Description,
		VideoURL:     v.VideoURL,
		EmbedURL:     youtube.EmbedURLFor(v.VideoURL),
		ThumbnailURL: v.ThumbnailURL,
		Duration:     v.Duration,
		ViewCount:    v.ViewCount,
		LikeCount:    v.LikeCount,
		CommentCount: v.CommentCount,
		Category:     v.Category,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
	if v.User != nil {
		resp.UserName = v.User.Name
	}
	return resp
}

func NewVideoList(items []models.VideoContent) []*VideoResponse {
	list := make([]*VideoResponse, 0, len(items))
	for i := range items {
		list = append(list, NewVideoResponse(&items[i]))
	}
	return list
}
