package repositories

import (
	"errors"

	"audition_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrVideoNotFound = errors.New("video not found")

// VideoSort - порядок публичного списка
type VideoSort string

const (
	VideoSortNewest  VideoSort = "newest"
	VideoSortPopular VideoSort = "popular"
)

type VideoFilter struct {
	UserID   string
	Statuses []models.VideoStatus
	Sort     VideoSort
}

type VideoRepository interface {
	Create(db *gorm.DB, video *models.VideoContent) error
	FindByID(db *gorm.DB, id string) (*models.VideoContent, error)
	List(db *gorm.DB, filter VideoFilter, page Pagination) ([]models.VideoContent, int64, error)
	Update(db *gorm.DB, video *models.VideoContent) error
	MarkDeleted(db *gorm.DB, id string) error

	// Счетчики - один UPDATE col = col + 1, удаленные видео не учитываются
	IncrementViewCount(db *gorm.DB, id string) error
	IncrementLikeCount(db *gorm.DB, id string) error
}

type VideoRepositoryImpl struct{}

func NewVideoRepository() VideoRepository {
	return &VideoRepositoryImpl{}
}

func (r *VideoRepositoryImpl) Create(db *gorm.DB, video *models.VideoContent) error {
	return db.Omit(clause.Associations).Create(video).Error
}

func (r *VideoRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.VideoContent, error) {
	var video models.VideoContent
	err := db.Preload("User").First(&video, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *VideoRepositoryImpl) List(db *gorm.DB, filter VideoFilter, page Pagination) ([]models.VideoContent, int64, error) {
	query := db.Model(&models.VideoContent{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "created_at DESC"
	if filter.Sort == VideoSortPopular {
		order = "view_count DESC, created_at DESC"
	}

	var videos []models.VideoContent
	err := query.Preload("User").
		Order(order).
		Scopes(page.scope).
		Find(&videos).Error

	return videos, total, err
}

func (r *VideoRepositoryImpl) Update(db *gorm.DB, video *models.VideoContent) error {
	return db.Omit(clause.Associations).Save(video).Error
}

// MarkDeleted - логическое удаление, строка остается доступной по id
func (r *VideoRepositoryImpl) MarkDeleted(db *gorm.DB, id string) error {
	result := db.Model(&models.VideoContent{}).Where("id = ?", id).
		Update("status", models.VideoStatusDeleted)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}

func (r *VideoRepositoryImpl) IncrementViewCount(db *gorm.DB, id string) error {
	return r.increment(db, id, "view_count")
}

func (r *VideoRepositoryImpl) IncrementLikeCount(db *gorm.DB, id string) error {
	return r.increment(db, id, "like_count")
}

func (r *VideoRepositoryImpl) increment(db *gorm.DB, id, column string) error {
	result := db.Model(&models.VideoContent{}).
		Where("id = ? AND status <> ?", id, models.VideoStatusDeleted).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrVideoNotFound
	}
	return nil
}
