package repositories

import (
	"errors"
	"time"

	"audition_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrAuditionNotFound = errors.New("audition not found")

// AuditionFilter - параметры публичного списка
type AuditionFilter struct {
	Statuses   []models.AuditionStatus
	Category   models.AuditionCategory
	BusinessID string
}

type AuditionRepository interface {
	Create(db *gorm.DB, audition *models.Audition) error
	FindByID(db *gorm.DB, id string) (*models.Audition, error)
	Update(db *gorm.DB, audition *models.Audition) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB, filter AuditionFilter, page Pagination) ([]models.Audition, int64, error)

	// Для планировщика
	CloseEnded(db *gorm.DB, today time.Time) (int64, error)
}

type AuditionRepositoryImpl struct{}

func NewAuditionRepository() AuditionRepository {
	return &AuditionRepositoryImpl{}
}

func (r *AuditionRepositoryImpl) Create(db *gorm.DB, audition *models.Audition) error {
	return db.Create(audition).Error
}

func (r *AuditionRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Audition, error) {
	var audition models.Audition
	err := db.Preload("Business").Preload("Business.BusinessProfile").
		First(&audition, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAuditionNotFound
		}
		return nil, err
	}
	return &audition, nil
}

// Update сохраняет все колонки, кроме связей
func (r *AuditionRepositoryImpl) Update(db *gorm.DB, audition *models.Audition) error {
	return db.Omit(clause.Associations).Save(audition).Error
}

// Delete удаляет прослушивание вместе с заявками и офферами в одной транзакции.
// ON DELETE CASCADE дублируется явными DELETE, чтобы поведение не зависело от драйвера.
func (r *AuditionRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("audition_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("audition_id = ?", id).Delete(&models.AuditionOffer{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&models.Audition{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrAuditionNotFound
		}
		return nil
	})
}

func (r *AuditionRepositoryImpl) List(db *gorm.DB, filter AuditionFilter, page Pagination) ([]models.Audition, int64, error) {
	query := db.Model(&models.Audition{})
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.BusinessID != "" {
		query = query.Where("business_id = ?", filter.BusinessID)
	}

	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var auditions []models.Audition
	err := query.Preload("Business").Preload("Business.BusinessProfile").
		Order("created_at DESC").
		Scopes(page.scope).
		Find(&auditions).Error

	return auditions, total, err
}

// CloseEnded переводит идущие прослушивания с прошедшей датой окончания в UNDER_SCREENING
func (r *AuditionRepositoryImpl) CloseEnded(db *gorm.DB, today time.Time) (int64, error) {
	result := db.Model(&models.Audition{}).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", models.AuditionStatusOngoing, today.Format("2006-01-02")).
		Update("status", models.AuditionStatusUnderScreening)
	return result.RowsAffected, result.Error
}
