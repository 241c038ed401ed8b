package repositories

import (
	"errors"

	"audition_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrApplicationExists   = errors.New("application already exists for this audition")
)

// ApplicationFilter - хотя бы одно поле должно быть заполнено (проверяет сервис)
type ApplicationFilter struct {
	AuditionID string
	UserID     string
}

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.Application) error
	FindByID(db *gorm.DB, id string) (*models.Application, error)
	List(db *gorm.DB, filter ApplicationFilter, page Pagination) ([]models.Application, int64, error)
	ListPassed(db *gorm.DB, auditionID string, round models.Round, page Pagination) ([]models.Application, int64, error)
	Update(db *gorm.DB, application *models.Application) error
	Delete(db *gorm.DB, id string) error
}

type ApplicationRepositoryImpl struct{}

func NewApplicationRepository() ApplicationRepository {
	return &ApplicationRepositoryImpl{}
}

// Create вставляет заявку с ON CONFLICT DO NOTHING по (audition_id, user_id).
// Если строка не вставлена, заявка уже существует.
func (r *ApplicationRepositoryImpl) Create(db *gorm.DB, application *models.Application) error {
	result := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(application)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrApplicationExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationExists
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Application, error) {
	var application models.Application
	err := db.Preload("Audition").Preload("User").
		First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) List(db *gorm.DB, filter ApplicationFilter, page Pagination) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{})
	if filter.AuditionID != "" {
		query = query.Where("audition_id = ?", filter.AuditionID)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.page(query, page)
}

// ListPassed - когорта прошедших раунд. Для раундов 1-3 требуются PASS во всех
// предыдущих раундах, для финала - только final_result.
func (r *ApplicationRepositoryImpl) ListPassed(db *gorm.DB, auditionID string, round models.Round, page Pagination) ([]models.Application, int64, error) {
	query := db.Model(&models.Application{}).Where("audition_id = ?", auditionID)

	switch round {
	case models.RoundFirst:
		query = query.Where("result1 = ?", models.ResultPass)
	case models.RoundSecond:
		query = query.Where("result1 = ? AND result2 = ?", models.ResultPass, models.ResultPass)
	case models.RoundThird:
		query = query.Where("result1 = ? AND result2 = ? AND result3 = ?",
			models.ResultPass, models.ResultPass, models.ResultPass)
	case models.RoundFinal:
		query = query.Where("final_result = ?", models.ResultPass)
	default:
		return nil, 0, errors.New("unknown screening round")
	}

	return r.page(query, page)
}

func (r *ApplicationRepositoryImpl) page(query *gorm.DB, page Pagination) ([]models.Application, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var applications []models.Application
	err := query.Preload("Audition").Preload("User").
		Order("created_at DESC").
		Scopes(page.scope).
		Find(&applications).Error

	return applications, total, err
}

func (r *ApplicationRepositoryImpl) Update(db *gorm.DB, application *models.Application) error {
	return db.Omit(clause.Associations).Save(application).Error
}

func (r *ApplicationRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Application{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
