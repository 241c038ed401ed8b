package repositories

import (
	"errors"

	"audition_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByProvider(db *gorm.DB, provider models.AuthProvider, providerID string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
	LinkProvider(db *gorm.DB, userID string, provider models.AuthProvider, providerID string) error
	Delete(db *gorm.DB, id string) error

	CreateApplicantProfile(db *gorm.DB, profile *models.ApplicantProfile) error
	CreateBusinessProfile(db *gorm.DB, profile *models.BusinessProfile) error

	// Имена для обогащения DTO других модулей
	FindNames(db *gorm.DB, ids []string) (map[string]string, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	if err := db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.Preload("ApplicantProfile").Preload("BusinessProfile").
		First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindByEmail ищет среди не удаленных пользователей
func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByProvider(db *gorm.DB, provider models.AuthProvider, providerID string) (*models.User, error) {
	var user models.User
	err := db.Where("provider = ? AND provider_id = ?", provider, providerID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

// LinkProvider привязывает аккаунт соцсети к существующему пользователю
func (r *UserRepositoryImpl) LinkProvider(db *gorm.DB, userID string, provider models.AuthProvider, providerID string) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"provider": provider, "provider_id": providerID})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrUserAlreadyExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete - мягкое удаление (deleted_at)
func (r *UserRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.User{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) CreateApplicantProfile(db *gorm.DB, profile *models.ApplicantProfile) error {
	return db.Create(profile).Error
}

func (r *UserRepositoryImpl) CreateBusinessProfile(db *gorm.DB, profile *models.BusinessProfile) error {
	return db.Create(profile).Error
}

// FindNames возвращает id -> отображаемое имя (для бизнеса - название компании).
// Удаленные пользователи тоже попадают в результат.
func (r *UserRepositoryImpl) FindNames(db *gorm.DB, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []models.User
	if err := db.Unscoped().Preload("BusinessProfile").Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		names[users[i].ID] = users[i].DisplayName()
	}
	return names, nil
}
