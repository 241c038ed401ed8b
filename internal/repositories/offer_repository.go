package repositories

import (
	"errors"
	"time"

	"audition_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrOfferNotFound = errors.New("offer not found")
	ErrOfferExists   = errors.New("offer already exists for this video")
)

type OfferRepository interface {
	Create(db *gorm.DB, offer *models.AuditionOffer) error
	FindByID(db *gorm.DB, id string) (*models.AuditionOffer, error)
	ListByUser(db *gorm.DB, userID string, page Pagination) ([]models.AuditionOffer, int64, error)
	ListByBusiness(db *gorm.DB, businessID string, page Pagination) ([]models.AuditionOffer, int64, error)
	CountPending(db *gorm.DB, userID string) (int64, error)

	// Respond меняет статус только у PENDING оффера; false - оффер уже не в PENDING
	Respond(db *gorm.DB, id string, status models.OfferStatus, at time.Time) (bool, error)
	MarkAsRead(db *gorm.DB, id string, at time.Time) error
	ExpireOlderThan(db *gorm.DB, cutoff time.Time) (int64, error)
}

type OfferRepositoryImpl struct{}

func NewOfferRepository() OfferRepository {
	return &OfferRepositoryImpl{}
}

// Create - вставка с ON CONFLICT DO NOTHING по (business_id, video_content_id)
func (r *OfferRepositoryImpl) Create(db *gorm.DB, offer *models.AuditionOffer) error {
	result := db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(offer)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrOfferExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfferExists
	}
	return nil
}

func (r *OfferRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.AuditionOffer, error) {
	var offer models.AuditionOffer
	err := r.withRelations(db).First(&offer, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfferNotFound
		}
		return nil, err
	}
	return &offer, nil
}

func (r *OfferRepositoryImpl) ListByUser(db *gorm.DB, userID string, page Pagination) ([]models.AuditionOffer, int64, error) {
	return r.list(db.Model(&models.AuditionOffer{}).Where("user_id = ?", userID), page)
}

func (r *OfferRepositoryImpl) ListByBusiness(db *gorm.DB, businessID string, page Pagination) ([]models.AuditionOffer, int64, error) {
	return r.list(db.Model(&models.AuditionOffer{}).Where("business_id = ?", businessID), page)
}

func (r *OfferRepositoryImpl) list(query *gorm.DB, page Pagination) ([]models.AuditionOffer, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var offers []models.AuditionOffer
	err := r.withRelations(query).
		Order("created_at DESC").
		Scopes(page.scope).
		Find(&offers).Error

	return offers, total, err
}

func (r *OfferRepositoryImpl) withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Audition").
		Preload("Business").Preload("Business.BusinessProfile").
		Preload("User")
}

func (r *OfferRepositoryImpl) CountPending(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.AuditionOffer{}).
		Where("user_id = ? AND status = ?", userID, models.OfferStatusPending).
		Count(&count).Error
	return count, err
}

// Respond - условный UPDATE ... WHERE status = 'PENDING': из двух одновременных
// ответов применяется только первый.
func (r *OfferRepositoryImpl) Respond(db *gorm.DB, id string, status models.OfferStatus, at time.Time) (bool, error) {
	result := db.Model(&models.AuditionOffer{}).
		Where("id = ? AND status = ?", id, models.OfferStatusPending).
		Updates(map[string]interface{}{
			"status":       status,
			"responded_at": at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// MarkAsRead выставляет read_at только при первом прочтении
func (r *OfferRepositoryImpl) MarkAsRead(db *gorm.DB, id string, at time.Time) error {
	return db.Model(&models.AuditionOffer{}).
		Where("id = ? AND read_at IS NULL", id).
		Update("read_at", at).Error
}

// ExpireOlderThan переводит PENDING офферы, созданные до cutoff, в EXPIRED
func (r *OfferRepositoryImpl) ExpireOlderThan(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&models.AuditionOffer{}).
		Where("status = ? AND created_at < ?", models.OfferStatusPending, cutoff).
		Update("status", models.OfferStatusExpired)
	return result.RowsAffected, result.Error
}
