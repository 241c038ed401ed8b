package testutil

import (
	"testing"
	"time"

	"audition_backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateUser создает пользователя с пустым профилем его роли
func CreateUser(t testing.TB, db *gorm.DB, userType models.UserType) *models.User {
	t.Helper()

	user := &models.User{
		Email:    uuid.NewString()[:8] + "@example.com",
		Name:     "User " + string(userType),
		UserType: userType,
		Provider: models.ProviderLocal,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}

	switch userType {
	case models.UserTypeBusiness:
		profile := &models.BusinessProfile{UserID: user.ID, CompanyName: "Acme Entertainment", Country: "KR", City: "Seoul"}
		if err := db.Create(profile).Error; err != nil {
			t.Fatalf("create business profile: %v", err)
		}
		user.BusinessProfile = profile
	default:
		profile := &models.ApplicantProfile{UserID: user.ID, Country: "KR", City: "Seoul"}
		if err := db.Create(profile).Error; err != nil {
			t.Fatalf("create applicant profile: %v", err)
		}
		user.ApplicantProfile = profile
	}
	return user
}

// CreateAudition создает идущее прослушивание бизнеса
func CreateAudition(t testing.TB, db *gorm.DB, businessID string) *models.Audition {
	t.Helper()

	start := datatypes.Date(time.Now().AddDate(0, 0, -7))
	end := datatypes.Date(time.Now().AddDate(0, 0, 7))
	audition := &models.Audition{
		Title:      "Vocal audition",
		Category:   models.CategorySinger,
		Status:     models.AuditionStatusOngoing,
		StartDate:  &start,
		EndDate:    &end,
		BusinessID: businessID,
	}
	if err := db.Create(audition).Error; err != nil {
		t.Fatalf("create audition: %v", err)
	}
	return audition
}

// CreateApplication создает заявку в статусе WRITING
func CreateApplication(t testing.TB, db *gorm.DB, auditionID, userID string) *models.Application {
	t.Helper()

	application := &models.Application{
		AuditionID:    auditionID,
		UserID:        userID,
		Status:        models.ApplicationStatusWriting,
		Result1:       models.ResultPending,
		Result2:       models.ResultPending,
		Result3:       models.ResultPending,
		FinalResult:   models.ResultPending,
		Photos:        datatypes.JSON("[]"),
		PaymentAmount: 5,
	}
	if err := db.Create(application).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}
	return application
}

// CreateVideo создает опубликованное видео
func CreateVideo(t testing.TB, db *gorm.DB, userID string) *models.VideoContent {
	t.Helper()

	video := &models.VideoContent{
		UserID:       userID,
		Title:        "Cover song",
		VideoURL:     "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
		Duration:     212,
		Category:     models.CategorySinger,
		Status:       models.VideoStatusPublished,
	}
	if err := db.Create(video).Error; err != nil {
		t.Fatalf("create video: %v", err)
	}
	return video
}

// CreateOffer создает PENDING оффер бизнеса по видео
func CreateOffer(t testing.TB, db *gorm.DB, audition *models.Audition, video *models.VideoContent) *models.AuditionOffer {
	t.Helper()

	offer := &models.AuditionOffer{
		AuditionID:     audition.ID,
		BusinessID:     audition.BusinessID,
		UserID:         video.UserID,
		VideoContentID: video.ID,
		Status:         models.OfferStatusPending,
		Message:        "We liked your performance",
	}
	if err := db.Create(offer).Error; err != nil {
		t.Fatalf("create offer: %v", err)
	}
	return offer
}
