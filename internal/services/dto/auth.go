package dto

import (
	"encoding/json"
	"time"

	"audition_backend/internal/models"
)

// ==============================
// Запросы
// ==============================

// RegisterRequest - общие поля плюс поля профиля выбранной роли
type RegisterRequest struct {
	Email           string          `json:"email" validate:"required,email,max=255"`
	Password        string          `json:"password" validate:"required,min=8,max=72"`
	Name            string          `json:"name" validate:"required,max=100"`
	UserType        models.UserType `json:"userType" validate:"required,user-type"`
	ProfileImageURL string          `json:"profileImageUrl" validate:"omitempty,url,max=500"`

	// APPLICANT
	Country     string   `json:"country" validate:"required_if=UserType APPLICANT,iso-country"`
	City        string   `json:"city" validate:"required_if=UserType APPLICANT,max=100"`
	Birthday    string   `json:"birthday" validate:"required_if=UserType APPLICANT,date-only"`
	Phone       string   `json:"phone" validate:"max=30"`
	Address     string   `json:"address" validate:"max=255"`
	Timezone    string   `json:"timezone" validate:"max=50"`
	Languages   []string `json:"languages" validate:"omitempty,dive,max=50"`
	Gender      string   `json:"gender" validate:"max=20"`
	Nationality string   `json:"nationality" validate:"max=50"`
	StageName   string   `json:"stageName" validate:"max=100"`
	Bio         string   `json:"bio"`

	// BUSINESS
	CompanyName                string `json:"companyName" validate:"required_if=UserType BUSINESS,max=200"`
	BusinessCountry            string `json:"businessCountry" validate:"required_if=UserType BUSINESS,iso-country"`
	BusinessCity               string `json:"businessCity" validate:"required_if=UserType BUSINESS,max=100"`
	BusinessAddress            string `json:"businessAddress" validate:"max=255"`
	BusinessRegistrationNumber string `json:"businessRegistrationNumber" validate:"required_if=UserType BUSINESS,max=50"`
	BusinessLicenseDocumentURL string `json:"businessLicenseDocumentUrl" validate:"omitempty,url,max=500"`
	TaxID                      string `json:"taxId" validate:"max=50"`
	Website                    string `json:"website" validate:"omitempty,url,max=255"`
	ContactEmail               string `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone               string `json:"contactPhone" validate:"max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SocialLoginRequest struct {
	Provider    string          `json:"provider" validate:"required,social-provider"`
	AccessToken string          `json:"accessToken" validate:"required"`
	UserType    models.UserType `json:"userType" validate:"omitempty,user-type"`
}

// ==============================
// Ответы
// ==============================

type AuthResponse struct {
	Token           string          `json:"token"`
	UserID          string          `json:"userId"`
	Email           string          `json:"email"`
	Name            string          `json:"name"`
	UserType        models.UserType `json:"userType"`
	ProfileImageURL string          `json:"profileImageUrl,omitempty"`
}

type ApplicantProfileResponse struct {
	Country     string   `json:"country"`
	City        string   `json:"city"`
	Birthday    *string  `json:"birthday"`
	Phone       string   `json:"phone,omitempty"`
	Address     string   `json:"address,omitempty"`
	Timezone    string   `json:"timezone,omitempty"`
	Languages   []string `json:"languages"`
	Gender      string   `json:"gender,omitempty"`
	Nationality string   `json:"nationality,omitempty"`
	StageName   string   `json:"stageName,omitempty"`
	Bio         string   `json:"bio,omitempty"`
}

type BusinessProfileResponse struct {
	CompanyName                string                    `json:"companyName"`
	Country                    string                    `json:"country"`
	City                       string                    `json:"city"`
	Address                    string                    `json:"address,omitempty"`
	BusinessRegistrationNumber string                    `json:"businessRegistrationNumber"`
	BusinessLicenseDocumentURL string                    `json:"businessLicenseDocumentUrl,omitempty"`
	TaxID                      string                    `json:"taxId,omitempty"`
	Website                    string                    `json:"website,omitempty"`
	ContactEmail               string                    `json:"contactEmail,omitempty"`
	ContactPhone               string                    `json:"contactPhone,omitempty"`
	VerificationStatus         models.VerificationStatus `json:"verificationStatus"`
}

type UserResponse struct {
	ID               string                    `json:"id"`
	Email            string                    `json:"email"`
	Name             string                    `json:"name"`
	UserType         models.UserType           `json:"userType"`
	ProfileImageURL  string                    `json:"profileImageUrl,omitempty"`
	Provider         models.AuthProvider       `json:"provider"`
	ApplicantProfile *ApplicantProfileResponse `json:"applicantProfile,omitempty"`
	BusinessProfile  *BusinessProfileResponse  `json:"businessProfile,omitempty"`
	CreatedAt        time.Time                 `json:"createdAt"`
}

// ==============================
// Маппинг
// ==============================

func NewAuthResponse(user *models.User, token string) *AuthResponse {
	return &AuthResponse{
		Token:           token,
		UserID:          user.ID,
		Email:           user.Email,
		Name:            user.Name,
		UserType:        user.UserType,
		ProfileImageURL: user.ProfileImageURL,
	}
}

func NewUserResponse(user *models.User) *UserResponse {
	resp := &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		Name:            user.Name,
		UserType:        user.UserType,
		ProfileImageURL: user.ProfileImageURL,
		Provider:        user.Provider,
		CreatedAt:       user.CreatedAt,
	}

	if p := user.ApplicantProfile; p != nil {
		languages := []string{}
		if len(p.Languages) > 0 {
			_ = json.Unmarshal(p.Languages, &languages)
		}
		resp.ApplicantProfile = &ApplicantProfileResponse{
			Country:     p.Country,
			City:        p.City,
			Birthday:    FormatDate(p.Birthday),
			Phone:       p.Phone,
			Address:     p.Address,
			Timezone:    p.Timezone,
			Languages:   languages,
			Gender:      p.Gender,
			Nationality: p.Nationality,
			StageName:   p.StageName,
			Bio:         p.Bio,
		}
	}

	if p := user.BusinessProfile; p != nil {
		resp.BusinessProfile = &BusinessProfileResponse{
			CompanyName:                p.CompanyName,
			Country:                    p.Country,
			City:                       p.City,
			Address:                    p.Address,
			BusinessRegistrationNumber: p.BusinessRegistrationNumber,
			BusinessLicenseDocumentURL: p.BusinessLicenseDocumentURL,
			TaxID:                      p.TaxID,
			Website:                    p.Website,
			ContactEmail:               p.ContactEmail,
			ContactPhone:               p.ContactPhone,
			VerificationStatus:         p.VerificationStatus,
		}
	}

	return resp
}
