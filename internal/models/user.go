package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// User - учетная запись. Уникальность email среди не удаленных
// пользователей обеспечивает индекс из database.Migrate (частичный, в MySQL по
// генерируемой колонке).
type User struct {
	BaseModelWithDeleted
	Email           string       `gorm:"type:varchar(255);not null"`
	PasswordHash    *string      `gorm:"type:varchar(255)"`
	Name            string       `gorm:"type:varchar(100);not null"`
	UserType        UserType     `gorm:"type:varchar(20);not null"`
	ProfileImageURL string       `gorm:"type:varchar(500)"`
	Provider        AuthProvider `gorm:"type:varchar(20);not null;default:'LOCAL';uniqueIndex:idx_users_provider_account"`
	ProviderID      *string      `gorm:"type:varchar(255);uniqueIndex:idx_users_provider_account"`

	ApplicantProfile *ApplicantProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	BusinessProfile  *BusinessProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// DisplayName - имя для DTO других модулей (название компании для бизнеса)
func (u *User) DisplayName() string {
	if u.UserType == UserTypeBusiness && u.BusinessProfile != nil && u.BusinessProfile.CompanyName != "" {
		return u.BusinessProfile.CompanyName
	}
	return u.Name
}

type ApplicantProfile struct {
	UserID      string          `gorm:"type:varchar(36);primaryKey"`
	Country     string          `gorm:"type:varchar(2)"`
	City        string          `gorm:"type:varchar(100)"`
	Birthday    *datatypes.Date `gorm:"type:date"`
	Phone       string          `gorm:"type:varchar(30)"`
	Address     string          `gorm:"type:varchar(255)"`
	Timezone    string          `gorm:"type:varchar(50)"`
	Languages   datatypes.JSON
	Gender      string `gorm:"type:varchar(20)"`
	Nationality string `gorm:"type:varchar(50)"`
	StageName   string `gorm:"type:varchar(100)"`
	Bio         string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type BusinessProfile struct {
	UserID                     string             `gorm:"type:varchar(36);primaryKey"`
	CompanyName                string             `gorm:"type:varchar(200)"`
	Country                    string             `gorm:"type:varchar(2)"`
	City                       string             `gorm:"type:varchar(100)"`
	Address                    string             `gorm:"type:varchar(255)"`
	BusinessRegistrationNumber string             `gorm:"type:varchar(50)"`
	BusinessLicenseDocumentURL string             `gorm:"type:varchar(500)"`
	TaxID                      string             `gorm:"type:varchar(50)"`
	Website                    string             `gorm:"type:varchar(255)"`
	ContactEmail               string             `gorm:"type:varchar(255)"`
	ContactPhone               string             `gorm:"type:varchar(30)"`
	VerificationStatus         VerificationStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}

// NormalizeCountry приводит код страны к верхнему регистру
func NormalizeCountry(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
