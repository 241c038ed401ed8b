package models

import "time"

// AuditionOffer - предложение бизнеса по видео пользователя.
// Пара (business_id, video_content_id) уникальна.
type AuditionOffer struct {
	BaseModel
	AuditionID     string      `gorm:"type:varchar(36);not null;index"`
	BusinessID     string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_offers_business_video"`
	UserID         string      `gorm:"type:varchar(36);not null;index"`
	VideoContentID string      `gorm:"type:varchar(36);not null;uniqueIndex:idx_offers_business_video"`
	Status         OfferStatus `gorm:"type:varchar(20);not null;index"`
	Message        string      `gorm:"type:text"`
	ReadAt         *time.Time
	RespondedAt    *time.Time

	Audition *Audition `gorm:"foreignKey:AuditionID;constraint:OnDelete:CASCADE"`
	Business *User     `gorm:"foreignKey:BusinessID"`
	User     *User     `gorm:"foreignKey:UserID"`
}
