package models

type VideoContent struct {
	BaseModel
	UserID       string           `gorm:"type:varchar(36);not null;index"`
	Title        string           `gorm:"type:varchar(200);not null"`
	Description  string           `gorm:"type:text"`
	VideoURL     string           `gorm:"type:varchar(500);not null"`
	ThumbnailURL string           `gorm:"type:varchar(500)"`
	Duration     int              `gorm:"not null;default:0"`
	ViewCount    int64            `gorm:"not null;default:0"`
	LikeCount    int64            `gorm:"not null;default:0"`
	CommentCount int64            `gorm:"not null;default:0"`
	Category     AuditionCategory `gorm:"type:varchar(20)"`
	Status       VideoStatus      `gorm:"type:varchar(20);not null;default:'PUBLISHED';index"`

	User *User `gorm:"foreignKey:UserID"`
}
