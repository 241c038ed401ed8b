package models

import (
	"gorm.io/datatypes"
)

type Audition struct {
	BaseModel
	Title             string           `gorm:"type:varchar(200);not null"`
	TitleEn           string           `gorm:"type:varchar(200)"`
	Category          AuditionCategory `gorm:"type:varchar(20);not null;index"`
	Status            AuditionStatus   `gorm:"type:varchar(20);not null;index"`
	Description       string           `gorm:"type:text"`
	Requirements      string           `gorm:"type:text"`
	StartDate         *datatypes.Date  `gorm:"type:date"`
	EndDate           *datatypes.Date  `gorm:"type:date;index"`
	ScreeningDate1    *datatypes.Date  `gorm:"type:date"`
	AnnouncementDate1 *datatypes.Date  `gorm:"type:date"`
	ScreeningDate2    *datatypes.Date  `gorm:"type:date"`
	AnnouncementDate2 *datatypes.Date  `gorm:"type:date"`
	ScreeningDate3    *datatypes.Date  `gorm:"type:date"`
	AnnouncementDate3 *datatypes.Date  `gorm:"type:date"`
	BannerURL         string           `gorm:"type:varchar(500)"`
	BusinessID        string           `gorm:"type:varchar(36);not null;index"`

	Business *User `gorm:"foreignKey:BusinessID"`
}

// ScheduledRounds - количество раундов отбора, у которых задана дата
func (a *Audition) ScheduledRounds() int {
	rounds := 0
	for _, d := range []*datatypes.Date{a.ScreeningDate1, a.ScreeningDate2, a.ScreeningDate3} {
		if d != nil {
			rounds++
		}
	}
	return rounds
}
