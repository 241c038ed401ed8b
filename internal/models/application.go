package models

import (
	"gorm.io/datatypes"
)

// Application - заявка на прослушивание. Пара (audition_id, user_id) уникальна.
type Application struct {
	BaseModel
	AuditionID           string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_audition_user"`
	UserID               string            `gorm:"type:varchar(36);not null;uniqueIndex:idx_applications_audition_user;index"`
	Status               ApplicationStatus `gorm:"type:varchar(30);not null"`
	Result1              ScreeningResult   `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Result2              ScreeningResult   `gorm:"type:varchar(10);not null;default:'PENDING'"`
	Result3              ScreeningResult   `gorm:"type:varchar(10);not null;default:'PENDING'"`
	FinalResult          ScreeningResult   `gorm:"type:varchar(10);not null;default:'PENDING'"`
	ResultComment        string            `gorm:"type:text"`
	VideoID1             *string           `gorm:"type:varchar(36)"`
	VideoID2             *string           `gorm:"type:varchar(36)"`
	Photos               datatypes.JSON
	PaymentTransactionID string  `gorm:"type:varchar(100)"`
	PaymentAmount        float64 `gorm:"type:decimal(10,2)"`

	Audition *Audition `gorm:"foreignKey:AuditionID;constraint:OnDelete:CASCADE"`
	User     *User     `gorm:"foreignKey:UserID"`
}

// Round - номер раунда отбора
type Round string

const (
	RoundFirst  Round = "1"
	RoundSecond Round = "2"
	RoundThird  Round = "3"
	RoundFinal  Round = "final"
)

// Column - колонка с результатом раунда
func (r Round) Column() string {
	switch r {
	case RoundFirst:
		return "result1"
	case RoundSecond:
		return "result2"
	case RoundThird:
		return "result3"
	case RoundFinal:
		return "final_result"
	}
	return ""
}

// Result возвращает результат заявки в раунде
func (a *Application) Result(r Round) ScreeningResult {
	switch r {
	case RoundFirst:
		return a.Result1
	case RoundSecond:
		return a.Result2
	case RoundThird:
		return a.Result3
	case RoundFinal:
		return a.FinalResult
	}
	return ""
}

// SetResult выставляет результат раунда
func (a *Application) SetResult(r Round, result ScreeningResult) {
	switch r {
	case RoundFirst:
		a.Result1 = result
	case RoundSecond:
		a.Result2 = result
	case RoundThird:
		a.Result3 = result
	case RoundFinal:
		a.FinalResult = result
	}
}
