package dto

import (
	"encoding/json"
	"time"

	"audition_backend/internal/models"
)

type CreateApplicationRequest struct {
	AuditionID string   `json:"auditionId" validate:"required,max=36"`
	VideoID1   *string  `json:"videoId1" validate:"omitempty,max=36"`
	VideoID2   *string  `json:"videoId2" validate:"omitempty,max=36"`
	Photos     []string `json:"photos" validate:"omitempty,max=10,dive,url"`
}

// UpdateStatusRequest - статус может прийти в query (?status=) или в теле
type UpdateStatusRequest struct {
	Status models.ApplicationStatus `json:"status" form:"status" validate:"required,application-status"`
}

type UpdateResultRequest struct {
	Result  models.ScreeningResult `json:"result" validate:"required,screening-result"`
	Comment string                 `json:"comment" validate:"max=2000"`
}

type ApplicationListQuery struct {
	AuditionID string `form:"auditionId"`
	UserID     string `form:"userId"`
}

type ApplicationResponse struct {
	ID                   string                   `json:"id"`
	AuditionID           string                   `json:"auditionId"`
	AuditionTitle        string                   `json:"auditionTitle,omitempty"`
	UserID               string                   `json:"userId"`
	UserName             string                   `json:"userName,omitempty"`
	Status               models.ApplicationStatus `json:"status"`
	Result1              models.ScreeningResult   `json:"result1"`
	Result2              models.ScreeningResult   `json:"result2"`
	Result3              models.ScreeningResult   `json:"result3"`
	FinalResult          models.ScreeningResult   `json:"finalResult"`
	ResultComment        string                   `json:"resultComment,omitempty"`
	VideoID1             *string                  `json:"videoId1"`
	VideoID2             *string                  `json:"videoId2"`
	Photos               []string                 `json:"photos"`
	PaymentTransactionID string                   `json:"paymentTransactionId,omitempty"`
	PaymentAmount        float64                  `json:"paymentAmount"`
	CreatedAt            time.Time                `json:"createdAt"`
	UpdatedAt            time.Time                `json:"updatedAt"`
}

func NewApplicationResponse(a *models.Application) *ApplicationResponse {
	photos := []string{}
	if len(a.Photos) > 0 {
		_ = json.Unmarshal(a.Photos, &photos)
	}

	resp := &ApplicationResponse{
		ID:                   a.ID,
		AuditionID:           a.AuditionID,
		UserID:               a.UserID,
		Status:               a.Status,
		Result1:              a.Result1,
		Result2:              a.Result2,
		Result3:              a.Result3,
		FinalResult:          a.FinalResult,
		ResultComment:        a.ResultComment,
		VideoID1:             a.VideoID1,
		VideoID2:             a.VideoID2,
		Photos:               photos,
		PaymentTransactionID: a.PaymentTransactionID,
		PaymentAmount:        a.PaymentAmount,
		CreatedAt:            a.CreatedAt,
		UpdatedAt:            a.UpdatedAt,
	}
	if a.Audition != nil {
		resp.AuditionTitle = a.Audition.Title
	}
	if a.User != nil {
		resp.UserName = a.User.Name
	}
	return resp
}

func NewApplicationList(items []models.Application) []*ApplicationResponse {
	list := make([]*ApplicationResponse, 0, len(items))
	for i := range items {
		list = append(list, NewApplicationResponse(&items[i]))
	}
	return list
}
