package dto

import (
	"time"

	"audition_backend/internal/models"
)

type CreateOfferRequest struct {
	AuditionID     string `json:"auditionId" validate:"required,max=36"`
	VideoContentID string `json:"videoContentId" validate:"required,max=36"`
	Message        string `json:"message" validate:"max=2000"`
}

// RespondOfferRequest - ACCEPT или REJECT без учета регистра
type RespondOfferRequest struct {
	Response string `json:"response" validate:"required"`
}

type OfferResponse struct {
	ID             string             `json:"id"`
	AuditionID     string             `json:"auditionId"`
	AuditionTitle  string             `json:"auditionTitle,omitempty"`
	BusinessID     string             `json:"businessId"`
	BusinessName   string             `json:"businessName,omitempty"`
	UserID         string             `json:"userId"`
	UserName       string             `json:"userName,omitempty"`
	VideoContentID string             `json:"videoContentId"`
	Status         models.OfferStatus `json:"status"`
	Message        string             `json:"message,omitempty"`
	ReadAt         *time.Time         `json:"readAt"`
	RespondedAt    *time.Time         `json:"respondedAt"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

func NewOfferResponse(o *models.AuditionOffer) *OfferResponse {
	resp := &OfferResponse{
		ID:             o.ID,
		AuditionID:     o.AuditionID,
		BusinessID:     o.BusinessID,
		UserID:         o.UserID,
		VideoContentID: o.VideoContentID,
		Status:         o.Status,
		Message:        o.Message,
		ReadAt:         o.ReadAt,
		RespondedAt:    o.RespondedAt,
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
	}
	if o.Audition != nil {
		resp.AuditionTitle = o.Audition.Title
	}
	if o.Business != nil {
		resp.BusinessName = o.Business.DisplayName()
	}
	if o.User != nil {
		resp.UserName = o.User.Name
	}
	return resp
}

func NewOfferList(items []models.AuditionOffer) []*OfferResponse {
	list := make([]*OfferResponse, 0, len(items))
	for i := range items {
		list = append(list, NewOfferResponse(&items[i]))
	}
	return list
}
