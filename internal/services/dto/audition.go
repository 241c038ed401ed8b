package dto

import (
	"time"

	"audition_backend/internal/models"
)

type CreateAuditionRequest struct {
	Title             string                  `json:"title" validate:"required,max=200"`
	TitleEn           string                  `json:"titleEn" validate:"max=200"`
	Category          models.AuditionCategory `json:"category" validate:"required,audition-category"`
	Status            models.AuditionStatus   `json:"status" validate:"audition-status"`
	Description       string                  `json:"description"`
	Requirements      string                  `json:"requirements"`
	StartDate         *string                 `json:"startDate" validate:"omitempty,date-only"`
	EndDate           *string                 `json:"endDate" validate:"omitempty,date-only"`
	ScreeningDate1    *string                 `json:"screeningDate1" validate:"omitempty,date-only"`
	AnnouncementDate1 *string                 `json:"announcementDate1" validate:"omitempty,date-only"`
	ScreeningDate2    *string                 `json:"screeningDate2" validate:"omitempty,date-only"`
	AnnouncementDate2 *string                 `json:"announcementDate2" validate:"omitempty,date-only"`
	ScreeningDate3    *string                 `json:"screeningDate3" validate:"omitempty,date-only"`
	AnnouncementDate3 *string                 `json:"announcementDate3" validate:"omitempty,date-only"`
	BannerURL         string                  `json:"bannerUrl" validate:"omitempty,url,max=500"`
}

// UpdateAuditionRequest - частичное обновление, nil поля не меняются
type UpdateAuditionRequest struct {
	Title             *string                  `json:"title" validate:"omitempty,min=1,max=200"`
	TitleEn           *string                  `json:"titleEn" validate:"omitempty,max=200"`
	Category          *models.AuditionCategory `json:"category" validate:"omitempty,audition-category"`
	Status            *models.AuditionStatus   `json:"status" validate:"omitempty,audition-status"`
	Description       *string                  `json:"description"`
	Requirements      *string                  `json:"requirements"`
	StartDate         *string                  `json:"startDate" validate:"omitempty,date-only"`
	EndDate           *string                  `json:"endDate" validate:"omitempty,date-only"`
	ScreeningDate1    *string                  `json:"screeningDate1" validate:"omitempty,date-only"`
	AnnouncementDate1 *string                  `json:"announcementDate1" validate:"omitempty,date-only"`
	ScreeningDate2    *string                  `json:"screeningDate2" validate:"omitempty,date-only"`
	AnnouncementDate2 *string                  `json:"announcementDate2" validate:"omitempty,date-only"`
	ScreeningDate3    *string                  `json:"screeningDate3" validate:"omitempty,date-only"`
	AnnouncementDate3 *string                  `json:"announcementDate3" validate:"omitempty,date-only"`
	BannerURL         *string                  `json:"bannerUrl" validate:"omitempty,url,max=500"`
}

type AuditionListQuery struct {
	Category models.AuditionCategory `form:"category" validate:"audition-category"`
	Status   models.AuditionStatus   `form:"status" validate:"audition-status"`
}

type AuditionResponse struct {
	ID                string                  `json:"id"`
	Title             string                  `json:"title"`
	TitleEn           string                  `json:"titleEn,omitempty"`
	Category          models.AuditionCategory `json:"category"`
	Status            models.AuditionStatus   `json:"status"`
	Description       string                  `json:"description"`
	Requirements      string                  `json:"requirements"`
	StartDate         *string                 `json:"startDate"`
	EndDate           *string                 `json:"endDate"`
	ScreeningDate1    *string                 `json:"screeningDate1"`
	AnnouncementDate1 *string                 `json:"announcementDate1"`
	ScreeningDate2    *string                 `json:"screeningDate2"`
	AnnouncementDate2 *string                 `json:"announcementDate2"`
	ScreeningDate3    *string                 `json:"screeningDate3"`
	AnnouncementDate3 *string                 `json:"announcementDate3"`
	BannerURL         string                  `json:"bannerUrl,omitempty"`
	BusinessID        string                  `json:"businessId"`
	BusinessName      string                  `json:"businessName,omitempty"`
	CreatedAt         time.Time               `json:"createdAt"`
	UpdatedAt         time.Time               `json:"updatedAt"`
}

func NewAuditionResponse(a *models.Audition) *AuditionResponse {
	resp := &AuditionResponse{
		ID:                a.ID,
		Title:             a.Title,
		TitleEn:           a.TitleEn,
		Category:          a.Category,
		Status:            a.Status,
		Description:       a.Description,
		Requirements:      a.Requirements,
		StartDate:         FormatDate(a.StartDate),
		EndDate:           FormatDate(a.EndDate),
		ScreeningDate1:    FormatDate(a.ScreeningDate1),
		AnnouncementDate1: FormatDate(a.AnnouncementDate1),
		ScreeningDate2:    FormatDate(a.ScreeningDate2),
		AnnouncementDate2: FormatDate(a.AnnouncementDate2),
		ScreeningDate3:    FormatDate(a.ScreeningDate3),
		AnnouncementDate3: FormatDate(a.AnnouncementDate3),
		BannerURL:         a.BannerURL,
		BusinessID:        a.BusinessID,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
	if a.Business != nil {
		resp.BusinessName = a.Business.DisplayName()
	}
	return resp
}

func NewAuditionList(items []models.Audition) []*AuditionResponse {
	list := make([]*AuditionResponse, 0, len(items))
	for i := range items {
		list = append(list, NewAuditionResponse(&items[i]))
	}
	return list
}
