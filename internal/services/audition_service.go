package services

import (
	"context"
	"errors"
	"time"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AuditionService interface {
	Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateAuditionRequest) (*dto.AuditionResponse, error)
	Update(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateAuditionRequest) (*dto.AuditionResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.AuditionResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.AuditionListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error)
	ListByBusiness(ctx context.Context, db *gorm.DB, businessID string, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error)
	ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error)
}

type auditionService struct {
	auditionRepo repositories.AuditionRepository
}

func NewAuditionService(auditionRepo repositories.AuditionRepository) AuditionService {
	return &auditionService{auditionRepo: auditionRepo}
}

// Статусы, которые можно задать при создании
var creatableAuditionStatuses = map[models.AuditionStatus]bool{
	models.AuditionStatusDraft:          true,
	models.AuditionStatusWriting:        true,
	models.AuditionStatusWaitingOpening: true,
	models.AuditionStatusOngoing:        true,
}

func (s *auditionService) Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateAuditionRequest) (*dto.AuditionResponse, error) {
	status := req.Status
	if status == "" {
		status = models.AuditionStatusWriting
	}
	if !creatableAuditionStatuses[status] {
		return nil, apperrors.ErrInvalidStatus("audition", "New auditions may only be DRAFT, WRITING, WAITING_OPENING or ONGOING")
	}

	audition := &models.Audition{
		Title:        req.Title,
		TitleEn:      req.TitleEn,
		Category:     req.Category,
		Status:       status,
		Description:  req.Description,
		Requirements: req.Requirements,
		BannerURL:    req.BannerURL,
		BusinessID:   actor.ID,
	}

	err := applyDates(audition, false,
		req.StartDate, req.EndDate,
		req.ScreeningDate1, req.AnnouncementDate1,
		req.ScreeningDate2, req.AnnouncementDate2,
		req.ScreeningDate3, req.AnnouncementDate3,
	)
	if err != nil {
		return nil, err
	}

	if err := checkDateRange(audition); err != nil {
		return nil, err
	}

	if err := s.auditionRepo.Create(db, audition); err != nil {
		return nil, handleAuditionError(err)
	}

	logger.CtxInfo(ctx, "Audition created", "audition_id", audition.ID, "business_id", actor.ID)
	return s.get(db, audition.ID)
}

// Update - частичное обновление, только владельцем
func (s *auditionService) Update(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.UpdateAuditionRequest) (*dto.AuditionResponse, error) {
	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	audition, err := s.auditionRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleAuditionError(err)
	}
	if err := auth.RequireOwner(actor, audition.BusinessID, "audition"); err != nil {
		return nil, err
	}

	if req.Title != nil {
		audition.Title = *req.Title
	}
	if req.TitleEn != nil {
		audition.TitleEn = *req.TitleEn
	}
	if req.Category != nil {
		audition.Category = *req.Category
	}
	if req.Status != nil {
		audition.Status = *req.Status
	}
	if req.Description != nil {
		audition.Description = *req.Description
	}
	if req.Requirements != nil {
		audition.Requirements = *req.Requirements
	}
	if req.BannerURL != nil {
		audition.BannerURL = *req.BannerURL
	}

	// nil - не менять, пустая строка очищает дату
	err = applyDates(audition, true,
		req.StartDate, req.EndDate,
		req.ScreeningDate1, req.AnnouncementDate1,
		req.ScreeningDate2, req.AnnouncementDate2,
		req.ScreeningDate3, req.AnnouncementDate3,
	)
	if err != nil {
		return nil, err
	}

	if err := checkDateRange(audition); err != nil {
		return nil, err
	}

	if err := s.auditionRepo.Update(tx, audition); err != nil {
		return nil, handleAuditionError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.get(db, id)
}

// Delete удаляет прослушивание вместе с заявками
func (s *auditionService) Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	audition, err := s.auditionRepo.FindByID(tx, id)
	if err != nil {
		return handleAuditionError(err)
	}
	if err := auth.RequireOwner(actor, audition.BusinessID, "audition"); err != nil {
		return err
	}

	if err := s.auditionRepo.Delete(tx, id); err != nil {
		return handleAuditionError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "Audition deleted", "audition_id", id)
	return nil
}

func (s *auditionService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.AuditionResponse, error) {
	return s.get(db, id)
}

func (s *auditionService) get(db *gorm.DB, id string) (*dto.AuditionResponse, error) {
	audition, err := s.auditionRepo.FindByID(db, id)
	if err != nil {
		return nil, handleAuditionError(err)
	}
	return dto.NewAuditionResponse(audition), nil
}

// List - публичный список; фильтр по статусу заменяет набор статусов по умолчанию
func (s *auditionService) List(ctx context.Context, db *gorm.DB, query *dto.AuditionListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error) {
	filter := repositories.AuditionFilter{Statuses: models.PublicAuditionStatuses}
	if query != nil {
		filter.Category = query.Category
		if query.Status != "" {
			filter.Statuses = []models.AuditionStatus{query.Status}
		}
	}
	return s.list(db, filter, page)
}

func (s *auditionService) ListByBusiness(ctx context.Context, db *gorm.DB, businessID string, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error) {
	return s.list(db, repositories.AuditionFilter{
		Statuses:   models.PublicAuditionStatuses,
		BusinessID: businessID,
	}, page)
}

// ListMine - все прослушивания текущего бизнеса, включая черновики
func (s *auditionService) ListMine(ctx context.Context, db *gorm.DB, actor auth.Actor, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error) {
	return s.list(db, repositories.AuditionFilter{BusinessID: actor.ID}, page)
}

func (s *auditionService) list(db *gorm.DB, filter repositories.AuditionFilter, page repositories.Pagination) (*dto.PageResponse[*dto.AuditionResponse], error) {
	items, total, err := s.auditionRepo.List(db, filter, page)
	if err != nil {
		return nil, handleAuditionError(err)
	}
	return dto.NewPage(dto.NewAuditionList(items), total, page.Page, page.Size), nil
}

var auditionDateFields = [8]string{
	"startDate", "endDate",
	"screeningDate1", "announcementDate1",
	"screeningDate2", "announcementDate2",
	"screeningDate3", "announcementDate3",
}

// applyDates разбирает даты в порядке auditionDateFields
func applyDates(a *models.Audition, skipNil bool, values ...*string) error {
	dst := [8]**datatypes.Date{
		&a.StartDate, &a.EndDate,
		&a.ScreeningDate1, &a.AnnouncementDate1,
		&a.ScreeningDate2, &a.AnnouncementDate2,
		&a.ScreeningDate3, &a.AnnouncementDate3,
	}
	for i, value := range values {
		if skipNil && value == nil {
			continue
		}
		parsed, err := dto.ParseDate(value)
		if err != nil {
			return apperrors.ValidationError(map[string]string{auditionDateFields[i]: "Must be a date in yyyy-MM-dd format"})
		}
		*dst[i] = parsed
	}
	return nil
}

func checkDateRange(a *models.Audition) error {
	if a.StartDate != nil && a.EndDate != nil && time.Time(*a.EndDate).Before(time.Time(*a.StartDate)) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

func handleAuditionError(err error) error {
	if errors.Is(err, repositories.ErrAuditionNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrAuditionNotFound
	}
	return apperrors.InternalError(err)
}
