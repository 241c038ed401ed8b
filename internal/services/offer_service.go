package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"audition_backend/internal/auth"
	"audition_backend/internal/email"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type OfferService interface {
	Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateOfferRequest) (*dto.OfferResponse, error)
	Respond(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.RespondOfferRequest) (*dto.OfferResponse, error)
	MarkAsRead(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferResponse, error)
	Get(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferResponse, error)
	ListForUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string, page repositories.Pagination) (*dto.PageResponse[*dto.OfferResponse], error)
	ListForBusiness(ctx context.Context, db *gorm.DB, actor auth.Actor, businessID string, page repositories.Pagination) (*dto.PageResponse[*dto.OfferResponse], error)
	PendingCount(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string) (*dto.CountResponse, error)
}

type offerService struct {
	offerRepo    repositories.OfferRepository
	auditionRepo repositories.AuditionRepository
	videoRepo    repositories.VideoRepository
	notifier     *email.Notifier
	metrics      *metrics.Metrics
	now          func() time.Time
}

func NewOfferService(
	offerRepo repositories.OfferRepository,
	auditionRepo repositories.AuditionRepository,
	videoRepo repositories.VideoRepository,
	notifier *email.Notifier,
	m *metrics.Metrics,
) OfferService {
	return &offerService{
		offerRepo:    offerRepo,
		auditionRepo: auditionRepo,
		videoRepo:    videoRepo,
		notifier:     notifier,
		metrics:      m,
		now:          time.Now,
	}
}

// Create - бизнес предлагает прослушивание автору видео
func (s *offerService) Create(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	audition, err := s.auditionRepo.FindByID(db, req.AuditionID)
	if err != nil {
		return nil, handleAuditionError(err)
	}
	if err := auth.RequireOwner(actor, audition.BusinessID, "offer"); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.FindByID(db, req.VideoContentID)
	if err != nil {
		return nil, handleVideoError(err)
	}
	if video.Status == models.VideoStatusDeleted {
		return nil, apperrors.ErrVideoNotFound
	}

	offer := &models.AuditionOffer{
		AuditionID:     audition.ID,
		BusinessID:     actor.ID,
		UserID:         video.UserID,
		VideoContentID: video.ID,
		Status:         models.OfferStatusPending,
		Message:        req.Message,
	}
	if err := s.offerRepo.Create(db, offer); err != nil {
		return nil, handleOfferError(err)
	}

	created, err := s.offerRepo.FindByID(db, offer.ID)
	if err != nil {
		return nil, handleOfferError(err)
	}

	s.metrics.OfferCreated()
	logger.CtxInfo(ctx, "Offer created", "offer_id", offer.ID, "user_id", offer.UserID)
	s.notify(ctx, created)

	return dto.NewOfferResponse(created), nil
}

// notify - ошибка отправки письма не отменяет оффер
func (s *offerService) notify(ctx context.Context, offer *models.AuditionOffer) {
	if s.notifier == nil {
		return
	}

	n := email.OfferNotification{
		OfferID: offer.ID,
		Message: offer.Message,
	}
	if offer.User != nil {
		n.To = offer.User.Email
		n.UserName = offer.User.Name
	}
	if offer.Business != nil {
		n.BusinessName = offer.Business.DisplayName()
	}
	if offer.Audition != nil {
		n.AuditionTitle = offer.Audition.Title
	}

	if err := s.notifier.OfferReceived(n); err != nil {
		logger.CtxWithError(ctx, "Failed to send offer notification", err, "offer_id", offer.ID)
	}
}

// Respond - ACCEPT или REJECT, только получатель и только пока оффер PENDING
func (s *offerService) Respond(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, req *dto.RespondOfferRequest) (*dto.OfferResponse, error) {
	var status models.OfferStatus
	switch strings.ToUpper(strings.TrimSpace(req.Response)) {
	case "ACCEPT":
		status = models.OfferStatusAccepted
	case "REJECT":
		status = models.OfferStatusRejected
	default:
		return nil, apperrors.ValidationError(map[string]string{"response": "Must be one of: ACCEPT, REJECT"})
	}

	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, handleOfferError(err)
	}
	if !auth.IsOwner(actor.ID, offer.UserID) {
		return nil, apperrors.ErrOfferNotRecipient
	}
	if offer.Status != models.OfferStatusPending {
		return nil, apperrors.ErrOfferNotPending
	}

	// Условный UPDATE: из двух одновременных ответов проходит один
	updated, err := s.offerRepo.Respond(db, id, status, s.now())
	if err != nil {
		return nil, handleOfferError(err)
	}
	if !updated {
		return nil, apperrors.ErrOfferNotPending
	}

	s.metrics.OfferResponded(string(status))
	logger.CtxInfo(ctx, "Offer responded", "offer_id", id, "status", status)
	return s.get(db, id)
}

// MarkAsRead - повторный вызов сохраняет первую отметку
func (s *offerService) MarkAsRead(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, handleOfferError(err)
	}
	if !auth.IsOwner(actor.ID, offer.UserID) {
		return nil, apperrors.ErrOfferNotRecipient
	}

	if offer.ReadAt == nil {
		if err := s.offerRepo.MarkAsRead(db, id, s.now()); err != nil {
			return nil, handleOfferError(err)
		}
	}
	return s.get(db, id)
}

// Get - только участники оффера
func (s *offerService) Get(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, handleOfferError(err)
	}
	if !auth.IsOwner(actor.ID, offer.UserID) && !auth.IsOwner(actor.ID, offer.BusinessID) {
		return nil, apperrors.ErrNotOwner("offer")
	}
	return dto.NewOfferResponse(offer), nil
}

func (s *offerService) get(db *gorm.DB, id string) (*dto.OfferResponse, error) {
	offer, err := s.offerRepo.FindByID(db, id)
	if err != nil {
		return nil, handleOfferError(err)
	}
	return dto.NewOfferResponse(offer), nil
}

func (s *offerService) ListForUser(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string, page repositories.Pagination) (*dto.PageResponse[*dto.OfferResponse], error) {
	if err := auth.RequireOwner(actor, userID, "offer"); err != nil {
		return nil, err
	}
	items, total, err := s.offerRepo.ListByUser(db, userID, page)
	if err != nil {
		return nil, handleOfferError(err)
	}
	return dto.NewPage(dto.NewOfferList(items), total, page.Page, page.Size), nil
}

func (s *offerService) ListForBusiness(ctx context.Context, db *gorm.DB, actor auth.Actor, businessID string, page repositories.Pagination) (*dto.PageResponse[*dto.OfferResponse], error) {
	if err := auth.RequireOwner(actor, businessID, "offer"); err != nil {
		return nil, err
	}
	items, total, err := s.offerRepo.ListByBusiness(db, businessID, page)
	if err != nil {
		return nil, handleOfferError(err)
	}
	return dto.NewPage(dto.NewOfferList(items), total, page.Page, page.Size), nil
}

func (s *offerService) PendingCount(ctx context.Context, db *gorm.DB, actor auth.Actor, userID string) (*dto.CountResponse, error) {
	if err := auth.RequireOwner(actor, userID, "offer"); err != nil {
		return nil, err
	}
	count, err := s.offerRepo.CountPending(db, userID)
	if err != nil {
		return nil, handleOfferError(err)
	}
	return &dto.CountResponse{Count: count}, nil
}

func handleOfferError(err error) error {
	if errors.Is(err, repositories.ErrOfferNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrOfferNotFound
	}
	if errors.Is(err, repositories.ErrOfferExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrOfferExists
	}
	return apperrors.InternalError(err)
}
