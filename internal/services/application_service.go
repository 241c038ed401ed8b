package services

import (
	"context"
	"encoding/json"
	"errors"

	"audition_backend/internal/auth"
	"audition_backend/internal/config"
	"audition_backend/internal/logger"
	"audition_backend/internal/metrics"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ApplicationService interface {
	Apply(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error)
	Get(ctx context.Context, db *gorm.DB, id string) (*dto.ApplicationResponse, error)
	List(ctx context.Context, db *gorm.DB, query *dto.ApplicationListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.ApplicationResponse], error)
	UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.ApplicationStatus) (*dto.ApplicationResponse, error)
	UpdateResult(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, round models.Round, req *dto.UpdateResultRequest) (*dto.ApplicationResponse, error)
	Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error
	Cohort(ctx context.Context, db *gorm.DB, auditionID string, round models.Round, page repositories.Pagination) (*dto.PageResponse[*dto.ApplicationResponse], error)
}

type applicationService struct {
	applicationRepo repositories.ApplicationRepository
	auditionRepo    repositories.AuditionRepository
	fee             float64
	screening       config.ScreeningConfig
	metrics         *metrics.Metrics
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	auditionRepo repositories.AuditionRepository,
	appCfg config.ApplicationConfig,
	screening config.ScreeningConfig,
	m *metrics.Metrics,
) ApplicationService {
	return &applicationService{
		applicationRepo: applicationRepo,
		auditionRepo:    auditionRepo,
		fee:             appCfg.Fee,
		screening:       screening,
		metrics:         m,
	}
}

// Apply создает заявку. Повторная заявка на то же прослушивание - 409.
func (s *applicationService) Apply(ctx context.Context, db *gorm.DB, actor auth.Actor, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	if _, err := s.auditionRepo.FindByID(db, req.AuditionID); err != nil {
		return nil, handleAuditionError(err)
	}

	photos := req.Photos
	if photos == nil {
		photos = []string{}
	}
	photosJSON, err := json.Marshal(photos)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	application := &models.Application{
		AuditionID:    req.AuditionID,
		UserID:        actor.ID,
		Status:        models.ApplicationStatusWriting,
		Result1:       models.ResultPending,
		Result2:       models.ResultPending,
		Result3:       models.ResultPending,
		FinalResult:   models.ResultPending,
		VideoID1:      req.VideoID1,
		VideoID2:      req.VideoID2,
		Photos:        datatypes.JSON(photosJSON),
		PaymentAmount: s.fee,
	}

	if err := s.applicationRepo.Create(db, application); err != nil {
		return nil, handleApplicationError(err)
	}

	s.metrics.ApplicationCreated()
	logger.CtxInfo(ctx, "Application submitted",
		"application_id", application.ID,
		"audition_id", application.AuditionID,
	)
	return s.get(db, application.ID)
}

func (s *applicationService) Get(ctx context.Context, db *gorm.DB, id string) (*dto.ApplicationResponse, error) {
	return s.get(db, id)
}

func (s *applicationService) get(db *gorm.DB, id string) (*dto.ApplicationResponse, error) {
	application, err := s.applicationRepo.FindByID(db, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return dto.NewApplicationResponse(application), nil
}

func (s *applicationService) List(ctx context.Context, db *gorm.DB, query *dto.ApplicationListQuery, page repositories.Pagination) (*dto.PageResponse[*dto.ApplicationResponse], error) {
	if query == nil || (query.AuditionID == "" && query.UserID == "") {
		return nil, apperrors.ErrApplicationFilterRequired
	}

	items, total, err := s.applicationRepo.List(db, repositories.ApplicationFilter{
		AuditionID: query.AuditionID,
		UserID:     query.UserID,
	}, page)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return dto.NewPage(dto.NewApplicationList(items), total, page.Page, page.Size), nil
}

// UpdateStatus доступен заявителю и владельцу прослушивания
func (s *applicationService) UpdateStatus(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, status models.ApplicationStatus) (*dto.ApplicationResponse, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationError(map[string]string{
			"status": "Must be one of: WRITING, INCOMPLETE_PAYMENT, APPLICATION_COMPLETED, CANCEL",
		})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.applicationRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}

	auditionOwner := ""
	if application.Audition != nil {
		auditionOwner = application.Audition.BusinessID
	}
	if !auth.IsOwner(actor.ID, application.UserID) && !auth.IsOwner(actor.ID, auditionOwner) {
		return nil, apperrors.ErrNotOwner("application")
	}

	if application.Status == status {
		return dto.NewApplicationResponse(application), nil
	}
	if s.screening.EnforceStatusTransitions && !application.Status.CanTransitionTo(status) {
		return nil, apperrors.ErrInvalidStatus("application",
			"Cannot change application status from "+string(application.Status)+" to "+string(status))
	}

	application.Status = status
	if err := s.applicationRepo.Update(tx, application); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.get(db, id)
}

// UpdateResult выставляет результат раунда; только владелец прослушивания
func (s *applicationService) UpdateResult(ctx context.Context, db *gorm.DB, actor auth.Actor, id string, round models.Round, req *dto.UpdateResultRequest) (*dto.ApplicationResponse, error) {
	if round.Column() == "" {
		return nil, apperrors.NewBadRequestError("Unknown screening round")
	}
	if !req.Result.Valid() {
		return nil, apperrors.ValidationError(map[string]string{"result": "Must be one of: PASS, FAIL, PENDING"})
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.applicationRepo.FindByID(tx, id)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	if application.Audition == nil {
		return nil, apperrors.ErrAuditionNotFound
	}
	if err := auth.RequireOwner(actor, application.Audition.BusinessID, "application"); err != nil {
		return nil, err
	}

	// Сброс в PENDING разрешен всегда
	if s.screening.EnforceRoundOrder && req.Result != models.ResultPending && !previousRoundsPassed(application, round) {
		return nil, apperrors.ErrRoundOrder
	}

	application.SetResult(round, req.Result)
	if req.Comment != "" {
		application.ResultComment = req.Comment
	}

	if err := s.applicationRepo.Update(tx, application); err != nil {
		return nil, handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.metrics.ScreeningResult(string(round), string(req.Result))
	logger.CtxInfo(ctx, "Screening result updated",
		"application_id", id,
		"round", round,
		"result", req.Result,
	)
	return s.get(db, id)
}

// previousRoundsPassed: раунд N требует PASS в раунде N-1. Финал требует PASS
// в первом раунде и в каждом следующем, у которого назначена дата отбора.
func previousRoundsPassed(a *models.Application, round models.Round) bool {
	switch round {
	case models.RoundFirst:
		return true
	case models.RoundSecond:
		return a.Result1 == models.ResultPass
	case models.RoundThird:
		return a.Result1 == models.ResultPass && a.Result2 == models.ResultPass
	case models.RoundFinal:
		if a.Result1 != models.ResultPass {
			return false
		}
		if a.Audition != nil {
			if a.Audition.ScreeningDate2 != nil && a.Result2 != models.ResultPass {
				return false
			}
			if a.Audition.ScreeningDate3 != nil && a.Result3 != models.ResultPass {
				return false
			}
		}
		return true
	}
	return false
}

// Delete - только автор заявки
func (s *applicationService) Delete(ctx context.Context, db *gorm.DB, actor auth.Actor, id string) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	application, err := s.applicationRepo.FindByID(tx, id)
	if err != nil {
		return handleApplicationError(err)
	}
	if err := auth.RequireOwner(actor, application.UserID, "application"); err != nil {
		return err
	}

	if err := s.applicationRepo.Delete(tx, id); err != nil {
		return handleApplicationError(err)
	}
	if err := tx.Commit().Error; err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Cohort - заявки, прошедшие раунд
func (s *applicationService) Cohort(ctx context.Context, db *gorm.DB, auditionID string, round models.Round, page repositories.Pagination) (*dto.PageResponse[*dto.ApplicationResponse], error) {
	if round.Column() == "" {
		return nil, apperrors.NewBadRequestError("Unknown screening round")
	}
	if _, err := s.auditionRepo.FindByID(db, auditionID); err != nil {
		return nil, handleAuditionError(err)
	}

	items, total, err := s.applicationRepo.ListPassed(db, auditionID, round, page)
	if err != nil {
		return nil, handleApplicationError(err)
	}
	return dto.NewPage(dto.NewApplicationList(items), total, page.Page, page.Size), nil
}

func handleApplicationError(err error) error {
	if errors.Is(err, repositories.ErrApplicationNotFound) || errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrApplicationNotFound
	}
	if errors.Is(err, repositories.ErrApplicationExists) || errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrAlreadyApplied
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.ErrAuditionNotFound
	}
	return apperrors.InternalError(err)
}
