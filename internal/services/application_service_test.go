package services_test

import (
	"context"
	"net/http"
	"testing"

	"audition_backend/internal/auth"
	"audition_backend/internal/config"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services"
	"audition_backend/internal/services/dto"
	"audition_backend/internal/testutil"
	"audition_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApplicationService(screening config.ScreeningConfig) services.ApplicationService {
	return services.NewApplicationService(
		repositories.NewApplicationRepository(),
		repositories.NewAuditionRepository(),
		config.ApplicationConfig{Fee: 5},
		screening,
		nil,
	)
}

func actorOf(u *models.User) auth.Actor {
	return auth.Actor{ID: u.ID, Type: u.UserType}
}

func TestApplicationService_ApplyOncePerAudition(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)

	req := &dto.CreateApplicationRequest{
		AuditionID: audition.ID,
		Photos:     []string{"https://cdn.example.com/1.jpg"},
	}

	// 1. Первая заявка
	created, err := svc.Apply(ctx, db, actorOf(applicant), req)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWriting, created.Status)
	assert.Equal(t, models.ResultPending, created.Result1)
	assert.Equal(t, models.ResultPending, created.FinalResult)
	assert.Equal(t, 5.0, created.PaymentAmount)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg"}, created.Photos)
	assert.Equal(t, audition.Title, created.AuditionTitle)

	// 2. Повторная заявка - конфликт
	_, err = svc.Apply(ctx, db, actorOf(applicant), req)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)
	requireAppError(t, err, http.StatusConflict)

	// 3. Несуществующее прослушивание
	_, err = svc.Apply(ctx, db, actorOf(applicant), &dto.CreateApplicationRequest{AuditionID: "missing"})
	assert.ErrorIs(t, err, apperrors.ErrAuditionNotFound)
}

func TestApplicationService_ListRequiresFilter(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	_, err := svc.List(ctx, db, &dto.ApplicationListQuery{}, repositories.NewPagination(1, 20))
	assert.ErrorIs(t, err, apperrors.ErrApplicationFilterRequired)

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	testutil.CreateApplication(t, db, audition.ID, applicant.ID)

	page, err := svc.List(ctx, db, &dto.ApplicationListQuery{UserID: applicant.ID}, repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, 1, page.Pages)
}

func TestApplicationService_UpdateStatus(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{EnforceStatusTransitions: true})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	stranger := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)

	_, err := svc.UpdateStatus(ctx, db, actorOf(stranger), application.ID, models.ApplicationStatusCancel)
	requireAppError(t, err, http.StatusForbidden)

	resp, err := svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, models.ApplicationStatusIncompletePayment)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusIncompletePayment, resp.Status)

	// Владелец прослушивания тоже может менять статус
	resp, err = svc.UpdateStatus(ctx, db, actorOf(business), application.ID, models.ApplicationStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusCompleted, resp.Status)

	// Из терминального статуса выйти нельзя, повтор того же значения разрешен
	_, err = svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, models.ApplicationStatusWriting)
	requireAppError(t, err, http.StatusBadRequest)
	_, err = svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, models.ApplicationStatusCompleted)
	assert.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, "PAID")
	requireAppError(t, err, http.StatusBadRequest)
}

func TestApplicationService_UpdateStatusUnenforced(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)

	_, err := svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, models.ApplicationStatusCancel)
	require.NoError(t, err)
	resp, err := svc.UpdateStatus(ctx, db, actorOf(applicant), application.ID, models.ApplicationStatusWriting)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusWriting, resp.Status)
}

func TestApplicationService_FinalCohort(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)
	page := repositories.NewPagination(1, 20)

	// 1. PASS в финале - заявка в финальной когорте
	resp, err := svc.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundFinal,
		&dto.UpdateResultRequest{Result: models.ResultPass, Comment: "Welcome aboard"})
	require.NoError(t, err)
	assert.Equal(t, models.ResultPass, resp.FinalResult)
	assert.Equal(t, "Welcome aboard", resp.ResultComment)

	cohort, err := svc.Cohort(ctx, db, audition.ID, models.RoundFinal, page)
	require.NoError(t, err)
	require.Len(t, cohort.Content, 1)
	assert.Equal(t, application.ID, cohort.Content[0].ID)

	// 2. FAIL убирает ее из когорты
	_, err = svc.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundFinal,
		&dto.UpdateResultRequest{Result: models.ResultFail})
	require.NoError(t, err)

	cohort, err = svc.Cohort(ctx, db, audition.ID, models.RoundFinal, page)
	require.NoError(t, err)
	assert.Empty(t, cohort.Content)
	assert.Equal(t, int64(0), cohort.Total)
}

func TestApplicationService_UpdateResultPermissions(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	otherBusiness := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)

	req := &dto.UpdateResultRequest{Result: models.ResultPass}
	_, err := svc.UpdateResult(ctx, db, actorOf(otherBusiness), application.ID, models.RoundFirst, req)
	requireAppError(t, err, http.StatusForbidden)
	_, err = svc.UpdateResult(ctx, db, actorOf(applicant), application.ID, models.RoundFirst, req)
	requireAppError(t, err, http.StatusForbidden)
	_, err = svc.UpdateResult(ctx, db, actorOf(business), "missing", models.RoundFirst, req)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestApplicationService_RoundOrder(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)
	pass := &dto.UpdateResultRequest{Result: models.ResultPass}

	// По умолчанию порядок раундов не проверяется
	lenient := newApplicationService(config.ScreeningConfig{})
	_, err := lenient.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundThird, pass)
	require.NoError(t, err)

	strict := newApplicationService(config.ScreeningConfig{EnforceRoundOrder: true})
	_, err = strict.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundSecond, pass)
	assert.ErrorIs(t, err, apperrors.ErrRoundOrder)

	// Сброс в PENDING разрешен
	_, err = strict.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundSecond,
		&dto.UpdateResultRequest{Result: models.ResultPending})
	require.NoError(t, err)

	_, err = strict.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundFirst, pass)
	require.NoError(t, err)
	_, err = strict.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundSecond, pass)
	require.NoError(t, err)
	// Дата второго и третьего раундов не назначена - финалу достаточно первого
	_, err = strict.UpdateResult(ctx, db, actorOf(business), application.ID, models.RoundFinal, pass)
	assert.NoError(t, err)
}

func TestApplicationService_Delete(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newApplicationService(config.ScreeningConfig{})
	ctx := context.Background()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)

	// Владелец прослушивания не может удалить чужую заявку
	err := svc.Delete(ctx, db, actorOf(business), application.ID)
	requireAppError(t, err, http.StatusForbidden)

	require.NoError(t, svc.Delete(ctx, db, actorOf(applicant), application.ID))

	_, err = svc.Get(ctx, db, application.ID)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}
