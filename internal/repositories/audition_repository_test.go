package repositories_test

import (
	"testing"
	"time"

	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestAuditionRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAuditionRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	application := testutil.CreateApplication(t, db, audition.ID, applicant.ID)
	video := testutil.CreateVideo(t, db, applicant.ID)
	testutil.CreateOffer(t, db, audition, video)

	require.NoError(t, repo.Delete(db, audition.ID))

	_, err := repo.FindByID(db, audition.ID)
	assert.ErrorIs(t, err, repositories.ErrAuditionNotFound)

	var count int64
	db.Model(&models.Application{}).Where("id = ?", application.ID).Count(&count)
	assert.Zero(t, count, "заявки удаляются вместе с прослушиванием")

	db.Model(&models.AuditionOffer{}).Where("audition_id = ?", audition.ID).Count(&count)
	assert.Zero(t, count)

	// видео не затрагивается
	db.Model(&models.VideoContent{}).Where("id = ?", video.ID).Count(&count)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, repo.Delete(db, audition.ID), repositories.ErrAuditionNotFound)
}

func TestAuditionRepository_ListFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAuditionRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	other := testutil.CreateUser(t, db, models.UserTypeBusiness)

	ongoing := testutil.CreateAudition(t, db, business.ID)

	draft := testutil.CreateAudition(t, db, business.ID)
	draft.Status = models.AuditionStatusDraft
	require.NoError(t, repo.Update(db, draft))

	dancer := testutil.CreateAudition(t, db, other.ID)
	dancer.Category = models.CategoryDancer
	require.NoError(t, repo.Update(db, dancer))

	page := repositories.NewPagination(1, 20)

	public, total, err := repo.List(db, repositories.AuditionFilter{Statuses: models.PublicAuditionStatuses}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, public, 2)

	byCategory, _, err := repo.List(db, repositories.AuditionFilter{
		Statuses: models.PublicAuditionStatuses,
		Category: models.CategoryDancer,
	}, page)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, dancer.ID, byCategory[0].ID)

	mine, total, err := repo.List(db, repositories.AuditionFilter{BusinessID: business.ID}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	ids := []string{mine[0].ID, mine[1].ID}
	assert.ElementsMatch(t, []string{ongoing.ID, draft.ID}, ids)

	// название компании подгружается вместе с прослушиванием
	require.NotNil(t, mine[0].Business)
	assert.Equal(t, "Acme Entertainment", mine[0].Business.DisplayName())
}

func TestAuditionRepository_CloseEnded(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewAuditionRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)

	ended := testutil.CreateAudition(t, db, business.ID)
	yesterday := datatypes.Date(time.Now().AddDate(0, 0, -1))
	ended.EndDate = &yesterday
	require.NoError(t, repo.Update(db, ended))

	running := testutil.CreateAudition(t, db, business.ID)

	affected, err := repo.CloseEnded(db, time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	found, err := repo.FindByID(db, ended.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuditionStatusUnderScreening, found.Status)

	found, err = repo.FindByID(db, running.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AuditionStatusOngoing, found.Status)

	// повторный запуск ничего не меняет
	affected, err = repo.CloseEnded(db, time.Now())
	require.NoError(t, err)
	assert.Zero(t, affected)
}
