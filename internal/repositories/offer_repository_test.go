package repositories_test

import (
	"testing"
	"time"

	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOfferRepository_CreateDuplicate(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewOfferRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	video := testutil.CreateVideo(t, db, applicant.ID)

	newOffer := func() *models.AuditionOffer {
		return &models.AuditionOffer{
			AuditionID:     audition.ID,
			BusinessID:     business.ID,
			UserID:         applicant.ID,
			VideoContentID: video.ID,
			Status:         models.OfferStatusPending,
		}
	}

	require.NoError(t, repo.Create(db, newOffer()))
	assert.ErrorIs(t, repo.Create(db, newOffer()), repositories.ErrOfferExists)
}

func TestOfferRepository_RespondOnlyOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewOfferRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	offer := testutil.CreateOffer(t, db, audition, testutil.CreateVideo(t, db, applicant.ID))

	ok, err := repo.Respond(db, offer.ID, models.OfferStatusAccepted, time.Now())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Respond(db, offer.ID, models.OfferStatusRejected, time.Now())
	require.NoError(t, err)
	assert.False(t, ok)

	found, err := repo.FindByID(db, offer.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusAccepted, found.Status)
	assert.NotNil(t, found.RespondedAt)
	require.NotNil(t, found.Audition)
	assert.Equal(t, audition.Title, found.Audition.Title)
}

func TestOfferRepository_MarkAsReadKeepsFirstTimestamp(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewOfferRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)
	offer := testutil.CreateOffer(t, db, audition, testutil.CreateVideo(t, db, applicant.ID))

	first := time.Now().Add(-time.Hour).UTC().Truncate(time.Second)
	require.NoError(t, repo.MarkAsRead(db, offer.ID, first))
	require.NoError(t, repo.MarkAsRead(db, offer.ID, time.Now()))

	found, err := repo.FindByID(db, offer.ID)
	require.NoError(t, err)
	require.NotNil(t, found.ReadAt)
	assert.True(t, first.Equal(*found.ReadAt))
}

func TestOfferRepository_CountPendingAndExpire(t *testing.T) {
	db := testutil.NewDB(t)
	repo := repositories.NewOfferRepository()

	business := testutil.CreateUser(t, db, models.UserTypeBusiness)
	applicant := testutil.CreateUser(t, db, models.UserTypeApplicant)
	audition := testutil.CreateAudition(t, db, business.ID)

	stale := testutil.CreateOffer(t, db, audition, testutil.CreateVideo(t, db, applicant.ID))
	testutil.CreateOffer(t, db, audition, testutil.CreateVideo(t, db, applicant.ID))
	require.NoError(t, db.Model(stale).UpdateColumn("created_at", time.Now().Add(-48*time.Hour)).Error)

	count, err := repo.CountPending(db, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	expired, err := repo.ExpireOlderThan(db, time.Now().Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	count, err = repo.CountPending(db, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	offers, total, err := repo.ListByBusiness(db, business.ID, repositories.NewPagination(1, 20))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, offers, 2)
}
