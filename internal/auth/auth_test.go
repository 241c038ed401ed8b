package auth

import (
	"strings"
	"testing"
	"time"

	"audition_backend/internal/models"
	"audition_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser(userType models.UserType) *models.User {
	u := &models.User{Email: "user@test.com", UserType: userType}
	u.ID = "user-1"
	return u
}

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "audition")

	token, err := m.GenerateToken(testUser(models.UserTypeApplicant))
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, models.UserTypeApplicant, claims.UserType)

	actor := ActorFromClaims(claims)
	assert.True(t, actor.IsApplicant())
	assert.False(t, actor.IsBusiness())
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", time.Hour, "audition")
	token, err := m.GenerateToken(testUser(models.UserTypeBusiness))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("other", time.Hour, "audition")
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		other := NewTokenManager("secret", time.Hour, "someone-else")
		_, err := other.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired", func(t *testing.T) {
		later := NewTokenManager("secret", time.Hour, "audition")
		later.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		_, err := later.ParseToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("unknown user type", func(t *testing.T) {
		token, err := m.GenerateToken(testUser(models.UserType("ADMIN")))
		require.NoError(t, err)
		_, err = m.ParseToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("password123")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("password123", hash))
	assert.False(t, CheckPasswordHash("password124", hash))

	assert.ErrorIs(t, ValidatePassword("short"), ErrPasswordTooShort)
	assert.NoError(t, ValidatePassword("пароль12"))
	assert.NoError(t, ValidatePassword(strings.Repeat("a", MaxPasswordBytes)))
	assert.ErrorIs(t, ValidatePassword(strings.Repeat("비", 30)), ErrPasswordTooLong)

	unusable, err := UnusablePasswordHash()
	require.NoError(t, err)
	assert.False(t, CheckPasswordHash("", unusable))
}

func TestPolicy(t *testing.T) {
	cases := []struct {
		role     models.UserType
		resource Resource
		action   Action
		allowed  bool
	}{
		{models.UserTypeBusiness, ResourceAudition, ActionCreate, true},
		{models.UserTypeApplicant, ResourceAudition, ActionCreate, false},
		{models.UserTypeApplicant, ResourceApplication, ActionCreate, true},
		{models.UserTypeBusiness, ResourceApplication, ActionCreate, false},
		{models.UserTypeBusiness, ResourceScreening, ActionUpdate, true},
		{models.UserTypeApplicant, ResourceScreening, ActionUpdate, false},
		{models.UserTypeBusiness, ResourceOffer, ActionCreate, true},
		{models.UserTypeBusiness, ResourceOffer, ActionRespond, false},
		{models.UserTypeApplicant, ResourceOffer, ActionRespond, true},
		{models.UserTypeApplicant, ResourceVideo, ActionCreate, true},
		{models.UserTypeBusiness, ResourceVideo, ActionCreate, false},
		{models.UserTypeBusiness, ResourceVideo, ActionLike, true},
		{models.UserType("ADMIN"), ResourceProfile, ActionRead, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, Can(tc.role, tc.resource, tc.action),
			"%s %s %s", tc.role, tc.action, tc.resource)
	}

	scope, ok := Allowed(models.UserTypeApplicant, ResourceApplication, ActionRead)
	require.True(t, ok)
	assert.Equal(t, ScopeAny, scope)
}

func TestRequireOwner(t *testing.T) {
	actor := Actor{ID: "user-1", Type: models.UserTypeApplicant}

	assert.NoError(t, RequireOwner(actor, "user-1", "video"))

	err := RequireOwner(actor, "user-2", "video")
	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 403, appErr.HTTPCode)

	assert.False(t, IsOwner("", ""))
}
