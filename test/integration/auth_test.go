package integration_test

import (
	"net/http"
	"testing"

	"audition_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

// TestAuthFlow - регистрация, логин и /me
func TestAuthFlow(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	applicant := helpers.RegisterApplicant(t, ts)

	// Страна нормализуется в верхний регистр
	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", applicant.Token, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, "KR", gjson.Get(body, "applicantProfile.country").String())
	assert.Equal(t, "APPLICANT", gjson.Get(body, "userType").String())
	assert.Equal(t, "LOCAL", gjson.Get(body, "provider").String())
	assert.Equal(t, 2, len(gjson.Get(body, "applicantProfile.languages").Array()))

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    applicant.Email,
		"password": helpers.DefaultPassword,
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, applicant.ID, gjson.Get(body, "userId").String())
	assert.NotEmpty(t, gjson.Get(body, "token").String())
}

func TestRegister_InvalidCountry(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":    "korea@test.com",
		"password": helpers.DefaultPassword,
		"name":     "Kim",
		"userType": "APPLICANT",
		"country":  "korea",
		"city":     "Seoul",
		"birthday": "1999-01-01",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode, body)
	assert.Equal(t, "VALIDATION_FAILED", gjson.Get(body, "code").String())
	assert.True(t, gjson.Get(body, "details.country").Exists(), body)
	assert.Equal(t, "/api/v1/auth/register", gjson.Get(body, "path").String())
	assert.True(t, gjson.Get(body, "timestamp").Exists())
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	business := helpers.RegisterBusiness(t, ts)

	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"email":                      business.Email,
		"password":                   helpers.DefaultPassword,
		"name":                       "Copycat",
		"userType":                   "BUSINESS",
		"companyName":                "Copy Inc",
		"businessCountry":            "US",
		"businessCity":               "LA",
		"businessRegistrationNumber": "000",
	})
	assert.Equal(t, http.StatusConflict, res.StatusCode, body)
}

// TestLogin_SameErrorForUnknownAndWrongPassword - ответ не раскрывает, существует ли email
func TestLogin_SameErrorForUnknownAndWrongPassword(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	applicant := helpers.RegisterApplicant(t, ts)

	wrongRes, wrongBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    applicant.Email,
		"password": "not-the-password",
	})
	unknownRes, unknownBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@test.com",
		"password": "not-the-password",
	})

	assert.Equal(t, http.StatusUnauthorized, wrongRes.StatusCode)
	assert.Equal(t, wrongRes.StatusCode, unknownRes.StatusCode)
	assert.Equal(t, gjson.Get(wrongBody, "message").String(), gjson.Get(unknownBody, "message").String())
	assert.Equal(t, gjson.Get(wrongBody, "code").String(), gjson.Get(unknownBody, "code").String())
}

func TestSocialLogin_CreatesThenReuses(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	ts.Provider.Set("kakao-token", `{"id": 987654, "kakao_account": {"email": "Fan@Kakao.com", "profile": {"nickname": "Fan"}}}`)

	req := map[string]string{"provider": "kakao", "accessToken": "kakao-token"}
	res, body := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/social/login", "", req)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	firstID := gjson.Get(body, "userId").String()
	assert.Equal(t, "fan@kakao.com", gjson.Get(body, "email").String())
	assert.Equal(t, "APPLICANT", gjson.Get(body, "userType").String())

	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/social/login", "", req)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Equal(t, firstID, gjson.Get(body, "userId").String())

	// Невалидный токен провайдера
	res, body = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/social/login", "", map[string]string{
		"provider":    "google",
		"accessToken": "expired",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode, body)

	// У социального аккаунта нет пароля
	res, _ = ts.SendRequest(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "fan@kakao.com",
		"password": "anything-at-all",
	})
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestMe_RequiresToken(t *testing.T) {
	t.Parallel()
	ts := helpers.NewTestServer(t)

	res, body := ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
	assert.Equal(t, float64(401), gjson.Get(body, "status").Float())

	res, _ = ts.SendRequest(t, http.MethodGet, "/api/v1/auth/me", "garbage.token.value", nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}
