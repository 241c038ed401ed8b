package helpers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const DefaultPassword = "password123"

// Account - зарегистрированный через API пользователь
type Account struct {
	ID    string
	Email string
	Token string
}

func uniqueEmail(prefix string) string {
	return fmt.Sprintf("%s_%s@test.com", prefix, uuid.NewString()[:8])
}

// RegisterApplicant регистрирует соискателя и возвращает его токен
func RegisterApplicant(t *testing.T, ts *TestServer) Account {
	t.Helper()
	return register(t, ts, map[string]interface{}{
		"email":     uniqueEmail("applicant"),
		"password":  DefaultPassword,
		"name":      "Test Applicant",
		"userType":  "APPLICANT",
		"country":   "kr",
		"city":      "Seoul",
		"birthday":  "2000-05-01",
		"languages": []string{"ko", "en"},
	})
}

// RegisterBusiness регистрирует бизнес-аккаунт
func RegisterBusiness(t *testing.T, ts *TestServer) Account {
	t.Helper()
	return register(t, ts, map[string]interface{}{
		"email":                      uniqueEmail("business"),
		"password":                   DefaultPassword,
		"name":                       "Test Business",
		"userType":                   "BUSINESS",
		"companyName":                "Star Agency",
		"businessCountry":            "KR",
		"businessCity":               "Seoul",
		"businessRegistrationNumber": "123-45-67890",
	})
}

func register(t *testing.T, ts *TestServer, body map[string]interface{}) Account {
	t.Helper()

	res, resBody := ts.SendRequest(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "register: %s", resBody)

	account := Account{
		ID:    gjson.Get(resBody, "userId").String(),
		Email: gjson.Get(resBody, "email").String(),
		Token: gjson.Get(resBody, "token").String(),
	}
	require.NotEmpty(t, account.Token)
	return account
}

// MustCreate отправляет POST и возвращает id созданного ресурса
func MustCreate(t *testing.T, ts *TestServer, path, token string, body interface{}) string {
	t.Helper()

	res, resBody := ts.SendRequest(t, http.MethodPost, path, token, body)
	require.Equal(t, http.StatusCreated, res.StatusCode, "POST %s: %s", path, resBody)

	id := gjson.Get(resBody, "id").String()
	require.NotEmpty(t, id)
	return id
}
