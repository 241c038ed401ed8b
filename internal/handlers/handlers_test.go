package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"audition_backend/internal/auth"
	"audition_backend/internal/logger"
	"audition_backend/internal/models"
	"audition_backend/internal/repositories"
	"audition_backend/internal/services/dto"
	"audition_backend/internal/validator"
	"audition_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
}

func newContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	c.Request = req
	return c, rec
}

func TestParsePagination(t *testing.T) {
	cases := []struct {
		query string
		want  repositories.Pagination
	}{
		{"", repositories.Pagination{Page: 1, Size: repositories.DefaultPageSize}},
		{"?page=3&size=5", repositories.Pagination{Page: 3, Size: 5}},
		{"?page=2&page_size=7", repositories.Pagination{Page: 2, Size: 7}},
		{"?size=9&page_size=7", repositories.Pagination{Page: 1, Size: 9}},
		{"?page=-1&size=abc", repositories.Pagination{Page: 1, Size: repositories.DefaultPageSize}},
		{"?size=100000", repositories.Pagination{Page: 1, Size: repositories.MaxPageSize}},
	}

	for _, tc := range cases {
		c, _ := newContext(http.MethodGet, "/auditions"+tc.query, "")
		assert.Equal(t, tc.want, ParsePagination(c), tc.query)
	}
}

func TestBindAndValidate(t *testing.T) {
	base := NewBaseHandler(validator.New())

	t.Run("malformed body", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/auth/register", "{not json")
		var req dto.RegisterRequest
		assert.False(t, base.BindAndValidate(c, &req))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "BAD_REQUEST", gjson.Get(rec.Body.String(), "code").String())
	})

	t.Run("field errors use json names", func(t *testing.T) {
		c, rec := newContext(http.MethodPost, "/auth/register", `{"email":"nope","password":"short","userType":"APPLICANT"}`)
		var req dto.RegisterRequest
		assert.False(t, base.BindAndValidate(c, &req))
		require.Equal(t, http.StatusBadRequest, rec.Code)

		body := rec.Body.String()
		assert.Equal(t, "VALIDATION_FAILED", gjson.Get(body, "code").String())
		assert.True(t, gjson.Get(body, "details.email").Exists())
		assert.True(t, gjson.Get(body, "details.password").Exists())
		assert.True(t, gjson.Get(body, "details.name").Exists())
	})
}

func TestActor_MissingToken(t *testing.T) {
	base := NewBaseHandler(validator.New())
	c, rec := newContext(http.MethodGet, "/auth/me", "")

	_, ok := base.Actor(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateStatus_RequiresStatus(t *testing.T) {
	h := NewApplicationHandler(NewBaseHandler(validator.New()), nil)

	c, rec := newContext(http.MethodPut, "/applications/app-1/status", "")
	c.Set(contextkeys.ActorKey, auth.Actor{ID: "biz-1", Type: models.UserTypeBusiness})
	c.Params = gin.Params{{Key: "id", Value: "app-1"}}

	h.UpdateStatus(c)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "This field is required", gjson.Get(rec.Body.String(), "details.status").String())
}

func TestGetDB_PanicsWithoutMiddleware(t *testing.T) {
	base := NewBaseHandler(validator.New())
	c, _ := newContext(http.MethodGet, "/", "")
	assert.Panics(t, func() { base.GetDB(c) })
}
