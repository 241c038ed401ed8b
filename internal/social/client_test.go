package social

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"audition_backend/internal/config"
	"audition_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(config.SocialConfig{
		GoogleURL:   srv.URL + "/google",
		KakaoURL:    srv.URL + "/kakao",
		NaverURL:    srv.URL + "/naver",
		FacebookURL: srv.URL + "/facebook",
	})
}

func TestFetchProfile_Providers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/facebook" {
			assert.Equal(t, "fb-token", r.URL.Query().Get("access_token"))
			assert.Equal(t, "id,name,email,picture", r.URL.Query().Get("fields"))
		} else {
			assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/google":
			w.Write([]byte(`{"id":"g-1","email":"Singer@Gmail.com","name":"Google User","picture":"https://img/g.png"}`))
		case "/kakao":
			w.Write([]byte(`{"id":12345,"kakao_account":{"email":"k@kakao.com","profile":{"nickname":"Kakao","profile_image_url":"https://img/k.png"}}}`))
		case "/naver":
			w.Write([]byte(`{"resultcode":"00","response":{"id":"n-1","email":"n@naver.com","name":"Naver","profile_image":"https://img/n.png"}}`))
		case "/facebook":
			w.Write([]byte(`{"id":"f-1","email":"f@fb.com","name":"Face","picture":{"data":{"url":"https://img/f.png"}}}`))
		}
	})

	tests := []struct {
		provider models.AuthProvider
		token    string
		want     Profile
	}{
		{models.ProviderGoogle, "token", Profile{models.ProviderGoogle, "g-1", "singer@gmail.com", "Google User", "https://img/g.png"}},
		{models.ProviderKakao, "token", Profile{models.ProviderKakao, "12345", "k@kakao.com", "Kakao", "https://img/k.png"}},
		{models.ProviderNaver, "token", Profile{models.ProviderNaver, "n-1", "n@naver.com", "Naver", "https://img/n.png"}},
		{models.ProviderFacebook, "fb-token", Profile{models.ProviderFacebook, "f-1", "f@fb.com", "Face", "https://img/f.png"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			profile, err := client.FetchProfile(context.Background(), tt.provider, tt.token)
			require.NoError(t, err)
			assert.Equal(t, tt.want, *profile)
		})
	}
}

func TestFetchProfile_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_token"}`))
	})

	_, err := client.FetchProfile(context.Background(), models.ProviderGoogle, "bad")
	assert.ErrorIs(t, err, ErrProviderRejected)
}

func TestFetchProfile_MissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"email":"x@example.com"}`))
	})

	_, err := client.FetchProfile(context.Background(), models.ProviderGoogle, "token")
	assert.ErrorIs(t, err, ErrProviderRejected)
}

func TestFetchProfile_Unsupported(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := client.FetchProfile(context.Background(), models.ProviderLocal, "token")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}
