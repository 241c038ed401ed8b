// Package social запрашивает профиль пользователя у OAuth-провайдеров
// по access token, полученному клиентом.
package social

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"audition_backend/internal/config"
	"audition_backend/internal/models"

	"github.com/tidwall/gjson"
)

var (
	ErrUnsupportedProvider = errors.New("unsupported social provider")
	ErrProviderRejected    = errors.New("social provider rejected the token")
)

// maxBodySize - ответы userinfo небольшие, больше не читаем
const maxBodySize = 1 << 20

// Profile - нормализованный профиль провайдера
type Profile struct {
	Provider        models.AuthProvider
	ProviderID      string
	Email           string
	Name            string
	ProfileImageURL string
}

// Fetcher - интерфейс для сервиса авторизации и тестов
type Fetcher interface {
	FetchProfile(ctx context.Context, provider models.AuthProvider, accessToken string) (*Profile, error)
}

// fieldPaths - пути gjson к полям ответа провайдера
type fieldPaths struct {
	id, email, name, picture string
}

var providerFields = map[models.AuthProvider]fieldPaths{
	models.ProviderGoogle:   {id: "id", email: "email", name: "name", picture: "picture"},
	models.ProviderKakao:    {id: "id", email: "kakao_account.email", name: "kakao_account.profile.nickname", picture: "kakao_account.profile.profile_image_url"},
	models.ProviderNaver:    {id: "response.id", email: "response.email", name: "response.name", picture: "response.profile_image"},
	models.ProviderFacebook: {id: "id", email: "email", name: "name", picture: "picture.data.url"},
}

type Client struct {
	http      *http.Client
	endpoints map[models.AuthProvider]string
}

func NewClient(cfg config.SocialConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		endpoints: map[models.AuthProvider]string{
			models.ProviderGoogle:   cfg.GoogleURL,
			models.ProviderKakao:    cfg.KakaoURL,
			models.ProviderNaver:    cfg.NaverURL,
			models.ProviderFacebook: cfg.FacebookURL,
		},
	}
}

// FetchProfile вызывает userinfo-endpoint провайдера и разбирает ответ
func (c *Client) FetchProfile(ctx context.Context, provider models.AuthProvider, accessToken string) (*Profile, error) {
	endpoint, ok := c.endpoints[provider]
	fields, known := providerFields[provider]
	if !ok || !known || endpoint == "" {
		return nil, ErrUnsupportedProvider
	}

	req, err := c.newRequest(ctx, provider, endpoint, accessToken)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderRejected, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrProviderRejected, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrProviderRejected, resp.StatusCode)
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid json", ErrProviderRejected)
	}

	profile := &Profile{
		Provider:        provider,
		ProviderID:      gjson.GetBytes(body, fields.id).String(),
		Email:           strings.ToLower(strings.TrimSpace(gjson.GetBytes(body, fields.email).String())),
		Name:            strings.TrimSpace(gjson.GetBytes(body, fields.name).String()),
		ProfileImageURL: gjson.GetBytes(body, fields.picture).String(),
	}
	if profile.ProviderID == "" {
		return nil, fmt.Errorf("%w: no account id in response", ErrProviderRejected)
	}
	return profile, nil
}

// newRequest - Facebook принимает токен в query, остальные в заголовке Bearer
func (c *Client) newRequest(ctx context.Context, provider models.AuthProvider, endpoint, accessToken string) (*http.Request, error) {
	if provider == models.ProviderFacebook {
		u, err := url.Parse(endpoint)
		if err != nil {
			return nil, fmt.Errorf("invalid facebook endpoint: %w", err)
		}
		q := u.Query()
		q.Set("fields", "id,name,email,picture")
		q.Set("access_token", accessToken)
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	return req, nil
}
