package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-vaultx/internal/config"
	"github.com/MKhiriev/go-vaultx/internal/logger"
	"github.com/MKhiriev/go-vaultx/internal/utils"
	"github.com/MKhiriev/go-vaultx/models"
)

// TokenCookie is the cookie the identity service sets on login.
const TokenCookie = "vaultx_token"

type httpIdentityAdapter struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// userEnvelope is the success body of every identity service endpoint.
type userEnvelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user"`
}

// NewHTTPIdentityAdapter constructs the HTTP implementation of
// [IdentityAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as a
// valid URL.
func NewHTTPIdentityAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (IdentityAdapter, error) {
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client := utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout)
	return &httpIdentityAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Signup implements [IdentityAdapter].
func (h *httpIdentityAdapter) Signup(ctx context.Context, user models.User) (models.User, error) {
	var result userEnvelope

	resp, err := h.client.JSONRequest(ctx, user).
		SetResult(&result).
		Post("/api/signup")
	if err != nil {
		return models.User{}, fmt.Errorf("signup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	created := models.User{Name: user.Name, Email: user.Email, Phone: user.Phone}
	if result.User != nil {
		created.Name = result.User.Name
		created.Email = result.User.Email
	}
	return created, nil
}

// Login implements [IdentityAdapter]. The token is taken from the
// vaultx_token cookie, or from a bearer Authorization header.
func (h *httpIdentityAdapter) Login(ctx context.Context, user models.User) (models.CurrentUser, error) {
	var result userEnvelope

	resp, err := h.client.JSONRequest(ctx, map[string]string{"email": user.Email, "password": user.Password}).
		SetResult(&result).
		Post("/api/login")
	if err != nil {
		return models.CurrentUser{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.CurrentUser{}, err
	}

	if result.User == nil || strings.TrimSpace(result.User.Name) == "" {
		return models.CurrentUser{}, fmt.Errorf("login: %w: no user name", ErrUnexpectedResponse)
	}

	token := tokenFromCookies(resp.Cookies())
	if token == "" {
		token, _ = utils.ParseBearerToken(resp.Header().Get("Authorization"))
	}
	if token == "" {
		return models.CurrentUser{}, ErrMissingToken
	}

	h.logger.Debug().
		Str("func", "httpIdentityAdapter.Login").
		Str("identity", result.User.Name).
		Msg("logged in")

	return models.CurrentUser{
		Name:  result.User.Name,
		Email: result.User.Email,
		Token: token,
	}, nil
}

// Me implements [IdentityAdapter].
func (h *httpIdentityAdapter) Me(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, fmt.Errorf("%w: empty token", ErrUnauthorized)
	}

	var result userEnvelope

	resp, err := h.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetCookie(&http.Cookie{Name: TokenCookie, Value: token}).
		SetResult(&result).
		Get("/api/me")
	if err != nil {
		return models.User{}, fmt.Errorf("me request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	if result.User == nil {
		return models.User{}, fmt.Errorf("me: %w: no user", ErrUnexpectedResponse)
	}
	return models.User{Name: result.User.Name, Email: result.User.Email}, nil
}

func tokenFromCookies(cookies []*http.Cookie) string {
	for _, c := range cookies {
		if c.Name == TokenCookie {
			return c.Value
		}
	}
	return ""
}
