package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/soyeahso/studyline/internal/domain"
)

// TokenResponse is returned by login and register.
type TokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account and returns a fresh token. A 401 here means
// bad input, not an expired session, so the request bypasses the expiry
// latch and never trips it.
func (c *Client) Register(ctx context.Context, email, username, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/register",
		registerRequest{Email: email, Username: username, Password: password}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/login",
		loginRequest{Email: email, Password: password}, &out, true)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout tells the server to discard the token. A 403 is treated as
// success: the token is already dead and local cleanup proceeds anyway.
func (c *Client) Logout(ctx context.Context) error {
	err := c.doRequest(ctx, http.MethodPost, "/api/auth/logout", nil, nil, true)
	var apiErr *APIError
	if errors.As(err, &apiErr) && (apiErr.Status == http.StatusForbidden || apiErr.Status == http.StatusUnauthorized) {
		return nil
	}
	return err
}

// CurrentUser fetches the account behind the stored token.
func (c *Client) CurrentUser(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
