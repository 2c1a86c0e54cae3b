// Package api implements the HTTP client for the AuctionHub credential
// service. It speaks the {success, message, data} envelope and maps error
// responses to sentinel errors the session guard can branch on.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dkalnins/auctionhub/internal/common"
)

// User is the server-confirmed public identity.
type User struct {
	ID        string    `json:"_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is what register and login return: the identity plus the token
// to present on subsequent requests.
type AuthResult struct {
	User  User
	Token string
}

// Client is the transport seam the session guard depends on.
type Client interface {
	Register(ctx context.Context, fullName, email, username, password string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	CurrentUser(ctx context.Context, token string) (*User, error)
}

type envelope struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Data    payload `json:"data"`
}

type payload struct {
	User
	Token string `json:"token"`
}

type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *HTTPClient) Register(ctx context.Context, fullName, email, username, password string) (*AuthResult, error) {
	body := map[string]string{
		"full_name": fullName,
		"email":     email,
		"username":  username,
		"password":  password,
	}

	env, err := c.do(ctx, http.MethodPost, "/auth/register", body, "")
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: env.Data.User, Token: env.Data.Token}, nil
}

func (c *HTTPClient) Login(ctx context.Context, identifier, password string) (*AuthResult, error) {
	body := map[string]string{
		"identifier": identifier,
		"password":   password,
	}

	env, err := c.do(ctx, http.MethodPost, "/auth/login", body, "")
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: env.Data.User, Token: env.Data.Token}, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context, token string) (*User, error) {
	env, err := c.do(ctx, http.MethodGet, "/auth/me", nil, token)
	if err != nil {
		return nil, err
	}
	user := env.Data.User
	return &user, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, token string) (*envelope, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	env := &envelope{}
	if err := json.NewDecoder(resp.Body).Decode(env); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, common.ErrorUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: env.Message}
	}

	return env, nil
}
