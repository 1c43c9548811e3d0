// Package client talks to the cards API on behalf of a signed-in user.
//
// Every call takes a context so a page that is torn down can abandon its
// requests. Timeouts are left to the underlying http.Client. A client
// created by Login renews its access token through /auth/refresh when the
// API answers 401.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rsmanito/expense-cards/models"
)

// APIError is a non-2xx answer from the API. Detail carries the server's
// explanation when it sent one.
type APIError struct {
	Status int
	Detail string
	Fields models.FieldErrors
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("api error %d", e.Status)
}

// ServerDetail returns the message the server attached to the failure.
func (e *APIError) ServerDetail() string {
	return e.Detail
}

type Client struct {
	baseURL    string
	session    *session
	httpClient *http.Client
}

// session holds the tokens shared by every copy of a signed-in client.
type session struct {
	mu           sync.Mutex
	token        string
	refreshToken string
}

func (s *session) current() string {
	if s == nil {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// New creates a client for the API at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// WithToken returns a copy of c that authenticates with the given bearer token.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.session = &session{token: token}
	return &cp
}

// Login exchanges credentials for tokens and returns a client using them.
func (c *Client) Login(ctx context.Context, email, password string) (*Client, error) {
	var resp models.UserLoginResponse
	err := c.send(ctx, http.MethodPost, "/api/v1/auth/login", "", models.LoginUserRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	cp := *c
	cp.session = &session{token: resp.Token, refreshToken: resp.RefreshToken}
	return &cp, nil
}

// List returns the signed-in user's cards in the order the server sent them.
func (c *Client) List(ctx context.Context) ([]models.Card, error) {
	var cards []models.Card
	if err := c.do(ctx, http.MethodGet, "/api/v1/cards", nil, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}

func (c *Client) Create(ctx context.Context, req models.CardCreateRequest) (*models.Card, error) {
	var card models.Card
	if err := c.do(ctx, http.MethodPost, "/api/v1/cards", req, &card); err != nil {
		return nil, err
	}
	return &card, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/cards/"+url.PathEscape(id), nil, nil)
}

// Match asks which payment source a receipt's last four digits belong to.
func (c *Client) Match(ctx context.Context, lastFour string) (*models.CardMatchResponse, error) {
	var res models.CardMatchResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/cards/match/"+url.PathEscape(lastFour), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// do sends an authenticated request. A 401 triggers one token refresh and
// one retry when the client holds a refresh token.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	token := c.session.current()

	err := c.send(ctx, method, path, token, body, out)

	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Status != http.StatusUnauthorized {
		return err
	}
	renewed, rerr := c.refresh(ctx, token)
	if rerr != nil || renewed == "" {
		return err
	}
	return c.send(ctx, method, path, renewed, body, out)
}

// refresh swaps stale for a new access token. Concurrent callers holding the
// same stale token share one refresh, since the API only honours the latest
// refresh token it issued.
func (c *Client) refresh(ctx context.Context, stale string) (string, error) {
	s := c.session
	if s == nil {
		return "", nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.refreshToken == "" {
		return "", nil
	}
	if s.token != stale {
		return s.token, nil
	}

	var resp models.UserLoginResponse
	err := c.send(ctx, http.MethodPost, "/api/v1/auth/refresh", "", models.RefreshTokenRequest{
		Token:        s.token,
		RefreshToken: s.refreshToken,
	}, &resp)
	if err != nil {
		return "", fmt.Errorf("refresh tokens: %w", err)
	}

	s.token = resp.Token
	s.refreshToken = resp.RefreshToken
	return s.token, nil
}

func (c *Client) send(ctx context.Context, method, path, token string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		var payload struct {
			Detail string             `json:"detail"`
			Errors models.FieldErrors `json:"errors"`
		}
		if json.Unmarshal(respBody, &payload) == nil {
			apiErr.Detail = payload.Detail
			apiErr.Fields = payload.Errors
		}
		return apiErr
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("unmarshal response body: %w", err)
		}
	}

	return nil
}
