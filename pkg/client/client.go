// Package client is a Go consumer of the dispatch API. It transparently
// refreshes expired access tokens: when several in-flight requests hit 401
// at once, exactly one refresh call goes to the server and every waiter
// retries with the new token.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

var (
	// ErrUnauthorized means the request failed with 401 even after a
	// successful refresh, or no credentials are stored.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrSessionExpired means the refresh token itself was rejected; the
	// stored pair has been cleared and the caller must log in again.
	ErrSessionExpired = errors.New("session expired, log in again")
)

// APIError carries a non-2xx response the server explained.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

type Client struct {
	base  string
	http  *http.Client
	store TokenStore

	// collapses concurrent refresh attempts into one server call
	refreshGroup singleflight.Group
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

func WithTokenStore(s TokenStore) Option {
	return func(c *Client) { c.store = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		base:  strings.TrimRight(baseURL, "/"),
		http:  &http.Client{Timeout: 30 * time.Second},
		store: NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

/* ---------- wire types ---------- */

type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	Role         string `json:"role"`
	Email        string `json:"email"`
}

type tokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

/* ---------- auth endpoints ---------- */

func (c *Client) Register(ctx context.Context, email, password, role string) (*User, error) {
	var out User
	err := c.post(ctx, "/auth/register", map[string]string{
		"email":    email,
		"password": password,
		"role":     role,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.post(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return nil, err
	}
	if err := c.store.Set(out.AccessToken, out.RefreshToken); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the account behind the stored access token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var out User
	if err := c.Do(ctx, http.MethodGet, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout drops the stored pair. The server keeps its side append-only, so
// this is purely local.
func (c *Client) Logout() error {
	return c.store.Clear()
}

/* ---------- transport ---------- */

// Do sends an authenticated request. On 401 it refreshes the token pair
// (one refresh shared across concurrent callers) and retries exactly once.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	access, _ := c.store.Tokens()

	status, data, err := c.roundTrip(ctx, method, path, body, access)
	if err != nil {
		return err
	}
	if status != http.StatusUnauthorized {
		return decodeResponse(status, data, out)
	}

	newAccess, err := c.refresh(ctx)
	if err != nil {
		return err
	}

	status, data, err = c.roundTrip(ctx, method, path, body, newAccess)
	if err != nil {
		return err
	}
	if status == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	return decodeResponse(status, data, out)
}

// refresh rotates the stored refresh token. Concurrent callers collapse
// into a single server round-trip; every waiter observes the same outcome.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (interface{}, error) {
		_, refreshToken := c.store.Tokens()
		if refreshToken == "" {
			return nil, ErrUnauthorized
		}

		var pair tokenPair
		err := c.post(ctx, "/auth/refresh", map[string]string{
			"refreshToken": refreshToken,
		}, &pair)
		if err != nil {
			// The server rejected the rotation; the pair is dead.
			_ = c.store.Clear()
			return nil, ErrSessionExpired
		}

		if err := c.store.Set(pair.AccessToken, pair.RefreshToken); err != nil {
			return nil, err
		}
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// post is an unauthenticated request; used by the auth endpoints themselves.
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	status, data, err := c.roundTrip(ctx, http.MethodPost, path, body, "")
	if err != nil {
		return err
	}
	return decodeResponse(status, data, out)
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body interface{}, access string) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return 0, nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if access != "" {
		req.Header.Set("Authorization", "Bearer "+access)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode, data, nil
}

func decodeResponse(status int, data []byte, out interface{}) error {
	if status < 200 || status > 299 {
		var e struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &e)
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return &APIError{Status: status, Message: e.Message}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, out)
}
