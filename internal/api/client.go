// Package api is the session-to-API binding: a REST client that attaches
// the stored credential to every private call and handles credential loss
// in exactly one place, so no view re-implements it.
package api

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
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/session"
)

// ErrSessionExpired is returned when any private call answers 401. The
// client has already cleared the session store by the time a caller sees
// this error; the only recovery is logging in again.
var ErrSessionExpired = errors.New("session expired or credential rejected")

// Error is a non-2xx answer from the API, carrying the server's message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server returned status %d", e.StatusCode)
}

// Client talks to the ticket API. Construct it through New so the bearer
// credential of the current session is wired into the transport.
type Client struct {
	baseURL  string
	http     *http.Client
	sessions session.Store
}

// New builds a client bound to the session store. When a session exists
// its token rides on every request via a static oauth2 token source; an
// anonymous client can still reach the public auth endpoints.
func New(baseURL string, sessions session.Store) *Client {
	httpClient := http.DefaultClient
	if sess, _ := sessions.Current(); sess != nil && sess.Token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: sess.Token,
			TokenType:   "Bearer",
		})
		httpClient = oauth2.NewClient(context.Background(), source)
	}
	return &Client{baseURL: baseURL, http: httpClient, sessions: sessions}
}

// Login authenticates and returns a ready-to-store session. It does not
// store it; the auth flow owns session writes.
func (c *Client) Login(ctx context.Context, email, password string) (*model.Session, error) {
	var out loginResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return nil, err
	}
	if out.Token == "" {
		return nil, &Error{StatusCode: http.StatusOK, Message: "login response carried no token"}
	}
	role, err := model.ParseRole(string(out.User.Role))
	if err != nil {
		return nil, fmt.Errorf("login response: %w", err)
	}
	return &model.Session{
		ID:      out.User.ID,
		Name:    out.User.Name,
		Email:   out.User.Email,
		Role:    role,
		Token:   out.Token,
		SavedAt: time.Now().UTC(),
	}, nil
}

// Logout tells the server to invalidate the credential. Callers clear the
// local session regardless of the outcome.
func (c *Client) Logout(ctx context.Context) error {
	var out envelope
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, &out)
}

// Requests returns the tickets owned by the calling client.
func (c *Client) Requests(ctx context.Context) ([]model.Request, error) {
	var out requestsResponse
	if err := c.do(ctx, http.MethodGet, "/private/requests", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Message: out.Message}
	}
	return out.Requests, nil
}

// AllRequests returns every ticket. The server enforces that only support
// and admin callers may use it.
func (c *Client) AllRequests(ctx context.Context) ([]model.Request, error) {
	var out requestsResponse
	if err := c.do(ctx, http.MethodGet, "/private/requests/all", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Message: out.Message}
	}
	return out.Requests, nil
}

// Request fetches one ticket with its response thread.
func (c *Client) Request(ctx context.Context, id string) (*model.Request, error) {
	var out requestResponse
	if err := c.do(ctx, http.MethodGet, "/private/requests/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Request == nil {
		return nil, &Error{Message: orDefault(out.Message, "request not found")}
	}
	return out.Request, nil
}

// CreateRequest submits a new ticket. The server sets the initial status.
func (c *Client) CreateRequest(ctx context.Context, in CreateRequestInput) (string, error) {
	var out envelope
	if err := c.do(ctx, http.MethodPost, "/private/requests", in, &out); err != nil {
		return "", err
	}
	if !out.Success {
		return "", &Error{Message: orDefault(out.Message, "could not create request")}
	}
	return out.Message, nil
}

// UpdateStatus drives a lifecycle transition. The server is authoritative
// on legality: a rejection here is a recoverable conflict and the caller
// should re-fetch rather than trust its optimistic view.
func (c *Client) UpdateStatus(ctx context.Context, id string, status model.Status) (*model.Request, error) {
	var out requestResponse
	if err := c.do(ctx, http.MethodPatch, "/private/requests/"+url.PathEscape(id), statusPatch{Status: status}, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Request == nil {
		return nil, &Error{Message: orDefault(out.Message, "status change rejected")}
	}
	return out.Request, nil
}

// CreateResponse appends a message to a ticket's thread.
func (c *Client) CreateResponse(ctx context.Context, requestID, content string) (*model.Response, error) {
	var out responseResponse
	if err := c.do(ctx, http.MethodPost, "/private/responses", createResponseRequest{RequestID: requestID, Content: content}, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.Response == nil {
		return nil, &Error{Message: orDefault(out.Message, "could not create response")}
	}
	return out.Response, nil
}

// Users lists accounts (admin only, enforced server-side).
func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out usersResponse
	if err := c.do(ctx, http.MethodGet, "/private/admin/users", nil, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, &Error{Message: out.Message}
	}
	return out.Users, nil
}

// CreateUser creates an account (admin only).
func (c *Client) CreateUser(ctx context.Context, in CreateUserInput) (*model.User, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodPost, "/private/admin/users", in, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, &Error{Message: orDefault(out.Message, "could not create user")}
	}
	return out.User, nil
}

// UpdateUser patches an account (admin only).
func (c *Client) UpdateUser(ctx context.Context, id string, in UpdateUserInput) (*model.User, error) {
	var out userResponse
	if err := c.do(ctx, http.MethodPatch, "/private/admin/users/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	if !out.Success || out.User == nil {
		return nil, &Error{Message: orDefault(out.Message, "could not update user")}
	}
	return out.User, nil
}

// UpdatePassword changes the calling user's own password.
func (c *Client) UpdatePassword(ctx context.Context, newPassword string) error {
	var out envelope
	if err := c.do(ctx, http.MethodPut, "/private/me", passwordChange{NewPassword: newPassword}, &out); err != nil {
		return err
	}
	if !out.Success {
		return &Error{Message: orDefault(out.Message, "could not update password")}
	}
	return nil
}

// do runs one JSON round trip. Every request carries a client-generated
// UUIDv7 correlation ID. A 401 on any private path clears the session
// store before returning ErrSessionExpired, so credential loss is handled
// once, here, and not per view.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	endpoint, err := url.JoinPath(c.baseURL, path)
	if err != nil {
		return fmt.Errorf("invalid server URL: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.Must(uuid.NewV7()).String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && strings.HasPrefix(path, "/private") {
		if clearErr := c.sessions.Clear(); clearErr != nil {
			return fmt.Errorf("credential rejected and session could not be cleared: %w", clearErr)
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return &Error{StatusCode: resp.StatusCode, Message: env.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}

func orDefault(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
