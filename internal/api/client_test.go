package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helpdesk-tools/deskctl/internal/model"
	"github.com/helpdesk-tools/deskctl/internal/session"
)

func newStore(t *testing.T) *session.FileStore {
	t.Helper()
	store, err := session.NewFileStoreAt(t.TempDir())
	require.NoError(t, err)
	return store
}

func loggedInStore(t *testing.T) *session.FileStore {
	t.Helper()
	store := newStore(t)
	require.NoError(t, store.Set(&model.Session{
		ID:      "u-1",
		Name:    "Juan Pérez",
		Email:   "juan.perez@example.com",
		Role:    model.RoleClient,
		Token:   "tok-abc",
		SavedAt: time.Now().UTC(),
	}))
	return store
}

func TestLoginBuildsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["email"] != "juan.perez@example.com" || body["password"] != "demo123" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]any{"message": "Credenciales inválidas"})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"message": "ok",
			"token":   "tok-abc",
			"user": map[string]string{
				"id": "u-1", "email": body["email"], "name": "Juan Pérez", "role": "CLIENT",
			},
		})
	}))
	defer srv.Close()

	store := newStore(t)
	client := New(srv.URL, store)

	sess, err := client.Login(context.Background(), "juan.perez@example.com", "demo123")
	require.NoError(t, err)
	assert.Equal(t, model.RoleClient, sess.Role)
	assert.Equal(t, "tok-abc", sess.Token)

	// Login itself never writes the store; the auth flow owns that.
	current, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestLoginFailureIsNotSessionExpiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]any{"message": "Credenciales inválidas"})
	}))
	defer srv.Close()

	store := loggedInStore(t)
	client := New(srv.URL, store)

	_, err := client.Login(context.Background(), "juan.perez@example.com", "wrong")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrSessionExpired)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Credenciales inválidas", apiErr.Message)

	// The stored session survives a failed re-login attempt.
	current, err := store.Current()
	require.NoError(t, err)
	assert.NotNil(t, current)
}

func TestPrivateCallCarriesBearerToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-abc", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"success": true, "requests": []any{}})
	}))
	defer srv.Close()

	client := New(srv.URL, loggedInStore(t))
	_, err := client.Requests(context.Background())
	assert.NoError(t, err)
}

func TestUnauthorizedPrivateCallClearsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	store := loggedInStore(t)
	client := New(srv.URL, store)

	_, err := client.AllRequests(context.Background())
	assert.ErrorIs(t, err, ErrSessionExpired)

	current, err := store.Current()
	require.NoError(t, err)
	assert.Nil(t, current, "session must be cleared after a credential rejection")
}

func TestCreateRequestComesBackPending(t *testing.T) {
	var created bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/private/requests":
			var in CreateRequestInput
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			assert.Equal(t, "No puedo acceder", in.Title)
			assert.Equal(t, model.CategoryAccessIssue, in.Category)
			assert.Equal(t, model.PriorityHigh, in.Priority)
			created = true
			json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "created"})
		case r.Method == http.MethodGet && r.URL.Path == "/private/requests":
			json.NewEncoder(w).Encode(map[string]any{"success": true, "requests": []map[string]any{
				{"id": "req-1", "title": "No puedo acceder", "status": "PENDING", "priority": "HIGH", "category": "ACCESS_ISSUE", "responses": []any{}},
			}})
		default:
			t.Fatalf("unexpected call %s %s", r.Method, r.URL.Path)
		}
	}))
	defer srv.Close()

	client := New(srv.URL, loggedInStore(t))

	_, err := client.CreateRequest(context.Background(), CreateRequestInput{
		Title:       "No puedo acceder",
		Description: "No logro entrar a mi cuenta",
		Category:    model.CategoryAccessIssue,
		Priority:    model.PriorityHigh,
	})
	require.NoError(t, err)
	require.True(t, created)

	requests, err := client.Requests(context.Background())
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, model.StatusPending, requests[0].Status)
}

func TestUpdateStatusServerRejectionIsRecoverable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		var patch map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&patch))
		if patch["status"] == "IN_PROGRESS" {
			json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"request": map[string]any{"id": "req-1", "status": "IN_PROGRESS", "responses": []any{}},
			})
			return
		}
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "transición inválida"})
	}))
	defer srv.Close()

	client := New(srv.URL, loggedInStore(t))

	updated, err := client.UpdateStatus(context.Background(), "req-1", model.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, updated.Status)

	_, err = client.UpdateStatus(context.Background(), "req-1", model.StatusPending)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr, "a server rejection is an API error, not a crash")
	assert.Equal(t, "transición inválida", apiErr.Message)
}

func TestEnvelopeFailureSurfacesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Error al crear usuario"})
	}))
	defer srv.Close()

	client := New(srv.URL, loggedInStore(t))
	_, err := client.CreateUser(context.Background(), CreateUserInput{
		Name: "X", Email: "x@example.com", Password: "secret1", Role: model.RoleSupport,
	})
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Error al crear usuario", apiErr.Message)
}
