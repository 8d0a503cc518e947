package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/usersvc/internal/crypto"
	"github.com/iudanet/usersvc/internal/models"
	"github.com/iudanet/usersvc/pkg/api"
)

func setupUsersHandler(t *testing.T) (*UsersHandler, *mockUserStorage) {
	t.Helper()

	users := &mockUserStorage{
		users: map[int64]*models.User{
			1: {ID: 1, Username: "test_user", Email: "test_user@mail.com", PasswordHash: "hash1", Active: true, CreatedAt: time.Now()},
			2: {ID: 2, Username: "test_user2", Email: "test_user2@mail.com", PasswordHash: "hash2", Active: true, CreatedAt: time.Now()},
		},
		nextID: 2,
	}

	return NewUsersHandler(setupTestLogger(), users), users
}

func TestUsersList(t *testing.T) {
	h, _ := setupUsersHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	w := httptest.NewRecorder()
	h.List(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp api.UsersListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, api.StatusSuccess, resp.Status)
	require.Len(t, resp.Data.Users, 2)

	// Ascending id order
	assert.Equal(t, "test_user", resp.Data.Users[0].Username)
	assert.Equal(t, "test_user2", resp.Data.Users[1].Username)

	// Hashes never serialize
	assert.NotContains(t, w.Body.String(), "hash1")
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUsersGet(t *testing.T) {
	h, _ := setupUsersHandler(t)

	tests := []struct {
		name       string
		id         string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "existing user",
			id:         "1",
			wantStatus: http.StatusOK,
			wantBody:   "test_user@mail.com",
		},
		{
			name:       "missing user",
			id:         "999",
			wantStatus: http.StatusNotFound,
			wantBody:   "User does not exist.",
		},
		{
			name:       "non-numeric id",
			id:         "foo",
			wantStatus: http.StatusNotFound,
			wantBody:   "User does not exist.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/"+tt.id, nil)
			req.SetPathValue("id", tt.id)

			w := httptest.NewRecorder()
			h.Get(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func postUsers(t *testing.T, h *UsersHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	h.Create(w, req)
	return w
}

func TestUsersCreate_Success(t *testing.T) {
	h, users := setupUsersHandler(t)

	w := postUsers(t, h, `{"username":"new_user","email":"new_user@mail.com","password":"greaterthaneight"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new_user@mail.com was added!")
	assert.Contains(t, w.Body.String(), `"success"`)

	created, err := users.GetUserByEmail(t.Context(), "new_user@mail.com")
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.False(t, created.Admin)

	// Plaintext is never persisted; the digest verifies
	assert.NotEqual(t, "greaterthaneight", created.PasswordHash)
	assert.True(t, crypto.CheckPassword("greaterthaneight", created.PasswordHash))
}

func TestUsersCreate_InvalidPayload(t *testing.T) {
	h, _ := setupUsersHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "not-json"},
		{name: "empty object", body: "{}"},
		{name: "missing username", body: `{"email":"x@mail.com","password":"greaterthaneight"}`},
		{name: "missing email", body: `{"username":"new_user","password":"greaterthaneight"}`},
		{name: "missing password", body: `{"username":"new_user","email":"x@mail.com"}`},
		{name: "short password", body: `{"username":"new_user","email":"x@mail.com","password":"short"}`},
		{name: "bad email", body: `{"username":"new_user","email":"not-an-email","password":"greaterthaneight"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postUsers(t, h, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "Invalid payload.")
		})
	}
}

func TestUsersCreate_Duplicates(t *testing.T) {
	h, _ := setupUsersHandler(t)

	t.Run("duplicate email", func(t *testing.T) {
		w := postUsers(t, h, `{"username":"other_name","email":"test_user@mail.com","password":"greaterthaneight"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Sorry. That email already exists.")
	})

	t.Run("duplicate username", func(t *testing.T) {
		w := postUsers(t, h, `{"username":"test_user","email":"other@mail.com","password":"greaterthaneight"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Sorry. That username already exists.")
	})
}

func TestUsersCreate_StorageError(t *testing.T) {
	h, users := setupUsersHandler(t)
	users.createError = errors.New("disk on fire")

	w := postUsers(t, h, `{"username":"new_user","email":"new_user@mail.com","password":"greaterthaneight"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "disk on fire")
}

func TestPing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/users/ping", nil)
	w := httptest.NewRecorder()
	Ping(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong!")
	assert.Contains(t, w.Body.String(), `"success"`)
}
