package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/iudanet/usersvc/internal/crypto"
	"github.com/iudanet/usersvc/internal/models"
	"github.com/iudanet/usersvc/internal/server/storage"
	"github.com/iudanet/usersvc/internal/validation"
	"github.com/iudanet/usersvc/pkg/api"
)

// UsersHandler serves the user CRUD endpoints.
type UsersHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
}

// NewUsersHandler creates a new handler for user endpoints.
func NewUsersHandler(logger *slog.Logger, users storage.UserStorage) *UsersHandler {
	return &UsersHandler{
		logger: logger,
		users:  users,
	}
}

// List handles GET /users
// Open read: returns all users ordered by ascending id.
func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.users.ListUsers(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list users", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	payloads := make([]api.UserPayload, 0, len(users))
	for _, user := range users {
		payloads = append(payloads, UserPayload(user))
	}

	sendJSON(w, api.UsersListResponse{
		Status: api.StatusSuccess,
		Data:   api.UsersData{Users: payloads},
	}, http.StatusOK)
}

// Get handles GET /users/{id}
// A non-numeric id is treated the same as a missing user.
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendFail(w, "User does not exist.", http.StatusNotFound)
		return
	}

	user, err := h.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			sendFail(w, "User does not exist.", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	sendJSON(w, api.UserResponse{
		Status: api.StatusSuccess,
		Data:   UserPayload(user),
	}, http.StatusOK)
}

// Create handles POST /users
// Admin only; the router wraps this handler with the auth gate and the
// admin check. The plaintext password is hashed before persistence and
// discarded with the request.
func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode create user request", slog.Any("error", err))
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.Any("error", err))
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.Any("error", err))
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid password", slog.Any("error", err))
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Active:       true,
		Admin:        false,
		CreatedAt:    time.Now(),
	}

	if err := h.users.CreateUser(ctx, user); err != nil {
		switch {
		case errors.Is(err, storage.ErrDuplicateEmail):
			h.logger.WarnContext(ctx, "duplicate email", slog.String("email", req.Email))
			sendFail(w, "Sorry. That email already exists.", http.StatusBadRequest)
		case errors.Is(err, storage.ErrDuplicateUsername):
			h.logger.WarnContext(ctx, "duplicate username", slog.String("username", req.Username))
			sendFail(w, "Sorry. That username already exists.", http.StatusBadRequest)
		default:
			h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
			sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		}
		return
	}

	h.logger.InfoContext(ctx, "user created",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username))

	sendSuccess(w, fmt.Sprintf("%s was added!", user.Email), http.StatusCreated)
}

// UserPayload converts a user record to its public projection.
func UserPayload(user *models.User) api.UserPayload {
	return api.UserPayload{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Active:   user.Active,
		Admin:    user.Admin,
	}
}
