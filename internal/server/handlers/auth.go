package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/iudanet/usersvc/internal/crypto"
	"github.com/iudanet/usersvc/internal/models"
	"github.com/iudanet/usersvc/internal/server/storage"
	"github.com/iudanet/usersvc/internal/server/token"
	"github.com/iudanet/usersvc/pkg/api"
)

// msgInvalidCredentials is shared by the unknown-email, wrong-password and
// inactive-account branches of login so the response cannot be used to
// enumerate accounts.
const msgInvalidCredentials = "Invalid login credentials."

// AuthHandler serves the login/logout/status endpoints.
type AuthHandler struct {
	logger *slog.Logger
	users  storage.UserStorage
	ledger storage.TokenLedger
	codec  *token.Codec
}

// NewAuthHandler creates a new handler for authentication endpoints.
func NewAuthHandler(
	logger *slog.Logger,
	users storage.UserStorage,
	ledger storage.TokenLedger,
	codec *token.Codec,
) *AuthHandler {
	return &AuthHandler{
		logger: logger,
		users:  users,
		ledger: ledger,
		codec:  codec,
	}
}

// Login handles POST /auth/login
// Exchanges email+password for a signed bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		sendFail(w, "Invalid payload.", http.StatusBadRequest)
		return
	}

	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: unknown email")
			sendFail(w, msgInvalidCredentials, http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	if !crypto.CheckPassword(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: wrong password", slog.Int64("user_id", user.ID))
		sendFail(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	if !user.Active {
		h.logger.WarnContext(ctx, "login failed: inactive account", slog.Int64("user_id", user.ID))
		sendFail(w, msgInvalidCredentials, http.StatusUnauthorized)
		return
	}

	tokenString, err := h.codec.Issue(user.ID, time.Now())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to issue token", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in", slog.Int64("user_id", user.ID))

	sendJSON(w, api.LoginResponse{
		Status:    api.StatusSuccess,
		Message:   "Successfully logged in.",
		AuthToken: tokenString,
	}, http.StatusOK)
}

// Logout handles POST /auth/logout
// Revokes the presented token. Logout of an already invalid or expired
// token is a no-op success: the token cannot authenticate anything, so
// there is nothing left to revoke.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tokenString := BearerToken(r)
	if tokenString == "" {
		sendFail(w, "Provide a valid auth token.", http.StatusUnauthorized)
		return
	}

	claims, err := h.codec.Verify(tokenString, time.Now())
	if err != nil {
		h.logger.InfoContext(ctx, "logout with invalid token treated as no-op", slog.Any("error", err))
		sendSuccess(w, "Successfully logged out.", http.StatusOK)
		return
	}

	revoked := &models.RevokedToken{
		JTI:       claims.JTI,
		UserID:    claims.UserID,
		ExpiresAt: claims.ExpiresAt,
		RevokedAt: time.Now(),
	}

	if err := h.ledger.Revoke(ctx, revoked); err != nil {
		h.logger.ErrorContext(ctx, "failed to revoke token", slog.Any("error", err))
		sendFail(w, "Something went wrong. Please contact us.", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged out", slog.Int64("user_id", claims.UserID))

	sendSuccess(w, "Successfully logged out.", http.StatusOK)
}

// Status handles GET /auth/status
// Returns the account behind the presented token. The auth gate has
// already resolved the user by the time this runs.
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUser(r.Context())
	if !ok {
		sendFail(w, "Provide a valid auth token.", http.StatusUnauthorized)
		return
	}

	sendJSON(w, api.UserResponse{
		Status: api.StatusSuccess,
		Data:   UserPayload(user),
	}, http.StatusOK)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" if the header is missing or not in that form.
func BearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}
