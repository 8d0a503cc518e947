package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/iudanet/usersvc/internal/server/handlers"
	"github.com/iudanet/usersvc/internal/server/storage"
	"github.com/iudanet/usersvc/internal/server/token"
	"github.com/iudanet/usersvc/pkg/api"
)

// Messages returned by the auth gate. Every authentication failure uses
// the same text: expired, revoked, malformed and inactive must be
// indistinguishable to the caller.
const (
	msgInvalidToken = "Provide a valid auth token."
	msgNotAdmin     = "You do not have permission to do that."
)

// Authenticate resolves the request's bearer token to a user record and
// stores it in the context. The chain per request is: extract token,
// verify signature and expiry, check the revocation ledger, load the user,
// reject inactive accounts. Nothing is retained across requests.
func Authenticate(
	logger *slog.Logger,
	codec *token.Codec,
	users storage.UserStorage,
	ledger storage.TokenLedger,
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			tokenString := handlers.BearerToken(r)
			if tokenString == "" {
				logger.WarnContext(ctx, "missing or malformed Authorization header")
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			claims, err := codec.Verify(tokenString, time.Now())
			if err != nil {
				logger.WarnContext(ctx, "token verification failed", slog.Any("error", err))
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			revoked, err := ledger.IsRevoked(ctx, claims.JTI)
			if err != nil {
				logger.ErrorContext(ctx, "failed to check revocation ledger", slog.Any("error", err))
				writeFail(w, http.StatusInternalServerError, "Something went wrong. Please contact us.")
				return
			}
			if revoked {
				logger.WarnContext(ctx, "revoked token presented", slog.Int64("user_id", claims.UserID))
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			user, err := users.GetUserByID(ctx, claims.UserID)
			if err != nil {
				logger.WarnContext(ctx, "token subject not found", slog.Int64("user_id", claims.UserID))
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			// An account deactivated after issuance invalidates every
			// outstanding token for it.
			if !user.Active {
				logger.WarnContext(ctx, "inactive account", slog.Int64("user_id", user.ID))
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(handlers.WithUser(ctx, user)))
		})
	}
}

// RequireAdmin rejects authenticated non-admin users.
// Must be wrapped inside Authenticate.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := handlers.GetUser(r.Context())
			if !ok {
				writeFail(w, http.StatusUnauthorized, msgInvalidToken)
				return
			}

			if !user.Admin {
				logger.WarnContext(r.Context(), "admin endpoint denied", slog.Int64("user_id", user.ID))
				writeFail(w, http.StatusForbidden, msgNotAdmin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// writeFail sends the uniform fail envelope.
func writeFail(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.Response{
		Status:  api.StatusFail,
		Message: message,
	})
}
