package storage

import (
	"context"
	"time"

	"github.com/iudanet/usersvc/internal/models"
)

// TokenLedger defines the interface for the token revocation ledger.
// A token revoked here fails authentication even while it is still
// structurally valid and unexpired.
type TokenLedger interface {
	// Revoke records a token as invalidated. Revoking the same jti
	// twice is not an error.
	Revoke(ctx context.Context, token *models.RevokedToken) error

	// IsRevoked reports whether the token with this jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)

	// DeleteExpired removes entries whose underlying token has already
	// expired and returns the number of deleted entries. Correctness does
	// not depend on when this runs; it only bounds ledger growth.
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
