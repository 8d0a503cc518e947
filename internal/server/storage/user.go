package storage

import (
	"context"

	"github.com/iudanet/usersvc/internal/models"
)

// UserStorage defines the interface for user record persistence.
// Username and email uniqueness is enforced by the storage itself
// (unique constraints), not by a check-then-insert in the caller.
type UserStorage interface {
	// CreateUser inserts a new user and fills in the assigned ID.
	// Returns ErrDuplicateUsername or ErrDuplicateEmail on conflicts.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	// Returns ErrUserNotFound if no such user exists.
	GetUserByID(ctx context.Context, userID int64) (*models.User, error)

	// ListUsers returns all users ordered by ascending ID.
	ListUsers(ctx context.Context) ([]*models.User, error)
}
