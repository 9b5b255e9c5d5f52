package repository

import (
	"context"

	authdomain "explorehub-backend/internal/auth/domain"
)

// UserRepository defines persistence for user records. Lookups that match
// nothing return authdomain.ErrNotFound; inserts violating the unique email
// or username index return authdomain.ErrDuplicateEmail or
// authdomain.ErrDuplicateUsername.
type UserRepository interface {
	// Create persists user and assigns its ID.
	Create(ctx context.Context, user *authdomain.User) error

	FindByID(ctx context.Context, id string) (*authdomain.User, error)
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	FindByUsername(ctx context.Context, username string) (*authdomain.User, error)

	// EnsureIndexes creates the unique indexes on email and username.
	EnsureIndexes(ctx context.Context) error
}
