package repository

import (
	"context"

	tripdomain "explorehub-backend/internal/trip/domain"
)

// FavoriteFlightRepository defines the interface for favourite flight data access
type FavoriteFlightRepository interface {
	// Create persists flight and assigns its ID and CreatedAt
	Create(ctx context.Context, flight *tripdomain.FavoriteFlight) error

	// FindByUserID returns a user's saved flights, oldest first
	FindByUserID(ctx context.Context, userID string) ([]*tripdomain.FavoriteFlight, error)

	// Delete removes a flight owned by userID. Returns tripdomain.ErrNotFound
	// when nothing matched.
	Delete(ctx context.Context, userID, id string) error

	// EnsureIndexes prepares the collection or table
	EnsureIndexes(ctx context.Context) error
}
