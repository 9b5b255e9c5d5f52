package usecase

import (
	"context"

	tripdomain "explorehub-backend/internal/trip/domain"
	tripdto "explorehub-backend/internal/trip/dto"
)

// TripUsecase defines the interface for saved-trip business logic
type TripUsecase interface {
	// SaveFavoriteFlights validates and stores every input for userID,
	// returning the stored flights in input order
	SaveFavoriteFlights(ctx context.Context, userID string, inputs []tripdto.FavoriteFlightInput) ([]*tripdomain.FavoriteFlight, error)

	// ListFavoriteFlights returns the user's saved flights, oldest first
	ListFavoriteFlights(ctx context.Context, userID string) ([]*tripdomain.FavoriteFlight, error)

	// DeleteFavoriteFlight removes one of the user's saved flights
	DeleteFavoriteFlight(ctx context.Context, userID, id string) error
}
