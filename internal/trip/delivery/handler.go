package delivery

import (
	"errors"
	"net/http"

	authdelivery "explorehub-backend/internal/auth/delivery"
	authdto "explorehub-backend/internal/auth/dto"
	tripdomain "explorehub-backend/internal/trip/domain"
	tripdto "explorehub-backend/internal/trip/dto"
	"explorehub-backend/internal/trip/usecase"

	"github.com/gin-gonic/gin"
)

// TripHandler handles favourite-flight HTTP requests
type TripHandler struct {
	tripUsecase usecase.TripUsecase
}

// NewTripHandler creates a new TripHandler
func NewTripHandler(tripUsecase usecase.TripUsecase) *TripHandler {
	return &TripHandler{
		tripUsecase: tripUsecase,
	}
}

// AddFavoriteFlights saves a list of flights for the authenticated user
// POST /user/add_favorite_flight
func (h *TripHandler) AddFavoriteFlights(c *gin.Context) {
	userID := c.GetString(authdelivery.ContextUserID)

	var inputs []tripdto.FavoriteFlightInput
	if err := c.ShouldBindJSON(&inputs); err != nil {
		authdelivery.RespondError(c, authdto.ValidationDetails(err))
		return
	}

	flights, err := h.tripUsecase.SaveFavoriteFlights(c.Request.Context(), userID, inputs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flights)
}

// GetFavoriteFlights lists the authenticated user's saved flights
// GET /user/favorite_flights
func (h *TripHandler) GetFavoriteFlights(c *gin.Context) {
	userID := c.GetString(authdelivery.ContextUserID)

	flights, err := h.tripUsecase.ListFavoriteFlights(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, flights)
}

// DeleteFavoriteFlight removes a saved flight
// DELETE /user/favorite_flights/:id
func (h *TripHandler) DeleteFavoriteFlight(c *gin.Context) {
	userID := c.GetString(authdelivery.ContextUserID)

	if err := h.tripUsecase.DeleteFavoriteFlight(c.Request.Context(), userID, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favorite flight deleted successfully"})
}

func respondError(c *gin.Context, err error) {
	if errors.Is(err, tripdomain.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": tripdomain.ErrNotFound.Error()})
		return
	}
	authdelivery.RespondError(c, err)
}
