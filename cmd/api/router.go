package api

import (
	"net/http"

	"explorehub-backend/internal/auth/delivery"
	authUsecase "explorehub-backend/internal/auth/usecase"
	tripDelivery "explorehub-backend/internal/trip/delivery"
	"explorehub-backend/pkg/metrics"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase, authHandler *delivery.AuthHandler, tripHandler *tripDelivery.TripHandler, m *metrics.Metrics) {
	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	user := r.Group("/user")
	{
		user.POST("/register", authHandler.Register)
		user.POST("/login", authHandler.Login)

		protected := user.Group("")
		protected.Use(delivery.AuthMiddleware(authUsecase))
		{
			protected.GET("/me", authHandler.Me)
			protected.POST("/add_favorite_flight", tripHandler.AddFavoriteFlights)
			protected.GET("/favorite_flights", tripHandler.GetFavoriteFlights)
			protected.DELETE("/favorite_flights/:id", tripHandler.DeleteFavoriteFlight)
			protected.GET("/:id", authHandler.GetUser)
		}
	}
}
