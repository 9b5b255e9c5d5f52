package delivery

import (
	"errors"
	"net/http"

	authdomain "explorehub-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

// RespondError writes the JSON error body and status for err. Errors outside
// the domain taxonomy become a bare 500.
func RespondError(c *gin.Context, err error) {
	var ve *authdomain.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": authdomain.ErrValidation.Error(), "fields": ve.Fields})
	case errors.Is(err, authdomain.ErrDuplicateEmail),
		errors.Is(err, authdomain.ErrDuplicateUsername),
		errors.Is(err, authdomain.ErrAmbiguousIdentifier):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, authdomain.ErrUnauthorized):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authdomain.ErrUnauthorized.Error()})
	case errors.Is(err, authdomain.ErrUnauthenticated):
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"error": authdomain.ErrUnauthenticated.Error()})
	case errors.Is(err, authdomain.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": authdomain.ErrForbidden.Error()})
	case errors.Is(err, authdomain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": authdomain.ErrNotFound.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
