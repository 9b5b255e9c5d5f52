package delivery

import (
	"net/http"

	authdomain "explorehub-backend/internal/auth/domain"
	authdto "explorehub-backend/internal/auth/dto"
	"explorehub-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

// Register creates an account
// POST /user/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, authdto.ValidationDetails(err))
		return
	}

	view, err := h.authUsecase.Register(c.Request.Context(), &req)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// Login exchanges credentials for an access token. Accepts a form-encoded or
// JSON body.
// POST /user/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		RespondError(c, authdto.ValidationDetails(err))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), authdomain.ParseLoginIdentifier(req.Username), req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Me returns the authenticated user
// GET /user/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := CurrentUser(c)
	if !ok {
		RespondError(c, authdomain.ErrUnauthenticated)
		return
	}

	c.JSON(http.StatusOK, user.View())
}

// GetUser returns a user by id. Only the caller's own record is visible.
// GET /user/:id
func (h *AuthHandler) GetUser(c *gin.Context) {
	current, ok := CurrentUser(c)
	if !ok {
		RespondError(c, authdomain.ErrUnauthenticated)
		return
	}

	id := c.Param("id")
	if id != current.ID {
		RespondError(c, authdomain.ErrForbidden)
		return
	}

	user, err := h.authUsecase.FindUser(c.Request.Context(), authdomain.Identifier{ID: id})
	if err != nil {
		RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user.View())
}
