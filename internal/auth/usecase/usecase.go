package usecase

import (
	"context"
	"time"

	authdomain "explorehub-backend/internal/auth/domain"
	authdto "explorehub-backend/internal/auth/dto"
	"explorehub-backend/pkg/token"
)

// AuthUsecase defines the interface for auth business logic
type AuthUsecase interface {
	// Register creates a user and returns its sanitized view
	Register(ctx context.Context, req *authdto.RegisterRequest) (*authdomain.UserView, error)

	// FindUser looks a user up by exactly one identifier field
	FindUser(ctx context.Context, id authdomain.Identifier) (*authdomain.User, error)

	// Login checks credentials and issues an access token
	Login(ctx context.Context, id authdomain.Identifier, password string) (*authdto.LoginResponse, error)

	// ValidateToken resolves a bearer token to its user
	ValidateToken(ctx context.Context, accessToken string) (*authdomain.User, error)
}

// TokenService issues and verifies access tokens. *token.Service satisfies it.
type TokenService interface {
	Issue(userID, userEmail string) (string, time.Time, error)
	Verify(tokenString string) (*token.Claims, error)
}
