package dto

import (
	"errors"
	"strings"

	authdomain "explorehub-backend/internal/auth/domain"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest carries "validate" tags rather than "binding" so gin only
// decodes it. Rules run after Normalize.
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,min=1"`
	Lastname  string `json:"lastname" validate:"required,min=1"`
	Username  string `json:"username" validate:"required,min=1,excludes=@"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required,min=10"`
	Country   string `json:"country" validate:"required"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest mirrors the OAuth2 password grant form. Username holds either
// an email or a username.
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

type LoginResponse struct {
	User        *authdomain.UserView `json:"user"`
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
}

var validate = validator.New()

// Normalize trims the free-text fields and canonicalises the email. The
// password is left untouched.
func (r *RegisterRequest) Normalize() {
	r.Firstname = strings.TrimSpace(r.Firstname)
	r.Lastname = strings.TrimSpace(r.Lastname)
	r.Username = strings.TrimSpace(r.Username)
	r.Email = authdomain.NormalizeEmail(r.Email)
	r.Mobile = strings.TrimSpace(r.Mobile)
	r.Country = strings.TrimSpace(r.Country)
}

// Validate checks the request and returns a *domain.ValidationError on failure.
func (r *RegisterRequest) Validate() error {
	return ValidationDetails(validate.Struct(r))
}

// ValidationDetails converts binding/validator failures into a
// *domain.ValidationError keyed by JSON field name. nil stays nil.
func ValidationDetails(err error) error {
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return authdomain.NewValidationError(map[string]string{"body": "malformed request body"})
	}

	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[strings.ToLower(fe.Field())] = Describe(fe)
	}
	return authdomain.NewValidationError(fields)
}

// Describe renders a single validator failure as a short readable phrase.
func Describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + " characters"
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "excludes":
		return "must not contain " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	}
	return "is invalid"
}
