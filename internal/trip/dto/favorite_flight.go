package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	authdomain "explorehub-backend/internal/auth/domain"
	authdto "explorehub-backend/internal/auth/dto"
	tripdomain "explorehub-backend/internal/trip/domain"

	"github.com/go-playground/validator/v10"
)

// FavoriteFlightInput is one element of the add_favorite_flight body.
// TotalPrice is a pointer so an absent price is told apart from zero.
type FavoriteFlightInput struct {
	Outbound     tripdomain.FlightDetail  `json:"outbound" validate:"required"`
	ReturnFlight *tripdomain.FlightDetail `json:"returnFlight,omitempty"`
	TotalPrice   *float64                 `json:"total_price" validate:"required,gte=0"`
}

var validate = func() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}()

// ValidateInputs checks every element and reports failures keyed by
// "[index].path", e.g. "[0].outbound.airline".
func ValidateInputs(inputs []FavoriteFlightInput) error {
	if len(inputs) == 0 {
		return authdomain.NewValidationError(map[string]string{"body": "at least one favorite flight is required"})
	}

	fields := make(map[string]string)
	for i := range inputs {
		err := validate.Struct(&inputs[i])
		if err == nil {
			continue
		}
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		for _, fe := range ve {
			_, path, _ := strings.Cut(fe.Namespace(), ".")
			fields[fmt.Sprintf("[%d].%s", i, path)] = authdto.Describe(fe)
		}
	}

	if len(fields) > 0 {
		return authdomain.NewValidationError(fields)
	}
	return nil
}
