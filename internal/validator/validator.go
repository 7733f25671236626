package validator

import (
	"fmt"

	"github.com/cinegrid/screening-service/internal/domain"
	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired  = "is required"
	ErrMin       = "must be at least %s"
	ErrMax       = "must be at most %s"
	ErrOneOf     = "must be one of: %s"
	ErrMaxLength = "must be at most %s characters long"
	ErrQuality   = "must be one of 2D, 3D, IMAX, 4DX, Dolby"
	ErrInvalid   = "is invalid"
)

func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterValidation("quality", validateQuality)

	return validate
}

func validateQuality(fl validator.FieldLevel) bool {
	return domain.Quality(fl.Field().String()).Valid()
}

// ValidationMessage converts validator errors into readable messages.
func ValidationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min", "gte":
		return fmt.Sprintf(ErrMin, err.Param())
	case "max", "lte":
		return fmt.Sprintf(ErrMax, err.Param())
	case "oneof":
		return fmt.Sprintf(ErrOneOf, err.Param())
	case "quality":
		return ErrQuality
	default:
		return ErrInvalid
	}
}
