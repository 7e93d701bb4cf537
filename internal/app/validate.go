package app

import (
	"errors"

	"github.com/go-playground/validator/v10"

	"hotel_listings/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateHotel checks the document invariants carried as struct tags on domain.Hotel.
func validateHotel(h domain.Hotel) error {
	err := validate.Struct(h)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) && len(ves) > 0 {
		fe := ves[0]
		return domain.Invalid(fe.Namespace(), "failed %q check", fe.Tag())
	}
	return domain.Invalid("", "%v", err)
}
