package serverutils

import (
	"fmt"

	"knowledgegpt-be/internal/pkg/apperr"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks a DTO's validate tags and converts failures into a
// caller-input error.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			first := errs[0]
			return apperr.New(apperr.KindBadRequest,
				fmt.Sprintf("field %q failed validation (%s)", first.Field(), first.Tag()))
		}
		return apperr.Wrap(apperr.KindBadRequest, "invalid request", err)
	}
	return nil
}
