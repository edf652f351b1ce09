package http

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

func validateRequest(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
