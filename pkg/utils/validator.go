package utils

import (
	"net/http"

	"github.com/go-playground/validator/v10"

	apperrors "gear-system/pkg/errors"
)

// EchoValidator adapts go-playground/validator to echo.Validator.
type EchoValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *EchoValidator {
	return &EchoValidator{validator: v}
}

func (v *EchoValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "validation failed", err)
	}
	return nil
}
