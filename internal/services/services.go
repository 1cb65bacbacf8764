// Package services holds the typed entity services. Each is a thin caller
// of the request pipeline: path and query construction plus client-side
// payload validation, nothing more.
package services

import (
	"github.com/go-playground/validator/v10"

	"github.com/datahuba/kyc-client/internal/api"
)

// One validator instance for the package; validator caches struct metadata.
var validate = validator.New(validator.WithRequiredStructEnabled())

func validateStruct(v any) error {
	if err := validate.Struct(v); err != nil {
		return &api.AppError{
			Message: "invalid request payload",
			Kind:    api.KindValidation,
			Cause:   err,
		}
	}
	return nil
}
