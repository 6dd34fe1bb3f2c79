// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/allisson/cardvault/internal/validation"
)

// OpenDisclosureRequest contains the parameters for opening a disclosure.
type OpenDisclosureRequest struct {
	CardID string `json:"card_id"`
}

// Validate checks if the open disclosure request is valid.
func (r *OpenDisclosureRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.CardID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			customValidation.CardID,
		),
	)
}
