package validator

import (
	"github.com/go-playground/validator/v10"
)

// A single validator instance is shared by every caller; the struct tag
// cache it builds makes repeated validations cheap.
var validate = validator.New(validator.WithRequiredStructEnabled())

// Get returns the shared validator instance
func Get() *validator.Validate {
	return validate
}
