// internal/domain/address/form.go
package address

import (
	"github.com/go-playground/validator/v10"
)

// Form is the typed payload for creating or editing an address.
// It is validated locally and never sent to the server while invalid.
type Form struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Phone       string `json:"phone" validate:"required,min=7,max=20"`
	Email       string `json:"email" validate:"required,email"`
	FullAddress string `json:"fullAddress" validate:"required,min=5,max=255"`
	City        string `json:"city" validate:"required"`
	Province    string `json:"province" validate:"required"`
	Country     string `json:"country" validate:"required"`
	PostalCode  string `json:"postalCode" validate:"required,min=3,max=12"`
	Label       Label  `json:"label" validate:"required,oneof=Home Work Office University Friend Other"`
	IsDefault   bool   `json:"isDefault"`
}

// ValidationResult is the discriminated outcome of form validation:
// either OK, or a map of field name to a human-readable message.
type ValidationResult struct {
	OK     bool
	Fields map[string]string
}

var formValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the form field by field
func (f Form) Validate() ValidationResult {
	err := formValidator.Struct(f)
	if err == nil {
		return ValidationResult{OK: true}
	}

	fields := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
	} else {
		fields["form"] = "invalid form payload"
	}
	return ValidationResult{OK: false, Fields: fields}
}

// fieldMessage maps a validation failure to a user-facing message
func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Enter a valid email address"
	case "min":
		return "Too short"
	case "max":
		return "Too long"
	case "oneof":
		return "Choose one of the listed options"
	default:
		return "Invalid value"
	}
}
