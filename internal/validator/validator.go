package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator bundles struct validation with the domain business rules.
type Validator struct {
	validate *validator.Validate
	business *BusinessValidator
}

func New() *Validator {
	v := validator.New()
	return &Validator{
		validate: v,
		business: NewBusinessValidator(v),
	}
}

func (v *Validator) GetBusinessValidator() *BusinessValidator {
	return v.business
}

// Struct runs plain tag validation on any request struct.
func (v *Validator) Struct(s interface{}) ValidationErrors {
	return toValidationErrors(v.validate.Struct(s))
}
