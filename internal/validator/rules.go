package validator

import (
	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/go-playground/validator/v10"
)

func registerFn(tag string, fn func(fl validator.FieldLevel) bool) func(v *validator.Validate) {
	return func(v *validator.Validate) {
		_ = v.RegisterValidation(tag, fn)
	}
}

func NewJobApplicationValidationRules() []ValidationRule {
	return []ValidationRule{
		{
			Rule: registerFn("not_blank", notBlankValidator),
		},
		{
			Rule: registerFn("human_response", humanResponseValidator),
		},
		{
			Rule: func(v *validator.Validate) {
				v.RegisterStructValidation(responseDateValidator, model.JobApplication{})
			},
		},
	}
}
