package validator

import (
	"strings"

	"github.com/atstracker/ats-tracking/internal/store/model"
	"github.com/go-playground/validator/v10"
	"github.com/thoas/go-funk"
)

const (
	responseDateWithoutResponseTag = "response_date_without_response"
	responseWithoutDateTag         = "response_without_date"
)

// notBlankValidator accepts strings with at least one non-space character.
// A nil *string passes, the field is optional.
func notBlankValidator(fl validator.FieldLevel) bool {
	switch val := fl.Field().Interface().(type) {
	case string:
		return strings.TrimSpace(val) != ""
	case *string:
		return val == nil || strings.TrimSpace(*val) != ""
	default:
		return false
	}
}

func humanResponseValidator(fl validator.FieldLevel) bool {
	val, ok := fl.Field().Interface().(model.HumanResponse)
	if !ok {
		return false
	}
	return funk.Contains(model.HumanResponses, val)
}

// responseDateValidator requires a response date exactly when there is a response.
func responseDateValidator(sl validator.StructLevel) {
	app, ok := sl.Current().Interface().(model.JobApplication)
	if !ok {
		return
	}

	switch {
	case app.HumanResponse == model.HumanResponseNone && app.HumanResponseDate != nil:
		sl.ReportError(app.HumanResponseDate, "humanResponseDate", "HumanResponseDate", responseDateWithoutResponseTag, "")
	case app.HumanResponse != model.HumanResponseNone && app.HumanResponseDate == nil:
		sl.ReportError(app.HumanResponseDate, "humanResponseDate", "HumanResponseDate", responseWithoutDateTag, "")
	}
}
