package validation

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var (
	joNumberRegex = regexp.MustCompile(`^JO-\d{2}-\d{2}-\d{3}$`)
	dateOnlyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func registerRules(v *validator.Validate) error {
	if err := v.RegisterValidation("jo_number", isJoNumber); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_only", isDateOnly); err != nil {
		return err
	}
	return nil
}

func isJoNumber(fl validator.FieldLevel) bool {
	return joNumberRegex.MatchString(fl.Field().String())
}

func isDateOnly(fl validator.FieldLevel) bool {
	return dateOnlyRegex.MatchString(fl.Field().String())
}
