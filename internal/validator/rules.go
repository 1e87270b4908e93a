package validator

import (
	"log"
	"strings"

	"poolservice_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers the domain validation tags.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)

	// 'weekday': Monday..Sunday or Mon..Sun, case-insensitive
	mustRegister("weekday", validateWeekday)

	// 'workperiod': public form work periods
	mustRegister("workperiod", validateWorkPeriod)

	mustRegister("digits", validateDigits)
	mustRegister("yesno", validateYesNo)
}

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	return models.UserRole(value).Valid()
}

func validateWeekday(fl validator.FieldLevel) bool {
	_, ok := models.ParseWeekday(fl.Field().String())
	return ok
}

func validateWorkPeriod(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	for _, p := range models.WorkPeriods {
		if strings.EqualFold(p, value) {
			return true
		}
	}
	return false
}

func validateDigits(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func validateYesNo(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return value == "" || value == "yes" || value == "no"
}

func workPeriods() []string {
	return models.WorkPeriods
}
