package validator

import (
	"log"
	"regexp"
	"strings"
	"time"

	"audition_backend/internal/models"

	"github.com/go-playground/validator/v10"
)

// DateLayout - формат дат в API (yyyy-MM-dd)
const DateLayout = "2006-01-02"

var countryCodePattern = regexp.MustCompile(`^[A-Z]{2}$`)

// registerCustomRules регистрирует кастомные правила валидации
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("iso-country", validateCountry)
	mustRegister("date-only", validateDateOnly)

	mustRegister("user-type", enumRule(func(s string) bool { return models.UserType(s).Valid() }))
	mustRegister("social-provider", enumRule(func(s string) bool {
		p := models.AuthProvider(strings.ToUpper(s))
		return p.Valid() && p != models.ProviderLocal
	}))
	mustRegister("audition-category", enumRule(func(s string) bool { return models.AuditionCategory(s).Valid() }))
	mustRegister("audition-status", enumRule(func(s string) bool { return models.AuditionStatus(s).Valid() }))
	mustRegister("application-status", enumRule(func(s string) bool { return models.ApplicationStatus(s).Valid() }))
	mustRegister("screening-result", enumRule(func(s string) bool { return models.ScreeningResult(s).Valid() }))
	mustRegister("video-status", enumRule(func(s string) bool { return models.VideoStatus(s).Valid() }))
}

// enumRule - пустые значения пропускаем, для них есть 'required'
func enumRule(valid func(string) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		value := fl.Field().String()
		if value == "" {
			return true
		}
		return valid(value)
	}
}

// IsCountryCode - двухбуквенный код ISO-3166 без учета регистра
func IsCountryCode(value string) bool {
	return countryCodePattern.MatchString(models.NormalizeCountry(value))
}

func validateCountry(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return IsCountryCode(value)
}

func validateDateOnly(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(DateLayout, value)
	return err == nil
}
