package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError - ошибки по полям: json-имя поля -> сообщение
type ValidationError struct {
	Errors map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Errors[field]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Validator - обертка над go-playground/validator с правилами предметной области
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В ответах используем имена полей из json-тегов DTO
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate возвращает *ValidationError, если структура не прошла проверку
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	fieldErrors := make(map[string]string, len(validationErrors))
	for _, fe := range validationErrors {
		fieldErrors[fe.Field()] = v.getErrorMessage(fe)
	}
	return &ValidationError{Errors: fieldErrors}
}

// Var проверяет одиночное значение по тегу
func (v *Validator) Var(field interface{}, tag string) error {
	return v.validate.Var(field, tag)
}

// getErrorMessage - сообщение для клиента по тегу правила
func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Must be a valid email address"
	case "min":
		// Для строк, срезов, карт
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s items/characters long", fe.Param())
		}
		// Для чисел
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		// Аналогично min
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("Must be exactly %s items/characters long", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.Replace(fe.Param(), " ", ", ", -1))
	case "url":
		return "Must be a valid URL"
	case "iso-country":
		return "Must be a 2-letter ISO country code (e.g. KR)"
	case "date-only":
		return "Must be a date in yyyy-MM-dd format"
	case "user-type":
		return "Must be one of: APPLICANT, BUSINESS"
	case "social-provider":
		return "Must be one of: GOOGLE, KAKAO, NAVER, FACEBOOK"
	case "audition-category":
		return "Must be one of: SINGER, DANCER, ACTOR, MODEL, INSTRUMENT"
	case "audition-status":
		return "Unknown audition status"
	case "application-status":
		return "Must be one of: WRITING, INCOMPLETE_PAYMENT, APPLICATION_COMPLETED, CANCEL"
	case "screening-result":
		return "Must be one of: PASS, FAIL, PENDING"
	case "video-status":
		return "Must be one of: PUBLISHED, PRIVATE, DELETED"
	default:
		// Для кастомных или необработанных тегов
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
