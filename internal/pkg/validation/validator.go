// Package validation checks request records against their declared schemas
// using go-playground/validator struct tags.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/publicsuffix"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// Validator wraps go-playground/validator and reports violations as a
// *domain.ValidationError. It also satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator that names fields by their JSON key.
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notempty", notEmpty)
	_ = v.RegisterValidation("emailtld", emailTLD)
	return &Validator{v: v}
}

// notEmpty fails on a present but empty string. A missing field is left to
// the required rule.
func notEmpty(fl validator.FieldLevel) bool {
	return fl.Field().Len() > 0
}

// emailTLD accepts an address only when its top-level domain is delegated
// by IANA, as listed in the ICANN section of the public suffix list.
func emailTLD(fl validator.FieldLevel) bool {
	_, host, ok := strings.Cut(fl.Field().String(), "@")
	if !ok {
		return false
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	i := strings.LastIndexByte(host, '.')
	if i < 0 {
		return false
	}
	tld := host[i+1:]
	if tld == "" {
		return false
	}
	suffix, icann := publicsuffix.PublicSuffix(tld)
	return icann && suffix == tld
}

// Validate returns nil when i satisfies its schema. Every violated field is
// recorded; Error() on the result yields the first one.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}

	out := &domain.ValidationError{Fields: make([]domain.FieldError, 0, len(ve))}
	for _, fe := range ve {
		out.Fields = append(out.Fields, domain.FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: fieldError(fe),
		})
	}
	return out
}

func fieldError(fe validator.FieldError) string {
	field := fmt.Sprintf("%q", fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "notempty":
		return field + " is not allowed to be empty"
	case "email", "emailtld":
		return field + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s length must be at least %s characters long", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s length must be less than or equal to %s characters long", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
