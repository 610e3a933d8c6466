package validation

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"library-service/internals/apperrors"
)

// Validator runs one explicit validation pass per input type and reports
// every failed rule at once, so a caller fixing a request does not have to
// resubmit to discover the next problem.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	// json tag names in violation output, not Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("userpassword", validatePassword); err != nil {
		panic(err)
	}
	return &Validator{validate: v}
}

// Struct validates the input and returns a PolicyViolation error carrying the
// complete violation list, or nil when every rule passes.
func (v *Validator) Struct(input interface{}) error {
	err := v.validate.Struct(input)
	if err == nil {
		return nil
	}
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperrors.Internal("validation failed", err)
	}
	violations := make([]apperrors.Violation, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		violations = append(violations, apperrors.Violation{
			Field:   fieldErr.Field(),
			Rule:    fieldErr.Tag(),
			Message: messageFor(fieldErr),
		})
	}
	return apperrors.PolicyViolations(violations)
}

// validatePassword enforces the account password policy: 8 to 72 characters,
// at least one letter and one digit, no control characters. Length bounds
// track bcrypt's 72-byte input limit.
func validatePassword(fl validator.FieldLevel) bool {
	password := fl.Field().String()
	if len(password) < 8 || len(password) > 72 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsControl(r):
			return false
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func messageFor(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fieldErr.Field())
	case "userpassword":
		return "password must be 8-72 characters with at least one letter and one digit and no control characters"
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fieldErr.Field(), fieldErr.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s failed rule %s", fieldErr.Field(), fieldErr.Tag())
	}
}
