package validation

import (
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"
	"unicode"

	errors "github.com/frahmantamala/sistema-extras/internal"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MinPasswordLength = 8
	MaxValor          = 99999999.99
)

type ValidatorFunc func(interface{}) *errors.AppError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []*FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{fields: make([]*FieldValidator, 0)}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return fv
}

func (fv *FieldValidator) fail(message string, code errors.ErrorCode) *errors.AppError {
	return errors.NewValidationFieldError(fv.FieldName, message, code)
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		case []string:
			if len(v) == 0 {
				return fv.fail(fmt.Sprintf("%s is required", fv.FieldName), errors.ErrCodeValidationFailed)
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := stringValue(value); ok && len([]rune(v)) > max {
			return fv.fail(fmt.Sprintf("%s must not exceed %d characters", fv.FieldName, max), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Email() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := stringValue(value)
		if !ok || v == "" {
			return nil
		}
		if _, err := mail.ParseAddress(v); err != nil {
			return fv.fail(fmt.Sprintf("%s must be a valid email", fv.FieldName), errors.ErrCodeValidationFailed)
		}
		return nil
	})
	return fv
}

// Date accepts YYYY-MM-DD. Empty values pass; combine with Required.
func (fv *FieldValidator) Date() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := stringValue(value)
		if !ok || v == "" {
			return nil
		}
		if _, err := time.Parse(DateLayout, v); err != nil {
			return fv.fail(fmt.Sprintf("%s must be a date in YYYY-MM-DD format", fv.FieldName), errors.ErrCodeInvalidDate)
		}
		return nil
	})
	return fv
}

// Clock accepts HH:MM.
func (fv *FieldValidator) Clock() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := stringValue(value)
		if !ok || v == "" {
			return nil
		}
		if _, err := time.Parse(TimeLayout, v); err != nil {
			return fv.fail(fmt.Sprintf("%s must be a time in HH:MM format", fv.FieldName), errors.ErrCodeInvalidTime)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) Positive() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		if v, ok := value.(float64); ok {
			if math.IsNaN(v) || v <= 0 {
				return fv.fail(fmt.Sprintf("%s must be positive", fv.FieldName), errors.ErrCodeInvalidValor)
			}
			if v > MaxValor {
				return fv.fail(fmt.Sprintf("%s must not exceed %.2f", fv.FieldName, MaxValor), errors.ErrCodeInvalidValor)
			}
		}
		return nil
	})
	return fv
}

// Digits checks a document number holds exactly n digits that are not all
// the same. Empty values pass.
func (fv *FieldValidator) Digits(n int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := stringValue(value)
		if !ok || v == "" {
			return nil
		}
		if !ValidDocument(v, n) {
			return fv.fail(fmt.Sprintf("%s must have %d digits", fv.FieldName, n), errors.ErrCodeInvalidDocument)
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.AppError {
		v, ok := stringValue(value)
		if !ok {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return fv.fail(fmt.Sprintf("%s must be one of %s", fv.FieldName, strings.Join(allowed, ", ")), errors.ErrCodeValidationFailed)
	})
	return fv
}

func (fv *FieldValidator) Custom(validator func(interface{}) *errors.AppError) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every field validator and collects all failures into one
// validation error, or returns nil.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			err := validator(field.Value)
			if err == nil {
				continue
			}
			if details, ok := err.Details.(errors.ValidationErrors); ok {
				validationErrors = append(validationErrors, details.Errors...)
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: err.Message,
				Code:    string(err.Code),
			})
		}
	}

	if len(validationErrors) > 0 {
		return errors.NewValidationError("Validation failed", errors.ErrCodeValidationFailed).
			WithDetails(errors.ValidationErrors{Errors: validationErrors})
	}

	return nil
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

// OnlyDigits strips every non-digit rune.
func OnlyDigits(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			out = append(out, r)
		}
	}
	return string(out)
}

// ValidDocument reports whether s (already normalized) has n digits that
// are not all equal, which rules out placeholders like 00000000000.
func ValidDocument(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for i := 1; i < n; i++ {
		if s[i] != s[0] {
			return true
		}
	}
	return false
}

// RoundValor rounds a monetary value to centavos.
func RoundValor(v float64) float64 {
	return math.Round(v*100) / 100
}

// ValidatePassword enforces the account password policy.
func ValidatePassword(field, password string) *errors.AppError {
	if len(password) < MinPasswordLength {
		return errors.NewValidationFieldError(field,
			fmt.Sprintf("%s must be at least %d characters", field, MinPasswordLength), errors.ErrCodeWeakPassword)
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.NewValidationFieldError(field,
			fmt.Sprintf("%s must contain letters and numbers", field), errors.ErrCodeWeakPassword)
	}
	return nil
}

// Shift adds the date, clock time and value checks of one extra shift.
// prefix namespaces the field names of batch items.
func (v *ValidationBuilder) Shift(prefix, dataEvento, horaEntrada, horaSaida string, valor float64) *ValidationBuilder {
	v.Field(prefix+"data_evento", dataEvento).Required().Date()
	v.Field(prefix+"hora_entrada", horaEntrada).Required().Clock()
	v.Field(prefix+"hora_saida", horaSaida).Required().Clock()
	v.Field(prefix+"valor", RoundValor(valor)).Positive()
	return v
}
