package internal

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorType string

const (
	ErrorTypeValidation   ErrorType = "VALIDATION_ERROR"
	ErrorTypeNotFound     ErrorType = "NOT_FOUND"
	ErrorTypeUnauthorized ErrorType = "UNAUTHORIZED"
	ErrorTypeForbidden    ErrorType = "FORBIDDEN"
	ErrorTypeConflict     ErrorType = "CONFLICT"
	ErrorTypeInternal     ErrorType = "INTERNAL_ERROR"
)

type ErrorCode string

const (
	ErrCodeValidationFailed  ErrorCode = "VALIDATION_FAILED"
	ErrCodeInvalidDate       ErrorCode = "INVALID_DATE"
	ErrCodeInvalidTime       ErrorCode = "INVALID_TIME"
	ErrCodeInvalidValor      ErrorCode = "INVALID_VALOR"
	ErrCodeInvalidDocument   ErrorCode = "INVALID_DOCUMENT"
	ErrCodeInvalidRole       ErrorCode = "INVALID_ROLE"
	ErrCodeWeakPassword      ErrorCode = "WEAK_PASSWORD"
	ErrCodeInvalidStatus     ErrorCode = "INVALID_STATUS"
	ErrCodeInvalidTransition ErrorCode = "INVALID_STATUS_TRANSITION"
	ErrCodeInvalidReportKind ErrorCode = "INVALID_REPORT_KIND"
	ErrCodeNoReportData      ErrorCode = "NO_REPORT_DATA"

	ErrCodeUserNotFound     ErrorCode = "USER_NOT_FOUND"
	ErrCodeUserExists       ErrorCode = "USER_ALREADY_EXISTS"
	ErrCodeCompanyNotFound  ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeEmployeeNotFound ErrorCode = "EMPLOYEE_NOT_FOUND"
	ErrCodeExtraNotFound    ErrorCode = "EXTRA_NOT_FOUND"
	ErrCodeReceiptNotFound  ErrorCode = "RECEIPT_NOT_FOUND"
	ErrCodeReceiptNotReady  ErrorCode = "RECEIPT_NOT_AVAILABLE"
	ErrCodeDuplicate        ErrorCode = "DUPLICATE_RECORD"

	ErrCodeUnauthorizedAccess   ErrorCode = "UNAUTHORIZED_ACCESS"
	ErrCodeCompanyNotAuthorized ErrorCode = "COMPANY_NOT_AUTHORIZED"
	ErrCodeInvalidCredentials   ErrorCode = "INVALID_CREDENTIALS"
	ErrCodeInvalidToken         ErrorCode = "INVALID_TOKEN"
	ErrCodeTokenExpired         ErrorCode = "TOKEN_EXPIRED"
)

type AppError struct {
	Type       ErrorType   `json:"type"`
	Code       ErrorCode   `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	StatusCode int         `json:"-"`
	Cause      error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			return validationErrors.Errors[0].Message
		}
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// GetDetailedMessage joins every field message of a validation error.
func (e *AppError) GetDetailedMessage() string {
	if e.Details != nil {
		if validationErrors, ok := e.Details.(ValidationErrors); ok && len(validationErrors.Errors) > 0 {
			messages := make([]string, len(validationErrors.Errors))
			for i, err := range validationErrors.Errors {
				messages[i] = err.Message
			}
			return strings.Join(messages, "; ")
		}
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on code so sentinels survive WithCause copies.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Type == t.Type
}

// WithCause returns a copy so package-level sentinels are never mutated.
func (e *AppError) WithCause(cause error) *AppError {
	cp := *e
	cp.Cause = cause
	return &cp
}

func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func NewValidationError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NewValidationFieldError(field, message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeValidation,
		Code:       ErrCodeValidationFailed,
		Message:    "Validation failed",
		StatusCode: http.StatusBadRequest,
		Details: ValidationErrors{
			Errors: []ValidationError{
				{Field: field, Message: message, Code: string(code)},
			},
		},
	}
}

func NewNotFoundError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeNotFound,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusNotFound,
	}
}

func NewUnauthorizedError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeUnauthorized,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func NewForbiddenError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeForbidden,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

func NewInternalError(message string, cause error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Code:       "INTERNAL_ERROR",
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		Cause:      cause,
	}
}

func NewConflictError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

// NewDuplicateError is a conflict reported as 400, which is what clients of
// the user endpoints expect for an existing email.
func NewDuplicateError(message string, code ErrorCode) *AppError {
	return &AppError{
		Type:       ErrorTypeConflict,
		Code:       code,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

var (
	ErrUserNotFound     = NewNotFoundError("User not found", ErrCodeUserNotFound)
	ErrUserExists       = NewDuplicateError("User already exists", ErrCodeUserExists)
	ErrCompanyNotFound  = NewNotFoundError("Company not found", ErrCodeCompanyNotFound)
	ErrEmployeeNotFound = NewNotFoundError("Employee not found", ErrCodeEmployeeNotFound)
	ErrExtraNotFound    = NewNotFoundError("Extra not found", ErrCodeExtraNotFound)
	ErrReceiptNotFound  = NewNotFoundError("Receipt not found", ErrCodeReceiptNotFound)
	ErrReceiptNotReady  = NewValidationError("receipt not available for status", ErrCodeReceiptNotReady)
	ErrDuplicate        = NewConflictError("record already exists", ErrCodeDuplicate)

	ErrInvalidTransition    = NewValidationError("invalid status transition", ErrCodeInvalidTransition)
	ErrInvalidReportKind    = NewValidationError("kind must be summary or detailed", ErrCodeInvalidReportKind)
	ErrNoReportData         = NewValidationError("no extras match the filters", ErrCodeNoReportData)
	ErrUnauthorizedAccess   = NewForbiddenError("access denied", ErrCodeUnauthorizedAccess)
	ErrCompanyNotAuthorized = NewForbiddenError("company not authorized for user", ErrCodeCompanyNotAuthorized)

	ErrInvalidCredentials = NewUnauthorizedError("Invalid email or password", ErrCodeInvalidCredentials)
	ErrInvalidToken       = NewUnauthorizedError("Invalid token", ErrCodeInvalidToken)
	ErrTokenExpired       = NewUnauthorizedError("Token has expired", ErrCodeTokenExpired)
)

func IsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Code    ErrorCode   `json:"code,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) ToHTTPResponse() (int, ErrorResponse) {
	return e.StatusCode, ErrorResponse{
		Error:   e.GetDetailedMessage(),
		Code:    e.Code,
		Details: e.Details,
	}
}

func (e *AppError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    ErrorType   `json:"type"`
		Code    ErrorCode   `json:"code"`
		Message string      `json:"message"`
		Details interface{} `json:"details,omitempty"`
	}{
		Type:    e.Type,
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
	})
}
