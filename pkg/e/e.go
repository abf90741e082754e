package e

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Конфигурация
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 400 Bad Request
	ErrStatusBadRequest     = fmt.Errorf("bad request")
	ErrValidation           = fmt.Errorf("invalid data")
	ErrExpectedMultipart    = fmt.Errorf("expected multipart/form-data")
	ErrInvalidJSON          = fmt.Errorf("invalid JSON body")
	ErrInvalidID            = fmt.Errorf("invalid id")
	ErrInvalidPrice         = fmt.Errorf("invalid price")
	ErrPricePrecision       = fmt.Errorf("price must have at most 2 decimal places")
	ErrImageRequired        = fmt.Errorf("image is required")
	ErrFileTooLarge         = fmt.Errorf("file too large")
	ErrUnsupportedMediaType = fmt.Errorf("unsupported media type")
	ErrInvalidProfileURL    = fmt.Errorf("invalid profile url")

	// 404 Not Found
	ErrArticleNotFound = fmt.Errorf("article not found")
	ErrImageNotFound   = fmt.Errorf("image not found")

	// Внешние зависимости
	ErrUpstreamUnavailable = fmt.Errorf("content generation service unavailable, please retry")
	ErrImportExhausted     = fmt.Errorf("automatic import failed")
	ErrImportBlocked       = fmt.Errorf("automatic import is blocked by the marketplace anti-scraping measures, please enter the articles manually")
	ErrImportUnavailable   = fmt.Errorf("marketplace could not be reached, please retry later or enter the articles manually")

	// 500
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// FieldError описывает ошибку валидации одного поля запроса.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError содержит ошибки по полям. errors.Is(err, ErrValidation) == true.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}

// NewFieldError: короткий конструктор для ошибки одного поля.
func NewFieldError(field, message string) *ValidationError {
	return NewValidationError(FieldError{Field: field, Message: message})
}

func (v *ValidationError) Error() string {
	parts := make([]string, 0, len(v.Fields))
	for _, f := range v.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}

	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

func (v *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// AsValidation извлекает ValidationError из цепочки ошибок.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}

	return nil, false
}

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
