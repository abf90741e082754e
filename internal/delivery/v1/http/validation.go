package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/DRSN-tech/resale-backend/pkg/e"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator возвращает валидатор, который называет поля по json-тегу.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// validateStruct возвращает *e.ValidationError с сообщением на каждое поле.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]e.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, e.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}

	return e.NewValidationError(fields...)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", "))
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param())
	case "url":
		return fe.Field() + " must be a valid URL"
	default:
		return fe.Field() + " is invalid"
	}
}
