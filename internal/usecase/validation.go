package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"rental-service/internal/domain/apperror"

	"github.com/go-playground/validator/v10"
)

// newValidator reports fields by their JSON names
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// toValidationError converts validator output into a field-specific ValidationError
func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	var msgs []string
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
		msgs = append(msgs, describeFieldError(fe))
	}
	return &apperror.ValidationError{Fields: fields, Message: strings.Join(msgs, "; ")}
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match", fe.Field())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "url":
		return fmt.Sprintf("%s must contain valid URLs", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// missingFields returns the names whose values are blank
func missingFields(pairs ...[2]string) []string {
	var missing []string
	for _, p := range pairs {
		if strings.TrimSpace(p[1]) == "" {
			missing = append(missing, p[0])
		}
	}
	return missing
}
