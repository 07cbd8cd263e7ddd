// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	"github.com/taibuivan/yamdb/pkg/slug"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// instance lazily builds the shared tag validator with the YaMDB custom rules.
func instance() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())

		// Report JSON names instead of Go field names.
		engine.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return field.Name
			}
			return name
		})

		_ = engine.RegisterValidation("username", func(fl validator.FieldLevel) bool {
			return usernameRegex.MatchString(fl.Field().String())
		})
		_ = engine.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slug.Valid(fl.Field().String())
		})
	})
	return engine
}

// Struct validates the `validate` tags of payload and converts failures into
// a VALIDATION_ERROR [apperr.AppError] with one [apperr.FieldError] per field.
//
// Pointer fields left nil are skipped by the "omitempty" rule, which is how
// PATCH payloads declare optional fields.
func Struct(payload any) error {
	err := instance().Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return apperr.Internal(fmt.Errorf("validate: %w", err))
	}

	details := make([]apperr.FieldError, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldError.Field(),
			Message: describe(fieldError),
		})
	}

	return apperr.ValidationError("Validation failed", details...)
}

// describe renders a human message for a failed tag.
func describe(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "This field is required"
	case "max":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Maximum %s characters", fieldError.Param())
		}
		return fmt.Sprintf("Must be at most %s", fieldError.Param())
	case "min":
		if fieldError.Kind() == reflect.String {
			return fmt.Sprintf("Minimum %s characters", fieldError.Param())
		}
		return fmt.Sprintf("Must be at least %s", fieldError.Param())
	case "email":
		return "Must be a valid email address"
	case "username":
		return "Letters, digits and @/./+/-/_ only"
	case "slug":
		return "Must be a valid URL slug (letters, digits, hyphens, underscores only)"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fieldError.Param(), " ", ", "))
	default:
		return fmt.Sprintf("Failed the %q rule", fieldError.Tag())
	}
}
