// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Field-level messages. They match what the frontend already shows for
// form errors.
const (
	msgRequired = "This field is required."
	msgEmail    = "Enter a valid email address."
	msgMin      = "Ensure this field has at least %s characters."
	msgMax      = "Ensure this field has no more than %s characters."
	msgMaxBytes = "Ensure this field has no more than %s bytes."
	msgInvalid  = "Invalid value."
)

// RequestValidator validates request payloads tagged with `validate:"..."`
// struct tags. Errors are keyed by the JSON name of the field.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds a [Validator] backed by go-playground/validator.
func NewRequestValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("maxbytes", maxBytes)

	return &RequestValidator{validate: v}
}

// Validate checks obj, which must be a struct or a pointer to one. When
// fields are given only those Go struct fields are checked.
//
// Rule violations are returned as *ValidationError.
func (v *RequestValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	value := reflect.ValueOf(obj)
	if value.Kind() == reflect.Pointer {
		if value.IsNil() {
			return ErrUnsupportedType
		}
		value = value.Elem()
	}
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}

	result := &ValidationError{}
	for _, fieldErr := range validationErrors {
		result.Add(fieldErr.Field(), message(fieldErr))
	}
	return result
}

func message(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return msgRequired
	case "email":
		return msgEmail
	case "min":
		return fmt.Sprintf(msgMin, fieldErr.Param())
	case "max":
		return fmt.Sprintf(msgMax, fieldErr.Param())
	case "maxbytes":
		return fmt.Sprintf(msgMaxBytes, fieldErr.Param())
	default:
		return msgInvalid
	}
}

// maxBytes limits the encoded length of a string, unlike "max" which counts
// runes. bcrypt rejects passwords longer than 72 bytes.
func maxBytes(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(field.String()) <= limit
}

// jsonFieldName reports the JSON key of a struct field, falling back to the
// Go name.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}
