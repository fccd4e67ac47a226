// Package validation checks request bodies with go-playground/validator and
// reports failures as VALIDATION errors keyed by JSON field name.
package validation

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	domainerrors "github.com/helojet/helojet-server/internal/errors"
)

// FailedMessage is the top-level message of every validation error.
const FailedMessage = "validation failed"

// Validator wraps go-playground/validator with domain error conversion.
type Validator struct {
	v *validator.Validate
}

// New returns a Validator with the storefront's custom tags registered:
//
//	nonblank   string is not empty after trimming
//	image_src  http(s) URL or data:image/ URI
func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		switch name {
		case "":
			return fld.Name
		case "-":
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("nonblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = v.RegisterValidation("image_src", func(fl validator.FieldLevel) bool {
		return isImageSrc(fl.Field().String())
	})

	return &Validator{v: v}
}

func isImageSrc(s string) bool {
	if strings.HasPrefix(s, "data:image/") {
		return strings.Contains(s, ",")
	}
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Validate checks a struct's validate tags.
func (v *Validator) Validate(s any) error {
	return v.convert(v.v.Struct(s), "")
}

// Var checks one value against tag, e.g. "required,image_src". field names
// the value in the error details.
func (v *Validator) Var(field string, value any, tag string) error {
	return v.convert(v.v.Var(value, tag), field)
}

// convert turns validator output into a domain error; field overrides the
// detail key for single-value checks.
func (v *Validator) convert(err error, field string) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		key := field
		if key == "" {
			key = fe.Field()
		}
		if _, seen := details[key]; !seen {
			details[key] = message(fe)
		}
	}
	return domainerrors.ValidationWithDetails(FailedMessage, details)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "nonblank":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "url", "http_url":
		return "must be a valid URL"
	case "image_src":
		return "must be an image URL or data URI"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	}
	return "is invalid"
}
