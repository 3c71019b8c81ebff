package http

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var tickerPattern = regexp.MustCompile(`^[A-Z]{1,5}$`)

// RequestValidator adapts go-playground/validator to Echo's Validator hook.
type RequestValidator struct {
	validate *validator.Validate
}

// NewRequestValidator builds the validator with the ticker rule registered.
func NewRequestValidator() (*RequestValidator, error) {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report field names as their json tags so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	if err := v.RegisterValidation("ticker", func(fl validator.FieldLevel) bool {
		return tickerPattern.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	return &RequestValidator{validate: v}, nil
}

// Validate implements echo.Validator.
func (rv *RequestValidator) Validate(i interface{}) error {
	if err := rv.validate.Struct(i); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%s", messageFor(verrs[0]))
		}
		return err
	}
	return nil
}

// messageFor renders a user-facing message for the first failed rule.
func messageFor(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "ticker":
		return "symbol must be 1-5 letters"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
