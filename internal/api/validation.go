package api

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"ratechart/internal/currency"
)

// RateQuery holds the query parameters of a pair lookup.
type RateQuery struct {
	Base  string `validate:"required,currency"`
	Quote string `validate:"required,currency"`
}

// HistoryQuery holds the query parameters of a series lookup.
type HistoryQuery struct {
	RateQuery
	Days int `validate:"min=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	mustRegister(v, "currency", func(fl validator.FieldLevel) bool {
		return currency.IsValidFormat(strings.TrimSpace(fl.Field().String()))
	})
	return v
}

// mustRegister panics if tag cannot be registered.
func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %q validation: %v", tag, err))
	}
}

// validationMessage flattens validator errors into a single client-facing message.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "currency":
			msgs = append(msgs, field+": "+currency.ErrInvalidFormat.Error())
		case "min":
			msgs = append(msgs, field+" must not be negative")
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}
	return strings.Join(msgs, "; ")
}
