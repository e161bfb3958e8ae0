package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"stockroom/internal/domain"
)

// ValidationError carries every rule a product broke, in field order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Messages, ", ") }

var structs = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
		return domain.Category(fl.Field().String()).Valid()
	}); err != nil {
		panic(fmt.Sprintf("validate: register category rule: %v", err))
	}
	return v
}

// Product checks p and returns it unchanged when it passes. On failure the
// zero Product and a *ValidationError are returned.
func Product(p domain.Product) (domain.Product, error) {
	err := structs.Struct(p)
	if err == nil {
		return p, nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return domain.Product{}, &ValidationError{Messages: []string{err.Error()}}
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return domain.Product{}, &ValidationError{Messages: msgs}
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gte":
		if fe.Kind() == reflect.Int {
			return field + " must be a non-negative integer"
		}
		return field + " must be a non-negative number"
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", field, strings.Join(splitOneOf(fe.Param()), ", "))
	case "category":
		names := make([]string, len(domain.Categories))
		for i, c := range domain.Categories {
			names[i] = string(c)
		}
		return fmt.Sprintf("category must be one of %s", strings.Join(names, ", "))
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}

// splitOneOf reads a oneof parameter, honouring single-quoted values.
func splitOneOf(param string) []string {
	var (
		out    []string
		cur    strings.Builder
		quoted bool
	)
	flush := func() {
		if cur.Len() > 0 {
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	for _, r := range param {
		switch {
		case r == '\'':
			if quoted {
				flush()
			}
			quoted = !quoted
		case r == ' ' && !quoted:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return out
}
