// Package validation wraps go-playground/validator with the custom types used
// by the request DTOs, and flattens failures into field-path → message maps.
package validation

import (
	"errors"
	"math"
	"reflect"
	"strings"

	"github.com/Filippospapageorgiou/tailormadeBoV2/internal/dto"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Violations maps a JSON field path (e.g. "expenses[0].amount") to a message.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(f.Tag.Get("form"), ",", 2)[0]
		}
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal validates as a float so min=0, gt=0 work.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	// Amount: unset → nil (required fails, omitempty skips), non-numeric → raw
	// string (numeric fails), otherwise its float value for min/lte.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		a, ok := field.Interface().(dto.Amount)
		if !ok || !a.IsSet() {
			return nil
		}
		if !a.IsValid() {
			return a.Raw()
		}
		// Out-of-range magnitudes go straight to ±Inf so lte/min fail them.
		if a.IntegerDigits() > dto.MaxIntegerDigits {
			return math.Inf(a.Decimal().Sign())
		}
		f, _ := a.Decimal().Float64()
		return f
	}, dto.Amount{})

	// present is the "required" of Amount fields. The stock required tag
	// rejects a legitimate 0, so presence is decided by the custom type func
	// above: an unset Amount maps to nil and fails the first tag outright.
	_ = v.RegisterValidation("present", func(validator.FieldLevel) bool { return true })

	return v
}

// Struct validates s and returns nil when it passes.
func Struct(s interface{}) Violations {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Violations{"_": err.Error()}
	}
	out := make(Violations, len(verrs))
	for _, fe := range verrs {
		out[fieldPath(fe.Namespace())] = message(fe)
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if", "present":
		return "is required"
	case "numeric":
		return "must be a number"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice {
			return "must have at least " + fe.Param() + " characters"
		}
		return "must be greater than or equal to " + fe.Param()
	case "max":
		return "must be at most " + fe.Param() + " characters"
	case "gt":
		return "must be greater than " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of: " + fe.Param()
	case "datetime":
		return "must be a date formatted as YYYY-MM-DD"
	case "email":
		return "must be a valid email address"
	default:
		return "is invalid (" + fe.Tag() + ")"
	}
}
