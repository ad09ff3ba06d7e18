package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	v *validator.Validate

	// Calendar date as the API exchanges it: YYYY-MM-DD.
	reISODate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	// Wall-clock time: HH:MM, 24h.
	reHHMM = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
)

func init() {
	v = validator.New()

	// Use JSON tag as the field name in error output
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	// Custom: ISO calendar date
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" { // let omitempty handle empty
			return true
		}
		return reISODate.MatchString(val)
	})

	// Custom: HH:MM time of day
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		val := strings.TrimSpace(fl.Field().String())
		if val == "" {
			return true
		}
		return reHHMM.MatchString(val)
	})
}

// Errors holds a failed validation keyed by JSON field name (Laravel-like),
// plus the first message in the order the validator reported it.
type Errors struct {
	Fields map[string][]string
	first  string
}

// First returns the first message the validator reported. Used by handlers
// that answer with the single-message error body.
func (e *Errors) First() string {
	if e == nil || e.first == "" {
		return "Validation failed"
	}
	return e.first
}

// Validate runs struct validation and returns nil when the value is valid.
func Validate(s any) (*Errors, error) {
	err := v.Struct(s)
	if err == nil {
		return nil, nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, err
	}

	out := &Errors{Fields: make(map[string][]string)}
	for _, e := range ve {
		field := e.Field() // already mapped from json tag
		msg := message(e, field)
		out.Fields[field] = append(out.Fields[field], msg)
		if out.first == "" {
			out.first = msg
		}
	}
	return out, nil
}

func message(e validator.FieldError, field string) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)

	case "email":
		return "Invalid email format"

	case "max":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at most %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at most %s", e.Param())

	case "min":
		if e.Kind() == reflect.String {
			return fmt.Sprintf("Must be at least %s characters", e.Param())
		}
		return fmt.Sprintf("Must be at least %s", e.Param())

	case "oneof":
		return "Value is not allowed"

	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", e.Param())

	case "isodate":
		return "Invalid date (use YYYY-MM-DD)"

	case "hhmm":
		return "Invalid time (use HH:MM)"

	default:
		// Fallback to original error text if we missed a tag
		return e.Error()
	}
}
