package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrUnknownField is returned by SetField for a name outside the record schema.
	ErrUnknownField = errors.New("unknown field")
	// ErrReadOnlyField is returned by SetField for derived or identifier fields.
	ErrReadOnlyField = errors.New("field is read-only")
)

// DateLayout is the wire and input format of every date field.
const DateLayout = "2006-01-02"

// FieldError reports a value that could not be stored in a typed field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError carries field-scoped messages keyed by the JSON field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// fieldSetter stores a raw form value into one field of a record.
type fieldSetter[T any] func(rec *T, value string) error

func setString[T any](field func(*T) *string) fieldSetter[T] {
	return func(rec *T, value string) error {
		*field(rec) = value
		return nil
	}
}

func setInt[T any](name string, field func(*T) *int) fieldSetter[T] {
	return func(rec *T, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*field(rec) = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return &FieldError{Field: name, Message: "must be a whole number"}
		}
		*field(rec) = n
		return nil
	}
}

func setFloat[T any](name string, field func(*T) *float64) fieldSetter[T] {
	return func(rec *T, value string) error {
		value = strings.TrimSpace(value)
		if value == "" {
			*field(rec) = 0
			return nil
		}
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return &FieldError{Field: name, Message: "must be a number"}
		}
		*field(rec) = f
		return nil
	}
}

// errorMap flattens ozzo validation errors into field -> message.
func errorMap(err error) map[string]string {
	out := make(map[string]string)
	if err == nil {
		return out
	}

	var verrs validation.Errors
	if errors.As(err, &verrs) {
		for field, ferr := range verrs {
			if ferr != nil {
				out[field] = ferr.Error()
			}
		}
		return out
	}

	out["_form"] = err.Error()
	return out
}
