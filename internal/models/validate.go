// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// ValidationError reports a payload field that failed validation.
// Handlers map it to 400 Bad Request.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + " " + e.Message
}

// Fields is implemented by every create/update payload. Pointer fields
// distinguish "absent" (nil) from a supplied value.
type Fields interface {
	// Validate checks the payload. When partial is false, every required
	// field must be present.
	Validate(partial bool) error
	// Columns returns the column names and values of the present fields,
	// in matching order.
	Columns() ([]string, []any)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// requiredString checks a NOT NULL text column. max of 0 means unbounded.
func requiredString(field string, v *string, max int, partial bool) error {
	if v == nil {
		if partial {
			return nil
		}
		return invalid(field, "is required")
	}
	if strings.TrimSpace(*v) == "" {
		return invalid(field, "must not be blank")
	}
	return maxLength(field, *v, max)
}

// optionalString checks a nullable text column.
func optionalString(field string, v *string, max int) error {
	if v == nil {
		return nil
	}
	return maxLength(field, *v, max)
}

func maxLength(field, v string, max int) error {
	if max > 0 && utf8.RuneCountInString(v) > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func requiredNumber(field string, v *float64, partial bool) error {
	if v == nil {
		if partial {
			return nil
		}
		return invalid(field, "is required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) {
		return invalid(field, "must be a finite number")
	}
	return nil
}

func intRange(field string, v *int, min, max int) error {
	if v == nil {
		return nil
	}
	if *v < min || *v > max {
		return invalid(field, "must be between %d and %d", min, max)
	}
	return nil
}

func nonNegative(field string, v *int) error {
	if v == nil {
		return nil
	}
	if *v < 0 {
		return invalid(field, "must not be negative")
	}
	return nil
}

// firstError returns the first non-nil error.
func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

// columnSet accumulates present fields for Columns implementations.
type columnSet struct {
	names  []string
	values []any
}

func (c *columnSet) add(name string, v any) {
	c.names = append(c.names, name)
	c.values = append(c.values, v)
}

// addNullable stores an empty string as NULL.
func (c *columnSet) addNullable(name string, v *string) {
	switch {
	case v == nil:
	case *v == "":
		c.add(name, nil)
	default:
		c.add(name, *v)
	}
}

func (c *columnSet) result() ([]string, []any) {
	return c.names, c.values
}

// addValue appends the dereferenced value when v is present.
func addValue[T any](c *columnSet, name string, v *T) {
	if v != nil {
		c.add(name, *v)
	}
}
