// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Handlers use it for shape checks on decoded payloads and services repeat the
// business rules, so storage only ever receives semantically valid data.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/pkg/slug"
)

var (
	// uuidRegex matches a UUIDv4 or UUIDv7 string.
	uuidRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	// phoneRegex accepts an optional leading '+' and 7 to 15 digits.
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
	// periodRegex matches a YYYY-MM billing period.
	periodRegex = regexp.MustCompile(`^[0-9]{4}-(0[1-9]|1[0-2])$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.ValidationError("Invalid JSON payload")
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	errs []apperr.FieldError
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, "This field is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("Maximum %d characters", max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, fmt.Sprintf("Minimum %d characters", min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, fmt.Sprintf("Must be between %d and %d", min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "Must be a valid email address")
	}
	return v
}

// Slug fails unless the value is hyphen-joined lowercase words ([slug.Valid]).
func (v *Validator) Slug(field, value string) *Validator {
	if !slug.Valid(value) {
		v.add(field, "Must be a valid URL slug (lowercase letters, digits, hyphens only)")
	}
	return v
}

// UUID fails if the value is not a valid UUID string (case-insensitive).
func (v *Validator) UUID(field, value string) *Validator {
	lower := strings.ToLower(value)
	if !uuidRegex.MatchString(lower) {
		v.add(field, "Must be a valid UUID")
	}
	return v
}

// Phone fails if the value is not a plain international phone number.
// Spaces and dashes are ignored.
func (v *Validator) Phone(field, value string) *Validator {
	normalized := strings.NewReplacer(" ", "", "-", "").Replace(value)
	if !phoneRegex.MatchString(normalized) {
		v.add(field, "Must be a valid phone number")
	}
	return v
}

// Period fails if the value is not a YYYY-MM billing period.
func (v *Validator) Period(field, value string) *Validator {
	if !periodRegex.MatchString(value) {
		v.add(field, "Must be a period in YYYY-MM format")
	}
	return v
}

// Positive fails unless the amount is strictly greater than zero.
func (v *Validator) Positive(field string, value decimal.Decimal) *Validator {
	if !value.IsPositive() {
		v.add(field, "Must be greater than zero")
	}
	return v
}

// NonNegative fails if the amount is below zero.
func (v *Validator) NonNegative(field string, value decimal.Decimal) *Validator {
	if value.IsNegative() {
		v.add(field, "Must not be negative")
	}
	return v
}

// MaxScale fails if the amount carries more than places decimal digits.
func (v *Validator) MaxScale(field string, value decimal.Decimal, places int32) *Validator {
	if !value.Equal(value.Truncate(places)) {
		v.add(field, fmt.Sprintf("Must have at most %d decimal places", places))
	}
	return v
}

// NotBefore fails if end is set and falls before start.
func (v *Validator) NotBefore(field string, end *time.Time, start time.Time) *Validator {
	if end != nil && end.Before(start) {
		v.add(field, "Must not be before the start date")
	}
	return v
}

// Date parses an optional YYYY-MM-DD value. An empty value yields nil; a
// malformed one records a failure and yields nil.
func (v *Validator) Date(field, value string) *time.Time {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.DateOnly, value)
	if err != nil {
		v.add(field, "Must be a date in YYYY-MM-DD format")
		return nil
	}
	return &parsed
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.add(field, fmt.Sprintf("Must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("graceDays", days > 27, "Must be at most 27")
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a [apperr.AppError] (VALIDATION_ERROR) if any rules failed,
// or nil if all rules passed.
//
// It is the only output method and ends the chain.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError("Validation failed", v.errs...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}

// add appends a [apperr.FieldError] to the internal slice.
func (v *Validator) add(field, message string) {
	v.errs = append(v.errs, apperr.FieldError{Field: field, Message: message})
}

// RequiredError is a shortcut to create a single-field validation error.
func RequiredError(field, message string) *apperr.AppError {
	return apperr.ValidationError("Validation failed", apperr.FieldError{
		Field:   field,
		Message: message,
	})
}
