// Copyright (c) 2026 Camellia. All rights reserved.
// Author: mai.ngoc.vt@gmail.com

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// This package is used by the HTTP handlers to check form input before it
// reaches the service layer. Failures are rendered back to the user as flash
// messages, so the validator produces human-readable sentences, not codes.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"github.com/ngocmai/camellia/internal/platform/apperr"
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request.
type Validator struct {
	errs []string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.errs = append(v.errs, fmt.Sprintf("%s is required", field))
	}
	return v
}

// MinLen fails if the value is shorter than min characters.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if value != "" && utf8.RuneCountInString(value) < min {
		v.errs = append(v.errs, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
	return v
}

// Email fails if the value is not a parseable email address.
func (v *Validator) Email(field, value string) *Validator {
	if value == "" {
		return v
	}
	if _, err := mail.ParseAddress(value); err != nil {
		v.errs = append(v.errs, fmt.Sprintf("%s must be a valid email address", field))
	}
	return v
}

// Match fails if the two values differ (password confirmation).
func (v *Validator) Match(field, value, other string) *Validator {
	if value != other {
		v.errs = append(v.errs, fmt.Sprintf("%s does not match", field))
	}
	return v
}

// Positive fails if the value is not strictly greater than zero.
func (v *Validator) Positive(field string, value int64) *Validator {
	if value <= 0 {
		v.errs = append(v.errs, fmt.Sprintf("%s must be greater than zero", field))
	}
	return v
}

// Err returns a single [apperr.AppError] combining all collected failures,
// or nil when the input passed every check.
func (v *Validator) Err() error {
	if len(v.errs) == 0 {
		return nil
	}
	return apperr.ValidationError(strings.Join(v.errs, "; "))
}

// HasErrors reports whether any check has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.errs) > 0
}
