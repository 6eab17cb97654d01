// Package inputval collects field-level validation for request
// payloads. Checks accumulate into a field-keyed reason map that feeds
// the validation_error response directly.
package inputval

import (
	"strings"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Result accumulates field validation failures.
type Result struct {
	fields map[string]string
}

// HasErrors reports whether any check failed.
func (r *Result) HasErrors() bool {
	return len(r.fields) > 0
}

// Fields returns the field-keyed reason map (nil when clean).
func (r *Result) Fields() map[string]string {
	if len(r.fields) == 0 {
		return nil
	}
	return r.fields
}

func (r *Result) add(field, msg string) {
	if r.fields == nil {
		r.fields = make(map[string]string)
	}
	// Keep the first failure per field.
	if _, exists := r.fields[field]; !exists {
		r.fields[field] = msg
	}
}

// Fail records a failure unconditionally, for checks too specific for
// the helpers below.
func (r *Result) Fail(field, msg string) {
	r.add(field, msg)
}

// Require fails the field when the value is empty after trimming.
func (r *Result) Require(field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		r.add(field, msg)
	}
}

// MaxLen fails the field when the value exceeds max bytes.
func (r *Result) MaxLen(field, value string, max int, msg string) {
	if len(value) > max {
		r.add(field, msg)
	}
}

// Email fails the field when the value is not a plausible address.
func (r *Result) Email(field, value, msg string) {
	if !validate.SimpleEmailValid(value) {
		r.add(field, msg)
	}
}

// Equal fails the field when the two values differ (password
// confirmation).
func (r *Result) Equal(field, a, b, msg string) {
	if a != b {
		r.add(field, msg)
	}
}
