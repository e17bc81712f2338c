package booking

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors returned by the booking service.
var (
	ErrConflict     = errors.New("slot is already booked for this chair")
	ErrNotFound     = errors.New("booking not found")
	ErrUnauthorized = errors.New("admin access required")
)

// ValidationError reports structurally invalid input: missing fields,
// malformed dates, unknown chairs or slot indexes.
type ValidationError struct {
	Fields []string
	Reason string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("invalid request (%s): %s", strings.Join(e.Fields, ", "), e.Reason)
	}
	return fmt.Sprintf("invalid request: %s", e.Reason)
}

// BusinessRuleError reports well-formed input rejected by an availability
// rule, such as a non-Friday date or an email outside the allowed domains.
type BusinessRuleError struct {
	Rule   string
	Reason string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Reason)
}

func invalidField(field, reason string) error {
	return &ValidationError{Fields: []string{field}, Reason: reason}
}
