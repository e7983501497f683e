// ABOUTME: Validation error type and shared field validators.
// ABOUTME: Raised at the boundary closest to user input, extractable via errors.As.
package models

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used throughout: local day, not a
// timestamp.
const DateLayout = "2006-01-02"

// ValidationError is returned when a record fails field validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s", e.Field, e.Message)
}

// ValidateDate checks that s is a YYYY-MM-DD calendar day.
func ValidateDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return &ValidationError{Field: "date", Message: fmt.Sprintf("%q is not a YYYY-MM-DD date", s)}
	}
	return nil
}

// Today returns the current local calendar day in DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
