// Package validation collects field-level input problems into a single error.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
)

// MaxQuantity is the largest quantity of one product accepted in a cart or an order.
const MaxQuantity = 1_000_000

// ErrInvalid is matched by every *Errors value via errors.Is.
var ErrInvalid = errors.New("validation failed")

// FieldError describes one invalid field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is an accumulating list of field errors.
type Errors struct {
	Fields []FieldError
}

// Add records a problem with a field.
func (e *Errors) Add(field, format string, args ...any) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Err returns nil when nothing was recorded, otherwise the receiver.
func (e *Errors) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *Errors) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrInvalid) true for any *Errors.
func (e *Errors) Is(target error) bool {
	return target == ErrInvalid
}

// Single builds an error for one field.
func Single(field, format string, args ...any) error {
	var errs Errors
	errs.Add(field, format, args...)
	return errs.Err()
}

// FieldsOf extracts field errors from err, if it carries any.
func FieldsOf(err error) []FieldError {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs.Fields
	}
	return nil
}

// NormalizeEmail lower-cases and trims an address and checks its syntax.
func NormalizeEmail(email string) (string, bool) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", false
	}
	return email, true
}
