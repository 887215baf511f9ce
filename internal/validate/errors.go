package validate

import (
	"errors"
	"sort"
	"strings"
)

// Errors collects field-scoped and record-scoped validation messages.
// A nil or empty Errors means the input is valid.
type Errors struct {
	Fields   map[string][]string `json:"fields,omitempty"`
	NonField []string            `json:"non_field,omitempty"`
}

// Add records a message against a single field.
func (e *Errors) Add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], msg)
}

// AddNonField records a record-scoped message.
func (e *Errors) AddNonField(msg string) {
	e.NonField = append(e.NonField, msg)
}

// Has reports whether the field has at least one error.
func (e *Errors) Has(field string) bool {
	if e == nil {
		return false
	}
	return len(e.Fields[field]) > 0
}

// Empty reports whether no errors were recorded.
func (e *Errors) Empty() bool {
	return e == nil || (len(e.Fields) == 0 && len(e.NonField) == 0)
}

// Err returns e as an error, or nil when empty.
func (e *Errors) Err() error {
	if e.Empty() {
		return nil
	}
	return e
}

// Merge copies every message of other into e.
func (e *Errors) Merge(other *Errors) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		for _, msg := range msgs {
			e.Add(field, msg)
		}
	}
	e.NonField = append(e.NonField, other.NonField...)
}

func (e *Errors) Error() string {
	if e.Empty() {
		return "validation failed"
	}

	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields)+len(e.NonField))
	parts = append(parts, e.NonField...)
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e.Fields[field], " "))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsErrors extracts validation errors from err, if any.
func AsErrors(err error) (*Errors, bool) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// FieldError builds an Errors value holding a single field message.
func FieldError(field, msg string) *Errors {
	errs := &Errors{}
	errs.Add(field, msg)
	return errs
}
