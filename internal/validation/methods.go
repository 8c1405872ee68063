package validation

import (
	"fmt"
	"strings"
)

// Validator defines validation methods
type Validator struct {
	Errors map[string]string
}

// New creates a new validator
func New() *Validator {
	return &Validator{Errors: make(map[string]string)}
}

// Valid checks if there are any validation errors
func (v *Validator) Valid() bool {
	return len(v.Errors) == 0
}

// AddError adds an error to the validator. The first error for a field wins.
func (v *Validator) AddError(field, message string) {
	if _, exists := v.Errors[field]; !exists {
		v.Errors[field] = message
	}
}

// Check adds an error if the condition is false
func (v *Validator) Check(ok bool, field, message string) {
	if !ok {
		v.AddError(field, message)
	}
}

// Required checks if a string is not empty
func (v *Validator) Required(field string, value string) {
	v.Check(strings.TrimSpace(value) != "", field, "must not be empty")
}

// Range checks if a number is between min and max
func (v *Validator) Range(field string, value float64, min, max float64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %v and %v", min, max))
}

// RangeCents checks if an amount in cents is between min and max
func (v *Validator) RangeCents(field string, value, min, max int64) {
	v.Check(value >= min && value <= max, field, fmt.Sprintf("must be between %d and %d", min, max))
}

// OneOf checks that value is one of the allowed values
func (v *Validator) OneOf(field, value string, allowed ...string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of %s", strings.Join(allowed, ", ")))
}
