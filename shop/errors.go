package shop

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrEmptyCart is returned when checking out with no cart lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrInvalidTransition is returned by CheckoutFlow steps taken from the wrong state.
	ErrInvalidTransition = errors.New("invalid checkout transition")
)

// ValidationError reports input that was rejected before any state changed.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// LoadError is returned when the catalog source could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load catalog from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
