package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyReview   = errors.New("review text is required")
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)

// ValidationError marks a submission rejected before any backend or store call
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err was caused by bad input
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
