package form

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrRequired is the cause of a ValidationError for an empty field.
	ErrRequired = errors.New("required")
	// ErrNotNumber is the cause of a ValidationError for non-numeric input.
	ErrNotNumber = errors.New("not a number")
	// ErrNotInteger is the cause of a ValidationError for fractional input.
	ErrNotInteger = errors.New("not an integer")
	// ErrTooShort is the cause of a ValidationError for a length below the
	// minimum.
	ErrTooShort = errors.New("below minimum")
	// ErrTooLong is the cause of a ValidationError for a length above the
	// maximum.
	ErrTooLong = errors.New("above maximum")
)

// ValidationError is a field level error. Message is shown next to the field.
type ValidationError struct {
	Field   string
	Message string
	cause   error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.cause }

// Bounds is the inclusive range a password length must fall in.
type Bounds struct {
	Min int
	Max int
}

// LengthField is the name of the password length field.
const LengthField = "passwordLength"

// ValidateLength parses the raw length input and checks it against b.
func ValidateLength(input string, b Bounds) (int, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return 0, fieldError(ErrRequired, "Password is mandatory")
	}
	n, err := strconv.Atoi(input)
	if err != nil {
		if _, ferr := strconv.ParseFloat(input, 64); ferr == nil {
			return 0, fieldError(ErrNotInteger, "Password length must be a whole number")
		}
		return 0, fieldError(ErrNotNumber, "Password length must be a number")
	}
	if n < b.Min {
		return 0, fieldError(ErrTooShort, fmt.Sprintf("Password must be at least %d characters long", b.Min))
	}
	if n > b.Max {
		return 0, fieldError(ErrTooLong, fmt.Sprintf("Password must be at most %d characters long", b.Max))
	}
	return n, nil
}

func fieldError(cause error, msg string) *ValidationError {
	return &ValidationError{Field: LengthField, Message: msg, cause: cause}
}
