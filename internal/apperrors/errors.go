// Package apperrors defines the error kinds surfaced by brand generation.
//
// Each constructor marks the returned error with one of the sentinel values
// below, so callers can classify an error with errors.Is no matter how many
// times it has been wrapped. The message of the returned error is kept human
// readable because the HTTP layer shows it to the user verbatim.
package apperrors

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrValidation marks bad caller input.
	ErrValidation = errors.New("validation error")
	// ErrBackend marks a transport, auth or API failure talking to the model provider.
	ErrBackend = errors.New("backend error")
	// ErrGeneration marks a model response without usable content.
	ErrGeneration = errors.New("generation error")
	// ErrParse marks content that is not JSON of the expected shape.
	ErrParse = errors.New("parse error")
)

func Validation(msg string) error {
	return errors.Mark(errors.New(msg), ErrValidation)
}

func Backend(err error, msg string) error {
	return errors.Mark(errors.Wrap(err, msg), ErrBackend)
}

func Generation(msg string) error {
	return errors.Mark(errors.New(msg), ErrGeneration)
}

func Parse(err error, msg string) error {
	if err == nil {
		return errors.Mark(errors.New(msg), ErrParse)
	}
	return errors.Mark(errors.Wrap(err, msg), ErrParse)
}

// Kind returns a short label for logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrBackend):
		return "backend"
	case errors.Is(err, ErrGeneration):
		return "generation"
	case errors.Is(err, ErrParse):
		return "parse"
	default:
		return "unknown"
	}
}
