package autocomplete

import (
	"errors"
	"fmt"

	"github.com/JoongWonSeo/json-autocomplete/grammar"
)

var (
	// ErrInvalidPrefix is returned when the input is not a prefix of any
	// JSON document.
	ErrInvalidPrefix = errors.New("given prefix is not from a valid JSON string")

	// ErrDepthExceeded is returned when the input nests containers deeper
	// than the configured maximum.
	ErrDepthExceeded = grammar.ErrDepthExceeded
)

// InvalidPrefixError reports where the grammar stopped explaining the input.
type InvalidPrefixError struct {
	// Position is the byte offset of the first unexplained byte.
	Position int
	// Char is the byte at Position.
	Char byte
	// Err is the underlying grammar error, if any. In lax mode it is nil:
	// the walk simply stopped short of the end of the input.
	Err error
}

func (e *InvalidPrefixError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: unexpected %q at position %d: %v", ErrInvalidPrefix, e.Char, e.Position, e.Err)
	}
	return fmt.Sprintf("%s: unexpected %q at position %d", ErrInvalidPrefix, e.Char, e.Position)
}

// Is matches ErrInvalidPrefix.
func (e *InvalidPrefixError) Is(target error) bool {
	return target == ErrInvalidPrefix
}

func (e *InvalidPrefixError) Unwrap() error {
	return e.Err
}

// NoObjectError is returned when text could not be turned into a valid
// object.
type NoObjectError struct {
	RawText         string
	ParseError      error
	ValidationError error
}

func (e *NoObjectError) Error() string {
	switch {
	case e.ParseError != nil:
		return fmt.Sprintf("no object generated: parse error: %v", e.ParseError)
	case e.ValidationError != nil:
		return fmt.Sprintf("no object generated: validation error: %v", e.ValidationError)
	default:
		return "no object generated"
	}
}

func (e *NoObjectError) Unwrap() []error {
	var errs []error
	if e.ParseError != nil {
		errs = append(errs, e.ParseError)
	}
	if e.ValidationError != nil {
		errs = append(errs, e.ValidationError)
	}
	return errs
}
