package bootstrap

import (
	"errors"
	"fmt"
)

// InvalidConfigError indicates that a configuration document, or a set of
// documents, is well-formed but violates a bootstrapping rule: an invalid
// address, a template hash mismatch, a duplicated validator key and so on.
type InvalidConfigError struct {
	Err error
}

func NewInvalidConfigErrorf(msg string, args ...interface{}) InvalidConfigError {
	return InvalidConfigError{
		Err: fmt.Errorf(msg, args...),
	}
}

func (err InvalidConfigError) Error() string {
	return err.Err.Error()
}

func (err InvalidConfigError) Unwrap() error {
	return err.Err
}

// IsInvalidConfigError returns true if err is or wraps an InvalidConfigError.
func IsInvalidConfigError(err error) bool {
	var target InvalidConfigError
	return errors.As(err, &target)
}

// ParseError indicates that the document at Path is not a structurally valid
// configuration document.
type ParseError struct {
	Path string
	Err  error
}

func NewParseError(path string, err error) ParseError {
	return ParseError{Path: path, Err: err}
}

func (err ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", err.Path, err.Err)
}

func (err ParseError) Unwrap() error {
	return err.Err
}

// IsParseError returns true if err is or wraps a ParseError.
func IsParseError(err error) bool {
	var target ParseError
	return errors.As(err, &target)
}
