package admin

import (
	"errors"
	"fmt"
)

// ErrUnknownAction is returned when a maintenance request names an action
// that is not registered.
var ErrUnknownAction = NewInvalidRequestErrorf("unknown maintenance action")

// InvalidRequestError indicates that a maintenance request has failed
// validation, and the request will not be processed. All Validator
// functions must return this error if the request is rejected.
type InvalidRequestError struct {
	Err error
}

func NewInvalidRequestErrorf(msg string, args ...interface{}) InvalidRequestError {
	return InvalidRequestError{
		Err: fmt.Errorf(msg, args...),
	}
}

// NewInvalidRequestParameterError returns an InvalidRequestError indicating that
// a field of the request has an invalid value.
func NewInvalidRequestParameterError(field string, msg string, actualVal interface{}) InvalidRequestError {
	return NewInvalidRequestErrorf("invalid value for '%s': %s. Got: %v", field, msg, actualVal)
}

func IsInvalidRequestError(err error) bool {
	var target InvalidRequestError
	return errors.As(err, &target)
}

func (err InvalidRequestError) Error() string {
	return err.Err.Error()
}

func (err InvalidRequestError) Unwrap() error {
	return err.Err
}
