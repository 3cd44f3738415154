package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable signals a precondition that has not been met yet,
	// such as predicting before any model has been trained.
	ErrUnavailable = errors.New("unavailable")
	// ErrDataInsufficient signals that an operation needs more rows than
	// the database currently holds.
	ErrDataInsufficient = errors.New("insufficient data")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
