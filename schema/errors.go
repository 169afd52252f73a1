package schema

import "errors"

var (
	// ErrInvalidField unknown column name referenced against a model
	ErrInvalidField = errors.New("invalid field")
	// ErrInvalidValue value that fails to deserialize through a field codec
	ErrInvalidValue = errors.New("invalid value")
)
