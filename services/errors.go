package services

import "errors"

// Failure taxonomy shared by controllers to pick response codes.
var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicateOrder = errors.New("order duplicated")
	ErrValidation     = errors.New("validation failed")
)
