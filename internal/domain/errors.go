package domain

import "errors"

// Domain-level errors
var (
	ErrFieldLimit     = errors.New("field catalog is full")
	ErrFieldNotFound  = errors.New("field not found")
	ErrOptionNotFound = errors.New("option not found")
	ErrSaveFailed     = errors.New("unable to save product")
)
