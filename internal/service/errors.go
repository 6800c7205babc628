package service

import "errors"

var (
	// ErrValidation wraps missing or malformed submission attributes.
	ErrValidation = errors.New("invalid submission")
	// ErrForbidden means a role or ownership check failed.
	ErrForbidden = errors.New("access denied")
	// ErrNotFound covers both missing items and items hidden behind the
	// approval gate.
	ErrNotFound = errors.New("not found")
)
