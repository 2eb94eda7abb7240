// Package common defines sentinel errors and small helpers shared by the
// storefront layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Identity errors.
	ErrAlreadyExists      = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")

	// Validation errors (empty required field, bad number, bad role).
	ErrValidation = errors.New("validation error")

	// Checkout errors.
	ErrEmptyCart = errors.New("cart is empty")
)
