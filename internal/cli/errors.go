package cli

import (
	"errors"
	"io"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

var errCancelled = errors.New("cancelled")

// describe maps err to a user-facing line and reports whether it is one
// of the expected outcomes of a command.
func describe(err error) (string, bool) {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password", true
	case errors.Is(err, common.ErrAlreadyExists):
		return "An account with this email already exists", true
	case errors.Is(err, common.ErrEmptyCart):
		return "Your cart is empty", true
	case errors.Is(err, common.ErrUnauthorized):
		return "Please login first", true
	case errors.Is(err, common.ErrForbidden):
		return "Admin access required", true
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrValidation):
		return err.Error(), true
	case errors.Is(err, errCancelled), errors.Is(err, io.EOF):
		return "Cancelled", true
	}
	return "Error: " + err.Error(), false
}
