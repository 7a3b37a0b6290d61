package user

import (
	"net/http"

	"boxmas/internal/shared/errors"
)

// NewEmailTakenError reports a registration for an email that already has an account.
// It is a conflict, rendered with a 400 status.
func NewEmailTakenError() *errors.AppError {
	err := errors.NewConflictError("Email is already registered")
	err.Code = http.StatusBadRequest
	return err
}

// NewUserNotFoundError reports a missing user record
func NewUserNotFoundError() *errors.AppError {
	return errors.NewNotFoundError("User not found")
}
