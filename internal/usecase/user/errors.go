// Package user provides admin-managed account operations: registering
// editors and admins, listing and updating accounts, and removing them.
package user

import "errors"

var (
	// ErrUserNotFound is returned when no account exists for the ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidUserID is returned when the user ID is not positive.
	ErrInvalidUserID = errors.New("invalid user id")

	// ErrEmailTaken is returned when registering with an email that
	// already belongs to an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrForbidden is returned when the acting user may not manage
	// accounts.
	ErrForbidden = errors.New("forbidden")
)
