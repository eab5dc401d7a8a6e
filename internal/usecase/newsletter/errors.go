// Package newsletter manages the subscriber list: signing up, opting out
// and the admin-facing listing.
package newsletter

import "errors"

var (
	// ErrAlreadySubscribed is returned when the email already has an
	// active subscription.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrSubscriberNotFound is returned when no subscription exists for
	// the email.
	ErrSubscriberNotFound = errors.New("subscriber not found")

	// ErrForbidden is returned when the acting user may not view the
	// subscriber list.
	ErrForbidden = errors.New("forbidden")
)
