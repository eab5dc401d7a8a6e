package entity

import "time"

// Subscriber represents a newsletter subscriber.
// At most one record exists per email address. Unsubscribing sets Active
// to false but retains the record; re-subscribing reactivates it instead
// of creating a duplicate.
type Subscriber struct {
	ID        int64
	Email     string
	Active    bool
	CreatedAt time.Time
}
