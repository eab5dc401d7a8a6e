package entity

import "time"

// User represents an authenticated account that can author articles.
// PasswordHash holds a bcrypt hash and is never serialized to API responses.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
