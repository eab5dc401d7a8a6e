package entity

import (
	"fmt"
	"net/mail"
	"strings"
)

// Field length limits applied before records reach the persistence layer.
const (
	maxEmailLength    = 254
	maxTitleLength    = 300
	maxCategoryLength = 100
)

// ValidateEmail validates the format of an email address.
// The address is parsed with net/mail; display names ("Alice <a@b.c>")
// are rejected because subscriber and user records store bare addresses.
// Returns a ValidationError if the address is invalid or empty.
func ValidateEmail(email string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "is required"}
	}
	if len(email) > maxEmailLength {
		return &ValidationError{
			Field:   "email",
			Message: fmt.Sprintf("must not exceed %d characters", maxEmailLength),
		}
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return &ValidationError{Field: "email", Message: "is not a valid email address"}
	}
	if addr.Address != email {
		// Reject display names and surrounding whitespace
		return &ValidationError{Field: "email", Message: "must be a bare email address"}
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address so that the
// unique-per-address invariant holds regardless of input casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateArticleFields checks required article fields and length limits.
// Returns a ValidationError naming the first offending field.
func ValidateArticleFields(title, content, category string) error {
	if strings.TrimSpace(title) == "" {
		return &ValidationError{Field: "title", Message: "is required"}
	}
	if len(title) > maxTitleLength {
		return &ValidationError{
			Field:   "title",
			Message: fmt.Sprintf("must not exceed %d characters", maxTitleLength),
		}
	}
	if strings.TrimSpace(content) == "" {
		return &ValidationError{Field: "content", Message: "is required"}
	}
	if strings.TrimSpace(category) == "" {
		return &ValidationError{Field: "category", Message: "is required"}
	}
	if len(category) > maxCategoryLength {
		return &ValidationError{
			Field:   "category",
			Message: fmt.Sprintf("must not exceed %d characters", maxCategoryLength),
		}
	}
	return nil
}
