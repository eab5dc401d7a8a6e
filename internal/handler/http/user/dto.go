// Package user provides HTTP handlers for account administration:
// registering, listing, reading, updating and deleting users. All
// routes are admin only.
package user

import (
	"errors"
	"net/http"
	"time"

	"technews/internal/domain/entity"
	userUC "technews/internal/usecase/user"
)

// DTO represents the JSON structure for user data transfer. The password
// hash never leaves the server.
type DTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func toDTO(u *entity.User) DTO {
	return DTO{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

func toDTOs(users []*entity.User) []DTO {
	out := make([]DTO, 0, len(users))
	for _, u := range users {
		out = append(out, toDTO(u))
	}
	return out
}

func statusForError(err error) int {
	var vErr *entity.ValidationError
	switch {
	case errors.Is(err, userUC.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, userUC.ErrInvalidUserID):
		return http.StatusBadRequest
	case errors.Is(err, userUC.ErrEmailTaken):
		return http.StatusBadRequest
	case errors.Is(err, userUC.ErrForbidden):
		return http.StatusForbidden
	case errors.As(err, &vErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
