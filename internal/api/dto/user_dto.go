package dto

import (
	"time"

	"github.com/spec-kit/catalog-service/internal/domain"
)

// UserResponse is the rendered form of a user. Passwords are never included.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// NewUserResponse converts a domain user.
func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username}
}

// NewUserList converts a slice, rendering an empty list as [].
func NewUserList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// AuthResponse standard response for the login endpoint.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ProtectedResponse confirms a valid bearer token.
type ProtectedResponse struct {
	Message  string `json:"message"`
	Username string `json:"username"`
}
