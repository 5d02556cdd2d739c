package dto

import (
	"time"

	"github.com/HimanshuSagar02/RajChemReacor/internal/models"
)

// SignupRequest is the payload for password-based registration.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=student educator"`
}

// LoginRequest is the payload for password-based login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// GoogleSignupRequest carries the Google sign-in result. The ID token is
// verified server-side; the profile fields fill in name and photo on first
// upsert.
type GoogleSignupRequest struct {
	IDToken  string `json:"id_token" validate:"required"`
	Name     string `json:"name" validate:"omitempty,max=100"`
	PhotoURL string `json:"photo_url" validate:"omitempty,url"`
	Role     string `json:"role" validate:"omitempty,oneof=student educator"`
}

// UserResponse is the serialized account representation.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	PhotoURL  string    `json:"photo_url"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse converts a model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		PhotoURL:  model.PhotoURL,
		CreatedAt: model.CreatedAt,
	}
}

// AuthResponse bundles the signed-in user with the issued session token.
// The token also travels as an HTTP-only cookie; it is echoed here for
// clients that prefer the bearer header.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}
