// FILE: internal/dto/auth_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"` // bcrypt reads at most 72 bytes
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Email = NormalizeEmail(r.Email)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type UserDTO struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// AuthResponse is returned by register and login. ExpiresIn is in seconds.
type AuthResponse struct {
	Message   string  `json:"message"`
	Token     string  `json:"token"`
	ExpiresIn int64   `json:"expiresIn"`
	User      UserDTO `json:"user"`
}

type MeResponse struct {
	User UserDTO `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
