package dto

import "time"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type SessionDTO struct {
	Token     string    `json:"token"`
	ProfileID string    `json:"profile_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
