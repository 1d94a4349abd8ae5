package dto

import "time"

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Viewer      string    `json:"viewer"`
}

type AuthStatusResponse struct {
	Enabled bool `json:"enabled"`
}
