package dto

import "time"

// LoginRequest payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse describes the issued session alongside the profile.
type SessionResponse struct {
	ExpiresAt time.Time `json:"expires_at"`
}
