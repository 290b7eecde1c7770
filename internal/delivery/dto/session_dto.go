package dto

import "time"

// SessionResponse describes the caller behind the request's token
type SessionResponse struct {
	Subject   string     `json:"subject"`
	Role      string     `json:"role"`
	TokenID   string     `json:"token_id,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
