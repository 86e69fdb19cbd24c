package dto

import "github.com/kickstarthq/talent-backend/internal/entity"

type SignUpInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"full_name" binding:"required,max=100"`
	// Admins are never self-registered.
	Role string `json:"role" binding:"required,oneof=student startup"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	TokenType   string          `json:"token_type"`
	ExpiresIn   int64           `json:"expires_in"`
	Account     *entity.Account `json:"account"`
	// Where the client should land after login.
	Redirect string `json:"redirect"`
}
