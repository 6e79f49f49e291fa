package dto

import "github.com/oreumshop/commerce-api/internal/entity"

type SignupInput struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// ExpiresAt is the token expiry as a Unix timestamp.
	ExpiresAt int64        `json:"expires_at"`
	User      *entity.User `json:"user"`
}

type AdminCreateUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Nickname string `json:"nickname" binding:"required,min=2,max=50"`
	Password string `json:"password" binding:"required,min=8"`
	IsStaff  bool   `json:"is_staff"`
}

type AdminUpdateUserInput struct {
	Nickname *string `json:"nickname" binding:"omitempty,min=2,max=50"`
	Password *string `json:"password" binding:"omitempty,min=8"`
	IsActive *bool   `json:"is_active"`
	IsStaff  *bool   `json:"is_staff"`
}

type UserFilter struct {
	IsActive *bool  `form:"is_active"`
	IsStaff  *bool  `form:"is_staff"`
	Search   string `form:"search"`
	Page     int    `form:"page"`
	Limit    int    `form:"limit"`
}
