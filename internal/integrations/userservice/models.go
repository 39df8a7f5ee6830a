package userservice

import "github.com/google/uuid"

// User модель пользователя из UserService
type User struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	FullName   string    `json:"full_name"`
	AvatarURL  *string   `json:"avatar_url,omitempty"`
	IsBusiness bool      `json:"is_business"`
	IsBanned   bool      `json:"is_banned"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
