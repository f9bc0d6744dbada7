package dto

import "github.com/zenapticlabs/expense-management-server/internal/core/domain"

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	Currency    string `json:"currency" binding:"omitempty,currencycode"`
	CompanyCode string `json:"companyCode"`
}

// LoginRequest defines the credentials for a login attempt.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Currency string `json:"currency"`
	IsStaff  bool   `json:"isStaff"`
}

// AuthResponse carries the issued token and its owner.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:       u.UserID,
		Email:    u.Email,
		Name:     u.Name,
		Currency: u.Currency,
		IsStaff:  u.IsStaff,
	}
}
