package dto

import (
	"time"

	"boxmas/internal/domain/user"
)

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterUserRequest is the body of POST /user
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UserDTO is the public view of a user. It never carries the credential.
type UserDTO struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type LoginResponse struct {
	User  *UserDTO `json:"user"`
	Token string   `json:"token"`
}

type LogoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type LogoutAllResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	RevokedCount int64  `json:"revokedCount"`
}

type RegisterUserResponse struct {
	User *UserDTO `json:"user"`
}

// ToUserDTO converts a domain user to its public view
func ToUserDTO(u *user.User) *UserDTO {
	if u == nil {
		return nil
	}
	return &UserDTO{
		ID:        u.SID(),
		Name:      u.Name(),
		Email:     u.Email(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

// ToUserDTOList converts users, always returning a non-nil slice
func ToUserDTOList(users []*user.User) []*UserDTO {
	result := make([]*UserDTO, 0, len(users))
	for _, u := range users {
		result = append(result, ToUserDTO(u))
	}
	return result
}
