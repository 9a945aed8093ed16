package dto

import (
	"github.com/SscSPs/drycleaner_app/internal/core/domain"
)

// CreateUserRequest defines the data needed to create a staff account.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone" binding:"required"`
}

// ListUsersParams defines query parameters for listing users.
type ListUsersParams struct {
	Limit  int `form:"limit,default=50" binding:"min=1,max=500"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// UserResponse is the public view of a user account.
type UserResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Phone string          `json:"phone"`
	Role  domain.UserRole `json:"role"`
}

// ToUserResponse converts a domain.UserAccount to its DTO.
func ToUserResponse(user *domain.UserAccount) UserResponse {
	return UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Phone: user.Phone,
		Role:  user.Role,
	}
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ToListUserResponse converts a slice of domain.UserAccount to ListUsersResponse DTO
func ToListUserResponse(users []domain.UserAccount) ListUsersResponse {
	userResponses := make([]UserResponse, len(users))
	for i := range users {
		userResponses[i] = ToUserResponse(&users[i])
	}
	return ListUsersResponse{
		Users: userResponses,
	}
}
