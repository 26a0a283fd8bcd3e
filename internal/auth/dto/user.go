package dto

import (
	"time"

	"github.com/KshitijChavan-Stack/authflow/internal/auth/domain"
)

type UserOutput struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	FullName        string     `json:"full_name"`
	Role            string     `json:"role"`
	IsEmailVerified bool       `json:"is_email_verified"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
}

// NewUserOutput builds the external user summary from a loaded entity
// snapshot.
func NewUserOutput(u *domain.User) *UserOutput {
	return &UserOutput{
		ID:              u.ID.String(),
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		FullName:        u.FullName(),
		Role:            u.Role,
		IsEmailVerified: u.IsEmailVerified,
		LastLogin:       u.LastLogin,
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
