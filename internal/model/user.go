package model

import "time"

const (
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"
)

// User represents an account in the marketplace
type User struct {
	ID             int64     `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"` // Do not expose password hash in JSON responses
	Role           string    `json:"role"`
	Phone          *string   `json:"phone,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Bio            *string   `json:"bio,omitempty"`
	ProfilePicture *string   `json:"profilePicture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// RegisterRequest is used for creating a new account
type RegisterRequest struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,min=6"`
	Role     string  `json:"role" binding:"required,oneof=employer candidate"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	Bio      *string `json:"bio"`
}

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest is bound from the multipart profile form.
// The optional profile picture file is handled separately by the handler.
type UpdateProfileRequest struct {
	Name     *string `form:"name"`
	Phone    *string `form:"phone"`
	Address  *string `form:"address"`
	Bio      *string `form:"bio"`
	Password *string `form:"password" binding:"omitempty,min=6"`
}
