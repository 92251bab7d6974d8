package models

import "time"

// CreateUserRequest represents the JSON body for user registration
// swagger:model CreateUserRequest
type CreateUserRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required,notblank,email,max=255"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required,min=5,max=128"`

	// Display name
	// required: true
	// example: John
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// UpdateProfileRequest represents the JSON body for PUT/PATCH /users/me.
// Absent fields are left unchanged on PATCH.
// swagger:model UpdateProfileRequest
type UpdateProfileRequest struct {
	// Email
	// example: john@example.com
	Email *string `json:"email" validate:"omitempty,notblank,email,max=255"`

	// Password
	// example: secret123
	Password *string `json:"password" validate:"omitempty,min=5,max=128"`

	// Display name
	// example: John
	Name *string `json:"name" validate:"omitempty,notblank,max=255"`
}

// UserResponse represents a user as returned by the API
// swagger:model UserResponse
type UserResponse struct {
	// Email
	// example: john@example.com
	Email string `json:"email"`

	// Display name
	// example: John
	Name string `json:"name"`
}

// AdminUserResponse represents a user row in the staff listing
// swagger:model AdminUserResponse
type AdminUserResponse struct {
	ID          int64      `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsActive    bool       `json:"is_active"`
	IsStaff     bool       `json:"is_staff"`
	IsSuperuser bool       `json:"is_superuser"`
	LastLogin   *time.Time `json:"last_login"`
}

// TokenRequest represents the JSON body for token issue
// swagger:model TokenRequest
type TokenRequest struct {
	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email" validate:"required,notblank"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password" validate:"required"`
}

// TokenResponse represents a successful token issue response
// swagger:model TokenResponse
type TokenResponse struct {
	// Bearer token
	// example: JWT_TOKEN
	Token string `json:"token"`
}

// ErrorResponse represents any error response of the API
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// example: Invalid input.
	Error string `json:"error"`

	// Per-field messages for validation failures
	Fields map[string]string `json:"fields,omitempty"`
}
