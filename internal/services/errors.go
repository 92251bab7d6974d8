package services

import "errors"

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
	ErrUnauthenticated    = errors.New("invalid or expired token")
	ErrForbidden          = errors.New("you do not have permission to perform this action")
	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrLabelNotFound      = errors.New("label not found")
	ErrLabelNameTaken     = errors.New("label with this name already exists")
	ErrInvalidImage       = errors.New("upload a valid image")
)
