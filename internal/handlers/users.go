package handlers

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// UserRegisterer defines the interface that the service must implement.
type UserRegisterer interface {
	Register(ctx context.Context, email, password, name string) (*models.UserDB, error)
}

// NewCreateUserHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new account. The email domain is lower-cased; the password is hashed and never returned.
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.CreateUserRequest true "User registration request"
// @Success 201 {object} models.UserResponse "User created"
// @Failure 400 {object} models.ErrorResponse "Invalid input or email already taken"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/create [post]
func NewCreateUserHandler(svc UserRegisterer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.CreateUserRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusCreated, toUserResponse(user))
	}
}

func toUserResponse(u *models.UserDB) models.UserResponse {
	return models.UserResponse{Email: u.Email, Name: u.Name}
}
