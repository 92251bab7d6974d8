package handlers

//go:generate mockgen -source=token.go -destination=token_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Logouter revokes issued tokens.
type Logouter interface {
	Logout(ctx context.Context, token string) error
}

// NewCreateTokenHandler returns an HTTP handler that exchanges credentials for a token.
// @Summary Obtain a token
// @Description Authenticates the user and returns a bearer token
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.TokenRequest true "Credentials"
// @Success 200 {object} models.TokenResponse "Token issued"
// @Failure 400 {object} models.ErrorResponse "Invalid credentials"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/token [post]
func NewCreateTokenHandler(svc Loginer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.TokenRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		token, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.TokenResponse{Token: token})
	}
}

// NewRevokeTokenHandler returns an HTTP handler that revokes the presented token.
// @Summary Revoke the token
// @Tags users
// @Produce json
// @Success 204 "Token revoked"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /users/token [delete]
// @Security BearerAuth
func NewRevokeTokenHandler(svc Logouter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Logout(r.Context(), middlewares.TokenFromContext(r.Context())); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
