package handlers

//go:generate mockgen -source=me.go -destination=me_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// ProfileUpdater updates the caller's own account.
type ProfileUpdater interface {
	UpdateProfile(ctx context.Context, userID int64, upd services.ProfileUpdate) (*models.UserDB, error)
}

// NewGetMeHandler returns an HTTP handler for the caller's profile.
// @Summary Get own profile
// @Tags users
// @Produce json
// @Success 200 {object} models.UserResponse "Profile"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /users/me [get]
// @Security BearerAuth
func NewGetMeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, toUserResponse(user))
	}
}

// NewUpdateMeHandler returns an HTTP handler updating the caller's profile.
// With partial unset (PUT) email, password and name are required.
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Param request body models.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} models.UserResponse "Updated profile"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /users/me [put]
// @Router /users/me [patch]
// @Security BearerAuth
func NewUpdateMeHandler(svc ProfileUpdater, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.UpdateProfileRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		if !partial {
			fields := map[string]string{}
			if req.Email == nil {
				fields["email"] = validation.MsgRequired
			}
			if req.Password == nil {
				fields["password"] = validation.MsgRequired
			}
			if req.Name == nil {
				fields["name"] = validation.MsgRequired
			}
			if len(fields) > 0 {
				writeValidationError(w, validation.NewError(fields))
				return
			}
		}

		updated, err := svc.UpdateProfile(r.Context(), user.ID, services.ProfileUpdate{
			Email:    req.Email,
			Name:     req.Name,
			Password: req.Password,
		})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, toUserResponse(updated))
	}
}
