package handlers

//go:generate mockgen -source=admin.go -destination=admin_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
)

// UserAdminLister lists accounts on behalf of a staff user.
type UserAdminLister interface {
	ListUsers(ctx context.Context, actor *models.UserDB) ([]models.UserDB, error)
}

// NewListUsersHandler returns an HTTP handler listing all accounts for staff.
// @Summary List users
// @Description Staff only. Users are ordered by id.
// @Tags admin
// @Produce json
// @Success 200 {array} models.AdminUserResponse "Users"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 403 {object} models.ErrorResponse "Not staff"
// @Router /admin/users [get]
// @Security BearerAuth
func NewListUsersHandler(svc UserAdminLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		users, err := svc.ListUsers(r.Context(), user)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]models.AdminUserResponse, 0, len(users))
		for _, u := range users {
			resp = append(resp, models.AdminUserResponse{
				ID:          u.ID,
				Email:       u.Email,
				Name:        u.Name,
				IsActive:    u.IsActive,
				IsStaff:     u.IsStaff,
				IsSuperuser: u.IsSuperuser,
				LastLogin:   u.LastLogin,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
