package handlers

//go:generate mockgen -source=labels.go -destination=labels_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// LabelLister lists the caller's tags or ingredients.
type LabelLister interface {
	List(ctx context.Context, userID int64) ([]models.LabelDB, error)
}

// LabelCreator gets or creates a label by name.
type LabelCreator interface {
	Create(ctx context.Context, userID int64, name string) (*models.LabelDB, bool, error)
}

// LabelRenamer renames a label.
type LabelRenamer interface {
	Rename(ctx context.Context, userID, id int64, name *string) (*models.LabelDB, error)
}

// LabelDeleter deletes a label.
type LabelDeleter interface {
	Delete(ctx context.Context, userID, id int64) error
}

// NewListLabelsHandler returns an HTTP handler listing the caller's labels
// in reverse name order.
// @Summary List tags or ingredients
// @Tags labels
// @Produce json
// @Success 200 {array} models.LabelResponse "Labels"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /tags [get]
// @Router /ingredients [get]
// @Security BearerAuth
func NewListLabelsHandler(svc LabelLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		labels, err := svc.List(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toLabelResponses(labels))
	}
}

// NewCreateLabelHandler returns an HTTP handler that returns the caller's
// label with the given name, creating it (201) when it does not exist yet.
// @Summary Create a tag or ingredient
// @Tags labels
// @Accept json
// @Produce json
// @Param request body models.LabelRequest true "Label"
// @Success 200 {object} models.LabelResponse "Existing label"
// @Success 201 {object} models.LabelResponse "Created label"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /tags [post]
// @Router /ingredients [post]
// @Security BearerAuth
func NewCreateLabelHandler(svc LabelCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.LabelRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		label, created, err := svc.Create(r.Context(), user.ID, req.Name)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		status := http.StatusOK
		if created {
			status = http.StatusCreated
		}
		writeJSON(w, status, models.LabelResponse{ID: label.ID, Name: label.Name})
	}
}

// NewUpdateLabelHandler returns an HTTP handler renaming a label.
// PUT (partial unset) requires name.
// @Summary Rename a tag or ingredient
// @Tags labels
// @Accept json
// @Produce json
// @Param id path int true "Label ID"
// @Param request body models.LabelUpdateRequest true "Label"
// @Success 200 {object} models.LabelResponse "Label"
// @Failure 400 {object} models.ErrorResponse "Invalid input or name taken"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /tags/{id} [put]
// @Router /tags/{id} [patch]
// @Router /ingredients/{id} [put]
// @Router /ingredients/{id} [patch]
// @Security BearerAuth
func NewUpdateLabelHandler(svc LabelRenamer, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.LabelUpdateRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		if !partial && req.Name == nil {
			writeFieldError(w, "name", validation.MsgRequired)
			return
		}

		label, err := svc.Rename(r.Context(), user.ID, id, req.Name)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, models.LabelResponse{ID: label.ID, Name: label.Name})
	}
}

// NewDeleteLabelHandler returns an HTTP handler deleting a label.
// Recipes using it lose the link and are otherwise unchanged.
// @Summary Delete a tag or ingredient
// @Tags labels
// @Param id path int true "Label ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /tags/{id} [delete]
// @Router /ingredients/{id} [delete]
// @Security BearerAuth
func NewDeleteLabelHandler(svc LabelDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			writeServiceError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
