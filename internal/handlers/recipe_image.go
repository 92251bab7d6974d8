package handlers

//go:generate mockgen -source=recipe_image.go -destination=recipe_image_mock.go -package=handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// MaxImageSize is the largest accepted upload body in bytes.
const MaxImageSize = 10 << 20

// ImageUploader attaches an image to a recipe.
type ImageUploader interface {
	Upload(ctx context.Context, userID, recipeID int64, data []byte) (*services.RecipeImage, error)
}

// NewUploadRecipeImageHandler returns an HTTP handler storing a recipe image
// sent as the multipart field "image".
// @Summary Upload a recipe image
// @Description Replaces the recipe's image. The file must be a JPEG, PNG, GIF or WebP image.
// @Tags recipes
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file"
// @Success 200 {object} models.RecipeImageResponse "Stored image"
// @Failure 400 {object} models.ErrorResponse "Invalid image"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Failure 413 {object} models.ErrorResponse "Image too large"
// @Router /recipes/{id}/upload-image [post]
// @Security BearerAuth
func NewUploadRecipeImageHandler(svc ImageUploader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, MaxImageSize+1<<20)
		file, _, err := r.FormFile("image")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeError(w, http.StatusRequestEntityTooLarge, "Image too large.")
				return
			}
			writeFieldError(w, "image", "No file was submitted.")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, MaxImageSize+1))
		if err != nil {
			writeFieldError(w, "image", "No file was submitted.")
			return
		}
		if len(data) > MaxImageSize {
			writeError(w, http.StatusRequestEntityTooLarge, "Image too large.")
			return
		}
		if len(data) == 0 {
			writeFieldError(w, "image", "The submitted file is empty.")
			return
		}

		img, err := svc.Upload(r.Context(), user.ID, id, data)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, models.RecipeImageResponse{
			ID:       img.RecipeID,
			Image:    img.URL,
			BlurHash: img.BlurHash,
			Width:    img.Width,
			Height:   img.Height,
		})
	}
}
