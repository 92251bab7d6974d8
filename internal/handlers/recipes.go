package handlers

//go:generate mockgen -source=recipes.go -destination=recipes_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
)

// RecipeLister lists the caller's recipes.
type RecipeLister interface {
	List(ctx context.Context, userID int64) ([]models.Recipe, error)
}

// RecipeGetter reads one of the caller's recipes.
type RecipeGetter interface {
	Get(ctx context.Context, userID, id int64) (*models.Recipe, error)
}

// RecipeCreator creates recipes with nested labels.
type RecipeCreator interface {
	Create(ctx context.Context, userID int64, in services.RecipeInput) (*models.Recipe, error)
}

// RecipeUpdater updates recipes with nested labels.
type RecipeUpdater interface {
	Update(ctx context.Context, userID, id int64, in services.RecipeInput, partial bool) (*models.Recipe, error)
}

// RecipeDeleter deletes recipes.
type RecipeDeleter interface {
	Delete(ctx context.Context, userID, id int64) error
}

// NewListRecipesHandler returns an HTTP handler listing the caller's recipes.
// @Summary List recipes
// @Description Returns the caller's recipes, newest first
// @Tags recipes
// @Produce json
// @Success 200 {array} models.RecipeResponse "Recipes"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 500 {object} models.ErrorResponse "Internal server error"
// @Router /recipes [get]
// @Security BearerAuth
func NewListRecipesHandler(svc RecipeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		recipes, err := svc.List(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		resp := make([]models.RecipeResponse, 0, len(recipes))
		for _, recipe := range recipes {
			resp = append(resp, toRecipeResponse(recipe))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetRecipeHandler returns an HTTP handler for one recipe.
// @Summary Get a recipe
// @Tags recipes
// @Produce json
// @Param id path int true "Recipe ID"
// @Success 200 {object} models.RecipeDetailResponse "Recipe"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /recipes/{id} [get]
// @Security BearerAuth
func NewGetRecipeHandler(svc RecipeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		recipe, err := svc.Get(r.Context(), user.ID, id)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecipeDetailResponse(*recipe))
	}
}

// NewCreateRecipeHandler returns an HTTP handler creating a recipe.
// Nested tags and ingredients are matched by name or created.
// @Summary Create a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param request body models.RecipeRequest true "Recipe"
// @Success 201 {object} models.RecipeDetailResponse "Created recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Router /recipes [post]
// @Security BearerAuth
func NewCreateRecipeHandler(svc RecipeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}

		var req models.RecipeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		recipe, err := svc.Create(r.Context(), user.ID, toRecipeInput(req))
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusCreated, toRecipeDetailResponse(*recipe))
	}
}

// NewUpdateRecipeHandler returns an HTTP handler updating a recipe.
// PUT (partial unset) requires title, time_minutes and price; PATCH does not.
// A present tags or ingredients list replaces the current set.
// @Summary Update a recipe
// @Tags recipes
// @Accept json
// @Produce json
// @Param id path int true "Recipe ID"
// @Param request body models.RecipeRequest true "Recipe fields"
// @Success 200 {object} models.RecipeDetailResponse "Updated recipe"
// @Failure 400 {object} models.ErrorResponse "Invalid input"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /recipes/{id} [put]
// @Router /recipes/{id} [patch]
// @Security BearerAuth
func NewUpdateRecipeHandler(svc RecipeUpdater, partial bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req models.RecipeRequest
		if !decodeJSON(w, r, &req) {
			return
		}

		recipe, err := svc.Update(r.Context(), user.ID, id, toRecipeInput(req), partial)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toRecipeDetailResponse(*recipe))
	}
}

// NewDeleteRecipeHandler returns an HTTP handler deleting a recipe.
// @Summary Delete a recipe
// @Tags recipes
// @Param id path int true "Recipe ID"
// @Success 204 "Deleted"
// @Failure 401 {object} models.ErrorResponse "Unauthorized"
// @Failure 404 {object} models.ErrorResponse "Not found"
// @Router /recipes/{id} [delete]
// @Security BearerAuth
func NewDeleteRecipeHandler(svc RecipeDeleter) http.HandlerFunc {
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

func toRecipeInput(req models.RecipeRequest) services.RecipeInput {
	return services.RecipeInput{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Tags:        labelNames(req.Tags),
		Ingredients: labelNames(req.Ingredients),
	}
}

// labelNames keeps the difference between an absent list (nil) and an empty one.
func labelNames(labels *[]models.LabelRequest) *[]string {
	if labels == nil {
		return nil
	}
	names := make([]string, 0, len(*labels))
	for _, l := range *labels {
		names = append(names, l.Name)
	}
	return &names
}

func toLabelResponses(labels []models.LabelDB) []models.LabelResponse {
	resp := make([]models.LabelResponse, 0, len(labels))
	for _, l := range labels {
		resp = append(resp, models.LabelResponse{ID: l.ID, Name: l.Name})
	}
	return resp
}

func toRecipeResponse(recipe models.Recipe) models.RecipeResponse {
	return models.RecipeResponse{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price.StringFixed(2),
		Link:        recipe.Link,
		Tags:        toLabelResponses(recipe.Tags),
		Ingredients: toLabelResponses(recipe.Ingredients),
	}
}

func toRecipeDetailResponse(recipe models.Recipe) models.RecipeDetailResponse {
	resp := models.RecipeDetailResponse{
		RecipeResponse: toRecipeResponse(recipe),
		Description:    recipe.Description,
	}
	if recipe.ImageURL != "" {
		image := recipe.ImageURL
		resp.Image = &image
	}
	return resp
}
