package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecipe() *models.Recipe {
	return &models.Recipe{
		RecipeDB: models.RecipeDB{
			ID:          3,
			UserID:      1,
			Title:       "Thai Prawn Curry",
			Description: "Spicy",
			TimeMinutes: 30,
			Price:       decimal.RequireFromString("5.5"),
		},
		Tags:        []models.LabelDB{{ID: 2, Name: "Thai"}, {ID: 1, Name: "Dinner"}},
		Ingredients: []models.LabelDB{},
	}
}

func TestListRecipesHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeLister(ctrl)
	mockSvc.EXPECT().List(gomock.Any(), int64(1)).Return([]models.Recipe{*sampleRecipe()}, nil)

	rr := httptest.NewRecorder()
	NewListRecipesHandler(mockSvc)(rr, newRequest(t, http.MethodGet, "/recipes", "", testUser, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	items := decodeBody[[]map[string]any](t, rr)
	require.Len(t, items, 1)
	assert.Equal(t, "5.50", items[0]["price"])
	assert.NotContains(t, items[0], "description", "list items omit the description")
	assert.Len(t, items[0]["tags"], 2)
	assert.Equal(t, []any{}, items[0]["ingredients"])
}

func TestListRecipesHandler_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRecipeLister(ctrl)
	mockSvc.EXPECT().List(gomock.Any(), int64(1)).Return(nil, nil)

	rr := httptest.NewRecorder()
	NewListRecipesHandler(mockSvc)(rr, newRequest(t, http.MethodGet, "/recipes", "", testUser, ""))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

func TestGetRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		id           string
		mockSetup    func(m *MockRecipeGetter)
		expectedCode int
	}{
		{
			name: "found",
			id:   "3",
			mockSetup: func(m *MockRecipeGetter) {
				recipe := sampleRecipe()
				recipe.ImageURL = "/media/uploads/recipe/a.png"
				m.EXPECT().Get(gomock.Any(), int64(1), int64(3)).Return(recipe, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "not owned",
			id:   "4",
			mockSetup: func(m *MockRecipeGetter) {
				m.EXPECT().Get(gomock.Any(), int64(1), int64(4)).Return(nil, services.ErrRecipeNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "bad id",
			id:           "abc",
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRecipeGetter(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			rr := httptest.NewRecorder()
			NewGetRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodGet, "/recipes/"+tt.id, "", testUser, tt.id))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusOK {
				resp := decodeBody[models.RecipeDetailResponse](t, rr)
				assert.Equal(t, "Spicy", resp.Description)
				require.NotNil(t, resp.Image)
				assert.Equal(t, "/media/uploads/recipe/a.png", *resp.Image)
				return
			}
			assert.Equal(t, "Not found.", decodeBody[models.ErrorResponse](t, rr).Error)
		})
	}
}

func TestCreateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("nested tags", func(t *testing.T) {
		mockSvc := NewMockRecipeCreator(ctrl)
		mockSvc.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, in services.RecipeInput) (*models.Recipe, error) {
				assert.Equal(t, "Thai Prawn Curry", *in.Title)
				assert.Equal(t, "5.5", in.Price.String())
				require.NotNil(t, in.Tags)
				assert.Equal(t, []string{"Thai", "Dinner"}, *in.Tags)
				assert.Nil(t, in.Ingredients)
				return sampleRecipe(), nil
			})

		body := `{"title":"Thai Prawn Curry","time_minutes":30,"price":"5.50","user":99,"tags":[{"name":"Thai"},{"name":"Dinner"}]}`
		rr := httptest.NewRecorder()
		NewCreateRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodPost, "/recipes", body, testUser, ""))

		assert.Equal(t, http.StatusCreated, rr.Code)
		resp := decodeBody[models.RecipeDetailResponse](t, rr)
		assert.Equal(t, int64(3), resp.ID)
		assert.Len(t, resp.Tags, 2)
		assert.Nil(t, resp.Image)
	})

	t.Run("validation error", func(t *testing.T) {
		mockSvc := NewMockRecipeCreator(ctrl)
		mockSvc.EXPECT().Create(gomock.Any(), int64(1), gomock.Any()).
			Return(nil, validation.FieldError("tags[0].name", validation.MsgBlank))

		rr := httptest.NewRecorder()
		NewCreateRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodPost, "/recipes", `{"tags":[{"name":""}]}`, testUser, ""))

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, validation.MsgBlank, decodeBody[models.ErrorResponse](t, rr).Fields["tags[0].name"])
	})

	t.Run("anonymous", func(t *testing.T) {
		mockSvc := NewMockRecipeCreator(ctrl)

		rr := httptest.NewRecorder()
		NewCreateRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodPost, "/recipes", `{}`, nil, ""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tests := []struct {
		name         string
		partial      bool
		body         string
		check        func(t *testing.T, in services.RecipeInput)
		err          error
		expectedCode int
	}{
		{
			name:    "patch clears tags",
			partial: true,
			body:    `{"tags":[]}`,
			check: func(t *testing.T, in services.RecipeInput) {
				require.NotNil(t, in.Tags)
				assert.Empty(t, *in.Tags)
				assert.Nil(t, in.Ingredients)
				assert.Nil(t, in.Title)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:    "null tags means absent",
			partial: true,
			body:    `{"tags":null,"title":"New"}`,
			check: func(t *testing.T, in services.RecipeInput) {
				assert.Nil(t, in.Tags)
				assert.Equal(t, "New", *in.Title)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "not owned",
			partial:      false,
			body:         `{"title":"x","time_minutes":1,"price":"1.00"}`,
			err:          services.ErrRecipeNotFound,
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "store failure",
			partial:      true,
			body:         `{"title":"x"}`,
			err:          errors.New("db down"),
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockRecipeUpdater(ctrl)
			mockSvc.EXPECT().Update(gomock.Any(), int64(1), int64(3), gomock.Any(), tt.partial).
				DoAndReturn(func(_ context.Context, _, _ int64, in services.RecipeInput, _ bool) (*models.Recipe, error) {
					if tt.check != nil {
						tt.check(t, in)
					}
					if tt.err != nil {
						return nil, tt.err
					}
					return sampleRecipe(), nil
				})

			rr := httptest.NewRecorder()
			NewUpdateRecipeHandler(mockSvc, tt.partial)(rr, newRequest(t, http.MethodPatch, "/recipes/3", tt.body, testUser, "3"))

			assert.Equal(t, tt.expectedCode, rr.Code)
		})
	}
}

func TestDeleteRecipeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("deleted", func(t *testing.T) {
		mockSvc := NewMockRecipeDeleter(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), int64(1), int64(3)).Return(nil)

		rr := httptest.NewRecorder()
		NewDeleteRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodDelete, "/recipes/3", "", testUser, "3"))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})

	t.Run("other user's recipe", func(t *testing.T) {
		mockSvc := NewMockRecipeDeleter(ctrl)
		mockSvc.EXPECT().Delete(gomock.Any(), int64(1), int64(3)).Return(services.ErrRecipeNotFound)

		rr := httptest.NewRecorder()
		NewDeleteRecipeHandler(mockSvc)(rr, newRequest(t, http.MethodDelete, "/recipes/3", "", testUser, "3"))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
