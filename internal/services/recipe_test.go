package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/services"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recipeMocks struct {
	reader      *services.MockRecipeReader
	writer      *services.MockRecipeWriter
	tags        *services.MockLabelLinker
	ingredients *services.MockLabelLinker
	reconciler  *services.MockLabelReconciler
	media       *services.MockMediaStore
	publisher   *services.MockEventPublisher
	committed   []func()
}

// commit runs the side effects deferred until commit.
func (m *recipeMocks) commit() {
	for _, fn := range m.committed {
		fn()
	}
	m.committed = nil
}

func newRecipeService(t *testing.T) (*services.RecipeService, *recipeMocks) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := &recipeMocks{
		reader:      services.NewMockRecipeReader(ctrl),
		writer:      services.NewMockRecipeWriter(ctrl),
		tags:        services.NewMockLabelLinker(ctrl),
		ingredients: services.NewMockLabelLinker(ctrl),
		reconciler:  services.NewMockLabelReconciler(ctrl),
		media:       services.NewMockMediaStore(ctrl),
		publisher:   services.NewMockEventPublisher(ctrl),
	}
	svc := services.NewRecipeService(m.reader, m.writer, m.tags, m.ingredients, m.reconciler, m.media,
		services.WithEventPublisher(m.publisher),
		services.WithCommitHook(func(_ context.Context, fn func()) {
			m.committed = append(m.committed, fn)
		}),
	)
	return svc, m
}

func intPtr(i int) *int { return &i }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func namesPtr(names ...string) *[]string { return &names }

// expectLoad sets up the reads done when a recipe is returned.
func (m *recipeMocks) expectLoad(ctx context.Context, row models.RecipeDB, tags, ingredients []models.LabelDB) {
	m.reader.EXPECT().GetByID(ctx, row.UserID, row.ID).Return(&row, nil)
	m.tags.EXPECT().ListByRecipes(ctx, []int64{row.ID}).Return(map[int64][]models.LabelDB{row.ID: tags}, nil)
	m.ingredients.EXPECT().ListByRecipes(ctx, []int64{row.ID}).Return(map[int64][]models.LabelDB{row.ID: ingredients}, nil)
}

func TestRecipeService_List(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	img := "uploads/recipe/a.png"
	rows := []models.RecipeDB{{ID: 2, UserID: 1, Title: "B", Image: &img}, {ID: 1, UserID: 1, Title: "A"}}
	m.reader.EXPECT().List(ctx, int64(1)).Return(rows, nil)
	m.tags.EXPECT().ListByRecipes(ctx, []int64{2, 1}).Return(map[int64][]models.LabelDB{2: {{ID: 7, Name: "Vegan"}}}, nil)
	m.ingredients.EXPECT().ListByRecipes(ctx, []int64{2, 1}).Return(map[int64][]models.LabelDB{}, nil)
	m.media.EXPECT().URL(img).Return("/media/" + img)

	got, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, "Vegan", got[0].Tags[0].Name)
	assert.Equal(t, "/media/"+img, got[0].ImageURL)
	assert.NotNil(t, got[1].Tags, "missing labels become an empty set")
	assert.Empty(t, got[1].Ingredients)
}

func TestRecipeService_GetNotOwned(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(99)).Return(nil, repositories.ErrNotFound)

	_, err := svc.Get(ctx, 1, 99)
	assert.ErrorIs(t, err, services.ErrRecipeNotFound)
}

func TestRecipeService_CreateWithNewTags(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	thai := models.LabelDB{ID: 1, UserID: 5, Name: "Thai"}
	dinner := models.LabelDB{ID: 2, UserID: 5, Name: "Dinner"}

	m.writer.EXPECT().Create(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *models.RecipeDB) error {
		assert.Equal(t, int64(5), r.UserID)
		assert.Equal(t, "Thai Prawn Curry", r.Title)
		assert.Equal(t, "2.50", r.Price.StringFixed(2))
		r.ID = 10
		return nil
	})
	m.reconciler.EXPECT().Reconcile(ctx, int64(5), []string{"Thai", "Dinner"}, models.LabelTag).Return([]models.LabelDB{thai, dinner}, nil)
	m.tags.EXPECT().SetRecipeLabels(ctx, int64(10), []int64{1, 2}).Return(nil)
	m.expectLoad(ctx, models.RecipeDB{ID: 10, UserID: 5, Title: "Thai Prawn Curry"}, []models.LabelDB{dinner, thai}, nil)

	got, err := svc.Create(ctx, 5, services.RecipeInput{
		Title:       strPtr("Thai Prawn Curry"),
		TimeMinutes: intPtr(30),
		Price:       decPtr("2.50"),
		Tags:        namesPtr("Thai", "Dinner"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.ID)
	assert.Len(t, got.Tags, 2)
	assert.Empty(t, got.Ingredients)

	// The event goes out only once the transaction commits
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any()).Do(func(_ context.Context, e models.RecipeEvent) {
		assert.Equal(t, models.RecipeCreated, e.Type)
		assert.Equal(t, int64(10), e.RecipeID)
		assert.Equal(t, int64(5), e.UserID)
		assert.NotEmpty(t, e.EventID)
	})
	m.commit()
}

func TestRecipeService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name   string
		in     services.RecipeInput
		fields []string
	}{
		{"missing required", services.RecipeInput{}, []string{"title", "time_minutes", "price"}},
		{"blank title", services.RecipeInput{Title: strPtr("  "), TimeMinutes: intPtr(1), Price: decPtr("1")}, []string{"title"}},
		{"negative time", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(-1), Price: decPtr("1")}, []string{"time_minutes"}},
		{"time out of range", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(services.MaxTimeMinutes + 1), Price: decPtr("1")}, []string{"time_minutes"}},
		{"negative price", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(1), Price: decPtr("-0.01")}, []string{"price"}},
		{"price too large", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(1), Price: decPtr("1000")}, []string{"price"}},
		{"too many decimals", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(1), Price: decPtr("1.555")}, []string{"price"}},
		{"blank tag name", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(1), Price: decPtr("1"), Tags: namesPtr("ok", "")}, []string{"tags[1].name"}},
		{"blank ingredient name", services.RecipeInput{Title: strPtr("x"), TimeMinutes: intPtr(1), Price: decPtr("1"), Ingredients: namesPtr("")}, []string{"ingredients[0].name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No writer or reconciler expectations: nothing may be touched
			svc, _ := newRecipeService(t)

			_, err := svc.Create(ctx, 1, tt.in)
			var verr *validation.Error
			require.True(t, errors.As(err, &verr), "got %v", err)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
		})
	}
}

func TestRecipeService_PartialUpdateReplacesTags(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	existing := models.RecipeDB{ID: 3, UserID: 1, Title: "Eggs", TimeMinutes: 5, Price: decimal.RequireFromString("1.00")}
	lunch := models.LabelDB{ID: 8, UserID: 1, Name: "Lunch"}

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&existing, nil)
	m.writer.EXPECT().Update(ctx, gomock.Any()).DoAndReturn(func(_ context.Context, r *models.RecipeDB) error {
		assert.Equal(t, "Eggs", r.Title, "absent fields keep their value")
		assert.Equal(t, int64(1), r.UserID)
		return nil
	})
	m.reconciler.EXPECT().Reconcile(ctx, int64(1), []string{"Lunch"}, models.LabelTag).Return([]models.LabelDB{lunch}, nil)
	m.tags.EXPECT().SetRecipeLabels(ctx, int64(3), []int64{8}).Return(nil)
	m.expectLoad(ctx, existing, []models.LabelDB{lunch}, nil)

	got, err := svc.Update(ctx, 1, 3, services.RecipeInput{Tags: namesPtr("Lunch")}, true)
	require.NoError(t, err)
	assert.Equal(t, []models.LabelDB{lunch}, got.Tags)
}

func TestRecipeService_PartialUpdateClearsTags(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	existing := models.RecipeDB{ID: 3, UserID: 1, Title: "Eggs"}

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&existing, nil)
	m.writer.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	m.reconciler.EXPECT().Reconcile(ctx, int64(1), []string{}, models.LabelTag).Return([]models.LabelDB{}, nil)
	m.tags.EXPECT().SetRecipeLabels(ctx, int64(3), []int64{}).Return(nil)
	m.expectLoad(ctx, existing, nil, nil)

	got, err := svc.Update(ctx, 1, 3, services.RecipeInput{Tags: namesPtr()}, true)
	require.NoError(t, err)
	assert.Empty(t, got.Tags)
}

func TestRecipeService_FullUpdateRequiresScalars(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&models.RecipeDB{ID: 3, UserID: 1}, nil)

	_, err := svc.Update(ctx, 1, 3, services.RecipeInput{Title: strPtr("Only title")}, false)
	var verr *validation.Error
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "time_minutes")
	assert.Contains(t, verr.Fields, "price")
}

func TestRecipeService_FullUpdateKeepsAbsentRelations(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	existing := models.RecipeDB{ID: 3, UserID: 1, Title: "Eggs"}
	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&existing, nil)
	m.writer.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	// No Reconcile or SetRecipeLabels: relations are absent
	m.expectLoad(ctx, existing, nil, nil)

	_, err := svc.Update(ctx, 1, 3, services.RecipeInput{
		Title:       strPtr("Spaghetti carbonara"),
		TimeMinutes: intPtr(25),
		Price:       decPtr("5.00"),
	}, false)
	assert.NoError(t, err)
}

func TestRecipeService_UpdateOtherUsersRecipe(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(42)).Return(nil, repositories.ErrNotFound)

	_, err := svc.Update(ctx, 1, 42, services.RecipeInput{Title: strPtr("Mine now")}, true)
	assert.ErrorIs(t, err, services.ErrRecipeNotFound)
}

func TestRecipeService_UpdateReconcileFailure(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&models.RecipeDB{ID: 3, UserID: 1}, nil)
	m.writer.EXPECT().Update(ctx, gomock.Any()).Return(nil)
	m.reconciler.EXPECT().Reconcile(ctx, int64(1), []string{"A"}, models.LabelTag).Return(nil, errors.New("db error"))

	_, err := svc.Update(ctx, 1, 3, services.RecipeInput{Tags: namesPtr("A")}, true)
	assert.EqualError(t, err, "db error")
	assert.Empty(t, m.committed, "no side effects are scheduled for a failed update")
}

func TestRecipeService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	img := "uploads/recipe/a.png"
	m.reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&models.RecipeDB{ID: 3, UserID: 1, Image: &img}, nil)
	m.writer.EXPECT().Delete(ctx, int64(1), int64(3)).Return(nil)

	require.NoError(t, svc.Delete(ctx, 1, 3))

	m.media.EXPECT().Delete(img).Return(nil)
	m.publisher.EXPECT().Publish(gomock.Any(), gomock.Any())
	m.commit()
}

func TestRecipeService_DeleteNotOwned(t *testing.T) {
	ctx := context.Background()
	svc, m := newRecipeService(t)

	m.reader.EXPECT().GetByID(ctx, int64(2), int64(3)).Return(nil, repositories.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 2, 3), services.ErrRecipeNotFound)
}

func TestRecipeService_DefaultHookPublishesImmediately(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	reader := services.NewMockRecipeReader(ctrl)
	writer := services.NewMockRecipeWriter(ctrl)
	publisher := services.NewMockEventPublisher(ctrl)
	svc := services.NewRecipeService(reader, writer, nil, nil, nil, nil, services.WithEventPublisher(publisher))

	reader.EXPECT().GetByID(ctx, int64(1), int64(3)).Return(&models.RecipeDB{ID: 3, UserID: 1}, nil)
	writer.EXPECT().Delete(ctx, int64(1), int64(3)).Return(nil)
	publisher.EXPECT().Publish(gomock.Any(), gomock.Any())

	assert.NoError(t, svc.Delete(ctx, 1, 3))
}
