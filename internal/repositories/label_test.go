package repositories

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelRepository(t *testing.T) {
	conn, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	owner := createUser(t, conn, "owner@example.com")
	other := createUser(t, conn, "other@example.com")

	tags := NewTagRepository(conn, nil)
	ingredients := NewIngredientRepository(conn, nil)

	t.Run("CreateIfAbsent", func(t *testing.T) {
		created, err := tags.CreateIfAbsent(ctx, owner, "Dinner")
		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, owner, created.UserID)

		again, err := tags.CreateIfAbsent(ctx, owner, "Dinner")
		assert.NoError(t, err)
		assert.Nil(t, again, "existing name should not be inserted twice")

		// Same name in another namespace or for another owner is allowed
		_, err = ingredients.CreateIfAbsent(ctx, owner, "Dinner")
		assert.NoError(t, err)
		otherTag, err := tags.CreateIfAbsent(ctx, other, "Dinner")
		require.NoError(t, err)
		require.NotNil(t, otherTag)
		assert.NotEqual(t, created.ID, otherTag.ID)
	})

	t.Run("GetByNameScopedToOwner", func(t *testing.T) {
		own, err := tags.GetByName(ctx, owner, "Dinner")
		require.NoError(t, err)
		require.NotNil(t, own)
		assert.Equal(t, owner, own.UserID)

		missing, err := tags.GetByName(ctx, owner, "dinner")
		assert.NoError(t, err)
		assert.Nil(t, missing, "lookup is case-sensitive")
	})

	t.Run("ListDescendingByName", func(t *testing.T) {
		_, err := tags.CreateIfAbsent(ctx, owner, "Breakfast")
		require.NoError(t, err)
		_, err = tags.CreateIfAbsent(ctx, owner, "Lunch")
		require.NoError(t, err)

		list, err := tags.List(ctx, owner)
		require.NoError(t, err)
		assert.Equal(t, []string{"Lunch", "Dinner", "Breakfast"}, labelNames(list))
	})

	t.Run("GetByIDOtherOwner", func(t *testing.T) {
		own, err := tags.GetByName(ctx, owner, "Lunch")
		require.NoError(t, err)

		_, err = tags.GetByID(ctx, other, own.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Rename", func(t *testing.T) {
		lunch, err := tags.GetByName(ctx, owner, "Lunch")
		require.NoError(t, err)

		renamed, err := tags.Rename(ctx, owner, lunch.ID, "Brunch")
		require.NoError(t, err)
		assert.Equal(t, "Brunch", renamed.Name)

		_, err = tags.Rename(ctx, owner, lunch.ID, "Dinner")
		assert.ErrorIs(t, err, ErrDuplicate)

		_, err = tags.Rename(ctx, other, lunch.ID, "Stolen")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		brunch, err := tags.GetByName(ctx, owner, "Brunch")
		require.NoError(t, err)

		assert.ErrorIs(t, tags.Delete(ctx, other, brunch.ID), ErrNotFound)
		assert.NoError(t, tags.Delete(ctx, owner, brunch.ID))
		assert.ErrorIs(t, tags.Delete(ctx, owner, brunch.ID), ErrNotFound)
	})
}

func TestLabelRepository_RecipeLinks(t *testing.T) {
	conn, teardown := setupPostgresContainer(t)
	defer teardown()

	ctx := context.Background()
	owner := createUser(t, conn, "links@example.com")

	recipes := NewRecipeWriteRepository(conn, nil)
	tags := NewTagRepository(conn, nil)

	r1 := &models.RecipeDB{UserID: owner, Title: "One", TimeMinutes: 5, Price: decimal.RequireFromString("1.00")}
	r2 := &models.RecipeDB{UserID: owner, Title: "Two", TimeMinutes: 5, Price: decimal.RequireFromString("2.00")}
	require.NoError(t, recipes.Create(ctx, r1))
	require.NoError(t, recipes.Create(ctx, r2))

	breakfast, err := tags.CreateIfAbsent(ctx, owner, "Breakfast")
	require.NoError(t, err)
	lunch, err := tags.CreateIfAbsent(ctx, owner, "Lunch")
	require.NoError(t, err)

	t.Run("SetAndList", func(t *testing.T) {
		require.NoError(t, tags.SetRecipeLabels(ctx, r1.ID, []int64{lunch.ID, breakfast.ID}))
		require.NoError(t, tags.SetRecipeLabels(ctx, r2.ID, []int64{lunch.ID}))

		byRecipe, err := tags.ListByRecipes(ctx, []int64{r1.ID, r2.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Breakfast", "Lunch"}, labelNames(byRecipe[r1.ID]))
		assert.Equal(t, []string{"Lunch"}, labelNames(byRecipe[r2.ID]))
	})

	t.Run("ReplaceNotMerge", func(t *testing.T) {
		require.NoError(t, tags.SetRecipeLabels(ctx, r1.ID, []int64{lunch.ID}))

		byRecipe, err := tags.ListByRecipes(ctx, []int64{r1.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lunch"}, labelNames(byRecipe[r1.ID]))
	})

	t.Run("ClearKeepsLabels", func(t *testing.T) {
		require.NoError(t, tags.SetRecipeLabels(ctx, r1.ID, nil))

		byRecipe, err := tags.ListByRecipes(ctx, []int64{r1.ID})
		require.NoError(t, err)
		assert.Empty(t, byRecipe[r1.ID])

		list, err := tags.List(ctx, owner)
		require.NoError(t, err)
		assert.Len(t, list, 2)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		byRecipe, err := tags.ListByRecipes(ctx, nil)
		assert.NoError(t, err)
		assert.Empty(t, byRecipe)
	})

	t.Run("RollbackLeavesLinksUntouched", func(t *testing.T) {
		require.NoError(t, tags.SetRecipeLabels(ctx, r2.ID, []int64{lunch.ID}))

		tx, err := conn.Beginx()
		require.NoError(t, err)
		txTags := NewTagRepository(conn, txFrom(tx))
		require.NoError(t, txTags.SetRecipeLabels(ctx, r2.ID, []int64{breakfast.ID}))
		require.NoError(t, tx.Rollback())

		byRecipe, err := tags.ListByRecipes(ctx, []int64{r2.ID})
		require.NoError(t, err)
		assert.Equal(t, []string{"Lunch"}, labelNames(byRecipe[r2.ID]))
	})
}
