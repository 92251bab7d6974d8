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
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLabelService(t *testing.T) {
	ctx := context.Background()
	const owner = int64(4)

	newService := func(t *testing.T) (*services.LabelService, *services.MockLabelRepository) {
		ctrl := gomock.NewController(t)
		t.Cleanup(ctrl.Finish)
		repo := services.NewMockLabelRepository(ctrl)
		return services.NewLabelService(models.LabelTag, repo), repo
	}

	t.Run("List", func(t *testing.T) {
		svc, repo := newService(t)
		want := []models.LabelDB{{ID: 2, Name: "Vegan"}, {ID: 1, Name: "Dessert"}}
		repo.EXPECT().List(ctx, owner).Return(want, nil)

		got, err := svc.List(ctx, owner)
		assert.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("CreateNew", func(t *testing.T) {
		svc, repo := newService(t)
		label := &models.LabelDB{ID: 3, UserID: owner, Name: "Vegan"}
		repo.EXPECT().GetByName(ctx, owner, "Vegan").Return(nil, nil)
		repo.EXPECT().CreateIfAbsent(ctx, owner, "Vegan").Return(label, nil)

		got, created, err := svc.Create(ctx, owner, "  Vegan ")
		require.NoError(t, err)
		assert.True(t, created)
		assert.Equal(t, label, got)
	})

	t.Run("CreateExisting", func(t *testing.T) {
		svc, repo := newService(t)
		label := &models.LabelDB{ID: 3, UserID: owner, Name: "Vegan"}
		repo.EXPECT().GetByName(ctx, owner, "Vegan").Return(label, nil)

		got, created, err := svc.Create(ctx, owner, "Vegan")
		require.NoError(t, err)
		assert.False(t, created)
		assert.Equal(t, label, got)
	})

	t.Run("CreateBlank", func(t *testing.T) {
		svc, _ := newService(t)
		_, _, err := svc.Create(ctx, owner, " ")

		var verr *validation.Error
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, validation.MsgBlank, verr.Fields["name"])
	})

	t.Run("Rename", func(t *testing.T) {
		svc, repo := newService(t)
		renamed := &models.LabelDB{ID: 3, Name: "Dessert"}
		repo.EXPECT().Rename(ctx, owner, int64(3), "Dessert").Return(renamed, nil)

		got, err := svc.Rename(ctx, owner, 3, strPtr("Dessert"))
		assert.NoError(t, err)
		assert.Equal(t, renamed, got)
	})

	t.Run("RenameWithoutName", func(t *testing.T) {
		svc, repo := newService(t)
		label := &models.LabelDB{ID: 3, Name: "Vegan"}
		repo.EXPECT().GetByID(ctx, owner, int64(3)).Return(label, nil)

		got, err := svc.Rename(ctx, owner, 3, nil)
		assert.NoError(t, err)
		assert.Equal(t, label, got)
	})

	t.Run("RenameNotOwned", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Rename(ctx, owner, int64(9), "X").Return(nil, repositories.ErrNotFound)

		_, err := svc.Rename(ctx, owner, 9, strPtr("X"))
		assert.ErrorIs(t, err, services.ErrLabelNotFound)
	})

	t.Run("RenameTaken", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Rename(ctx, owner, int64(3), "Dessert").Return(nil, repositories.ErrDuplicate)

		_, err := svc.Rename(ctx, owner, 3, strPtr("Dessert"))
		assert.ErrorIs(t, err, services.ErrLabelNameTaken)
	})

	t.Run("Delete", func(t *testing.T) {
		svc, repo := newService(t)
		repo.EXPECT().Delete(ctx, owner, int64(3)).Return(nil)
		repo.EXPECT().Delete(ctx, owner, int64(9)).Return(repositories.ErrNotFound)

		assert.NoError(t, svc.Delete(ctx, owner, 3))
		assert.ErrorIs(t, svc.Delete(ctx, owner, 9), services.ErrLabelNotFound)
	})
}
