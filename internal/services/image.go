package services

//go:generate mockgen -source=image.go -destination=image_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/storage"
)

// RecipeImageWriter reads a recipe and stores its image key.
type RecipeImageWriter interface {
	GetByID(ctx context.Context, userID, id int64) (*models.RecipeDB, error)
	SetImage(ctx context.Context, userID, id int64, image *string) error
}

// BlobStorage stores image bytes under generated keys.
type BlobStorage interface {
	Save(key string, data []byte) error
	Delete(key string) error
	URL(key string) string
}

// RecipeImage describes a stored recipe image.
type RecipeImage struct {
	RecipeID int64
	Key      string
	URL      string
	BlurHash string
	Width    int
	Height   int
}

// ImageService attaches images to recipes.
type ImageService struct {
	recipes RecipeImageWriter
	blobs   BlobStorage
	hooks   hooks
}

// NewImageService creates a new ImageService instance.
func NewImageService(recipes RecipeImageWriter, blobs BlobStorage, opts ...Option) *ImageService {
	return &ImageService{recipes: recipes, blobs: blobs, hooks: newHooks(opts)}
}

// Upload validates data as an image, stores it under a generated key and
// makes it the recipe's image. A previous image is removed after commit.
func (svc *ImageService) Upload(ctx context.Context, userID, recipeID int64, data []byte) (*RecipeImage, error) {
	recipe, err := svc.recipes.GetByID(ctx, userID, recipeID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "user_id", userID, "recipe_id", recipeID, "err", err)
		return nil, err
	}

	info, err := storage.Inspect(data)
	if err != nil {
		logger.Log.Infow("rejected image upload", "recipe_id", recipeID, "err", err)
		return nil, ErrInvalidImage
	}

	key := fmt.Sprintf("uploads/recipe/%s%s", uuid.NewString(), info.Ext)
	if err := svc.blobs.Save(key, data); err != nil {
		logger.Log.Errorw("failed to store image", "recipe_id", recipeID, "key", key, "err", err)
		return nil, err
	}

	if err := svc.recipes.SetImage(ctx, userID, recipeID, &key); err != nil {
		if delErr := svc.blobs.Delete(key); delErr != nil {
			logger.Log.Warnw("failed to remove orphaned image", "key", key, "err", delErr)
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to attach image", "recipe_id", recipeID, "err", err)
		return nil, err
	}

	if recipe.Image != nil && *recipe.Image != key {
		old := *recipe.Image
		svc.hooks.afterCommit(ctx, func() {
			if err := svc.blobs.Delete(old); err != nil {
				logger.Log.Warnw("failed to delete replaced image", "recipe_id", recipeID, "key", old, "err", err)
			}
		})
	}
	svc.hooks.publish(ctx, models.RecipeImageUploaded, recipeID, userID)

	return &RecipeImage{
		RecipeID: recipeID,
		Key:      key,
		URL:      svc.blobs.URL(key),
		BlurHash: info.BlurHash,
		Width:    info.Width,
		Height:   info.Height,
	}, nil
}
