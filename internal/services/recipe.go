package services

//go:generate mockgen -source=recipe.go -destination=recipe_mock.go -package=services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
	"github.com/shopspring/decimal"
)

// Recipe field limits.
const (
	MaxTitleLength = 255
	MaxLinkLength  = 255
	// MaxTimeMinutes is the largest value the INTEGER column holds.
	MaxTimeMinutes = math.MaxInt32
)

// maxPrice is the exclusive upper bound of a NUMERIC(5,2) price.
var maxPrice = decimal.NewFromInt(1000)

// RecipeReader reads recipes scoped to their owner.
type RecipeReader interface {
	List(ctx context.Context, userID int64) ([]models.RecipeDB, error)
	GetByID(ctx context.Context, userID, id int64) (*models.RecipeDB, error)
}

// RecipeWriter writes recipes scoped to their owner.
type RecipeWriter interface {
	Create(ctx context.Context, recipe *models.RecipeDB) error
	Update(ctx context.Context, recipe *models.RecipeDB) error
	Delete(ctx context.Context, userID, id int64) error
}

// LabelLinker manages the links between recipes and one kind of label.
type LabelLinker interface {
	SetRecipeLabels(ctx context.Context, recipeID int64, labelIDs []int64) error
	ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]models.LabelDB, error)
}

// LabelReconciler resolves label names to the owner's labels.
type LabelReconciler interface {
	Reconcile(ctx context.Context, ownerID int64, names []string, kind models.LabelKind) ([]models.LabelDB, error)
}

// MediaStore locates and removes stored images.
type MediaStore interface {
	URL(key string) string
	Delete(key string) error
}

// RecipeInput is a recipe write request. Nil fields are absent from the
// request; a non-nil Tags or Ingredients replaces the whole association set.
type RecipeInput struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Link        *string
	Tags        *[]string
	Ingredients *[]string
}

func (in RecipeInput) names(kind models.LabelKind) *[]string {
	if kind == models.LabelIngredient {
		return in.Ingredients
	}
	return in.Tags
}

// cleanRecipeInput validates in and returns it with trimmed title and
// de-duplicated label names. Full writes must carry every required scalar.
func cleanRecipeInput(in RecipeInput, partial bool) (RecipeInput, error) {
	fields := map[string]string{}

	if !partial {
		if in.Title == nil {
			fields["title"] = validation.MsgRequired
		}
		if in.TimeMinutes == nil {
			fields["time_minutes"] = validation.MsgRequired
		}
		if in.Price == nil {
			fields["price"] = validation.MsgRequired
		}
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		switch {
		case title == "":
			fields["title"] = validation.MsgBlank
		case len([]rune(title)) > MaxTitleLength:
			fields["title"] = validation.MaxLength(MaxTitleLength)
		}
		in.Title = &title
	}
	if in.TimeMinutes != nil {
		switch {
		case *in.TimeMinutes < 0:
			fields["time_minutes"] = "Ensure this value is greater than or equal to 0."
		case *in.TimeMinutes > MaxTimeMinutes:
			fields["time_minutes"] = fmt.Sprintf("Ensure this value is less than or equal to %d.", MaxTimeMinutes)
		}
	}
	if in.Price != nil {
		p := *in.Price
		switch {
		case p.IsNegative():
			fields["price"] = "Ensure this value is greater than or equal to 0."
		case p.GreaterThanOrEqual(maxPrice):
			fields["price"] = "Ensure that there are no more than 3 digits before the decimal point."
		case !p.Equal(p.Round(2)):
			fields["price"] = "Ensure that there are no more than 2 decimal places."
		}
	}
	if in.Link != nil {
		link := strings.TrimSpace(*in.Link)
		if len([]rune(link)) > MaxLinkLength {
			fields["link"] = validation.MaxLength(MaxLinkLength)
		}
		in.Link = &link
	}

	for _, kind := range []models.LabelKind{models.LabelTag, models.LabelIngredient} {
		names := in.names(kind)
		if names == nil {
			continue
		}
		cleaned, err := CleanLabelNames(kind.Plural(), *names)
		if err != nil {
			var verr *validation.Error
			if !errors.As(err, &verr) {
				return in, err
			}
			for k, v := range verr.Fields {
				fields[k] = v
			}
			continue
		}
		if kind == models.LabelIngredient {
			in.Ingredients = &cleaned
		} else {
			in.Tags = &cleaned
		}
	}

	if len(fields) > 0 {
		return in, validation.NewError(fields)
	}
	return in, nil
}

// RecipeService implements owner-scoped recipe CRUD with nested label writes.
type RecipeService struct {
	reader     RecipeReader
	writer     RecipeWriter
	links      map[models.LabelKind]LabelLinker
	reconciler LabelReconciler
	media      MediaStore
	hooks      hooks
}

// NewRecipeService creates a new RecipeService instance.
func NewRecipeService(
	reader RecipeReader,
	writer RecipeWriter,
	tagLinks LabelLinker,
	ingredientLinks LabelLinker,
	reconciler LabelReconciler,
	media MediaStore,
	opts ...Option,
) *RecipeService {
	return &RecipeService{
		reader: reader,
		writer: writer,
		links: map[models.LabelKind]LabelLinker{
			models.LabelTag:        tagLinks,
			models.LabelIngredient: ingredientLinks,
		},
		reconciler: reconciler,
		media:      media,
		hooks:      newHooks(opts),
	}
}

var labelKinds = []models.LabelKind{models.LabelTag, models.LabelIngredient}

// List returns the owner's recipes, newest first, with their labels.
func (svc *RecipeService) List(ctx context.Context, userID int64) ([]models.Recipe, error) {
	rows, err := svc.reader.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list recipes", "user_id", userID, "err", err)
		return nil, err
	}
	return svc.withLabels(ctx, rows)
}

// Get returns the owner's recipe. Recipes of other users are reported as
// ErrRecipeNotFound.
func (svc *RecipeService) Get(ctx context.Context, userID, id int64) (*models.Recipe, error) {
	row, err := svc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	recipes, err := svc.withLabels(ctx, []models.RecipeDB{*row})
	if err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

// Create stores a new recipe owned by userID and links its labels.
func (svc *RecipeService) Create(ctx context.Context, userID int64, in RecipeInput) (*models.Recipe, error) {
	in, err := cleanRecipeInput(in, false)
	if err != nil {
		return nil, err
	}

	row := &models.RecipeDB{
		UserID:      userID,
		Title:       *in.Title,
		TimeMinutes: *in.TimeMinutes,
		Price:       *in.Price,
	}
	if in.Description != nil {
		row.Description = *in.Description
	}
	if in.Link != nil {
		row.Link = *in.Link
	}

	if err := svc.writer.Create(ctx, row); err != nil {
		logger.Log.Errorw("failed to create recipe", "user_id", userID, "err", err)
		return nil, err
	}

	if err := svc.setLabels(ctx, userID, row.ID, in); err != nil {
		return nil, err
	}

	svc.hooks.publish(ctx, models.RecipeCreated, row.ID, userID)
	return svc.Get(ctx, userID, row.ID)
}

// Update changes the owner's recipe. With partial set only present fields
// are changed; otherwise title, time_minutes and price are required.
// Label sets are replaced only when present in the input.
func (svc *RecipeService) Update(ctx context.Context, userID, id int64, in RecipeInput, partial bool) (*models.Recipe, error) {
	row, err := svc.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	in, err = cleanRecipeInput(in, partial)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		row.Title = *in.Title
	}
	if in.Description != nil {
		row.Description = *in.Description
	}
	if in.TimeMinutes != nil {
		row.TimeMinutes = *in.TimeMinutes
	}
	if in.Price != nil {
		row.Price = *in.Price
	}
	if in.Link != nil {
		row.Link = *in.Link
	}

	if err := svc.writer.Update(ctx, row); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to update recipe", "user_id", userID, "recipe_id", id, "err", err)
		return nil, err
	}

	if err := svc.setLabels(ctx, userID, id, in); err != nil {
		return nil, err
	}

	svc.hooks.publish(ctx, models.RecipeUpdated, id, userID)
	return svc.Get(ctx, userID, id)
}

// Delete removes the owner's recipe. Its labels stay; its image is removed
// once the deletion has committed.
func (svc *RecipeService) Delete(ctx context.Context, userID, id int64) error {
	row, err := svc.getOwned(ctx, userID, id)
	if err != nil {
		return err
	}

	if err := svc.writer.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrRecipeNotFound
		}
		logger.Log.Errorw("failed to delete recipe", "user_id", userID, "recipe_id", id, "err", err)
		return err
	}

	if row.Image != nil && svc.media != nil {
		key := *row.Image
		svc.hooks.afterCommit(ctx, func() {
			if err := svc.media.Delete(key); err != nil {
				logger.Log.Warnw("failed to delete recipe image", "recipe_id", id, "key", key, "err", err)
			}
		})
	}

	svc.hooks.publish(ctx, models.RecipeDeleted, id, userID)
	return nil
}

func (svc *RecipeService) getOwned(ctx context.Context, userID, id int64) (*models.RecipeDB, error) {
	row, err := svc.reader.GetByID(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		logger.Log.Errorw("failed to get recipe", "user_id", userID, "recipe_id", id, "err", err)
		return nil, err
	}
	return row, nil
}

// setLabels reconciles every label kind present in in and replaces the
// recipe's links with the result.
func (svc *RecipeService) setLabels(ctx context.Context, userID, recipeID int64, in RecipeInput) error {
	for _, kind := range labelKinds {
		names := in.names(kind)
		if names == nil {
			continue
		}

		labels, err := svc.reconciler.Reconcile(ctx, userID, *names, kind)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(labels))
		for _, l := range labels {
			ids = append(ids, l.ID)
		}
		if err := svc.links[kind].SetRecipeLabels(ctx, recipeID, ids); err != nil {
			logger.Log.Errorw("failed to set recipe labels", "kind", kind, "recipe_id", recipeID, "err", err)
			return err
		}
	}
	return nil
}

func (svc *RecipeService) withLabels(ctx context.Context, rows []models.RecipeDB) ([]models.Recipe, error) {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}

	byKind := make(map[models.LabelKind]map[int64][]models.LabelDB, len(labelKinds))
	for _, kind := range labelKinds {
		m, err := svc.links[kind].ListByRecipes(ctx, ids)
		if err != nil {
			logger.Log.Errorw("failed to list recipe labels", "kind", kind, "err", err)
			return nil, err
		}
		byKind[kind] = m
	}

	recipes := make([]models.Recipe, 0, len(rows))
	for _, r := range rows {
		recipe := models.Recipe{RecipeDB: r}
		for _, kind := range labelKinds {
			labels := byKind[kind][r.ID]
			if labels == nil {
				labels = []models.LabelDB{}
			}
			recipe.SetLabels(kind, labels)
		}
		if r.Image != nil && svc.media != nil {
			recipe.ImageURL = svc.media.URL(*r.Image)
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
