package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const recipeColumns = `id, user_id, title, description, time_minutes, price, link, image, created_at, updated_at`

// RecipeReadRepository reads recipes scoped to their owner
type RecipeReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeReadRepository(db *sqlx.DB, txGetter TxGetter) *RecipeReadRepository {
	return &RecipeReadRepository{db: db, txGetter: txGetter}
}

// List returns the owner's recipes, newest first.
func (r *RecipeReadRepository) List(ctx context.Context, userID int64) ([]models.RecipeDB, error) {
	const query = `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE user_id = $1
		ORDER BY id DESC
	`

	recipes := []models.RecipeDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &recipes, query, userID)

	logQuery(query, []any{userID}, len(recipes), err)

	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetByID returns the owner's recipe, or ErrNotFound when it is missing or
// belongs to someone else.
func (r *RecipeReadRepository) GetByID(ctx context.Context, userID, id int64) (*models.RecipeDB, error) {
	const query = `
		SELECT ` + recipeColumns + `
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	var recipe models.RecipeDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &recipe, query, id, userID)

	logQuery(query, []any{id, userID}, recipe.ID, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &recipe, nil
}

// RecipeWriteRepository handles recipe write operations
type RecipeWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewRecipeWriteRepository(db *sqlx.DB, txGetter TxGetter) *RecipeWriteRepository {
	return &RecipeWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the recipe and fills in its generated fields.
func (r *RecipeWriteRepository) Create(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		INSERT INTO recipes (user_id, title, description, time_minutes, price, link, image, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`
	args := []any{recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link, recipe.Image}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&recipe.ID, &recipe.CreatedAt, &recipe.UpdatedAt)

	logQuery(query, args, recipe.ID, err)

	return mapError(err)
}

// Update persists the scalar fields of the owner's recipe.
// The owner itself is never changed.
func (r *RecipeWriteRepository) Update(ctx context.Context, recipe *models.RecipeDB) error {
	const query = `
		UPDATE recipes
		SET title = $3, description = $4, time_minutes = $5, price = $6, link = $7, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING updated_at
	`
	args := []any{recipe.ID, recipe.UserID, recipe.Title, recipe.Description, recipe.TimeMinutes, recipe.Price, recipe.Link}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&recipe.UpdatedAt)

	logQuery(query, args, recipe.UpdatedAt, err)

	return mapError(err)
}

// SetImage stores the image key of the owner's recipe (nil clears it).
func (r *RecipeWriteRepository) SetImage(ctx context.Context, userID, id int64, image *string) error {
	const query = `
		UPDATE recipes
		SET image = $3, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
	`
	args := []any{id, userID, image}

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, args, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the owner's recipe together with its label links.
func (r *RecipeWriteRepository) Delete(ctx context.Context, userID, id int64) error {
	const query = `DELETE FROM recipes WHERE id = $1 AND user_id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id, userID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id, userID}, rowsAffected, err)

	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
