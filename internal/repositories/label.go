package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

// LabelRepository stores one kind of per-user label (tags or ingredients)
// together with its recipe link table.
type LabelRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
	table    string // tags | ingredients
	link     string // recipe_tags | recipe_ingredients
	linkCol  string // tag_id | ingredient_id
}

func NewLabelRepository(db *sqlx.DB, txGetter TxGetter, kind models.LabelKind) *LabelRepository {
	return &LabelRepository{
		db:       db,
		txGetter: txGetter,
		table:    kind.Plural(),
		link:     "recipe_" + kind.Plural(),
		linkCol:  string(kind) + "_id",
	}
}

func NewTagRepository(db *sqlx.DB, txGetter TxGetter) *LabelRepository {
	return NewLabelRepository(db, txGetter, models.LabelTag)
}

func NewIngredientRepository(db *sqlx.DB, txGetter TxGetter) *LabelRepository {
	return NewLabelRepository(db, txGetter, models.LabelIngredient)
}

// List returns the owner's labels in reverse name order.
func (r *LabelRepository) List(ctx context.Context, userID int64) ([]models.LabelDB, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE user_id = $1
		ORDER BY name DESC, id DESC
	`, r.table)

	labels := []models.LabelDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &labels, query, userID)

	logQuery(query, []any{userID}, len(labels), err)

	if err != nil {
		return nil, err
	}
	return labels, nil
}

// GetByID returns the owner's label, or ErrNotFound.
func (r *LabelRepository) GetByID(ctx context.Context, userID, id int64) (*models.LabelDB, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE id = $1 AND user_id = $2
	`, r.table)

	var label models.LabelDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &label, query, id, userID)

	logQuery(query, []any{id, userID}, label, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &label, nil
}

// GetByName returns the owner's label with exactly this name, or nil when there is none.
func (r *LabelRepository) GetByName(ctx context.Context, userID int64, name string) (*models.LabelDB, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, name, created_at
		FROM %s
		WHERE user_id = $1 AND name = $2
	`, r.table)

	var label models.LabelDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &label, query, userID, name)

	logQuery(query, []any{userID, name}, label, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &label, nil
}

// CreateIfAbsent inserts a label for the owner. It returns nil without an
// error when a label with the same name already exists.
func (r *LabelRepository) CreateIfAbsent(ctx context.Context, userID int64, name string) (*models.LabelDB, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, name) DO NOTHING
		RETURNING id, user_id, name, created_at
	`, r.table)

	var label models.LabelDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &label, query, userID, name)

	logQuery(query, []any{userID, name}, label, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &label, nil
}

// Rename changes the name of the owner's label. Returns ErrNotFound when the
// label is missing and ErrDuplicate when the name is taken.
func (r *LabelRepository) Rename(ctx context.Context, userID, id int64, name string) (*models.LabelDB, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, name, created_at
	`, r.table)

	var label models.LabelDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &label, query, id, userID, name)

	logQuery(query, []any{id, userID, name}, label, err)

	if err != nil {
		return nil, mapError(err)
	}
	return &label, nil
}

// Delete removes the owner's label. Links to recipes go with it.
func (r *LabelRepository) Delete(ctx context.Context, userID, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, r.table)

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

// SetRecipeLabels makes labelIDs the exact link set of the recipe.
// Links outside the set are removed, missing ones are added.
func (r *LabelRepository) SetRecipeLabels(ctx context.Context, recipeID int64, labelIDs []int64) error {
	ex := executor(ctx, r.db, r.txGetter)

	var (
		query string
		args  []any
		err   error
	)
	if len(labelIDs) == 0 {
		query = fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = ?`, r.link)
		args = []any{recipeID}
	} else {
		query, args, err = sqlx.In(
			fmt.Sprintf(`DELETE FROM %s WHERE recipe_id = ? AND %s NOT IN (?)`, r.link, r.linkCol),
			recipeID, labelIDs,
		)
		if err != nil {
			return err
		}
	}
	query = ex.Rebind(query)

	res, err := ex.ExecContext(ctx, query, args...)
	var removed int64
	if res != nil {
		removed, _ = res.RowsAffected()
	}
	logQuery(query, args, removed, err)
	if err != nil {
		return err
	}

	insert := fmt.Sprintf(`
		INSERT INTO %s (recipe_id, %s)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, r.link, r.linkCol)
	for _, id := range labelIDs {
		_, err := ex.ExecContext(ctx, insert, recipeID, id)
		logQuery(insert, []any{recipeID, id}, nil, err)
		if err != nil {
			return err
		}
	}
	return nil
}

type labelLinkRow struct {
	RecipeID int64 `db:"recipe_id"`
	models.LabelDB
}

// ListByRecipes returns the labels linked to each recipe, ordered by name.
func (r *LabelRepository) ListByRecipes(ctx context.Context, recipeIDs []int64) (map[int64][]models.LabelDB, error) {
	result := make(map[int64][]models.LabelDB, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return result, nil
	}

	ex := executor(ctx, r.db, r.txGetter)
	query, args, err := sqlx.In(fmt.Sprintf(`
		SELECT l.recipe_id, t.id, t.user_id, t.name, t.created_at
		FROM %s l
		JOIN %s t ON t.id = l.%s
		WHERE l.recipe_id IN (?)
		ORDER BY t.name, t.id
	`, r.link, r.table, r.linkCol), recipeIDs)
	if err != nil {
		return nil, err
	}
	query = ex.Rebind(query)

	var rows []labelLinkRow
	err = sqlx.SelectContext(ctx, ex, &rows, query, args...)

	logQuery(query, args, len(rows), err)

	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.RecipeID] = append(result[row.RecipeID], row.LabelDB)
	}
	return result, nil
}
