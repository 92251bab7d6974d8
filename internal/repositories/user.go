package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/sbilibin2017/recipe-api/internal/models"
)

const userColumns = `id, email, name, password_hash, is_active, is_staff, is_superuser, last_login, created_at, updated_at`

type UserReadRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserReadRepository(db *sqlx.DB, txGetter TxGetter) *UserReadRepository {
	return &UserReadRepository{db: db, txGetter: txGetter}
}

// GetByEmail returns the user with exactly this email, or nil when there is none.
func (r *UserReadRepository) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.getOne(ctx, query, email)
}

// GetByID returns the user with this id, or nil when there is none.
func (r *UserReadRepository) GetByID(ctx context.Context, id int64) (*models.UserDB, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.getOne(ctx, query, id)
}

func (r *UserReadRepository) getOne(ctx context.Context, query string, arg any) (*models.UserDB, error) {
	var user models.UserDB
	err := sqlx.GetContext(ctx, executor(ctx, r.db, r.txGetter), &user, query, arg)

	logQuery(query, []any{arg}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// List returns all users ordered by id.
func (r *UserReadRepository) List(ctx context.Context) ([]models.UserDB, error) {
	const query = `SELECT ` + userColumns + ` FROM users ORDER BY id`

	users := []models.UserDB{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &users, query)

	logQuery(query, nil, len(users), err)

	if err != nil {
		return nil, err
	}
	return users, nil
}

type UserWriteRepository struct {
	db       *sqlx.DB
	txGetter TxGetter
}

func NewUserWriteRepository(db *sqlx.DB, txGetter TxGetter) *UserWriteRepository {
	return &UserWriteRepository{db: db, txGetter: txGetter}
}

// Create inserts the user and fills in its generated fields.
// Returns ErrDuplicate when the email is taken.
func (r *UserWriteRepository) Create(ctx context.Context, user *models.UserDB) error {
	const query = `
		INSERT INTO users (email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (email) DO NOTHING
		RETURNING id, created_at, updated_at
	`
	args := []any{user.Email, user.Name, user.PasswordHash, user.IsActive, user.IsStaff, user.IsSuperuser}

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, args...)
	err := row.Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	logQuery(query, []any{user.Email, user.Name}, user.ID, err)

	if errors.Is(err, sql.ErrNoRows) {
		return ErrDuplicate
	}
	return mapError(err)
}

// Update persists email, name and password hash of an existing user.
func (r *UserWriteRepository) Update(ctx context.Context, user *models.UserDB) error {
	const query = `
		UPDATE users
		SET email = $2, name = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	row := executor(ctx, r.db, r.txGetter).QueryRowxContext(ctx, query, user.ID, user.Email, user.Name, user.PasswordHash)
	err := row.Scan(&user.UpdatedAt)

	logQuery(query, []any{user.ID, user.Email, user.Name}, user.UpdatedAt, err)

	return mapError(err)
}

// TouchLastLogin records a successful login for the user.
func (r *UserWriteRepository) TouchLastLogin(ctx context.Context, id int64) error {
	const query = `UPDATE users SET last_login = NOW() WHERE id = $1`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{id}, rowsAffected, err)

	return err
}
