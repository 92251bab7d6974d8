package services

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// UserLister lists all accounts.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// ProfileUpdate carries the profile fields to change. Nil fields are kept.
type ProfileUpdate struct {
	Email    *string
	Name     *string
	Password *string
}

// UserService manages the caller's own profile and the staff user listing.
type UserService struct {
	reader UserReader
	writer UserWriter
	lister UserLister
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, writer UserWriter, lister UserLister) *UserService {
	return &UserService{reader: reader, writer: writer, lister: lister}
}

// UpdateProfile applies upd to the user and returns the stored result.
func (svc *UserService) UpdateProfile(ctx context.Context, userID int64, upd ProfileUpdate) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUnauthenticated
	}

	if upd.Email != nil {
		email := NormalizeEmail(*upd.Email)
		if email == "" {
			return nil, validation.FieldError("email", validation.MsgBlank)
		}
		if email != user.Email {
			existing, err := svc.reader.GetByEmail(ctx, email)
			if err != nil {
				logger.Log.Errorw("failed to check user exists", "err", err)
				return nil, err
			}
			if existing != nil {
				return nil, ErrUserAlreadyExists
			}
		}
		user.Email = email
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Password != nil {
		if err := checkPassword(*upd.Password); err != nil {
			return nil, err
		}
		if user.PasswordHash, err = hashPassword(*upd.Password); err != nil {
			logger.Log.Errorw("failed to hash password", "err", err)
			return nil, err
		}
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to update user", "user_id", userID, "err", err)
		return nil, err
	}
	return user, nil
}

// ListUsers returns every account ordered by id. Only staff may list.
func (svc *UserService) ListUsers(ctx context.Context, actor *models.UserDB) ([]models.UserDB, error) {
	if actor == nil || !actor.IsStaff {
		return nil, ErrForbidden
	}
	users, err := svc.lister.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}
