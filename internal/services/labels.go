package services

//go:generate mockgen -source=labels.go -destination=labels_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/repositories"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// LabelRepository stores one kind of label.
type LabelRepository interface {
	LabelFinder
	List(ctx context.Context, userID int64) ([]models.LabelDB, error)
	GetByID(ctx context.Context, userID, id int64) (*models.LabelDB, error)
	Rename(ctx context.Context, userID, id int64, name string) (*models.LabelDB, error)
	Delete(ctx context.Context, userID, id int64) error
}

// LabelService implements owner-scoped CRUD for tags or ingredients.
type LabelService struct {
	kind models.LabelKind
	repo LabelRepository
}

// NewLabelService creates a LabelService for kind.
func NewLabelService(kind models.LabelKind, repo LabelRepository) *LabelService {
	return &LabelService{kind: kind, repo: repo}
}

func cleanLabelName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", validation.FieldError("name", validation.MsgBlank)
	}
	if len([]rune(name)) > MaxLabelNameLength {
		return "", validation.FieldError("name", validation.MaxLength(MaxLabelNameLength))
	}
	return name, nil
}

// List returns the owner's labels in reverse name order.
func (svc *LabelService) List(ctx context.Context, userID int64) ([]models.LabelDB, error) {
	labels, err := svc.repo.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list labels", "kind", svc.kind, "user_id", userID, "err", err)
		return nil, err
	}
	return labels, nil
}

// Create returns the owner's label called name, creating it when needed.
// The flag reports whether a new label was created.
func (svc *LabelService) Create(ctx context.Context, userID int64, name string) (*models.LabelDB, bool, error) {
	name, err := cleanLabelName(name)
	if err != nil {
		return nil, false, err
	}
	label, created, err := resolveLabel(ctx, svc.repo, userID, name)
	if err != nil {
		logger.Log.Errorw("failed to create label", "kind", svc.kind, "user_id", userID, "err", err)
		return nil, false, err
	}
	return label, created, nil
}

// Rename renames the owner's label. A nil name leaves it unchanged.
func (svc *LabelService) Rename(ctx context.Context, userID, id int64, name *string) (*models.LabelDB, error) {
	if name == nil {
		label, err := svc.repo.GetByID(ctx, userID, id)
		return label, svc.mapError(err)
	}

	cleaned, err := cleanLabelName(*name)
	if err != nil {
		return nil, err
	}
	label, err := svc.repo.Rename(ctx, userID, id, cleaned)
	if err != nil {
		return nil, svc.mapError(err)
	}
	return label, nil
}

// Delete removes the owner's label and its recipe links. Recipes stay.
func (svc *LabelService) Delete(ctx context.Context, userID, id int64) error {
	return svc.mapError(svc.repo.Delete(ctx, userID, id))
}

func (svc *LabelService) mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return ErrLabelNotFound
	case errors.Is(err, repositories.ErrDuplicate):
		return ErrLabelNameTaken
	default:
		logger.Log.Errorw("label store failure", "kind", svc.kind, "err", err)
		return err
	}
}
