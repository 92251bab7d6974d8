package services

//go:generate mockgen -source=reconcile.go -destination=reconcile_mock.go -package=services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sbilibin2017/recipe-api/internal/logger"
	"github.com/sbilibin2017/recipe-api/internal/models"
	"github.com/sbilibin2017/recipe-api/internal/validation"
)

// MaxLabelNameLength is the longest accepted tag or ingredient name.
const MaxLabelNameLength = 255

// LabelFinder looks up and creates labels of one kind, always scoped to an owner.
type LabelFinder interface {
	GetByName(ctx context.Context, userID int64, name string) (*models.LabelDB, error)
	CreateIfAbsent(ctx context.Context, userID int64, name string) (*models.LabelDB, error)
}

// CleanLabelNames trims names, rejects blank or overlong entries and drops
// repeats while keeping first-seen order. Field keys look like "tags[1].name".
func CleanLabelNames(field string, names []string) ([]string, error) {
	fields := map[string]string{}
	seen := make(map[string]struct{}, len(names))
	cleaned := make([]string, 0, len(names))

	for i, raw := range names {
		name := strings.TrimSpace(raw)
		key := fmt.Sprintf("%s[%d].name", field, i)
		switch {
		case name == "":
			fields[key] = validation.MsgBlank
			continue
		case len([]rune(name)) > MaxLabelNameLength:
			fields[key] = validation.MaxLength(MaxLabelNameLength)
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		cleaned = append(cleaned, name)
	}

	if len(fields) > 0 {
		return nil, validation.NewError(fields)
	}
	return cleaned, nil
}

// Reconciler turns requested label names into the owner's label rows,
// reusing exact (case-sensitive) matches and creating the rest.
type Reconciler struct {
	finders map[models.LabelKind]LabelFinder
}

// NewReconciler creates a Reconciler over the tag and ingredient stores.
func NewReconciler(tags, ingredients LabelFinder) *Reconciler {
	return &Reconciler{
		finders: map[models.LabelKind]LabelFinder{
			models.LabelTag:        tags,
			models.LabelIngredient: ingredients,
		},
	}
}

// Reconcile resolves every name to a label owned by ownerID and returns the
// resulting set in request order. Invalid names fail before any lookup.
// Run it inside the transaction that also replaces the recipe links.
func (r *Reconciler) Reconcile(ctx context.Context, ownerID int64, names []string, kind models.LabelKind) ([]models.LabelDB, error) {
	finder, ok := r.finders[kind]
	if !ok {
		return nil, fmt.Errorf("unknown label kind %q", kind)
	}

	cleaned, err := CleanLabelNames(kind.Plural(), names)
	if err != nil {
		return nil, err
	}

	resolved := make([]models.LabelDB, 0, len(cleaned))
	for _, name := range cleaned {
		label, created, err := resolveLabel(ctx, finder, ownerID, name)
		if err != nil {
			logger.Log.Errorw("failed to resolve label", "kind", kind, "user_id", ownerID, "name", name, "err", err)
			return nil, err
		}
		if created {
			logger.Log.Infow("label created", "kind", kind, "user_id", ownerID, "label_id", label.ID)
		}
		resolved = append(resolved, *label)
	}
	return resolved, nil
}

// resolveLabel returns the owner's label called name, creating it when absent.
// A concurrent insert of the same name is picked up by the second lookup.
func resolveLabel(ctx context.Context, finder LabelFinder, ownerID int64, name string) (*models.LabelDB, bool, error) {
	label, err := finder.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, false, err
	}
	if label != nil {
		return label, false, nil
	}

	label, err = finder.CreateIfAbsent(ctx, ownerID, name)
	if err != nil {
		return nil, false, err
	}
	if label != nil {
		return label, true, nil
	}

	label, err = finder.GetByName(ctx, ownerID, name)
	if err != nil {
		return nil, false, err
	}
	if label == nil {
		return nil, false, fmt.Errorf("label %q disappeared while resolving", name)
	}
	return label, false, nil
}
