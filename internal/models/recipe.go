package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecipeDB represents a recipe row in the database
type RecipeDB struct {
	ID          int64           `json:"id" db:"id"`                     // Primary key
	UserID      int64           `json:"user_id" db:"user_id"`           // Owner, immutable
	Title       string          `json:"title" db:"title"`               // Recipe title
	Description string          `json:"description" db:"description"`   // Free text description
	TimeMinutes int             `json:"time_minutes" db:"time_minutes"` // Preparation time, non-negative
	Price       decimal.Decimal `json:"price" db:"price"`               // NUMERIC(5,2), non-negative
	Link        string          `json:"link" db:"link"`                 // Optional external link
	Image       *string         `json:"image" db:"image"`               // Storage key of the attached image
	CreatedAt   time.Time       `json:"created_at" db:"created_at"`     // Creation timestamp
	UpdatedAt   time.Time       `json:"updated_at" db:"updated_at"`     // Last update timestamp
}

// Recipe is a recipe together with its resolved association sets.
type Recipe struct {
	RecipeDB
	Tags        []LabelDB `json:"tags"`
	Ingredients []LabelDB `json:"ingredients"`
	ImageURL    string    `json:"image_url,omitempty"` // Public URL of Image, empty when no image
}

// Labels returns the association set for kind.
func (r *Recipe) Labels(kind LabelKind) []LabelDB {
	if kind == LabelIngredient {
		return r.Ingredients
	}
	return r.Tags
}

// SetLabels replaces the association set for kind.
func (r *Recipe) SetLabels(kind LabelKind, labels []LabelDB) {
	if kind == LabelIngredient {
		r.Ingredients = labels
		return
	}
	r.Tags = labels
}
