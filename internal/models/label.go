package models

import "time"

// LabelKind names one of the per-user label namespaces a recipe links to.
type LabelKind string

// Supported label kinds
const (
	LabelTag        LabelKind = "tag"
	LabelIngredient LabelKind = "ingredient"
)

// Plural returns the payload field name used for the kind ("tags", "ingredients").
func (k LabelKind) Plural() string {
	return string(k) + "s"
}

// LabelDB represents a tag or ingredient row. Tags and ingredients share
// the same shape but live in separate tables.
type LabelDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	UserID    int64     `json:"user_id" db:"user_id"`       // Owner, immutable
	Name      string    `json:"name" db:"name"`             // Unique per owner
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
}
