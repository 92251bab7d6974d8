package models

import "github.com/shopspring/decimal"

// LabelRequest represents a nested tag or ingredient in a recipe payload,
// or the body of a label create/rename request.
// swagger:model LabelRequest
type LabelRequest struct {
	// Label name
	// required: true
	// example: Vegan
	Name string `json:"name"`
}

// LabelResponse represents a tag or ingredient
// swagger:model LabelResponse
type LabelResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Vegan
	Name string `json:"name"`
}

// RecipeRequest represents the JSON body for recipe create/update.
// Pointer fields distinguish "absent" from a zero value on PATCH.
// swagger:model RecipeRequest
type RecipeRequest struct {
	// example: Chocolate cake
	Title *string `json:"title"`

	// example: Rich and moist
	Description *string `json:"description"`

	// example: 30
	TimeMinutes *int `json:"time_minutes"`

	// example: 5.50
	Price *decimal.Decimal `json:"price" swaggertype:"string"`

	// example: https://example.com/cake
	Link *string `json:"link"`

	Tags        *[]LabelRequest `json:"tags"`
	Ingredients *[]LabelRequest `json:"ingredients"`
}

// RecipeResponse represents a recipe in list responses
// swagger:model RecipeResponse
type RecipeResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: Chocolate cake
	Title string `json:"title"`

	// example: 30
	TimeMinutes int `json:"time_minutes"`

	// Fixed-point decimal with two fraction digits
	// example: 5.50
	Price string `json:"price"`

	// example: https://example.com/cake
	Link string `json:"link"`

	Tags        []LabelResponse `json:"tags"`
	Ingredients []LabelResponse `json:"ingredients"`
}

// RecipeDetailResponse represents a single recipe
// swagger:model RecipeDetailResponse
type RecipeDetailResponse struct {
	RecipeResponse

	// example: Rich and moist
	Description string `json:"description"`

	// Public URL of the attached image, null when none
	// example: /media/uploads/recipe/3f1c.png
	Image *string `json:"image"`
}

// RecipeImageResponse represents a successful image upload
// swagger:model RecipeImageResponse
type RecipeImageResponse struct {
	// example: 1
	ID int64 `json:"id"`

	// example: /media/uploads/recipe/3f1c.png
	Image string `json:"image"`

	// Compact placeholder for the image
	// example: LEHV6nWB2yk8pyo0adR*.7kCMdnj
	BlurHash string `json:"blur_hash"`

	Width  int `json:"width"`
	Height int `json:"height"`
}

// LabelUpdateRequest represents the body of a label rename.
// swagger:model LabelUpdateRequest
type LabelUpdateRequest struct {
	// Label name, required on PUT
	// example: Vegan
	Name *string `json:"name"`
}
