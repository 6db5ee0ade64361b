package recipes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/recipes"
)

// IngredientInput is one ingredient line in a recipe request
type IngredientInput struct {
	Name       string          `json:"name" binding:"required,max=200"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Unit       *string         `json:"unit" binding:"omitempty,oneof=g kg ml l pcs tbsp tsp cup"`
	CategoryID *uuid.UUID      `json:"category_id"`
}

// CreateRecipeInput contains data for creating a recipe
type CreateRecipeInput struct {
	Title              string            `json:"title" binding:"required,max=200"`
	Description        string            `json:"description"`
	Ingredients        []IngredientInput `json:"ingredients" binding:"required,min=1,dive"`
	Instructions       []string          `json:"instructions"`
	PrepTimeMinutes    int               `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes    int               `json:"cook_time_minutes" binding:"min=0"`
	Servings           int               `json:"servings" binding:"required,min=1"`
	CaloriesPerServing int               `json:"calories_per_serving" binding:"min=0"`
	Protein            decimal.Decimal   `json:"protein"`
	Carbs              decimal.Decimal   `json:"carbs"`
	Fat                decimal.Decimal   `json:"fat"`
	DietaryTags        []string          `json:"dietary_tags"`
	IsPublic           bool              `json:"is_public"`
}

// UpdateRecipeInput contains data for updating a recipe. Nil fields are left
// unchanged.
type UpdateRecipeInput struct {
	Title              *string           `json:"title" binding:"omitempty,max=200"`
	Description        *string           `json:"description"`
	Ingredients        []IngredientInput `json:"ingredients" binding:"omitempty,min=1,dive"`
	Instructions       []string          `json:"instructions"`
	PrepTimeMinutes    *int              `json:"prep_time_minutes" binding:"omitempty,min=0"`
	CookTimeMinutes    *int              `json:"cook_time_minutes" binding:"omitempty,min=0"`
	Servings           *int              `json:"servings" binding:"omitempty,min=1"`
	CaloriesPerServing *int              `json:"calories_per_serving" binding:"omitempty,min=0"`
	Protein            *decimal.Decimal  `json:"protein"`
	Carbs              *decimal.Decimal  `json:"carbs"`
	Fat                *decimal.Decimal  `json:"fat"`
	DietaryTags        []string          `json:"dietary_tags"`
	IsPublic           *bool             `json:"is_public"`
}

// RateRecipeInput contains a rating submission
type RateRecipeInput struct {
	Value   int    `json:"value" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

// RecipeListFilter represents filter options for recipe listings
type RecipeListFilter struct {
	Search      string `form:"search"`
	MaxPrepTime *int   `form:"max_prep_time"`
	MaxCalories *int   `form:"max_calories"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// RecipeResponse represents a recipe in API responses
type RecipeResponse struct {
	ID                 uuid.UUID               `json:"id"`
	CreatedBy          uuid.UUID               `json:"created_by"`
	Title              string                  `json:"title"`
	Description        string                  `json:"description"`
	Ingredients        recipes.IngredientLines `json:"ingredients"`
	Instructions       recipes.StringList      `json:"instructions"`
	PrepTimeMinutes    int                     `json:"prep_time_minutes"`
	CookTimeMinutes    int                     `json:"cook_time_minutes"`
	Servings           int                     `json:"servings"`
	CaloriesPerServing int                     `json:"calories_per_serving"`
	Protein            decimal.Decimal         `json:"protein"`
	Carbs              decimal.Decimal         `json:"carbs"`
	Fat                decimal.Decimal         `json:"fat"`
	DietaryTags        recipes.StringList      `json:"dietary_tags"`
	IsPublic           bool                    `json:"is_public"`
	AverageRating      *float64                `json:"average_rating,omitempty"`
	RatingCount        int64                   `json:"rating_count"`
	CreatedAt          time.Time               `json:"created_at"`
	UpdatedAt          time.Time               `json:"updated_at"`
}

// RatingResponse represents a rating in API responses
type RatingResponse struct {
	ID        uuid.UUID `json:"id"`
	RecipeID  uuid.UUID `json:"recipe_id"`
	UserID    uuid.UUID `json:"user_id"`
	Value     int       `json:"value"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AdjustedPortionsResponse holds a recipe scaled to a calorie target
type AdjustedPortionsResponse struct {
	RecipeID           uuid.UUID               `json:"recipe_id"`
	TargetCalories     int                     `json:"target_calories"`
	Multiplier         decimal.Decimal         `json:"multiplier"`
	Ingredients        recipes.IngredientLines `json:"ingredients"`
	CaloriesPerServing int                     `json:"calories_per_serving"`
}

// ToRecipeResponse maps a domain recipe to its API payload
func ToRecipeResponse(r *recipes.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:                 r.ID,
		CreatedBy:          r.CreatedBy,
		Title:              r.Title,
		Description:        r.Description,
		Ingredients:        r.Ingredients,
		Instructions:       r.Instructions,
		PrepTimeMinutes:    r.PrepTimeMinutes,
		CookTimeMinutes:    r.CookTimeMinutes,
		Servings:           r.Servings,
		CaloriesPerServing: r.CaloriesPerServing,
		Protein:            r.Protein,
		Carbs:              r.Carbs,
		Fat:                r.Fat,
		DietaryTags:        r.DietaryTags,
		IsPublic:           r.IsPublic,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// ToRatingResponse maps a domain rating to its API payload
func ToRatingResponse(r *recipes.RecipeRating) RatingResponse {
	return RatingResponse{
		ID:        r.ID,
		RecipeID:  r.RecipeID,
		UserID:    r.UserID,
		Value:     r.Value,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

func toIngredientLines(inputs []IngredientInput) recipes.IngredientLines {
	lines := make(recipes.IngredientLines, len(inputs))
	for i, in := range inputs {
		lines[i] = recipes.IngredientLine{
			Name:       in.Name,
			Amount:     in.Amount,
			Unit:       in.Unit,
			CategoryID: in.CategoryID,
		}
	}
	return lines
}
