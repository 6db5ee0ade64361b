package recipes

import (
	"errors"

	"github.com/google/uuid"

	"github.com/mealplan/backend/internal/domain/shared"
)

// RecipeRating is a user's rating of a recipe, one per (recipe, user)
type RecipeRating struct {
	shared.BaseEntity
	RecipeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_recipe_user,priority:1"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_recipe_user,priority:2"`
	Value    int       `gorm:"not null"`
	Comment  string    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RecipeRating) TableName() string {
	return "recipe_ratings"
}

// NewRecipeRating creates a rating with a value between 1 and 5
func NewRecipeRating(recipeID, userID uuid.UUID, value int, comment string) (*RecipeRating, error) {
	if value < 1 || value > 5 {
		return nil, errors.New("rating value must be between 1 and 5")
	}
	return &RecipeRating{
		BaseEntity: shared.NewBaseEntity(),
		RecipeID:   recipeID,
		UserID:     userID,
		Value:      value,
		Comment:    comment,
	}, nil
}

// Update changes the rating value and comment
func (r *RecipeRating) Update(value int, comment string) error {
	if value < 1 || value > 5 {
		return errors.New("rating value must be between 1 and 5")
	}
	r.Value = value
	r.Comment = comment
	return nil
}
