package recipes

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealplan/backend/internal/domain/shared"
)

// RecipeRepository provides access to recipe persistence
type RecipeRepository interface {
	shared.Repository[Recipe]
	// FindVisibleToUser returns recipes the user owns plus public recipes
	FindVisibleToUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Recipe, error)
	CountVisibleToUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Recipe, error)
}

// RecipeRatingRepository provides access to recipe rating persistence
type RecipeRatingRepository interface {
	FindByRecipeAndUser(ctx context.Context, recipeID, userID uuid.UUID) (*RecipeRating, error)
	FindByRecipe(ctx context.Context, recipeID uuid.UUID) ([]RecipeRating, error)
	Save(ctx context.Context, rating *RecipeRating) error
	Delete(ctx context.Context, id uuid.UUID) error
	// AverageForRecipe returns the mean rating value and the rating count
	AverageForRecipe(ctx context.Context, recipeID uuid.UUID) (float64, int64, error)
}
