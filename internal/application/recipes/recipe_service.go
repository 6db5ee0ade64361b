package recipes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
)

// RecipeService handles recipe business operations
type RecipeService struct {
	recipeRepo recipes.RecipeRepository
	ratingRepo recipes.RecipeRatingRepository
	logger     *zap.Logger
}

// NewRecipeService creates a new RecipeService
func NewRecipeService(
	recipeRepo recipes.RecipeRepository,
	ratingRepo recipes.RecipeRatingRepository,
	logger *zap.Logger,
) *RecipeService {
	return &RecipeService{
		recipeRepo: recipeRepo,
		ratingRepo: ratingRepo,
		logger:     logger,
	}
}

// Create creates a recipe owned by the user
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, input CreateRecipeInput) (*RecipeResponse, error) {
	recipe, err := recipes.NewRecipe(userID, input.Title, input.Servings)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	recipe.Description = input.Description
	recipe.Ingredients = toIngredientLines(input.Ingredients)
	recipe.Instructions = recipes.StringList(input.Instructions)
	recipe.PrepTimeMinutes = input.PrepTimeMinutes
	recipe.CookTimeMinutes = input.CookTimeMinutes
	recipe.CaloriesPerServing = input.CaloriesPerServing
	recipe.Protein = input.Protein
	recipe.Carbs = input.Carbs
	recipe.Fat = input.Fat
	recipe.DietaryTags = recipes.StringList(input.DietaryTags)
	recipe.IsPublic = input.IsPublic

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		s.logger.Error("Failed to save recipe", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Recipe created",
		zap.String("recipe_id", recipe.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToRecipeResponse(recipe)
	return &response, nil
}

// Get returns a recipe the user may read, with rating aggregates
func (s *RecipeService) Get(ctx context.Context, userID, recipeID uuid.UUID) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(userID) {
		return nil, shared.ErrNotFound
	}

	response := ToRecipeResponse(recipe)
	if avg, count, err := s.ratingRepo.AverageForRecipe(ctx, recipeID); err == nil && count > 0 {
		response.AverageRating = &avg
		response.RatingCount = count
	}
	return &response, nil
}

// List returns recipes visible to the user with filtering and pagination
func (s *RecipeService) List(ctx context.Context, userID uuid.UUID, filter RecipeListFilter) (*shared.Paginated[RecipeResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.MaxPrepTime != nil {
		domainFilter.Filters["max_prep_time"] = *filter.MaxPrepTime
	}
	if filter.MaxCalories != nil {
		domainFilter.Filters["max_calories"] = *filter.MaxCalories
	}

	items, err := s.recipeRepo.FindVisibleToUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.recipeRepo.CountVisibleToUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]RecipeResponse, len(items))
	for i := range items {
		responses[i] = ToRecipeResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update modifies a recipe owned by the user
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uuid.UUID, input UpdateRecipeInput) (*RecipeResponse, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.OwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Ingredients != nil {
		recipe.Ingredients = toIngredientLines(input.Ingredients)
	}
	if input.Instructions != nil {
		recipe.Instructions = recipes.StringList(input.Instructions)
	}
	if input.PrepTimeMinutes != nil {
		recipe.PrepTimeMinutes = *input.PrepTimeMinutes
	}
	if input.CookTimeMinutes != nil {
		recipe.CookTimeMinutes = *input.CookTimeMinutes
	}
	if input.Servings != nil {
		if *input.Servings <= 0 {
			return nil, shared.ErrInvalidInput
		}
		recipe.Servings = *input.Servings
	}
	if input.CaloriesPerServing != nil {
		recipe.CaloriesPerServing = *input.CaloriesPerServing
	}
	if input.Protein != nil {
		recipe.Protein = *input.Protein
	}
	if input.Carbs != nil {
		recipe.Carbs = *input.Carbs
	}
	if input.Fat != nil {
		recipe.Fat = *input.Fat
	}
	if input.DietaryTags != nil {
		recipe.DietaryTags = recipes.StringList(input.DietaryTags)
	}
	if input.IsPublic != nil {
		recipe.IsPublic = *input.IsPublic
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		s.logger.Error("Failed to update recipe", zap.Error(err))
		return nil, err
	}

	response := ToRecipeResponse(recipe)
	return &response, nil
}

// Delete removes a recipe owned by the user
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uuid.UUID) error {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if !recipe.OwnedBy(userID) {
		return shared.ErrForbidden
	}

	if err := s.recipeRepo.Delete(ctx, recipeID); err != nil {
		return err
	}

	s.logger.Info("Recipe deleted",
		zap.String("recipe_id", recipeID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// Rate records or updates the user's rating for a visible recipe
func (s *RecipeService) Rate(ctx context.Context, userID, recipeID uuid.UUID, input RateRecipeInput) (*RatingResponse, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(userID) {
		return nil, shared.ErrNotFound
	}

	rating, err := s.ratingRepo.FindByRecipeAndUser(ctx, recipeID, userID)
	switch {
	case err == nil:
		if err := rating.Update(input.Value, input.Comment); err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
		}
	case errors.Is(err, shared.ErrNotFound):
		rating, err = recipes.NewRecipeRating(recipeID, userID, input.Value, input.Comment)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
		}
	default:
		return nil, err
	}

	if err := s.ratingRepo.Save(ctx, rating); err != nil {
		s.logger.Error("Failed to save rating", zap.Error(err))
		return nil, err
	}

	response := ToRatingResponse(rating)
	return &response, nil
}

// AdjustPortions scales a recipe's ingredient amounts toward a target
// calories per serving without persisting anything
func (s *RecipeService) AdjustPortions(ctx context.Context, userID, recipeID uuid.UUID, targetCalories int) (*AdjustedPortionsResponse, error) {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(userID) {
		return nil, shared.ErrNotFound
	}

	multiplier, err := recipe.CalorieMultiplier(targetCalories)
	if err != nil {
		return nil, err
	}

	adjusted := make(recipes.IngredientLines, len(recipe.Ingredients))
	for i, line := range recipe.Ingredients {
		line.Amount = line.Amount.Mul(multiplier).Round(3)
		adjusted[i] = line
	}

	return &AdjustedPortionsResponse{
		RecipeID:           recipe.ID,
		TargetCalories:     targetCalories,
		Multiplier:         multiplier,
		Ingredients:        adjusted,
		CaloriesPerServing: targetCalories,
	}, nil
}
