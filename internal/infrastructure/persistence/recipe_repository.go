package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
)

// GormRecipeRepository implements RecipeRepository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by its ID
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipes.Recipe, error) {
	var recipe recipes.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// FindAll finds all recipes matching the filter
func (r *GormRecipeRepository) FindAll(ctx context.Context, filter shared.Filter) ([]recipes.Recipe, error) {
	var items []recipes.Recipe
	query := r.applyFilter(r.db.WithContext(ctx).Model(&recipes.Recipe{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a recipe
func (r *GormRecipeRepository) Save(ctx context.Context, recipe *recipes.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// Delete deletes a recipe by ID
func (r *GormRecipeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&recipes.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts recipes matching the filter
func (r *GormRecipeRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&recipes.Recipe{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindVisibleToUser finds recipes the user owns plus public recipes
func (r *GormRecipeRepository) FindVisibleToUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]recipes.Recipe, error) {
	var items []recipes.Recipe
	query := r.db.WithContext(ctx).Model(&recipes.Recipe{}).
		Where("created_by = ? OR is_public = ?", userID, true)
	query = r.applyFilter(query, filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountVisibleToUser counts recipes visible to the user
func (r *GormRecipeRepository) CountVisibleToUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&recipes.Recipe{}).
		Where("created_by = ? OR is_public = ?", userID, true)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIDs finds recipes by a set of IDs
func (r *GormRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]recipes.Recipe, error) {
	if len(ids) == 0 {
		return []recipes.Recipe{}, nil
	}
	var items []recipes.Recipe
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// applyFilter applies filter options to the query
func (r *GormRecipeRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, RecipeSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormRecipeRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "created_by":
			query = query.Where("created_by = ?", value)
		case "is_public":
			query = query.Where("is_public = ?", value)
		case "max_prep_time":
			query = query.Where("prep_time_minutes <= ?", value)
		case "max_calories":
			query = query.Where("calories_per_serving <= ?", value)
		}
	}

	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", search, search)
	}

	return query
}

// GormRecipeRatingRepository implements RecipeRatingRepository using GORM
type GormRecipeRatingRepository struct {
	db *gorm.DB
}

// NewGormRecipeRatingRepository creates a new GormRecipeRatingRepository
func NewGormRecipeRatingRepository(db *gorm.DB) *GormRecipeRatingRepository {
	return &GormRecipeRatingRepository{db: db}
}

// FindByRecipeAndUser finds the user's rating for a recipe
func (r *GormRecipeRatingRepository) FindByRecipeAndUser(ctx context.Context, recipeID, userID uuid.UUID) (*recipes.RecipeRating, error) {
	var rating recipes.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ? AND user_id = ?", recipeID, userID).
		First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// FindByRecipe finds all ratings for a recipe
func (r *GormRecipeRatingRepository) FindByRecipe(ctx context.Context, recipeID uuid.UUID) ([]recipes.RecipeRating, error) {
	var ratings []recipes.RecipeRating
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}
	return ratings, nil
}

// Save creates or updates a rating
func (r *GormRecipeRatingRepository) Save(ctx context.Context, rating *recipes.RecipeRating) error {
	return r.db.WithContext(ctx).Save(rating).Error
}

// Delete deletes a rating by ID
func (r *GormRecipeRatingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&recipes.RecipeRating{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// AverageForRecipe returns the mean rating value and the rating count
func (r *GormRecipeRatingRepository) AverageForRecipe(ctx context.Context, recipeID uuid.UUID) (float64, int64, error) {
	var result struct {
		Avg   float64
		Count int64
	}
	if err := r.db.WithContext(ctx).
		Model(&recipes.RecipeRating{}).
		Select("COALESCE(AVG(value), 0) AS avg, COUNT(*) AS count").
		Where("recipe_id = ?", recipeID).
		Scan(&result).Error; err != nil {
		return 0, 0, err
	}
	return result.Avg, result.Count, nil
}

// Ensure implementations satisfy the repository interfaces
var _ recipes.RecipeRepository = (*GormRecipeRepository)(nil)
var _ recipes.RecipeRatingRepository = (*GormRecipeRatingRepository)(nil)
