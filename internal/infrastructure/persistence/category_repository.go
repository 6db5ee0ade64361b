package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// GormIngredientCategoryRepository implements IngredientCategoryRepository using GORM
type GormIngredientCategoryRepository struct {
	db *gorm.DB
}

// NewGormIngredientCategoryRepository creates a new GormIngredientCategoryRepository
func NewGormIngredientCategoryRepository(db *gorm.DB) *GormIngredientCategoryRepository {
	return &GormIngredientCategoryRepository{db: db}
}

// FindAll finds all ingredient categories ordered by display order
func (r *GormIngredientCategoryRepository) FindAll(ctx context.Context) ([]shopping.IngredientCategory, error) {
	var categories []shopping.IngredientCategory
	if err := r.db.WithContext(ctx).Order("display_order ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID finds an ingredient category by ID
func (r *GormIngredientCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.IngredientCategory, error) {
	var category shopping.IngredientCategory
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Save creates or updates an ingredient category
func (r *GormIngredientCategoryRepository) Save(ctx context.Context, category *shopping.IngredientCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Ensure GormIngredientCategoryRepository implements IngredientCategoryRepository
var _ shopping.IngredientCategoryRepository = (*GormIngredientCategoryRepository)(nil)
