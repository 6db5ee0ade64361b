package shopping

import (
	"context"

	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// CategoryService handles ingredient category operations. Categories are
// shared across users.
type CategoryService struct {
	categoryRepo shopping.IngredientCategoryRepository
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService
func NewCategoryService(categoryRepo shopping.IngredientCategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// List returns all ingredient categories in display order
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]CategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToCategoryResponse(&categories[i])
	}
	return responses, nil
}

// Create creates an ingredient category
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*CategoryResponse, error) {
	category, err := shopping.NewIngredientCategory(input.Name, input.DisplayOrder)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		s.logger.Error("Failed to save category", zap.Error(err))
		return nil, err
	}

	response := ToCategoryResponse(category)
	return &response, nil
}
