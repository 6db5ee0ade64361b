package shopping

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
	"github.com/mealplan/backend/internal/infrastructure/config"
)

// MockIngredientCategoryRepository is a mock implementation of IngredientCategoryRepository
type MockIngredientCategoryRepository struct {
	mock.Mock
}

func (m *MockIngredientCategoryRepository) FindAll(ctx context.Context) ([]shopping.IngredientCategory, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.IngredientCategory), args.Error(1)
}

func (m *MockIngredientCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.IngredientCategory, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.IngredientCategory), args.Error(1)
}

func (m *MockIngredientCategoryRepository) Save(ctx context.Context, category *shopping.IngredientCategory) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func newTestPantryService() (*PantryService, *MockPantryItemRepository) {
	pantryRepo := new(MockPantryItemRepository)
	cfg := config.PantryConfig{LowStockThreshold: 0.2, ExpiringSoonDays: 7}
	return NewPantryService(pantryRepo, cfg, zap.NewNop()), pantryRepo
}

func TestPantryService_Create(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("creates an item", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()
		pantryRepo.On("Save", ctx, mock.AnythingOfType("*shopping.PantryItem")).Return(nil)

		result, err := svc.Create(ctx, userID, CreatePantryItemInput{
			Name:     "Rice",
			Quantity: decimal.NewFromInt(2),
			Unit:     strPtr("kg"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Rice", result.Name)
		pantryRepo.AssertExpectations(t)
	})

	t.Run("rejects an unknown unit", func(t *testing.T) {
		svc, _ := newTestPantryService()

		_, err := svc.Create(ctx, userID, CreatePantryItemInput{
			Name:     "Rice",
			Quantity: decimal.NewFromInt(2),
			Unit:     strPtr("bags"),
		})
		assert.Error(t, err)
	})
}

func TestPantryService_Update(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("patches the quantity", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()
		item, err := shopping.NewPantryItem(userID, "Rice", decimal.NewFromInt(2), strPtr("kg"), nil)
		require.NoError(t, err)
		newQuantity := decimal.NewFromInt(5)

		pantryRepo.On("FindByIDForUser", ctx, userID, item.ID).Return(item, nil)
		pantryRepo.On("Save", ctx, item).Return(nil)

		result, err := svc.Update(ctx, userID, item.ID, UpdatePantryItemInput{Quantity: &newQuantity})
		require.NoError(t, err)
		assert.True(t, newQuantity.Equal(result.Quantity))
		assert.Equal(t, "Rice", result.Name)
	})

	t.Run("rejects a negative quantity", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()
		item, err := shopping.NewPantryItem(userID, "Rice", decimal.NewFromInt(2), strPtr("kg"), nil)
		require.NoError(t, err)
		negative := decimal.NewFromInt(-1)

		pantryRepo.On("FindByIDForUser", ctx, userID, item.ID).Return(item, nil)

		_, err = svc.Update(ctx, userID, item.ID, UpdatePantryItemInput{Quantity: &negative})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("missing item is not found", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()
		itemID := uuid.New()

		pantryRepo.On("FindByIDForUser", ctx, userID, itemID).Return(nil, shared.ErrNotFound)

		_, err := svc.Update(ctx, userID, itemID, UpdatePantryItemInput{})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestPantryService_Reports(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("expiring soon uses the configured window", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()
		item, err := shopping.NewPantryItem(userID, "Yogurt", decimal.NewFromInt(1), nil, nil)
		require.NoError(t, err)

		pantryRepo.On("FindExpiringSoon", ctx, userID, 7).Return([]shopping.PantryItem{*item}, nil)

		items, err := svc.ExpiringSoon(ctx, userID)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Yogurt", items[0].Name)
	})

	t.Run("low stock uses the configured threshold", func(t *testing.T) {
		svc, pantryRepo := newTestPantryService()

		pantryRepo.On("FindLowStock", ctx, userID, 0.2).Return([]shopping.PantryItem{}, nil)

		items, err := svc.LowStock(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestCategoryService(t *testing.T) {
	ctx := context.Background()

	t.Run("lists categories in display order", func(t *testing.T) {
		categoryRepo := new(MockIngredientCategoryRepository)
		svc := NewCategoryService(categoryRepo, zap.NewNop())

		produce, err := shopping.NewIngredientCategory("produce", 1)
		require.NoError(t, err)
		dairy, err := shopping.NewIngredientCategory("dairy", 2)
		require.NoError(t, err)
		categoryRepo.On("FindAll", ctx).Return([]shopping.IngredientCategory{*produce, *dairy}, nil)

		categories, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, categories, 2)
		assert.Equal(t, "produce", categories[0].Name)
	})

	t.Run("creates a category", func(t *testing.T) {
		categoryRepo := new(MockIngredientCategoryRepository)
		svc := NewCategoryService(categoryRepo, zap.NewNop())

		categoryRepo.On("Save", ctx, mock.AnythingOfType("*shopping.IngredientCategory")).Return(nil)

		result, err := svc.Create(ctx, CreateCategoryInput{Name: "spices", DisplayOrder: 8})
		require.NoError(t, err)
		assert.Equal(t, "spices", result.Name)
	})

	t.Run("rejects an empty name", func(t *testing.T) {
		categoryRepo := new(MockIngredientCategoryRepository)
		svc := NewCategoryService(categoryRepo, zap.NewNop())

		_, err := svc.Create(ctx, CreateCategoryInput{Name: "  "})
		assert.Error(t, err)
	})
}
