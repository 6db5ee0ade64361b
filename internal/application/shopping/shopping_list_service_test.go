package shopping

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// MockShoppingListRepository is a mock implementation of ShoppingListRepository
type MockShoppingListRepository struct {
	mock.Mock
}

func (m *MockShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.ShoppingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.ShoppingList, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) Save(ctx context.Context, list *shopping.ShoppingList) error {
	args := m.Called(ctx, list)
	return args.Error(0)
}

func (m *MockShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockShoppingListRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShoppingListRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.ShoppingList, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shopping.ShoppingList, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShoppingListRepository) FindWithItems(ctx context.Context, id uuid.UUID) (*shopping.ShoppingList, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.ShoppingList), args.Error(1)
}

func (m *MockShoppingListRepository) SaveItem(ctx context.Context, item *shopping.ShoppingListItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockShoppingListRepository) SaveItems(ctx context.Context, items []*shopping.ShoppingListItem) error {
	args := m.Called(ctx, items)
	return args.Error(0)
}

func (m *MockShoppingListRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*shopping.ShoppingListItem, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListRepository) FindItemsByList(ctx context.Context, listID uuid.UUID) ([]shopping.ShoppingListItem, error) {
	args := m.Called(ctx, listID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.ShoppingListItem), args.Error(1)
}

func (m *MockShoppingListRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

func (m *MockShoppingListRepository) DeleteItemsByList(ctx context.Context, listID uuid.UUID) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

func (m *MockShoppingListRepository) MarkAllPurchased(ctx context.Context, listID uuid.UUID) error {
	args := m.Called(ctx, listID)
	return args.Error(0)
}

// MockPantryItemRepository is a mock implementation of PantryItemRepository
type MockPantryItemRepository struct {
	mock.Mock
}

func (m *MockPantryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.PantryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.PantryItem, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) Save(ctx context.Context, item *shopping.PantryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockPantryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPantryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPantryItemRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.PantryItem, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shopping.PantryItem, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPantryItemRepository) FindByIdentity(ctx context.Context, userID uuid.UUID, name string, unit *string, categoryID *uuid.UUID) ([]shopping.PantryItem, error) {
	args := m.Called(ctx, userID, name, unit, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) FindExpiringSoon(ctx context.Context, userID uuid.UUID, days int) ([]shopping.PantryItem, error) {
	args := m.Called(ctx, userID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.PantryItem), args.Error(1)
}

func (m *MockPantryItemRepository) FindLowStock(ctx context.Context, userID uuid.UUID, threshold float64) ([]shopping.PantryItem, error) {
	args := m.Called(ctx, userID, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shopping.PantryItem), args.Error(1)
}

// MockMealPlanRepository is a mock implementation of mealplan.MealPlanRepository
type MockMealPlanRepository struct {
	mock.Mock
}

func (m *MockMealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mealplan.MealPlan, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) Save(ctx context.Context, plan *mealplan.MealPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMealPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMealPlanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]mealplan.MealPlan, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMealPlanRepository) FindGraph(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlan), args.Error(1)
}

func (m *MockMealPlanRepository) SaveDay(ctx context.Context, day *mealplan.MealPlanDay) error {
	args := m.Called(ctx, day)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindDay(ctx context.Context, dayID uuid.UUID) (*mealplan.MealPlanDay, error) {
	args := m.Called(ctx, dayID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlanDay), args.Error(1)
}

func (m *MockMealPlanRepository) FindDayByDate(ctx context.Context, planID uuid.UUID, date time.Time) (*mealplan.MealPlanDay, error) {
	args := m.Called(ctx, planID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.MealPlanDay), args.Error(1)
}

func (m *MockMealPlanRepository) SaveMeal(ctx context.Context, meal *mealplan.Meal) error {
	args := m.Called(ctx, meal)
	return args.Error(0)
}

func (m *MockMealPlanRepository) FindMeal(ctx context.Context, mealID uuid.UUID) (*mealplan.Meal, error) {
	args := m.Called(ctx, mealID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.Meal), args.Error(1)
}

func (m *MockMealPlanRepository) FindMealBySlot(ctx context.Context, dayID, mealTypeID uuid.UUID) (*mealplan.Meal, error) {
	args := m.Called(ctx, dayID, mealTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mealplan.Meal), args.Error(1)
}

func (m *MockMealPlanRepository) DeleteMeal(ctx context.Context, mealID uuid.UUID) error {
	args := m.Called(ctx, mealID)
	return args.Error(0)
}

func newTestShoppingListService() (*ShoppingListService, *MockShoppingListRepository, *MockPantryItemRepository, *MockMealPlanRepository) {
	listRepo := new(MockShoppingListRepository)
	pantryRepo := new(MockPantryItemRepository)
	planRepo := new(MockMealPlanRepository)
	txScope := NewNoOpTransactionScope(listRepo, pantryRepo)
	svc := NewShoppingListService(listRepo, pantryRepo, planRepo, shopping.NewAggregationService(), txScope, zap.NewNop())
	return svc, listRepo, pantryRepo, planRepo
}

func strPtr(s string) *string { return &s }

func ownedList(t *testing.T, owner uuid.UUID, planID *uuid.UUID) *shopping.ShoppingList {
	list, err := shopping.NewShoppingList(owner, "Groceries", planID)
	require.NoError(t, err)
	return list
}

// applePlan builds a plan whose two meals both use 100 g of apples, scaled
// at ratios 1 and 2 against a two serving recipe.
func applePlan(t *testing.T, owner uuid.UUID) *mealplan.MealPlan {
	plan, err := mealplan.NewMealPlan(owner, "Apple week",
		time.Date(2026, time.May, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 5, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	recipe, err := recipes.NewRecipe(owner, "Apple snack", 2)
	require.NoError(t, err)
	recipe.Ingredients = recipes.IngredientLines{
		{Name: "Apples", Amount: decimal.NewFromInt(100), Unit: strPtr("g")},
	}

	day := mealplan.NewMealPlanDay(plan.ID, plan.StartDate)
	mealAt := func(servings int) mealplan.Meal {
		meal, err := mealplan.NewMeal(day.ID, uuid.New(), recipe.ID, servings)
		require.NoError(t, err)
		meal.Recipe = recipe
		return *meal
	}
	day.Meals = []mealplan.Meal{mealAt(2), mealAt(4)}
	plan.Days = []mealplan.MealPlanDay{*day}
	return plan
}

func TestShoppingListService_Create(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("creates a standalone list", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		listRepo.On("Save", ctx, mock.AnythingOfType("*shopping.ShoppingList")).Return(nil)

		result, err := svc.Create(ctx, owner, CreateShoppingListInput{Name: "Groceries"})
		require.NoError(t, err)
		assert.Equal(t, "Groceries", result.Name)
		assert.Nil(t, result.MealPlanID)
	})

	t.Run("rejects a meal plan the user does not own", func(t *testing.T) {
		svc, _, _, planRepo := newTestShoppingListService()
		plan, err := mealplan.NewMealPlan(uuid.New(), "Other", time.Now(), time.Now())
		require.NoError(t, err)
		planRepo.On("FindByID", ctx, plan.ID).Return(plan, nil)

		_, err = svc.Create(ctx, owner, CreateShoppingListInput{Name: "Groceries", MealPlanID: &plan.ID})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestShoppingListService_GenerateFromMealPlan(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("aggregates, nets against pantry and appends items", func(t *testing.T) {
		svc, listRepo, pantryRepo, planRepo := newTestShoppingListService()
		plan := applePlan(t, owner)
		list := ownedList(t, owner, &plan.ID)

		pantryApples, err := shopping.NewPantryItem(owner, "Apples", decimal.NewFromInt(50), strPtr("g"), nil)
		require.NoError(t, err)

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		planRepo.On("FindGraph", ctx, plan.ID).Return(plan, nil)
		pantryRepo.On("FindAllForUser", ctx, owner, mock.Anything).Return([]shopping.PantryItem{*pantryApples}, nil)

		var saved []*shopping.ShoppingListItem
		listRepo.On("SaveItems", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved = args.Get(1).([]*shopping.ShoppingListItem)
		}).Return(nil)
		listRepo.On("FindWithItems", ctx, list.ID).Return(list, nil)

		result, err := svc.GenerateFromMealPlan(ctx, owner, list.ID)
		require.NoError(t, err)
		assert.Empty(t, result.SkippedMeals)

		// 100*(2/2) + 100*(4/2) = 300 g demanded, 50 g in the pantry
		require.Len(t, saved, 1)
		assert.Equal(t, "Apples", saved[0].Name)
		assert.True(t, decimal.NewFromInt(250).Equal(saved[0].Quantity))
		require.NotNil(t, saved[0].Unit)
		assert.Equal(t, "g", *saved[0].Unit)
		assert.False(t, saved[0].IsPurchased)
	})

	t.Run("records skipped meals and keeps going", func(t *testing.T) {
		svc, listRepo, pantryRepo, planRepo := newTestShoppingListService()
		plan := applePlan(t, owner)
		// A meal without a loaded recipe cannot be aggregated
		plan.Days[0].Meals[1].Recipe = nil
		list := ownedList(t, owner, &plan.ID)

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		planRepo.On("FindGraph", ctx, plan.ID).Return(plan, nil)
		pantryRepo.On("FindAllForUser", ctx, owner, mock.Anything).Return([]shopping.PantryItem{}, nil)
		listRepo.On("SaveItems", ctx, mock.Anything).Return(nil)
		listRepo.On("FindWithItems", ctx, list.ID).Return(list, nil)

		result, err := svc.GenerateFromMealPlan(ctx, owner, list.ID)
		require.NoError(t, err)
		require.Len(t, result.SkippedMeals, 1)
	})

	t.Run("requires a linked meal plan", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)
		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)

		_, err := svc.GenerateFromMealPlan(ctx, owner, list.ID)
		assert.Error(t, err)
	})

	t.Run("hides another user's list", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)
		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)

		_, err := svc.GenerateFromMealPlan(ctx, uuid.New(), list.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

// recordingTxScope hands out its own repositories so tests can tell scoped
// writes apart from writes on the service's plain repositories
type recordingTxScope struct {
	repos    TransactionalRepositories
	executed int
}

func (s *recordingTxScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.executed++
	return fn(s.repos)
}

func TestShoppingListService_RegenerateFromMealPlan(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("clears and rebuilds the items", func(t *testing.T) {
		svc, listRepo, pantryRepo, planRepo := newTestShoppingListService()
		plan := applePlan(t, owner)
		list := ownedList(t, owner, &plan.ID)
		list.IsCompleted = true

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		listRepo.On("DeleteItemsByList", ctx, list.ID).Return(nil)
		listRepo.On("Save", ctx, list).Return(nil)
		planRepo.On("FindGraph", ctx, plan.ID).Return(plan, nil)
		pantryRepo.On("FindAllForUser", ctx, owner, mock.Anything).Return([]shopping.PantryItem{}, nil)
		listRepo.On("SaveItems", ctx, mock.Anything).Return(nil)
		listRepo.On("FindWithItems", ctx, list.ID).Return(list, nil)

		_, err := svc.RegenerateFromMealPlan(ctx, owner, list.ID)
		require.NoError(t, err)
		assert.False(t, list.IsCompleted)
		listRepo.AssertCalled(t, "DeleteItemsByList", ctx, list.ID)
	})

	t.Run("delete and rebuild run through one transaction", func(t *testing.T) {
		listRepo := new(MockShoppingListRepository)
		pantryRepo := new(MockPantryItemRepository)
		planRepo := new(MockMealPlanRepository)
		txListRepo := new(MockShoppingListRepository)
		txPantryRepo := new(MockPantryItemRepository)
		scope := &recordingTxScope{repos: NewNoOpTransactionScope(txListRepo, txPantryRepo)}
		svc := NewShoppingListService(listRepo, pantryRepo, planRepo, shopping.NewAggregationService(), scope, zap.NewNop())

		plan := applePlan(t, owner)
		list := ownedList(t, owner, &plan.ID)

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		listRepo.On("FindWithItems", ctx, list.ID).Return(list, nil)
		planRepo.On("FindGraph", ctx, plan.ID).Return(plan, nil)
		txListRepo.On("DeleteItemsByList", ctx, list.ID).Return(nil)
		txPantryRepo.On("FindAllForUser", ctx, owner, mock.Anything).Return([]shopping.PantryItem{}, nil)
		txListRepo.On("SaveItems", ctx, mock.Anything).Return(nil)

		_, err := svc.RegenerateFromMealPlan(ctx, owner, list.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, scope.executed)
		// every write went through the scoped repositories
		txListRepo.AssertExpectations(t)
		listRepo.AssertNotCalled(t, "DeleteItemsByList", ctx, list.ID)
		listRepo.AssertNotCalled(t, "SaveItems", ctx, mock.Anything)
	})

	t.Run("failed rebuild surfaces through the scope so the delete rolls back", func(t *testing.T) {
		listRepo := new(MockShoppingListRepository)
		pantryRepo := new(MockPantryItemRepository)
		planRepo := new(MockMealPlanRepository)
		txListRepo := new(MockShoppingListRepository)
		txPantryRepo := new(MockPantryItemRepository)
		scope := &recordingTxScope{repos: NewNoOpTransactionScope(txListRepo, txPantryRepo)}
		svc := NewShoppingListService(listRepo, pantryRepo, planRepo, shopping.NewAggregationService(), scope, zap.NewNop())

		plan := applePlan(t, owner)
		list := ownedList(t, owner, &plan.ID)

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		planRepo.On("FindGraph", ctx, plan.ID).Return(plan, nil)
		txListRepo.On("DeleteItemsByList", ctx, list.ID).Return(nil)
		txPantryRepo.On("FindAllForUser", ctx, owner, mock.Anything).Return([]shopping.PantryItem{}, nil)
		txListRepo.On("SaveItems", ctx, mock.Anything).Return(assert.AnError)

		_, err := svc.RegenerateFromMealPlan(ctx, owner, list.ID)
		assert.ErrorIs(t, err, assert.AnError)
		// the failing SaveItems and the preceding delete share the scope, so
		// the transaction carries the error out and nothing is committed
		assert.Equal(t, 1, scope.executed)
		listRepo.AssertNotCalled(t, "DeleteItemsByList", ctx, list.ID)
	})
}

func TestShoppingListService_ToggleItemPurchased(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("completes the list when the last item is purchased", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)
		item, err := shopping.NewShoppingListItem(list.ID, "Milk", decimal.NewFromInt(1), strPtr("l"), nil)
		require.NoError(t, err)

		afterToggle := *item
		afterToggle.IsPurchased = true

		listRepo.On("FindItem", ctx, item.ID).Return(item, nil)
		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		listRepo.On("SaveItem", ctx, item).Return(nil)
		listRepo.On("FindItemsByList", ctx, list.ID).Return([]shopping.ShoppingListItem{afterToggle}, nil)
		listRepo.On("Save", ctx, list).Return(nil)

		result, err := svc.ToggleItemPurchased(ctx, owner, item.ID)
		require.NoError(t, err)
		assert.True(t, item.IsPurchased)
		assert.True(t, result.IsCompleted)
	})

	t.Run("un-completes the list when an item is toggled back", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)
		list.IsCompleted = true
		item, err := shopping.NewShoppingListItem(list.ID, "Milk", decimal.NewFromInt(1), strPtr("l"), nil)
		require.NoError(t, err)
		item.IsPurchased = true
		afterToggle := *item
		afterToggle.IsPurchased = false

		listRepo.On("FindItem", ctx, item.ID).Return(item, nil)
		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		listRepo.On("SaveItem", ctx, item).Return(nil)
		listRepo.On("FindItemsByList", ctx, list.ID).Return([]shopping.ShoppingListItem{afterToggle}, nil)
		listRepo.On("Save", ctx, list).Return(nil)

		result, err := svc.ToggleItemPurchased(ctx, owner, item.ID)
		require.NoError(t, err)
		assert.False(t, item.IsPurchased)
		assert.False(t, result.IsCompleted)
	})
}

func TestShoppingListService_MarkAllPurchased(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	svc, listRepo, _, _ := newTestShoppingListService()
	list := ownedList(t, owner, nil)
	item, err := shopping.NewShoppingListItem(list.ID, "Milk", decimal.NewFromInt(1), strPtr("l"), nil)
	require.NoError(t, err)
	item.IsPurchased = true

	listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
	listRepo.On("MarkAllPurchased", ctx, list.ID).Return(nil)
	listRepo.On("FindItemsByList", ctx, list.ID).Return([]shopping.ShoppingListItem{*item}, nil)
	listRepo.On("Save", ctx, list).Return(nil)

	result, err := svc.MarkAllPurchased(ctx, owner, list.ID)
	require.NoError(t, err)
	assert.True(t, result.IsCompleted)
}

func TestShoppingListService_AddPurchasedToPantry(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("increments a matching pantry row and creates missing ones", func(t *testing.T) {
		svc, listRepo, pantryRepo, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)

		apples, err := shopping.NewShoppingListItem(list.ID, "Apples", decimal.NewFromInt(250), strPtr("g"), nil)
		require.NoError(t, err)
		apples.IsPurchased = true
		milk, err := shopping.NewShoppingListItem(list.ID, "Milk", decimal.NewFromInt(1), strPtr("l"), nil)
		require.NoError(t, err)
		milk.IsPurchased = true
		bread, err := shopping.NewShoppingListItem(list.ID, "Bread", decimal.NewFromInt(1), nil, nil)
		require.NoError(t, err)

		pantryApples, err := shopping.NewPantryItem(owner, "Apples", decimal.NewFromInt(50), strPtr("g"), nil)
		require.NoError(t, err)

		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)
		listRepo.On("FindItemsByList", ctx, list.ID).Return([]shopping.ShoppingListItem{*apples, *milk, *bread}, nil)
		pantryRepo.On("FindByIdentity", ctx, owner, "Apples", mock.Anything, (*uuid.UUID)(nil)).Return([]shopping.PantryItem{*pantryApples}, nil)
		pantryRepo.On("FindByIdentity", ctx, owner, "Milk", mock.Anything, (*uuid.UUID)(nil)).Return([]shopping.PantryItem{}, nil)

		var savedQuantities []decimal.Decimal
		pantryRepo.On("Save", ctx, mock.AnythingOfType("*shopping.PantryItem")).Run(func(args mock.Arguments) {
			savedQuantities = append(savedQuantities, args.Get(1).(*shopping.PantryItem).Quantity)
		}).Return(nil)

		result, err := svc.AddPurchasedToPantry(ctx, owner, list.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, result.UpdatedItems)
		assert.Equal(t, 1, result.CreatedItems)

		// Unpurchased bread never reaches the pantry
		require.Len(t, savedQuantities, 2)
		assert.True(t, decimal.NewFromInt(300).Equal(savedQuantities[0]))
		assert.True(t, decimal.NewFromInt(1).Equal(savedQuantities[1]))
	})

	t.Run("hides another user's list", func(t *testing.T) {
		svc, listRepo, _, _ := newTestShoppingListService()
		list := ownedList(t, owner, nil)
		listRepo.On("FindByID", ctx, list.ID).Return(list, nil)

		_, err := svc.AddPurchasedToPantry(ctx, uuid.New(), list.ID)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
