package shopping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// ShoppingListService handles shopping list business operations, including
// derivation of lists from meal plans
type ShoppingListService struct {
	listRepo   shopping.ShoppingListRepository
	pantryRepo shopping.PantryItemRepository
	planRepo   mealplan.MealPlanRepository
	aggregator *shopping.AggregationService
	txScope    TransactionScope
	logger     *zap.Logger
}

// NewShoppingListService creates a new ShoppingListService
func NewShoppingListService(
	listRepo shopping.ShoppingListRepository,
	pantryRepo shopping.PantryItemRepository,
	planRepo mealplan.MealPlanRepository,
	aggregator *shopping.AggregationService,
	txScope TransactionScope,
	logger *zap.Logger,
) *ShoppingListService {
	return &ShoppingListService{
		listRepo:   listRepo,
		pantryRepo: pantryRepo,
		planRepo:   planRepo,
		aggregator: aggregator,
		txScope:    txScope,
		logger:     logger,
	}
}

// Create creates a shopping list owned by the user. A meal plan reference
// must point at a plan the user owns.
func (s *ShoppingListService) Create(ctx context.Context, userID uuid.UUID, input CreateShoppingListInput) (*ShoppingListResponse, error) {
	if input.MealPlanID != nil {
		plan, err := s.planRepo.FindByID(ctx, *input.MealPlanID)
		if err != nil {
			return nil, err
		}
		if !plan.OwnedBy(userID) {
			return nil, shared.ErrNotFound
		}
	}

	list, err := shopping.NewShoppingList(userID, input.Name, input.MealPlanID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	list.Notes = input.Notes

	if err := s.listRepo.Save(ctx, list); err != nil {
		s.logger.Error("Failed to save shopping list", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Shopping list created",
		zap.String("list_id", list.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToShoppingListResponse(list)
	return &response, nil
}

// Get returns the user's shopping list with its items
func (s *ShoppingListService) Get(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResponse, error) {
	list, err := s.listRepo.FindWithItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	response := ToShoppingListResponse(list)
	return &response, nil
}

// List returns the user's shopping lists with filtering and pagination
func (s *ShoppingListService) List(ctx context.Context, userID uuid.UUID, filter ShoppingListFilter) (*shared.Paginated[ShoppingListResponse], error) {
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
	if filter.IsCompleted != nil {
		domainFilter.Filters["is_completed"] = *filter.IsCompleted
	}
	if filter.MealPlanID != nil {
		domainFilter.Filters["meal_plan_id"] = *filter.MealPlanID
	}

	items, err := s.listRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.listRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ShoppingListResponse, len(items))
	for i := range items {
		responses[i] = ToShoppingListResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update modifies a shopping list owned by the user
func (s *ShoppingListService) Update(ctx context.Context, userID, listID uuid.UUID, input UpdateShoppingListInput) (*ShoppingListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if input.Name != nil {
		list.Name = *input.Name
	}
	if input.Notes != nil {
		list.Notes = *input.Notes
	}

	if err := s.listRepo.Save(ctx, list); err != nil {
		s.logger.Error("Failed to update shopping list", zap.Error(err))
		return nil, err
	}

	response := ToShoppingListResponse(list)
	return &response, nil
}

// Delete removes a shopping list owned by the user with its items
func (s *ShoppingListService) Delete(ctx context.Context, userID, listID uuid.UUID) error {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return err
	}
	if !list.OwnedBy(userID) {
		return shared.ErrForbidden
	}

	return s.listRepo.Delete(ctx, listID)
}

// GenerateFromMealPlan aggregates the list's meal plan into ingredient
// demand, nets it against the user's pantry and appends one item per
// remaining entry. Repeated generation appends again; use
// RegenerateFromMealPlan for a clean rebuild. Meals that could not be
// aggregated are reported, not fatal.
func (s *ShoppingListService) GenerateFromMealPlan(ctx context.Context, userID, listID uuid.UUID) (*GenerateListResult, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}
	if list.MealPlanID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shopping list is not linked to a meal plan")
	}

	var skipped []shopping.SkippedMeal
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		skipped, err = s.materialize(ctx, userID, list, repos)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.generateResult(ctx, listID, skipped)
}

// RegenerateFromMealPlan clears the list's items and generates them afresh
// from its meal plan. The delete and the rebuild run in one transaction so a
// failure mid-rebuild leaves the previous items in place.
func (s *ShoppingListService) RegenerateFromMealPlan(ctx context.Context, userID, listID uuid.UUID) (*GenerateListResult, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}
	if list.MealPlanID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shopping list is not linked to a meal plan")
	}

	var skipped []shopping.SkippedMeal
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.ListRepo().DeleteItemsByList(ctx, listID); err != nil {
			return err
		}
		if list.IsCompleted {
			list.IsCompleted = false
			if err := repos.ListRepo().Save(ctx, list); err != nil {
				return err
			}
		}

		skipped, err = s.materialize(ctx, userID, list, repos)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.generateResult(ctx, listID, skipped)
}

// materialize runs the aggregate, net and persist pipeline for the list
// using the transaction-scoped repositories
func (s *ShoppingListService) materialize(ctx context.Context, userID uuid.UUID, list *shopping.ShoppingList, repos TransactionalRepositories) ([]shopping.SkippedMeal, error) {
	plan, err := s.planRepo.FindGraph(ctx, *list.MealPlanID)
	if err != nil {
		return nil, err
	}

	demand, skipped := s.aggregator.AggregatePlan(plan)

	pantry, err := repos.PantryRepo().FindAllForUser(ctx, userID, shared.Filter{})
	if err != nil {
		return nil, err
	}
	net := s.aggregator.NetAgainstPantry(demand, pantry)

	entries := net.Sorted()
	items := make([]*shopping.ShoppingListItem, len(entries))
	for i, entry := range entries {
		items[i] = shopping.NewItemFromDemand(list.ID, entry)
	}
	if err := repos.ListRepo().SaveItems(ctx, items); err != nil {
		s.logger.Error("Failed to save generated items", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Shopping list generated",
		zap.String("list_id", list.ID.String()),
		zap.String("plan_id", list.MealPlanID.String()),
		zap.Int("items", len(items)),
		zap.Int("skipped_meals", len(skipped)))

	return skipped, nil
}

func (s *ShoppingListService) generateResult(ctx context.Context, listID uuid.UUID, skipped []shopping.SkippedMeal) (*GenerateListResult, error) {
	full, err := s.listRepo.FindWithItems(ctx, listID)
	if err != nil {
		return nil, err
	}
	return &GenerateListResult{
		List:         ToShoppingListResponse(full),
		SkippedMeals: ToSkippedMealResponses(skipped),
	}, nil
}

// ToggleItemPurchased flips an item's purchased flag. The list is marked
// completed when nothing on it remains unpurchased and un-completed again
// when something does.
func (s *ShoppingListService) ToggleItemPurchased(ctx context.Context, userID, itemID uuid.UUID) (*ShoppingListResponse, error) {
	item, err := s.listRepo.FindItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	list, err := s.listRepo.FindByID(ctx, item.ShoppingListID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	item.IsPurchased = !item.IsPurchased
	if err := s.listRepo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	items, err := s.listRepo.FindItemsByList(ctx, list.ID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	if completed := list.AllPurchased(); completed != list.IsCompleted {
		list.IsCompleted = completed
		if err := s.listRepo.Save(ctx, list); err != nil {
			return nil, err
		}
	}

	response := ToShoppingListResponse(list)
	return &response, nil
}

// MarkAllPurchased marks every item on the list purchased and completes the
// list when it has any items
func (s *ShoppingListService) MarkAllPurchased(ctx context.Context, userID, listID uuid.UUID) (*ShoppingListResponse, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	if err := s.listRepo.MarkAllPurchased(ctx, listID); err != nil {
		return nil, err
	}

	items, err := s.listRepo.FindItemsByList(ctx, listID)
	if err != nil {
		return nil, err
	}
	list.Items = items
	if completed := list.AllPurchased(); completed != list.IsCompleted {
		list.IsCompleted = completed
		if err := s.listRepo.Save(ctx, list); err != nil {
			return nil, err
		}
	}

	response := ToShoppingListResponse(list)
	return &response, nil
}

// AddPurchasedToPantry folds every purchased item on the list into the
// user's pantry in one transaction. An item whose (name, unit, category)
// matches an existing pantry row increments that row, otherwise a new row is
// created. Running it again over the same items adds the quantities again.
func (s *ShoppingListService) AddPurchasedToPantry(ctx context.Context, userID, listID uuid.UUID) (*ReconcileResult, error) {
	list, err := s.listRepo.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if !list.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	result := &ReconcileResult{}
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, err := repos.ListRepo().FindItemsByList(ctx, listID)
		if err != nil {
			return err
		}

		for i := range items {
			item := &items[i]
			if !item.IsPurchased {
				continue
			}

			matches, err := repos.PantryRepo().FindByIdentity(ctx, userID, item.Name, item.Unit, item.CategoryID)
			if err != nil {
				return err
			}

			if len(matches) > 0 {
				existing := &matches[0]
				if err := existing.AddQuantity(item.Quantity); err != nil {
					return err
				}
				if err := repos.PantryRepo().Save(ctx, existing); err != nil {
					return err
				}
				result.UpdatedItems++
				continue
			}

			created, err := shopping.NewPantryItem(userID, item.Name, item.Quantity, item.Unit, item.CategoryID)
			if err != nil {
				return err
			}
			if err := repos.PantryRepo().Save(ctx, created); err != nil {
				return err
			}
			result.CreatedItems++
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to reconcile purchases into pantry", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Purchases added to pantry",
		zap.String("list_id", listID.String()),
		zap.Int("updated", result.UpdatedItems),
		zap.Int("created", result.CreatedItems))

	return result, nil
}
