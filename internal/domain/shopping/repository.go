package shopping

import (
	"context"

	"github.com/google/uuid"

	"github.com/mealplan/backend/internal/domain/shared"
)

// ShoppingListRepository provides access to shopping list persistence
type ShoppingListRepository interface {
	shared.OwnedRepository[ShoppingList]
	// FindWithItems loads a list together with its items
	FindWithItems(ctx context.Context, id uuid.UUID) (*ShoppingList, error)
	SaveItem(ctx context.Context, item *ShoppingListItem) error
	SaveItems(ctx context.Context, items []*ShoppingListItem) error
	FindItem(ctx context.Context, itemID uuid.UUID) (*ShoppingListItem, error)
	FindItemsByList(ctx context.Context, listID uuid.UUID) ([]ShoppingListItem, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
	DeleteItemsByList(ctx context.Context, listID uuid.UUID) error
	MarkAllPurchased(ctx context.Context, listID uuid.UUID) error
}

// PantryItemRepository provides access to pantry persistence
type PantryItemRepository interface {
	shared.OwnedRepository[PantryItem]
	// FindByIdentity returns the user's pantry rows matching (name, unit,
	// category) exactly, oldest first
	FindByIdentity(ctx context.Context, userID uuid.UUID, name string, unit *string, categoryID *uuid.UUID) ([]PantryItem, error)
	// FindExpiringSoon returns items whose expiry date falls within the given
	// number of days, ordered by expiry ascending
	FindExpiringSoon(ctx context.Context, userID uuid.UUID, days int) ([]PantryItem, error)
	// FindLowStock returns items with quantity below the threshold
	FindLowStock(ctx context.Context, userID uuid.UUID, threshold float64) ([]PantryItem, error)
}

// IngredientCategoryRepository provides access to ingredient categories
type IngredientCategoryRepository interface {
	FindAll(ctx context.Context) ([]IngredientCategory, error)
	FindByID(ctx context.Context, id uuid.UUID) (*IngredientCategory, error)
	Save(ctx context.Context, category *IngredientCategory) error
}
