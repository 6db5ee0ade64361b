package shopping

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shared/valueobject"
)

// ShoppingList is the aggregate root for a user's shopping list, optionally
// tied to the meal plan it was generated from.
type ShoppingList struct {
	shared.BaseEntity
	UserID      uuid.UUID          `gorm:"type:uuid;not null;index"`
	MealPlanID  *uuid.UUID         `gorm:"type:uuid;index"`
	Name        string             `gorm:"type:varchar(200);not null"`
	Notes       string             `gorm:"type:text"`
	IsCompleted bool               `gorm:"not null;default:false"`
	Items       []ShoppingListItem `gorm:"foreignKey:ShoppingListID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ShoppingList) TableName() string {
	return "shopping_lists"
}

// NewShoppingList creates a shopping list owned by the given user
func NewShoppingList(userID uuid.UUID, name string, mealPlanID *uuid.UUID) (*ShoppingList, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("shopping list name cannot be empty")
	}
	return &ShoppingList{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		MealPlanID: mealPlanID,
		Name:       name,
	}, nil
}

// OwnedBy reports whether the user owns this list
func (l *ShoppingList) OwnedBy(userID uuid.UUID) bool {
	return l.UserID == userID
}

// AllPurchased reports whether every item on the list is purchased.
// An empty list counts as not purchased.
func (l *ShoppingList) AllPurchased() bool {
	if len(l.Items) == 0 {
		return false
	}
	for _, item := range l.Items {
		if !item.IsPurchased {
			return false
		}
	}
	return true
}

// ShoppingListItem is one line of a shopping list
type ShoppingListItem struct {
	shared.BaseEntity
	ShoppingListID uuid.UUID        `gorm:"type:uuid;not null;index"`
	CategoryID     *uuid.UUID       `gorm:"type:uuid;index"`
	Name           string           `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal  `gorm:"type:decimal(12,3);not null;default:0"`
	Unit           *string          `gorm:"type:varchar(10)"`
	IsPurchased    bool             `gorm:"not null;default:false"`
	Notes          string           `gorm:"type:text"`
	EstimatedPrice *decimal.Decimal `gorm:"type:decimal(10,2)"`
}

// TableName returns the table name for GORM
func (ShoppingListItem) TableName() string {
	return "shopping_list_items"
}

// NewShoppingListItem creates a list item
func NewShoppingListItem(listID uuid.UUID, name string, quantity decimal.Decimal, unit *string, categoryID *uuid.UUID) (*ShoppingListItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("item name cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, errors.New("item quantity cannot be negative")
	}
	if unit != nil && !valueobject.IsValidUnit(*unit) {
		return nil, errors.New("unknown measurement unit: " + *unit)
	}
	return &ShoppingListItem{
		BaseEntity:     shared.NewBaseEntity(),
		ShoppingListID: listID,
		CategoryID:     categoryID,
		Name:           name,
		Quantity:       quantity,
		Unit:           unit,
	}, nil
}

// NewItemFromDemand materializes one aggregated demand entry as a list item
func NewItemFromDemand(listID uuid.UUID, entry valueobject.IngredientAmount) *ShoppingListItem {
	return &ShoppingListItem{
		BaseEntity:     shared.NewBaseEntity(),
		ShoppingListID: listID,
		CategoryID:     entry.Identity.CategoryIDPtr(),
		Name:           entry.Identity.Name(),
		Quantity:       entry.Amount,
		Unit:           entry.Identity.UnitPtr(),
	}
}

// Identity returns the item's aggregation key
func (i *ShoppingListItem) Identity() (valueobject.IngredientIdentity, error) {
	return valueobject.NewIngredientIdentity(i.Name, i.Unit, i.CategoryID)
}
