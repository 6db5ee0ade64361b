package shopping

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shared/valueobject"
)

// PantryItem is an ingredient a user has on hand. The (name, unit, category)
// triple is the match key for netting and reconciliation.
type PantryItem struct {
	shared.BaseEntity
	UserID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index"`
	Name       string          `gorm:"type:varchar(200);not null;index"`
	Quantity   decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	Unit       *string         `gorm:"type:varchar(10)"`
	ExpiryDate *time.Time      `gorm:"type:date"`
	Notes      string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PantryItem) TableName() string {
	return "pantry_items"
}

// NewPantryItem creates a pantry item owned by the given user
func NewPantryItem(userID uuid.UUID, name string, quantity decimal.Decimal, unit *string, categoryID *uuid.UUID) (*PantryItem, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("pantry item name cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, errors.New("pantry item quantity cannot be negative")
	}
	if unit != nil && !valueobject.IsValidUnit(*unit) {
		return nil, errors.New("unknown measurement unit: " + *unit)
	}
	return &PantryItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		CategoryID: categoryID,
		Name:       name,
		Quantity:   quantity,
		Unit:       unit,
	}, nil
}

// OwnedBy reports whether the user owns this pantry item
func (p *PantryItem) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// Identity returns the item's match key
func (p *PantryItem) Identity() (valueobject.IngredientIdentity, error) {
	return valueobject.NewIngredientIdentity(p.Name, p.Unit, p.CategoryID)
}

// AddQuantity increments the stocked quantity
func (p *PantryItem) AddQuantity(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errors.New("cannot add a negative quantity")
	}
	p.Quantity = p.Quantity.Add(amount)
	return nil
}

// ExpiresWithin reports whether the item expires within d days of now.
// Items without an expiry date never expire; items already expired are
// not counted as expiring.
func (p *PantryItem) ExpiresWithin(now time.Time, days int) bool {
	if p.ExpiryDate == nil {
		return false
	}
	if p.ExpiryDate.Before(now) {
		return false
	}
	cutoff := now.AddDate(0, 0, days)
	return !p.ExpiryDate.After(cutoff)
}

// IngredientCategory groups ingredients for display (produce, dairy, ...)
type IngredientCategory struct {
	shared.BaseEntity
	Name         string `gorm:"type:varchar(100);not null;uniqueIndex"`
	DisplayOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (IngredientCategory) TableName() string {
	return "ingredient_categories"
}

// NewIngredientCategory creates a category
func NewIngredientCategory(name string, displayOrder int) (*IngredientCategory, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("category name cannot be empty")
	}
	return &IngredientCategory{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		DisplayOrder: displayOrder,
	}, nil
}
