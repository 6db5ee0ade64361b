package shopping

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/shopping"
)

// CreateShoppingListInput is the input for creating a shopping list
type CreateShoppingListInput struct {
	Name       string     `json:"name" binding:"required,min=1,max=200"`
	MealPlanID *uuid.UUID `json:"meal_plan_id"`
	Notes      string     `json:"notes" binding:"max=2000"`
}

// UpdateShoppingListInput is the input for updating a shopping list
type UpdateShoppingListInput struct {
	Name  *string `json:"name" binding:"omitempty,min=1,max=200"`
	Notes *string `json:"notes" binding:"omitempty,max=2000"`
}

// ShoppingListFilter is the query filter for listing shopping lists
type ShoppingListFilter struct {
	Page        int        `form:"page"`
	PageSize    int        `form:"page_size"`
	OrderBy     string     `form:"order_by"`
	OrderDir    string     `form:"order_dir"`
	Search      string     `form:"search"`
	IsCompleted *bool      `form:"is_completed"`
	MealPlanID  *uuid.UUID `form:"meal_plan_id"`
}

// CreatePantryItemInput is the input for creating a pantry item
type CreatePantryItemInput struct {
	Name       string          `json:"name" binding:"required,min=1,max=200"`
	Quantity   decimal.Decimal `json:"quantity" binding:"required"`
	Unit       *string         `json:"unit" binding:"omitempty,oneof=g kg ml l pcs tbsp tsp cup"`
	CategoryID *uuid.UUID      `json:"category_id"`
	ExpiryDate *time.Time      `json:"expiry_date"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// UpdatePantryItemInput is the input for updating a pantry item
type UpdatePantryItemInput struct {
	Name       *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Quantity   *decimal.Decimal `json:"quantity"`
	Unit       *string          `json:"unit" binding:"omitempty,oneof=g kg ml l pcs tbsp tsp cup"`
	CategoryID *uuid.UUID       `json:"category_id"`
	ExpiryDate *time.Time       `json:"expiry_date"`
	Notes      *string          `json:"notes" binding:"omitempty,max=500"`
}

// PantryListFilter is the query filter for listing pantry items
type PantryListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
	Search     string     `form:"search"`
	CategoryID *uuid.UUID `form:"category_id"`
}

// CreateCategoryInput is the input for creating an ingredient category
type CreateCategoryInput struct {
	Name         string `json:"name" binding:"required,min=1,max=100"`
	DisplayOrder int    `json:"display_order" binding:"min=0"`
}

// ShoppingListItemResponse is one shopping list line returned to clients
type ShoppingListItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        *string         `json:"unit,omitempty"`
	CategoryID  *uuid.UUID      `json:"category_id,omitempty"`
	IsPurchased bool            `json:"is_purchased"`
	Notes       string          `json:"notes,omitempty"`
}

// ShoppingListResponse is the shopping list representation returned to
// clients. Items is populated only by reads that load them.
type ShoppingListResponse struct {
	ID          uuid.UUID                  `json:"id"`
	Name        string                     `json:"name"`
	MealPlanID  *uuid.UUID                 `json:"meal_plan_id,omitempty"`
	Notes       string                     `json:"notes,omitempty"`
	IsCompleted bool                       `json:"is_completed"`
	Items       []ShoppingListItemResponse `json:"items,omitempty"`
	CreatedAt   time.Time                  `json:"created_at"`
	UpdatedAt   time.Time                  `json:"updated_at"`
}

// SkippedMealResponse reports a meal left out of list generation
type SkippedMealResponse struct {
	MealID   uuid.UUID `json:"meal_id"`
	RecipeID uuid.UUID `json:"recipe_id"`
	Date     time.Time `json:"date"`
	Reason   string    `json:"reason"`
}

// GenerateListResult is the outcome of generating a list from a meal plan
type GenerateListResult struct {
	List         ShoppingListResponse  `json:"list"`
	SkippedMeals []SkippedMealResponse `json:"skipped_meals"`
}

// ReconcileResult reports how purchased items were folded into the pantry
type ReconcileResult struct {
	UpdatedItems int `json:"updated_items"`
	CreatedItems int `json:"created_items"`
}

// PantryItemResponse is the pantry item representation returned to clients
type PantryItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Quantity   decimal.Decimal `json:"quantity"`
	Unit       *string         `json:"unit,omitempty"`
	CategoryID *uuid.UUID      `json:"category_id,omitempty"`
	ExpiryDate *time.Time      `json:"expiry_date,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CategoryResponse is the ingredient category representation
type CategoryResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
}

// ToItemResponse converts a ShoppingListItem domain entity to a response DTO
func ToItemResponse(i *shopping.ShoppingListItem) ShoppingListItemResponse {
	return ShoppingListItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Quantity:    i.Quantity,
		Unit:        i.Unit,
		CategoryID:  i.CategoryID,
		IsPurchased: i.IsPurchased,
		Notes:       i.Notes,
	}
}

// ToShoppingListResponse converts a ShoppingList domain entity to a response DTO
func ToShoppingListResponse(l *shopping.ShoppingList) ShoppingListResponse {
	response := ShoppingListResponse{
		ID:          l.ID,
		Name:        l.Name,
		MealPlanID:  l.MealPlanID,
		Notes:       l.Notes,
		IsCompleted: l.IsCompleted,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if len(l.Items) > 0 {
		response.Items = make([]ShoppingListItemResponse, len(l.Items))
		for i := range l.Items {
			response.Items[i] = ToItemResponse(&l.Items[i])
		}
	}
	return response
}

// ToSkippedMealResponses converts skipped meal records to response DTOs
func ToSkippedMealResponses(skipped []shopping.SkippedMeal) []SkippedMealResponse {
	responses := make([]SkippedMealResponse, len(skipped))
	for i, s := range skipped {
		responses[i] = SkippedMealResponse{
			MealID:   s.MealID,
			RecipeID: s.RecipeID,
			Date:     s.Date,
			Reason:   s.Reason.Error(),
		}
	}
	return responses
}

// ToPantryItemResponse converts a PantryItem domain entity to a response DTO
func ToPantryItemResponse(p *shopping.PantryItem) PantryItemResponse {
	return PantryItemResponse{
		ID:         p.ID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		Unit:       p.Unit,
		CategoryID: p.CategoryID,
		ExpiryDate: p.ExpiryDate,
		Notes:      p.Notes,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// ToCategoryResponse converts an IngredientCategory to a response DTO
func ToCategoryResponse(c *shopping.IngredientCategory) CategoryResponse {
	return CategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		DisplayOrder: c.DisplayOrder,
	}
}
