package persistence

import (
	"strings"
)

// Sort parameters come straight from the query string, so both the field and
// the direction are checked against whitelists before they reach an ORDER BY
// clause.

// ValidateSortOrder normalizes the direction to ASC or DESC, defaulting to
// DESC for anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when the whitelist allows it, otherwise
// defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	if trimmed := strings.TrimSpace(sortField); allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// RecipeSortFields contains allowed sort fields for recipes
var RecipeSortFields = map[string]bool{
	"id":                   true,
	"created_at":           true,
	"updated_at":           true,
	"title":                true,
	"servings":             true,
	"prep_time_minutes":    true,
	"cook_time_minutes":    true,
	"calories_per_serving": true,
}

// MealPlanSortFields contains allowed sort fields for meal plans
var MealPlanSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"start_date": true,
	"end_date":   true,
}

// ShoppingListSortFields contains allowed sort fields for shopping lists
var ShoppingListSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"name":         true,
	"is_completed": true,
}

// PantryItemSortFields contains allowed sort fields for pantry items
var PantryItemSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"quantity":    true,
	"expiry_date": true,
}
