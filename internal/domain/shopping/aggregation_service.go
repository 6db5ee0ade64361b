package shopping

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shared/valueobject"
)

// SkippedMeal records a meal that was left out of aggregation and why
type SkippedMeal struct {
	MealID   uuid.UUID
	RecipeID uuid.UUID
	Date     time.Time
	Reason   error
}

// AggregationService turns a meal plan into ingredient demand and nets it
// against pantry stock. It is stateless and safe for concurrent use.
type AggregationService struct{}

// NewAggregationService creates the aggregation domain service
func NewAggregationService() *AggregationService {
	return &AggregationService{}
}

// AggregatePlan flattens the plan's meals (days by date ascending, meals
// within a day by meal type display order), scales each recipe's ingredient
// amounts by meal.Servings / recipe.Servings and sums them per ingredient
// identity. A meal whose recipe has non-positive servings, or whose recipe is
// not loaded, is skipped and recorded; the rest of the plan still aggregates.
// Empty plans, days without meals and meals without ingredients simply
// contribute nothing.
func (s *AggregationService) AggregatePlan(plan *mealplan.MealPlan) (valueobject.IngredientDemand, []SkippedMeal) {
	demand := valueobject.NewIngredientDemand()
	var skipped []SkippedMeal

	for _, day := range plan.SortedDays() {
		for _, meal := range day.SortedMeals() {
			if meal.Recipe == nil {
				skipped = append(skipped, SkippedMeal{
					MealID:   meal.ID,
					RecipeID: meal.RecipeID,
					Date:     day.Date,
					Reason:   shared.ErrNotFound,
				})
				continue
			}

			ratio, err := meal.Recipe.ServingRatio(meal.Servings)
			if err != nil {
				skipped = append(skipped, SkippedMeal{
					MealID:   meal.ID,
					RecipeID: meal.RecipeID,
					Date:     day.Date,
					Reason:   err,
				})
				continue
			}

			scaled, err := meal.Recipe.ScaledIngredients(ratio)
			if err != nil {
				skipped = append(skipped, SkippedMeal{
					MealID:   meal.ID,
					RecipeID: meal.RecipeID,
					Date:     day.Date,
					Reason:   err,
				})
				continue
			}

			for _, entry := range scaled {
				demand.Add(entry.Identity, entry.Amount)
			}
		}
	}

	return demand, skipped
}

// NetAgainstPantry reduces demand by the pantry stock with the exact same
// ingredient identity. Entries fully covered by stock are removed; partially
// covered entries keep the remainder, which never goes below zero. Multiple
// pantry rows sharing one identity each consume from the remainder in
// deterministic order. Pantry items are read only, never mutated.
// The demand map is modified in place and returned for convenience.
func (s *AggregationService) NetAgainstPantry(demand valueobject.IngredientDemand, pantry []PantryItem) valueobject.IngredientDemand {
	rows := make([]PantryItem, len(pantry))
	copy(rows, pantry)
	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Name != rows[b].Name {
			return rows[a].Name < rows[b].Name
		}
		return rows[a].CreatedAt.Before(rows[b].CreatedAt)
	})

	for _, item := range rows {
		identity, err := item.Identity()
		if err != nil {
			continue
		}
		demand.Reduce(identity, item.Quantity)
	}

	return demand
}
