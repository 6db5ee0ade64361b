package mealgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Default preference values applied when the caller leaves a field unset.
const (
	DefaultTargetCalories = 2000
	DefaultMealsPerDay    = 3
	DefaultDays           = 7
	DefaultDiet           = "balanced"
)

// mealTypeOrder is the fixed slot order for generated days. meals_per_day
// is capped at its length.
var mealTypeOrder = []string{"breakfast", "lunch", "dinner"}

// Preferences describes what the user wants a generated plan to look like.
type Preferences struct {
	TargetCalories     int      `json:"target_calories"`
	MealsPerDay        int      `json:"meals_per_day"`
	Days               int      `json:"days"`
	DietaryPreferences []string `json:"dietary_preferences"`
}

// ApplyDefaults fills unset fields and caps meals_per_day at the known
// meal type slots.
func (p *Preferences) ApplyDefaults() {
	if p.TargetCalories <= 0 {
		p.TargetCalories = DefaultTargetCalories
	}
	if p.MealsPerDay <= 0 {
		p.MealsPerDay = DefaultMealsPerDay
	}
	if p.MealsPerDay > len(mealTypeOrder) {
		p.MealsPerDay = len(mealTypeOrder)
	}
	if p.Days <= 0 {
		p.Days = DefaultDays
	}
	if len(p.DietaryPreferences) == 0 {
		p.DietaryPreferences = []string{DefaultDiet}
	}
}

// MealTypes returns the meal type slots a generated day should fill,
// in display order.
func (p *Preferences) MealTypes() []string {
	return mealTypeOrder[:p.MealsPerDay]
}

// GeneratedIngredient is one ingredient line of a generated recipe.
type GeneratedIngredient struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Unit   string          `json:"unit,omitempty"`
}

// GeneratedRecipe is the recipe payload of a generated meal.
type GeneratedRecipe struct {
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Ingredients        []GeneratedIngredient `json:"ingredients"`
	Instructions       []string              `json:"instructions"`
	CaloriesPerServing int                   `json:"calories_per_serving"`
	Protein            int                   `json:"protein"`
	Carbs              int                   `json:"carbs"`
	Fat                int                   `json:"fat"`
}

// GeneratedMeal pairs a meal type slot with its recipe.
type GeneratedMeal struct {
	MealType string          `json:"meal_type"`
	Recipe   GeneratedRecipe `json:"recipe"`
}

// GeneratedDay holds the meals of one plan day.
type GeneratedDay struct {
	Day   int             `json:"day"`
	Meals []GeneratedMeal `json:"meals"`
}

// GeneratedPlan is the producer output consumed by plan assembly.
type GeneratedPlan struct {
	Days []GeneratedDay `json:"days"`
}

// Validate checks the structural shape of the plan. A plan that fails here
// must not be persisted.
func (p *GeneratedPlan) Validate() error {
	if p == nil {
		return errors.New("generated plan is nil")
	}
	if len(p.Days) == 0 {
		return errors.New("generated plan has no days")
	}
	for i, day := range p.Days {
		if len(day.Meals) == 0 {
			return fmt.Errorf("day %d has no meals", i+1)
		}
		for j, meal := range day.Meals {
			if strings.TrimSpace(meal.MealType) == "" {
				return fmt.Errorf("day %d meal %d has no meal type", i+1, j+1)
			}
			if strings.TrimSpace(meal.Recipe.Title) == "" {
				return fmt.Errorf("day %d meal %d has no recipe title", i+1, j+1)
			}
			for k, ing := range meal.Recipe.Ingredients {
				if strings.TrimSpace(ing.Name) == "" {
					return fmt.Errorf("day %d meal %d ingredient %d has no name", i+1, j+1, k+1)
				}
			}
		}
	}
	return nil
}

// Producer generates a meal plan from user preferences. Implementations must
// return plans that pass Validate or an error.
type Producer interface {
	GeneratePlan(ctx context.Context, prefs Preferences) (*GeneratedPlan, error)
}
