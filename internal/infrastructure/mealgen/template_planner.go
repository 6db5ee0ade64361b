package mealgen

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"
)

//go:embed templates/meal_templates.json
var templateFS embed.FS

// TemplatePlanner generates plans from embedded per-diet meal templates.
// Templates are loaded once and treated as read-only afterwards.
type TemplatePlanner struct {
	loadOnce  sync.Once
	loadErr   error
	templates map[string][]GeneratedMeal
}

// NewTemplatePlanner creates a TemplatePlanner. Templates are loaded lazily
// on first use.
func NewTemplatePlanner() *TemplatePlanner {
	return &TemplatePlanner{}
}

func (p *TemplatePlanner) load() error {
	p.loadOnce.Do(func() {
		data, err := templateFS.ReadFile("templates/meal_templates.json")
		if err != nil {
			p.loadErr = fmt.Errorf("read meal templates: %w", err)
			return
		}
		if err := json.Unmarshal(data, &p.templates); err != nil {
			p.loadErr = fmt.Errorf("parse meal templates: %w", err)
			return
		}
		if len(p.templates[DefaultDiet]) == 0 {
			p.loadErr = fmt.Errorf("meal templates missing %q diet", DefaultDiet)
		}
	})
	return p.loadErr
}

// GeneratePlan builds a plan by selecting one template per meal type slot
// and scaling it toward the caller's calorie target.
func (p *TemplatePlanner) GeneratePlan(ctx context.Context, prefs Preferences) (*GeneratedPlan, error) {
	if err := p.load(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	prefs.ApplyDefaults()
	mealTypes := prefs.MealTypes()

	plan := &GeneratedPlan{Days: make([]GeneratedDay, 0, prefs.Days)}
	for day := 1; day <= prefs.Days; day++ {
		meals := make([]GeneratedMeal, 0, len(mealTypes))
		for _, mealType := range mealTypes {
			meal := p.selectTemplate(mealType, prefs)
			meals = append(meals, adaptToCalories(meal, prefs.TargetCalories))
		}
		plan.Days = append(plan.Days, GeneratedDay{Day: day, Meals: meals})
	}
	return plan, nil
}

// selectTemplate picks a template for the slot, preferring the first dietary
// preference and falling back to the balanced set, then to any meal type.
func (p *TemplatePlanner) selectTemplate(mealType string, prefs Preferences) GeneratedMeal {
	diet := prefs.DietaryPreferences[0]
	templates, ok := p.templates[diet]
	if !ok || len(templates) == 0 {
		templates = p.templates[DefaultDiet]
	}

	for _, t := range templates {
		if t.MealType == mealType {
			return t
		}
	}
	return templates[0]
}

// adaptToCalories scales ingredient amounts and nutrition so that three
// template meals approximate the daily calorie target.
func adaptToCalories(meal GeneratedMeal, targetCalories int) GeneratedMeal {
	if meal.Recipe.CaloriesPerServing <= 0 {
		return meal
	}

	multiplier := decimal.NewFromInt(int64(targetCalories)).
		Div(decimal.NewFromInt(int64(meal.Recipe.CaloriesPerServing) * 3))

	adapted := meal
	adapted.Recipe.Ingredients = make([]GeneratedIngredient, len(meal.Recipe.Ingredients))
	for i, ing := range meal.Recipe.Ingredients {
		ing.Amount = ing.Amount.Mul(multiplier).Round(3)
		adapted.Recipe.Ingredients[i] = ing
	}

	adapted.Recipe.CaloriesPerServing = scaleInt(meal.Recipe.CaloriesPerServing, multiplier)
	adapted.Recipe.Protein = scaleInt(meal.Recipe.Protein, multiplier)
	adapted.Recipe.Carbs = scaleInt(meal.Recipe.Carbs, multiplier)
	adapted.Recipe.Fat = scaleInt(meal.Recipe.Fat, multiplier)
	return adapted
}

func scaleInt(value int, multiplier decimal.Decimal) int {
	return int(decimal.NewFromInt(int64(value)).Mul(multiplier).IntPart())
}

// Ensure TemplatePlanner implements Producer
var _ Producer = (*TemplatePlanner)(nil)
