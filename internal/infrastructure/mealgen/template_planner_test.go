package mealgen

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplatePlanner_GeneratePlan(t *testing.T) {
	planner := NewTemplatePlanner()
	ctx := context.Background()

	t.Run("applies defaults for empty preferences", func(t *testing.T) {
		plan, err := planner.GeneratePlan(ctx, Preferences{})
		require.NoError(t, err)
		require.NoError(t, plan.Validate())

		require.Len(t, plan.Days, DefaultDays)
		for _, day := range plan.Days {
			require.Len(t, day.Meals, DefaultMealsPerDay)
			assert.Equal(t, "breakfast", day.Meals[0].MealType)
			assert.Equal(t, "lunch", day.Meals[1].MealType)
			assert.Equal(t, "dinner", day.Meals[2].MealType)
		}
	})

	t.Run("caps meals per day at known slots", func(t *testing.T) {
		plan, err := planner.GeneratePlan(ctx, Preferences{MealsPerDay: 6, Days: 1})
		require.NoError(t, err)
		require.Len(t, plan.Days, 1)
		assert.Len(t, plan.Days[0].Meals, 3)
	})

	t.Run("honours requested day count and meal count", func(t *testing.T) {
		plan, err := planner.GeneratePlan(ctx, Preferences{Days: 2, MealsPerDay: 1})
		require.NoError(t, err)
		require.Len(t, plan.Days, 2)
		assert.Len(t, plan.Days[0].Meals, 1)
		assert.Equal(t, "breakfast", plan.Days[0].Meals[0].MealType)
	})

	t.Run("uses first dietary preference", func(t *testing.T) {
		plan, err := planner.GeneratePlan(ctx, Preferences{
			Days:               1,
			DietaryPreferences: []string{"vegan"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Peanut Butter Banana Porridge", plan.Days[0].Meals[0].Recipe.Title)
	})

	t.Run("unknown diet falls back to balanced", func(t *testing.T) {
		unknown, err := planner.GeneratePlan(ctx, Preferences{
			Days:               1,
			DietaryPreferences: []string{"carnivore"},
		})
		require.NoError(t, err)

		balanced, err := planner.GeneratePlan(ctx, Preferences{Days: 1})
		require.NoError(t, err)
		assert.Equal(t, balanced.Days[0].Meals[0].Recipe.Title, unknown.Days[0].Meals[0].Recipe.Title)
	})

	t.Run("scales nutrition toward the calorie target", func(t *testing.T) {
		base, err := planner.GeneratePlan(ctx, Preferences{Days: 1, MealsPerDay: 1, TargetCalories: 2000})
		require.NoError(t, err)
		double, err := planner.GeneratePlan(ctx, Preferences{Days: 1, MealsPerDay: 1, TargetCalories: 4000})
		require.NoError(t, err)

		baseMeal := base.Days[0].Meals[0].Recipe
		doubleMeal := double.Days[0].Meals[0].Recipe
		assert.InDelta(t, float64(baseMeal.CaloriesPerServing)*2, float64(doubleMeal.CaloriesPerServing), 2)

		baseAmount := base.Days[0].Meals[0].Recipe.Ingredients[0].Amount
		doubleAmount := double.Days[0].Meals[0].Recipe.Ingredients[0].Amount
		assert.True(t, doubleAmount.Sub(baseAmount.Mul(decimal.NewFromInt(2))).Abs().LessThan(decimal.RequireFromString("0.01")),
			"expected %s to be twice %s", doubleAmount, baseAmount)
	})

	t.Run("respects cancelled context", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		_, err := planner.GeneratePlan(cancelled, Preferences{})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGeneratedPlan_Validate(t *testing.T) {
	valid := &GeneratedPlan{Days: []GeneratedDay{{
		Day: 1,
		Meals: []GeneratedMeal{{
			MealType: "breakfast",
			Recipe: GeneratedRecipe{
				Title:       "Toast",
				Ingredients: []GeneratedIngredient{{Name: "bread", Amount: decimal.NewFromInt(2)}},
			},
		}},
	}}}
	assert.NoError(t, valid.Validate())

	t.Run("rejects empty plan", func(t *testing.T) {
		assert.Error(t, (&GeneratedPlan{}).Validate())
	})

	t.Run("rejects day without meals", func(t *testing.T) {
		plan := &GeneratedPlan{Days: []GeneratedDay{{Day: 1}}}
		assert.Error(t, plan.Validate())
	})

	t.Run("rejects meal without type", func(t *testing.T) {
		plan := &GeneratedPlan{Days: []GeneratedDay{{
			Day:   1,
			Meals: []GeneratedMeal{{Recipe: GeneratedRecipe{Title: "Toast"}}},
		}}}
		assert.Error(t, plan.Validate())
	})

	t.Run("rejects recipe without title", func(t *testing.T) {
		plan := &GeneratedPlan{Days: []GeneratedDay{{
			Day:   1,
			Meals: []GeneratedMeal{{MealType: "lunch"}},
		}}}
		assert.Error(t, plan.Validate())
	})

	t.Run("rejects ingredient without name", func(t *testing.T) {
		plan := &GeneratedPlan{Days: []GeneratedDay{{
			Day: 1,
			Meals: []GeneratedMeal{{
				MealType: "lunch",
				Recipe: GeneratedRecipe{
					Title:       "Soup",
					Ingredients: []GeneratedIngredient{{Amount: decimal.NewFromInt(1)}},
				},
			}},
		}}}
		assert.Error(t, plan.Validate())
	})
}

func TestPreferences_ApplyDefaults(t *testing.T) {
	var prefs Preferences
	prefs.ApplyDefaults()

	assert.Equal(t, DefaultTargetCalories, prefs.TargetCalories)
	assert.Equal(t, DefaultMealsPerDay, prefs.MealsPerDay)
	assert.Equal(t, DefaultDays, prefs.Days)
	assert.Equal(t, []string{DefaultDiet}, prefs.DietaryPreferences)

	set := Preferences{TargetCalories: 1800, MealsPerDay: 2, Days: 3, DietaryPreferences: []string{"keto"}}
	set.ApplyDefaults()
	assert.Equal(t, 1800, set.TargetCalories)
	assert.Equal(t, []string{"breakfast", "lunch"}, set.MealTypes())
}
