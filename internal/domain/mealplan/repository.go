package mealplan

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mealplan/backend/internal/domain/shared"
)

// MealPlanRepository provides access to meal plan persistence
type MealPlanRepository interface {
	shared.OwnedRepository[MealPlan]
	// FindGraph loads a plan with its days, meals, meal types and recipes
	FindGraph(ctx context.Context, id uuid.UUID) (*MealPlan, error)
	SaveDay(ctx context.Context, day *MealPlanDay) error
	FindDay(ctx context.Context, dayID uuid.UUID) (*MealPlanDay, error)
	FindDayByDate(ctx context.Context, planID uuid.UUID, date time.Time) (*MealPlanDay, error)
	SaveMeal(ctx context.Context, meal *Meal) error
	FindMeal(ctx context.Context, mealID uuid.UUID) (*Meal, error)
	FindMealBySlot(ctx context.Context, dayID, mealTypeID uuid.UUID) (*Meal, error)
	DeleteMeal(ctx context.Context, mealID uuid.UUID) error
}

// MealTypeRepository provides access to meal type persistence
type MealTypeRepository interface {
	FindAll(ctx context.Context) ([]MealType, error)
	FindByName(ctx context.Context, name string) (*MealType, error)
	// GetOrCreate returns the meal type with the given name, creating it with
	// the display order when absent
	GetOrCreate(ctx context.Context, name string, displayOrder int) (*MealType, error)
}
