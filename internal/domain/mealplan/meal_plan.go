package mealplan

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
)

// MealPlan is the aggregate root for a dated plan of meals. Days and their
// meals are child entities persisted through the plan's repository.
type MealPlan struct {
	shared.BaseEntity
	UserID        uuid.UUID     `gorm:"type:uuid;not null;index"`
	Name          string        `gorm:"type:varchar(200);not null"`
	StartDate     time.Time     `gorm:"type:date;not null"`
	EndDate       time.Time     `gorm:"type:date;not null"`
	Notes         string        `gorm:"type:text"`
	IsTemplate    bool          `gorm:"not null;default:false"`
	CaloricTarget *int          `gorm:""`
	Days          []MealPlanDay `gorm:"foreignKey:MealPlanID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MealPlan) TableName() string {
	return "meal_plans"
}

// NewMealPlan creates a plan spanning startDate through endDate inclusive
func NewMealPlan(userID uuid.UUID, name string, startDate, endDate time.Time) (*MealPlan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("meal plan name cannot be empty")
	}
	if endDate.Before(startDate) {
		return nil, errors.New("meal plan end date cannot precede start date")
	}
	return &MealPlan{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		Name:       name,
		StartDate:  startDate,
		EndDate:    endDate,
	}, nil
}

// OwnedBy reports whether the user owns this plan
func (p *MealPlan) OwnedBy(userID uuid.UUID) bool {
	return p.UserID == userID
}

// DurationDays returns the number of days the plan spans, inclusive
func (p *MealPlan) DurationDays() int {
	return int(p.EndDate.Sub(p.StartDate).Hours()/24) + 1
}

// SortedDays returns the plan's days ordered by date ascending
func (p *MealPlan) SortedDays() []MealPlanDay {
	days := make([]MealPlanDay, len(p.Days))
	copy(days, p.Days)
	sort.Slice(days, func(a, b int) bool {
		return days[a].Date.Before(days[b].Date)
	})
	return days
}

// MealPlanDay is one calendar day of a plan, unique per (plan, date)
type MealPlanDay struct {
	shared.BaseEntity
	MealPlanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_day_plan_date,priority:1"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_day_plan_date,priority:2"`
	Meals      []Meal    `gorm:"foreignKey:MealPlanDayID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (MealPlanDay) TableName() string {
	return "meal_plan_days"
}

// NewMealPlanDay creates a day entry for the given plan and date
func NewMealPlanDay(planID uuid.UUID, date time.Time) *MealPlanDay {
	return &MealPlanDay{
		BaseEntity: shared.NewBaseEntity(),
		MealPlanID: planID,
		Date:       date,
	}
}

// SortedMeals returns the day's meals ordered by meal type display order.
// Meals without a loaded meal type sort last, by creation time.
func (d *MealPlanDay) SortedMeals() []Meal {
	meals := make([]Meal, len(d.Meals))
	copy(meals, d.Meals)
	sort.Slice(meals, func(a, b int) bool {
		ma, mb := meals[a], meals[b]
		if ma.MealType != nil && mb.MealType != nil && ma.MealType.DisplayOrder != mb.MealType.DisplayOrder {
			return ma.MealType.DisplayOrder < mb.MealType.DisplayOrder
		}
		if (ma.MealType == nil) != (mb.MealType == nil) {
			return mb.MealType == nil
		}
		return ma.CreatedAt.Before(mb.CreatedAt)
	})
	return meals
}

// MealType is a named meal slot (breakfast, lunch, dinner) with a display order
type MealType struct {
	shared.BaseEntity
	Name         string `gorm:"type:varchar(50);not null;uniqueIndex"`
	DisplayOrder int    `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (MealType) TableName() string {
	return "meal_types"
}

// NewMealType creates a meal type
func NewMealType(name string, displayOrder int) (*MealType, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("meal type name cannot be empty")
	}
	return &MealType{
		BaseEntity:   shared.NewBaseEntity(),
		Name:         name,
		DisplayOrder: displayOrder,
	}, nil
}

// Meal assigns a recipe to a day's meal slot, unique per (day, meal type)
type Meal struct {
	shared.BaseEntity
	MealPlanDayID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_meal_day_type,priority:1"`
	MealTypeID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_meal_day_type,priority:2"`
	RecipeID      uuid.UUID       `gorm:"type:uuid;not null"`
	Servings      int             `gorm:"not null;default:1"`
	Notes         string          `gorm:"type:text"`
	MealType      *MealType       `gorm:"foreignKey:MealTypeID"`
	Recipe        *recipes.Recipe `gorm:"foreignKey:RecipeID"`
}

// TableName returns the table name for GORM
func (Meal) TableName() string {
	return "meals"
}

// NewMeal creates a meal over a recipe for the given day and slot
func NewMeal(dayID, mealTypeID, recipeID uuid.UUID, servings int) (*Meal, error) {
	if servings <= 0 {
		return nil, errors.New("meal servings must be positive")
	}
	return &Meal{
		BaseEntity:    shared.NewBaseEntity(),
		MealPlanDayID: dayID,
		MealTypeID:    mealTypeID,
		RecipeID:      recipeID,
		Servings:      servings,
	}, nil
}

// Calories returns the meal's total calories, zero when the recipe is not loaded
func (m *Meal) Calories() int {
	if m.Recipe == nil {
		return 0
	}
	return m.Recipe.CaloriesPerServing * m.Servings
}

// Nutrients returns the meal's total protein, carbs and fat
func (m *Meal) Nutrients() (protein, carbs, fat decimal.Decimal) {
	if m.Recipe == nil {
		return decimal.Zero, decimal.Zero, decimal.Zero
	}
	servings := decimal.NewFromInt(int64(m.Servings))
	return m.Recipe.Protein.Mul(servings), m.Recipe.Carbs.Mul(servings), m.Recipe.Fat.Mul(servings)
}
