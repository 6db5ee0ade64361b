package mealplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mealplan/backend/internal/domain/mealplan"
)

// CreateMealPlanInput is the input for creating a meal plan
type CreateMealPlanInput struct {
	Name          string    `json:"name" binding:"required,min=1,max=200"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	EndDate       time.Time `json:"end_date" binding:"required"`
	Notes         string    `json:"notes" binding:"max=2000"`
	CaloricTarget *int      `json:"caloric_target" binding:"omitempty,min=1"`
}

// CreateWeeklyPlanInput is the input for creating a seven day plan with its
// days pre-created
type CreateWeeklyPlanInput struct {
	Name          string    `json:"name" binding:"required,min=1,max=200"`
	StartDate     time.Time `json:"start_date" binding:"required"`
	Notes         string    `json:"notes" binding:"max=2000"`
	CaloricTarget *int      `json:"caloric_target" binding:"omitempty,min=1"`
}

// UpdateMealPlanInput is the input for updating a meal plan
type UpdateMealPlanInput struct {
	Name          *string    `json:"name" binding:"omitempty,min=1,max=200"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	Notes         *string    `json:"notes" binding:"omitempty,max=2000"`
	CaloricTarget *int       `json:"caloric_target" binding:"omitempty,min=1"`
}

// AddMealInput assigns a recipe to a plan day and meal type slot. The day is
// created on first use for its date.
type AddMealInput struct {
	Date       time.Time `json:"date" binding:"required"`
	MealTypeID uuid.UUID `json:"meal_type_id" binding:"required"`
	RecipeID   uuid.UUID `json:"recipe_id" binding:"required"`
	Servings   int       `json:"servings" binding:"required,min=1"`
	Notes      string    `json:"notes" binding:"max=500"`
}

// GeneratePlanInput is the input for producing a plan from preferences
type GeneratePlanInput struct {
	Name               string    `json:"name" binding:"omitempty,max=200"`
	StartDate          time.Time `json:"start_date" binding:"required"`
	TargetCalories     int       `json:"target_calories" binding:"omitempty,min=1"`
	MealsPerDay        int       `json:"meals_per_day" binding:"omitempty,min=1,max=3"`
	Days               int       `json:"days" binding:"omitempty,min=1,max=31"`
	DietaryPreferences []string  `json:"dietary_preferences"`
}

// MealPlanListFilter is the query filter for listing meal plans
type MealPlanListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	OrderBy    string `form:"order_by"`
	OrderDir   string `form:"order_dir"`
	Search     string `form:"search"`
	IsTemplate *bool  `form:"is_template"`
}

// MealResponse is a meal with its slot and recipe summary
type MealResponse struct {
	ID         uuid.UUID  `json:"id"`
	MealTypeID uuid.UUID  `json:"meal_type_id"`
	MealType   string     `json:"meal_type,omitempty"`
	RecipeID   uuid.UUID  `json:"recipe_id"`
	Recipe     string     `json:"recipe,omitempty"`
	Servings   int        `json:"servings"`
	Notes      string     `json:"notes,omitempty"`
	Calories   int        `json:"calories"`
}

// DayResponse is one plan day with its meals in display order
type DayResponse struct {
	ID    uuid.UUID      `json:"id"`
	Date  time.Time      `json:"date"`
	Meals []MealResponse `json:"meals"`
}

// MealPlanResponse is the meal plan representation returned to clients.
// Days is populated only by graph reads.
type MealPlanResponse struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	StartDate     time.Time     `json:"start_date"`
	EndDate       time.Time     `json:"end_date"`
	Notes         string        `json:"notes,omitempty"`
	IsTemplate    bool          `json:"is_template"`
	CaloricTarget *int          `json:"caloric_target,omitempty"`
	Days          []DayResponse `json:"days,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// MealTypeResponse is a meal type slot
type MealTypeResponse struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	DisplayOrder int       `json:"display_order"`
}

// DayNutrition is the nutrient total of one plan day
type DayNutrition struct {
	Date     time.Time       `json:"date"`
	Calories int             `json:"calories"`
	Protein  decimal.Decimal `json:"protein"`
	Carbs    decimal.Decimal `json:"carbs"`
	Fat      decimal.Decimal `json:"fat"`
}

// NutritionSummaryResponse is per-day nutrient totals with period averages
type NutritionSummaryResponse struct {
	Days            []DayNutrition  `json:"days"`
	AverageCalories decimal.Decimal `json:"average_calories"`
	AverageProtein  decimal.Decimal `json:"average_protein"`
	AverageCarbs    decimal.Decimal `json:"average_carbs"`
	AverageFat      decimal.Decimal `json:"average_fat"`
}

// ToMealResponse converts a Meal domain entity to a response DTO
func ToMealResponse(m *mealplan.Meal) MealResponse {
	response := MealResponse{
		ID:         m.ID,
		MealTypeID: m.MealTypeID,
		RecipeID:   m.RecipeID,
		Servings:   m.Servings,
		Notes:      m.Notes,
		Calories:   m.Calories(),
	}
	if m.MealType != nil {
		response.MealType = m.MealType.Name
	}
	if m.Recipe != nil {
		response.Recipe = m.Recipe.Title
	}
	return response
}

// ToDayResponse converts a MealPlanDay domain entity to a response DTO
func ToDayResponse(d *mealplan.MealPlanDay) DayResponse {
	meals := d.SortedMeals()
	responses := make([]MealResponse, len(meals))
	for i := range meals {
		responses[i] = ToMealResponse(&meals[i])
	}
	return DayResponse{
		ID:    d.ID,
		Date:  d.Date,
		Meals: responses,
	}
}

// ToMealPlanResponse converts a MealPlan domain entity to a response DTO
func ToMealPlanResponse(p *mealplan.MealPlan) MealPlanResponse {
	response := MealPlanResponse{
		ID:            p.ID,
		Name:          p.Name,
		StartDate:     p.StartDate,
		EndDate:       p.EndDate,
		Notes:         p.Notes,
		IsTemplate:    p.IsTemplate,
		CaloricTarget: p.CaloricTarget,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
	if len(p.Days) > 0 {
		days := p.SortedDays()
		response.Days = make([]DayResponse, len(days))
		for i := range days {
			response.Days[i] = ToDayResponse(&days[i])
		}
	}
	return response
}

// ToMealTypeResponse converts a MealType domain entity to a response DTO
func ToMealTypeResponse(t *mealplan.MealType) MealTypeResponse {
	return MealTypeResponse{
		ID:           t.ID,
		Name:         t.Name,
		DisplayOrder: t.DisplayOrder,
	}
}
