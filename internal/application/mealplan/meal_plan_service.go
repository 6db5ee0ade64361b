package mealplan

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
)

// MealPlanService handles meal plan business operations
type MealPlanService struct {
	planRepo     mealplan.MealPlanRepository
	mealTypeRepo mealplan.MealTypeRepository
	recipeRepo   recipes.RecipeRepository
	logger       *zap.Logger
}

// NewMealPlanService creates a new MealPlanService
func NewMealPlanService(
	planRepo mealplan.MealPlanRepository,
	mealTypeRepo mealplan.MealTypeRepository,
	recipeRepo recipes.RecipeRepository,
	logger *zap.Logger,
) *MealPlanService {
	return &MealPlanService{
		planRepo:     planRepo,
		mealTypeRepo: mealTypeRepo,
		recipeRepo:   recipeRepo,
		logger:       logger,
	}
}

// dateOnly truncates a timestamp to its calendar date in UTC. Plan and day
// dates compare by calendar date, not instant.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Create creates a meal plan owned by the user
func (s *MealPlanService) Create(ctx context.Context, userID uuid.UUID, input CreateMealPlanInput) (*MealPlanResponse, error) {
	plan, err := mealplan.NewMealPlan(userID, input.Name, dateOnly(input.StartDate), dateOnly(input.EndDate))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	plan.Notes = input.Notes
	plan.CaloricTarget = input.CaloricTarget

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to save meal plan", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Meal plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToMealPlanResponse(plan)
	return &response, nil
}

// CreateWeekly creates a seven day plan with all days pre-created
func (s *MealPlanService) CreateWeekly(ctx context.Context, userID uuid.UUID, input CreateWeeklyPlanInput) (*MealPlanResponse, error) {
	start := dateOnly(input.StartDate)
	plan, err := mealplan.NewMealPlan(userID, input.Name, start, start.AddDate(0, 0, 6))
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	plan.Notes = input.Notes
	plan.CaloricTarget = input.CaloricTarget

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to save meal plan", zap.Error(err))
		return nil, err
	}

	for offset := 0; offset < 7; offset++ {
		day := mealplan.NewMealPlanDay(plan.ID, start.AddDate(0, 0, offset))
		if err := s.planRepo.SaveDay(ctx, day); err != nil {
			s.logger.Error("Failed to save plan day", zap.Error(err))
			return nil, err
		}
		plan.Days = append(plan.Days, *day)
	}

	s.logger.Info("Weekly meal plan created",
		zap.String("plan_id", plan.ID.String()),
		zap.String("user_id", userID.String()))

	response := ToMealPlanResponse(plan)
	return &response, nil
}

// Get returns the user's plan with its full days and meals graph
func (s *MealPlanService) Get(ctx context.Context, userID, planID uuid.UUID) (*MealPlanResponse, error) {
	plan, err := s.planRepo.FindGraph(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	response := ToMealPlanResponse(plan)
	return &response, nil
}

// List returns the user's meal plans with filtering and pagination
func (s *MealPlanService) List(ctx context.Context, userID uuid.UUID, filter MealPlanListFilter) (*shared.Paginated[MealPlanResponse], error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.IsTemplate != nil {
		domainFilter.Filters["is_template"] = *filter.IsTemplate
	}

	items, err := s.planRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.planRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]MealPlanResponse, len(items))
	for i := range items {
		responses[i] = ToMealPlanResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update modifies a meal plan owned by the user
func (s *MealPlanService) Update(ctx context.Context, userID, planID uuid.UUID, input UpdateMealPlanInput) (*MealPlanResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	if input.Name != nil {
		plan.Name = *input.Name
	}
	if input.StartDate != nil {
		plan.StartDate = dateOnly(*input.StartDate)
	}
	if input.EndDate != nil {
		plan.EndDate = dateOnly(*input.EndDate)
	}
	if plan.EndDate.Before(plan.StartDate) {
		return nil, shared.ErrInvalidInput
	}
	if input.Notes != nil {
		plan.Notes = *input.Notes
	}
	if input.CaloricTarget != nil {
		plan.CaloricTarget = input.CaloricTarget
	}

	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to update meal plan", zap.Error(err))
		return nil, err
	}

	response := ToMealPlanResponse(plan)
	return &response, nil
}

// Delete removes a meal plan owned by the user with its days and meals
func (s *MealPlanService) Delete(ctx context.Context, userID, planID uuid.UUID) error {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return err
	}
	if !plan.OwnedBy(userID) {
		return shared.ErrForbidden
	}

	if err := s.planRepo.Delete(ctx, planID); err != nil {
		return err
	}

	s.logger.Info("Meal plan deleted",
		zap.String("plan_id", planID.String()),
		zap.String("user_id", userID.String()))
	return nil
}

// AddMeal assigns a recipe to a plan day and meal type slot. The day is
// created on first use; an occupied slot is overwritten.
func (s *MealPlanService) AddMeal(ctx context.Context, userID, planID uuid.UUID, input AddMealInput) (*MealResponse, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, shared.ErrForbidden
	}

	recipe, err := s.recipeRepo.FindByID(ctx, input.RecipeID)
	if err != nil {
		return nil, err
	}
	if !recipe.VisibleTo(userID) {
		return nil, shared.ErrNotFound
	}

	mealType, err := s.findMealType(ctx, input.MealTypeID)
	if err != nil {
		return nil, err
	}

	date := dateOnly(input.Date)
	if date.Before(plan.StartDate) || date.After(plan.EndDate) {
		return nil, shared.NewDomainError("INVALID_INPUT", "Meal date is outside the plan's date range")
	}

	day, err := s.planRepo.FindDayByDate(ctx, planID, date)
	if errors.Is(err, shared.ErrNotFound) {
		day = mealplan.NewMealPlanDay(planID, date)
		if err := s.planRepo.SaveDay(ctx, day); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	meal, err := s.planRepo.FindMealBySlot(ctx, day.ID, input.MealTypeID)
	switch {
	case err == nil:
		meal.RecipeID = input.RecipeID
		meal.Servings = input.Servings
		meal.Notes = input.Notes
	case errors.Is(err, shared.ErrNotFound):
		meal, err = mealplan.NewMeal(day.ID, input.MealTypeID, input.RecipeID, input.Servings)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
		}
		meal.Notes = input.Notes
	default:
		return nil, err
	}

	if err := s.planRepo.SaveMeal(ctx, meal); err != nil {
		s.logger.Error("Failed to save meal", zap.Error(err))
		return nil, err
	}

	meal.MealType = mealType
	meal.Recipe = recipe
	response := ToMealResponse(meal)
	return &response, nil
}

// RemoveMeal deletes a meal from a plan the user owns
func (s *MealPlanService) RemoveMeal(ctx context.Context, userID, mealID uuid.UUID) error {
	meal, err := s.planRepo.FindMeal(ctx, mealID)
	if err != nil {
		return err
	}
	day, err := s.planRepo.FindDay(ctx, meal.MealPlanDayID)
	if err != nil {
		return err
	}
	plan, err := s.planRepo.FindByID(ctx, day.MealPlanID)
	if err != nil {
		return err
	}
	if !plan.OwnedBy(userID) {
		return shared.ErrForbidden
	}

	return s.planRepo.DeleteMeal(ctx, mealID)
}

// NutritionSummary returns per-day nutrient totals and period averages for
// the user's plan
func (s *MealPlanService) NutritionSummary(ctx context.Context, userID, planID uuid.UUID) (*NutritionSummaryResponse, error) {
	plan, err := s.planRepo.FindGraph(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !plan.OwnedBy(userID) {
		return nil, shared.ErrNotFound
	}

	days := plan.SortedDays()
	summary := NutritionSummaryResponse{
		Days:            make([]DayNutrition, len(days)),
		AverageCalories: decimal.Zero,
		AverageProtein:  decimal.Zero,
		AverageCarbs:    decimal.Zero,
		AverageFat:      decimal.Zero,
	}

	totalCalories := decimal.Zero
	totalProtein := decimal.Zero
	totalCarbs := decimal.Zero
	totalFat := decimal.Zero
	for i := range days {
		entry := DayNutrition{
			Date:    days[i].Date,
			Protein: decimal.Zero,
			Carbs:   decimal.Zero,
			Fat:     decimal.Zero,
		}
		for j := range days[i].Meals {
			meal := &days[i].Meals[j]
			entry.Calories += meal.Calories()
			protein, carbs, fat := meal.Nutrients()
			entry.Protein = entry.Protein.Add(protein)
			entry.Carbs = entry.Carbs.Add(carbs)
			entry.Fat = entry.Fat.Add(fat)
		}
		summary.Days[i] = entry

		totalCalories = totalCalories.Add(decimal.NewFromInt(int64(entry.Calories)))
		totalProtein = totalProtein.Add(entry.Protein)
		totalCarbs = totalCarbs.Add(entry.Carbs)
		totalFat = totalFat.Add(entry.Fat)
	}

	if len(days) > 0 {
		count := decimal.NewFromInt(int64(len(days)))
		summary.AverageCalories = totalCalories.Div(count).Round(2)
		summary.AverageProtein = totalProtein.Div(count).Round(2)
		summary.AverageCarbs = totalCarbs.Div(count).Round(2)
		summary.AverageFat = totalFat.Div(count).Round(2)
	}

	return &summary, nil
}

// MealTypes returns all meal types in display order
func (s *MealPlanService) MealTypes(ctx context.Context) ([]MealTypeResponse, error) {
	types, err := s.mealTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]MealTypeResponse, len(types))
	for i := range types {
		responses[i] = ToMealTypeResponse(&types[i])
	}
	return responses, nil
}

// findMealType resolves a meal type by ID
func (s *MealPlanService) findMealType(ctx context.Context, id uuid.UUID) (*mealplan.MealType, error) {
	types, err := s.mealTypeRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range types {
		if types[i].ID == id {
			return &types[i], nil
		}
	}
	return nil, shared.ErrNotFound
}
