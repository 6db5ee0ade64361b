package mealplan

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/recipes"
	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/infrastructure/mealgen"
)

// mealTypeOrders maps known meal type names to their display order. Unknown
// names from the producer sort after the known slots.
var mealTypeOrders = map[string]int{
	"breakfast": 1,
	"lunch":     2,
	"dinner":    3,
	"snack":     4,
}

const unknownMealTypeOrder = 99

// GenerationService builds persisted meal plans from producer output
type GenerationService struct {
	producer     mealgen.Producer
	planRepo     mealplan.MealPlanRepository
	mealTypeRepo mealplan.MealTypeRepository
	recipeRepo   recipes.RecipeRepository
	logger       *zap.Logger
}

// NewGenerationService creates a new GenerationService
func NewGenerationService(
	producer mealgen.Producer,
	planRepo mealplan.MealPlanRepository,
	mealTypeRepo mealplan.MealTypeRepository,
	recipeRepo recipes.RecipeRepository,
	logger *zap.Logger,
) *GenerationService {
	return &GenerationService{
		producer:     producer,
		planRepo:     planRepo,
		mealTypeRepo: mealTypeRepo,
		recipeRepo:   recipeRepo,
		logger:       logger,
	}
}

// PlanFromPreferences generates meal data from the user's preferences and
// persists it as a plan with days, recipes and meals. On any failure after
// the plan root exists the root is deleted, cascading to days and meals.
// Recipes created before the failure are kept.
func (s *GenerationService) PlanFromPreferences(ctx context.Context, userID uuid.UUID, input GeneratePlanInput) (*MealPlanResponse, error) {
	prefs := mealgen.Preferences{
		TargetCalories:     input.TargetCalories,
		MealsPerDay:        input.MealsPerDay,
		Days:               input.Days,
		DietaryPreferences: input.DietaryPreferences,
	}
	prefs.ApplyDefaults()

	generated, err := s.producer.GeneratePlan(ctx, prefs)
	if err != nil {
		s.logger.Error("Meal data producer failed", zap.Error(err))
		return nil, shared.ErrMalformedGeneratedPlan
	}
	if err := generated.Validate(); err != nil {
		s.logger.Warn("Generated plan failed validation", zap.Error(err))
		return nil, shared.ErrMalformedGeneratedPlan
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "Generated meal plan"
	}
	start := dateOnly(input.StartDate)
	end := start.AddDate(0, 0, len(generated.Days)-1)

	plan, err := mealplan.NewMealPlan(userID, name, start, end)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	plan.CaloricTarget = &prefs.TargetCalories
	if err := s.planRepo.Save(ctx, plan); err != nil {
		s.logger.Error("Failed to save generated plan", zap.Error(err))
		return nil, err
	}

	if err := s.assemble(ctx, userID, plan, generated); err != nil {
		s.compensate(ctx, plan.ID)
		return nil, shared.ErrMalformedGeneratedPlan
	}

	s.logger.Info("Meal plan generated",
		zap.String("plan_id", plan.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Int("days", len(generated.Days)))

	full, err := s.planRepo.FindGraph(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	response := ToMealPlanResponse(full)
	return &response, nil
}

// assemble persists the generated days, recipes and meals under the plan root
func (s *GenerationService) assemble(ctx context.Context, userID uuid.UUID, plan *mealplan.MealPlan, generated *mealgen.GeneratedPlan) error {
	for i, genDay := range generated.Days {
		day := mealplan.NewMealPlanDay(plan.ID, plan.StartDate.AddDate(0, 0, i))
		if err := s.planRepo.SaveDay(ctx, day); err != nil {
			return err
		}

		for _, genMeal := range genDay.Meals {
			mealType, err := s.mealTypeRepo.GetOrCreate(ctx, genMeal.MealType, displayOrderFor(genMeal.MealType))
			if err != nil {
				return err
			}

			recipe, err := s.createRecipe(ctx, userID, genMeal.Recipe)
			if err != nil {
				return err
			}

			meal, err := mealplan.NewMeal(day.ID, mealType.ID, recipe.ID, 1)
			if err != nil {
				return err
			}
			if err := s.planRepo.SaveMeal(ctx, meal); err != nil {
				return err
			}
		}
	}
	return nil
}

// createRecipe persists a generated recipe owned by the user and not public
func (s *GenerationService) createRecipe(ctx context.Context, userID uuid.UUID, gen mealgen.GeneratedRecipe) (*recipes.Recipe, error) {
	recipe, err := recipes.NewRecipe(userID, gen.Title, 1)
	if err != nil {
		return nil, err
	}
	recipe.Description = gen.Description
	recipe.Instructions = recipes.StringList(gen.Instructions)
	recipe.CaloriesPerServing = gen.CaloriesPerServing
	recipe.Protein = decimal.NewFromInt(int64(gen.Protein))
	recipe.Carbs = decimal.NewFromInt(int64(gen.Carbs))
	recipe.Fat = decimal.NewFromInt(int64(gen.Fat))
	recipe.Ingredients = make(recipes.IngredientLines, 0, len(gen.Ingredients))
	for _, ing := range gen.Ingredients {
		line := recipes.IngredientLine{
			Name:   ing.Name,
			Amount: ing.Amount,
		}
		if ing.Unit != "" {
			unit := ing.Unit
			line.Unit = &unit
		}
		recipe.Ingredients = append(recipe.Ingredients, line)
	}

	if err := s.recipeRepo.Save(ctx, recipe); err != nil {
		return nil, err
	}
	return recipe, nil
}

// compensate removes the plan root after a failed assembly. Days and meals
// follow by cascade; recipes are left in place.
func (s *GenerationService) compensate(ctx context.Context, planID uuid.UUID) {
	if err := s.planRepo.Delete(ctx, planID); err != nil {
		s.logger.Error("Failed to delete partially created plan",
			zap.String("plan_id", planID.String()),
			zap.Error(err))
	}
}

func displayOrderFor(mealType string) int {
	if order, ok := mealTypeOrders[strings.ToLower(mealType)]; ok {
		return order
	}
	return unknownMealTypeOrder
}
