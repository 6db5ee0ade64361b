package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mealplan/backend/internal/domain/mealplan"
	"github.com/mealplan/backend/internal/domain/shared"
)

// GormMealPlanRepository implements MealPlanRepository using GORM
type GormMealPlanRepository struct {
	db *gorm.DB
}

// NewGormMealPlanRepository creates a new GormMealPlanRepository
func NewGormMealPlanRepository(db *gorm.DB) *GormMealPlanRepository {
	return &GormMealPlanRepository{db: db}
}

// FindByID finds a meal plan by its ID
func (r *GormMealPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var plan mealplan.MealPlan
	if err := r.db.WithContext(ctx).First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAll finds all meal plans matching the filter
func (r *GormMealPlanRepository) FindAll(ctx context.Context, filter shared.Filter) ([]mealplan.MealPlan, error) {
	var plans []mealplan.MealPlan
	query := r.applyFilter(r.db.WithContext(ctx).Model(&mealplan.MealPlan{}), filter)
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// Save creates or updates a meal plan
func (r *GormMealPlanRepository) Save(ctx context.Context, plan *mealplan.MealPlan) error {
	return r.db.WithContext(ctx).Save(plan).Error
}

// Delete deletes a meal plan, its days and meals follow by cascade
func (r *GormMealPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mealplan.MealPlan{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts meal plans matching the filter
func (r *GormMealPlanRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&mealplan.MealPlan{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIDForUser finds a meal plan by ID owned by the user
func (r *GormMealPlanRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*mealplan.MealPlan, error) {
	var plan mealplan.MealPlan
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&plan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// FindAllForUser finds all meal plans owned by the user
func (r *GormMealPlanRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]mealplan.MealPlan, error) {
	var plans []mealplan.MealPlan
	query := r.db.WithContext(ctx).Model(&mealplan.MealPlan{}).Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}

// CountForUser counts meal plans owned by the user
func (r *GormMealPlanRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&mealplan.MealPlan{}).Where("user_id = ?", userID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindGraph loads a plan with its days, meals, meal types and recipes
func (r *GormMealPlanRepository) FindGraph(ctx context.Context, id uuid.UUID) (*mealplan.MealPlan, error) {
	var plan mealplan.MealPlan
	if err := r.db.WithContext(ctx).
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("meal_plan_days.date ASC")
		}).
		Preload("Days.Meals").
		Preload("Days.Meals.MealType").
		Preload("Days.Meals.Recipe").
		First(&plan, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// SaveDay creates or updates a plan day
func (r *GormMealPlanRepository) SaveDay(ctx context.Context, day *mealplan.MealPlanDay) error {
	return r.db.WithContext(ctx).Omit("Meals").Save(day).Error
}

// FindDay finds a plan day by ID with its meals loaded
func (r *GormMealPlanRepository) FindDay(ctx context.Context, dayID uuid.UUID) (*mealplan.MealPlanDay, error) {
	var day mealplan.MealPlanDay
	if err := r.db.WithContext(ctx).
		Preload("Meals").
		Preload("Meals.MealType").
		Preload("Meals.Recipe").
		First(&day, "id = ?", dayID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// FindDayByDate finds a plan day by its plan and date
func (r *GormMealPlanRepository) FindDayByDate(ctx context.Context, planID uuid.UUID, date time.Time) (*mealplan.MealPlanDay, error) {
	var day mealplan.MealPlanDay
	if err := r.db.WithContext(ctx).
		Where("meal_plan_id = ? AND date = ?", planID, date).
		First(&day).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// SaveMeal creates or updates a meal
func (r *GormMealPlanRepository) SaveMeal(ctx context.Context, meal *mealplan.Meal) error {
	return r.db.WithContext(ctx).Omit("MealType", "Recipe").Save(meal).Error
}

// FindMeal finds a meal by ID with its meal type and recipe loaded
func (r *GormMealPlanRepository) FindMeal(ctx context.Context, mealID uuid.UUID) (*mealplan.Meal, error) {
	var meal mealplan.Meal
	if err := r.db.WithContext(ctx).
		Preload("MealType").
		Preload("Recipe").
		First(&meal, "id = ?", mealID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// FindMealBySlot finds the meal occupying a day and meal type slot
func (r *GormMealPlanRepository) FindMealBySlot(ctx context.Context, dayID, mealTypeID uuid.UUID) (*mealplan.Meal, error) {
	var meal mealplan.Meal
	if err := r.db.WithContext(ctx).
		Where("meal_plan_day_id = ? AND meal_type_id = ?", dayID, mealTypeID).
		First(&meal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

// DeleteMeal deletes a meal by ID
func (r *GormMealPlanRepository) DeleteMeal(ctx context.Context, mealID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&mealplan.Meal{}, "id = ?", mealID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormMealPlanRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, MealPlanSortFields, "start_date")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMealPlanRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "is_template":
			query = query.Where("is_template = ?", value)
		case "start_after":
			query = query.Where("start_date >= ?", value)
		case "end_before":
			query = query.Where("end_date <= ?", value)
		}
	}

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	return query
}

// GormMealTypeRepository implements MealTypeRepository using GORM
type GormMealTypeRepository struct {
	db *gorm.DB
}

// NewGormMealTypeRepository creates a new GormMealTypeRepository
func NewGormMealTypeRepository(db *gorm.DB) *GormMealTypeRepository {
	return &GormMealTypeRepository{db: db}
}

// FindAll finds all meal types ordered by display order
func (r *GormMealTypeRepository) FindAll(ctx context.Context) ([]mealplan.MealType, error) {
	var types []mealplan.MealType
	if err := r.db.WithContext(ctx).Order("display_order ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// FindByName finds a meal type by name
func (r *GormMealTypeRepository) FindByName(ctx context.Context, name string) (*mealplan.MealType, error) {
	var mealType mealplan.MealType
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&mealType).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &mealType, nil
}

// GetOrCreate returns the meal type with the given name, creating it when absent
func (r *GormMealTypeRepository) GetOrCreate(ctx context.Context, name string, displayOrder int) (*mealplan.MealType, error) {
	mealType, err := r.FindByName(ctx, name)
	if err == nil {
		return mealType, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	mealType, err = mealplan.NewMealType(name, displayOrder)
	if err != nil {
		return nil, err
	}

	// Use ON CONFLICT to handle race conditions
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoNothing: true,
		}).
		Create(mealType).Error; err != nil {
		return nil, err
	}

	// If the row wasn't created (conflict), fetch the existing one
	if mealType.ID == uuid.Nil {
		return r.FindByName(ctx, name)
	}

	return mealType, nil
}

// Ensure implementations satisfy the repository interfaces
var _ mealplan.MealPlanRepository = (*GormMealPlanRepository)(nil)
var _ mealplan.MealTypeRepository = (*GormMealTypeRepository)(nil)
