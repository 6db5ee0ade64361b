package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// GormPantryItemRepository implements PantryItemRepository using GORM
type GormPantryItemRepository struct {
	db *gorm.DB
}

// NewGormPantryItemRepository creates a new GormPantryItemRepository
func NewGormPantryItemRepository(db *gorm.DB) *GormPantryItemRepository {
	return &GormPantryItemRepository{db: db}
}

// FindByID finds a pantry item by its ID
func (r *GormPantryItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.PantryItem, error) {
	var item shopping.PantryItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll finds all pantry items matching the filter
func (r *GormPantryItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.PantryItem, error) {
	var items []shopping.PantryItem
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shopping.PantryItem{}), filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Save creates or updates a pantry item
func (r *GormPantryItemRepository) Save(ctx context.Context, item *shopping.PantryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete deletes a pantry item by ID
func (r *GormPantryItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shopping.PantryItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts pantry items matching the filter
func (r *GormPantryItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&shopping.PantryItem{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIDForUser finds a pantry item by ID owned by the user
func (r *GormPantryItemRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.PantryItem, error) {
	var item shopping.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAllForUser finds all pantry items owned by the user
func (r *GormPantryItemRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shopping.PantryItem, error) {
	var items []shopping.PantryItem
	query := r.db.WithContext(ctx).Model(&shopping.PantryItem{}).Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountForUser counts pantry items owned by the user
func (r *GormPantryItemRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shopping.PantryItem{}).Where("user_id = ?", userID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIdentity returns the user's pantry rows matching (name, unit, category)
// exactly, oldest first. Absent unit or category only matches NULL.
func (r *GormPantryItemRepository) FindByIdentity(ctx context.Context, userID uuid.UUID, name string, unit *string, categoryID *uuid.UUID) ([]shopping.PantryItem, error) {
	query := r.db.WithContext(ctx).
		Where("user_id = ? AND name = ?", userID, name)
	if unit != nil {
		query = query.Where("unit = ?", *unit)
	} else {
		query = query.Where("unit IS NULL")
	}
	if categoryID != nil {
		query = query.Where("category_id = ?", *categoryID)
	} else {
		query = query.Where("category_id IS NULL")
	}

	var items []shopping.PantryItem
	if err := query.Order("created_at ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindExpiringSoon returns items whose expiry date falls within the given
// number of days, ordered by expiry ascending. Already-expired items are
// excluded.
func (r *GormPantryItemRepository) FindExpiringSoon(ctx context.Context, userID uuid.UUID, days int) ([]shopping.PantryItem, error) {
	now := time.Now().UTC()
	cutoff := now.AddDate(0, 0, days)

	var items []shopping.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND expiry_date >= ? AND expiry_date <= ?", userID, now, cutoff).
		Order("expiry_date ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindLowStock returns items with quantity below the threshold
func (r *GormPantryItemRepository) FindLowStock(ctx context.Context, userID uuid.UUID, threshold float64) ([]shopping.PantryItem, error) {
	var items []shopping.PantryItem
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND quantity < ?", userID, threshold).
		Order("quantity ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// applyFilter applies filter options to the query
func (r *GormPantryItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, PantryItemSortFields, "name")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormPantryItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "category_id":
			query = query.Where("category_id = ?", value)
		case "has_expiry":
			if value == true {
				query = query.Where("expiry_date IS NOT NULL")
			}
		}
	}

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	return query
}

// Ensure GormPantryItemRepository implements PantryItemRepository
var _ shopping.PantryItemRepository = (*GormPantryItemRepository)(nil)
