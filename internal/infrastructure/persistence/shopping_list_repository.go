package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// GormShoppingListRepository implements ShoppingListRepository using GORM
type GormShoppingListRepository struct {
	db *gorm.DB
}

// NewGormShoppingListRepository creates a new GormShoppingListRepository
func NewGormShoppingListRepository(db *gorm.DB) *GormShoppingListRepository {
	return &GormShoppingListRepository{db: db}
}

// FindByID finds a shopping list by its ID
func (r *GormShoppingListRepository) FindByID(ctx context.Context, id uuid.UUID) (*shopping.ShoppingList, error) {
	var list shopping.ShoppingList
	if err := r.db.WithContext(ctx).First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindAll finds all shopping lists matching the filter
func (r *GormShoppingListRepository) FindAll(ctx context.Context, filter shared.Filter) ([]shopping.ShoppingList, error) {
	var lists []shopping.ShoppingList
	query := r.applyFilter(r.db.WithContext(ctx).Model(&shopping.ShoppingList{}), filter)
	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Save creates or updates a shopping list
func (r *GormShoppingListRepository) Save(ctx context.Context, list *shopping.ShoppingList) error {
	return r.db.WithContext(ctx).Omit("Items").Save(list).Error
}

// Delete deletes a shopping list, its items follow by cascade
func (r *GormShoppingListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shopping.ShoppingList{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts shopping lists matching the filter
func (r *GormShoppingListRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&shopping.ShoppingList{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindByIDForUser finds a shopping list by ID owned by the user
func (r *GormShoppingListRepository) FindByIDForUser(ctx context.Context, userID, id uuid.UUID) (*shopping.ShoppingList, error) {
	var list shopping.ShoppingList
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", userID, id).
		First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// FindAllForUser finds all shopping lists owned by the user
func (r *GormShoppingListRepository) FindAllForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]shopping.ShoppingList, error) {
	var lists []shopping.ShoppingList
	query := r.db.WithContext(ctx).Model(&shopping.ShoppingList{}).Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// CountForUser counts shopping lists owned by the user
func (r *GormShoppingListRepository) CountForUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&shopping.ShoppingList{}).Where("user_id = ?", userID)
	query = r.applyFilterWithoutPagination(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindWithItems loads a list together with its items
func (r *GormShoppingListRepository) FindWithItems(ctx context.Context, id uuid.UUID) (*shopping.ShoppingList, error) {
	var list shopping.ShoppingList
	if err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("shopping_list_items.created_at ASC")
		}).
		First(&list, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &list, nil
}

// SaveItem creates or updates a single list item
func (r *GormShoppingListRepository) SaveItem(ctx context.Context, item *shopping.ShoppingListItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// SaveItems creates or updates list items in a single batch
func (r *GormShoppingListRepository) SaveItems(ctx context.Context, items []*shopping.ShoppingListItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Save(items).Error
}

// FindItem finds a list item by ID
func (r *GormShoppingListRepository) FindItem(ctx context.Context, itemID uuid.UUID) (*shopping.ShoppingListItem, error) {
	var item shopping.ShoppingListItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindItemsByList finds all items of a list, oldest first
func (r *GormShoppingListRepository) FindItemsByList(ctx context.Context, listID uuid.UUID) ([]shopping.ShoppingListItem, error) {
	var items []shopping.ShoppingListItem
	if err := r.db.WithContext(ctx).
		Where("shopping_list_id = ?", listID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteItem deletes a list item by ID
func (r *GormShoppingListRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&shopping.ShoppingListItem{}, "id = ?", itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteItemsByList deletes every item of a list
func (r *GormShoppingListRepository) DeleteItemsByList(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("shopping_list_id = ?", listID).
		Delete(&shopping.ShoppingListItem{}).Error
}

// MarkAllPurchased marks every item of a list as purchased
func (r *GormShoppingListRepository) MarkAllPurchased(ctx context.Context, listID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&shopping.ShoppingListItem{}).
		Where("shopping_list_id = ?", listID).
		Update("is_purchased", true).Error
}

// applyFilter applies filter options to the query
func (r *GormShoppingListRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ShoppingListSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormShoppingListRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "is_completed":
			query = query.Where("is_completed = ?", value)
		case "meal_plan_id":
			query = query.Where("meal_plan_id = ?", value)
		}
	}

	if filter.Search != "" {
		query = query.Where("name LIKE ?", "%"+filter.Search+"%")
	}

	return query
}

// Ensure GormShoppingListRepository implements ShoppingListRepository
var _ shopping.ShoppingListRepository = (*GormShoppingListRepository)(nil)
