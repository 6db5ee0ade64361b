package persistence

import (
	"context"

	"gorm.io/gorm"

	appshopping "github.com/mealplan/backend/internal/application/shopping"
	"github.com/mealplan/backend/internal/domain/shopping"
)

// GormShoppingTransactionScope implements TransactionScope using GORM transactions.
// It provides atomic execution of multiple repository operations.
type GormShoppingTransactionScope struct {
	db *gorm.DB
}

// NewGormShoppingTransactionScope creates a new GormShoppingTransactionScope.
func NewGormShoppingTransactionScope(db *gorm.DB) *GormShoppingTransactionScope {
	return &GormShoppingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
// If the function succeeds, the transaction is committed.
func (s *GormShoppingTransactionScope) Execute(ctx context.Context, fn func(repos appshopping.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormShoppingTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormShoppingTransactionalRepositories provides access to the shopping
// repositories within a transaction.
type gormShoppingTransactionalRepositories struct {
	tx *gorm.DB
}

// ListRepo returns the shopping list repository scoped to the current transaction.
func (r *gormShoppingTransactionalRepositories) ListRepo() shopping.ShoppingListRepository {
	return NewGormShoppingListRepository(r.tx)
}

// PantryRepo returns the pantry item repository scoped to the current transaction.
func (r *gormShoppingTransactionalRepositories) PantryRepo() shopping.PantryItemRepository {
	return NewGormPantryItemRepository(r.tx)
}

// Ensure GormShoppingTransactionScope implements TransactionScope
var _ appshopping.TransactionScope = (*GormShoppingTransactionScope)(nil)

// Ensure gormShoppingTransactionalRepositories implements TransactionalRepositories
var _ appshopping.TransactionalRepositories = (*gormShoppingTransactionalRepositories)(nil)
