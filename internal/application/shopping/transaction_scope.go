package shopping

import (
	"context"

	"github.com/mealplan/backend/internal/domain/shopping"
)

// TransactionScope runs a function against shopping repositories bound to a
// single database transaction. Generate and regenerate flows rely on it so a
// failed materialization never leaves a list half written.
type TransactionScope interface {
	// Execute commits when fn returns nil and rolls back otherwise.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories hands out repositories that share the scope's
// transaction.
type TransactionalRepositories interface {
	ListRepo() shopping.ShoppingListRepository
	PantryRepo() shopping.PantryItemRepository
}

// NoOpTransactionScope satisfies TransactionScope without a database, passing
// the wrapped repositories through unchanged. Tests use it in place of the
// GORM-backed scope.
type NoOpTransactionScope struct {
	listRepo   shopping.ShoppingListRepository
	pantryRepo shopping.PantryItemRepository
}

func NewNoOpTransactionScope(
	listRepo shopping.ShoppingListRepository,
	pantryRepo shopping.PantryItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		listRepo:   listRepo,
		pantryRepo: pantryRepo,
	}
}

// Execute invokes fn directly; there is no transaction to roll back.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) ListRepo() shopping.ShoppingListRepository { return s.listRepo }

func (s *NoOpTransactionScope) PantryRepo() shopping.PantryItemRepository { return s.pantryRepo }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
