package shopping

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mealplan/backend/internal/domain/shared"
	"github.com/mealplan/backend/internal/domain/shopping"
	"github.com/mealplan/backend/internal/infrastructure/config"
)

// PantryService handles pantry item business operations
type PantryService struct {
	pantryRepo shopping.PantryItemRepository
	cfg        config.PantryConfig
	logger     *zap.Logger
}

// NewPantryService creates a new PantryService
func NewPantryService(pantryRepo shopping.PantryItemRepository, cfg config.PantryConfig, logger *zap.Logger) *PantryService {
	return &PantryService{
		pantryRepo: pantryRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// Create creates a pantry item owned by the user
func (s *PantryService) Create(ctx context.Context, userID uuid.UUID, input CreatePantryItemInput) (*PantryItemResponse, error) {
	item, err := shopping.NewPantryItem(userID, input.Name, input.Quantity, input.Unit, input.CategoryID)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", err.Error())
	}
	item.ExpiryDate = input.ExpiryDate
	item.Notes = input.Notes

	if err := s.pantryRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to save pantry item", zap.Error(err))
		return nil, err
	}

	response := ToPantryItemResponse(item)
	return &response, nil
}

// Get returns the user's pantry item
func (s *PantryService) Get(ctx context.Context, userID, itemID uuid.UUID) (*PantryItemResponse, error) {
	item, err := s.pantryRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	response := ToPantryItemResponse(item)
	return &response, nil
}

// List returns the user's pantry items with filtering and pagination
func (s *PantryService) List(ctx context.Context, userID uuid.UUID, filter PantryListFilter) (*shared.Paginated[PantryItemResponse], error) {
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
	if filter.CategoryID != nil {
		domainFilter.Filters["category_id"] = *filter.CategoryID
	}

	items, err := s.pantryRepo.FindAllForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	total, err := s.pantryRepo.CountForUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]PantryItemResponse, len(items))
	for i := range items {
		responses[i] = ToPantryItemResponse(&items[i])
	}
	result := shared.NewPaginated(responses, total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Update modifies a pantry item owned by the user
func (s *PantryService) Update(ctx context.Context, userID, itemID uuid.UUID, input UpdatePantryItemInput) (*PantryItemResponse, error) {
	item, err := s.pantryRepo.FindByIDForUser(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Quantity != nil {
		if input.Quantity.IsNegative() {
			return nil, shared.ErrInvalidInput
		}
		item.Quantity = *input.Quantity
	}
	if input.Unit != nil {
		item.Unit = input.Unit
	}
	if input.CategoryID != nil {
		item.CategoryID = input.CategoryID
	}
	if input.ExpiryDate != nil {
		item.ExpiryDate = input.ExpiryDate
	}
	if input.Notes != nil {
		item.Notes = *input.Notes
	}

	if err := s.pantryRepo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to update pantry item", zap.Error(err))
		return nil, err
	}

	response := ToPantryItemResponse(item)
	return &response, nil
}

// Delete removes a pantry item owned by the user
func (s *PantryService) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	if _, err := s.pantryRepo.FindByIDForUser(ctx, userID, itemID); err != nil {
		return err
	}
	return s.pantryRepo.Delete(ctx, itemID)
}

// ExpiringSoon returns items whose expiry date falls within the configured
// window, ordered by expiry ascending
func (s *PantryService) ExpiringSoon(ctx context.Context, userID uuid.UUID) ([]PantryItemResponse, error) {
	items, err := s.pantryRepo.FindExpiringSoon(ctx, userID, s.cfg.ExpiringSoonDays)
	if err != nil {
		return nil, err
	}
	responses := make([]PantryItemResponse, len(items))
	for i := range items {
		responses[i] = ToPantryItemResponse(&items[i])
	}
	return responses, nil
}

// LowStock returns items whose quantity sits below the configured threshold
func (s *PantryService) LowStock(ctx context.Context, userID uuid.UUID) ([]PantryItemResponse, error) {
	items, err := s.pantryRepo.FindLowStock(ctx, userID, s.cfg.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	responses := make([]PantryItemResponse, len(items))
	for i := range items {
		responses[i] = ToPantryItemResponse(&items[i])
	}
	return responses, nil
}
