package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shoppingapp "github.com/mealplan/backend/internal/application/shopping"
)

// ShoppingListHandler handles shopping list-related API endpoints
type ShoppingListHandler struct {
	BaseHandler
	listService *shoppingapp.ShoppingListService
}

// NewShoppingListHandler creates a new ShoppingListHandler
func NewShoppingListHandler(listService *shoppingapp.ShoppingListService) *ShoppingListHandler {
	return &ShoppingListHandler{
		listService: listService,
	}
}

// Create godoc
//
//	@ID			createShoppingList
//	@Summary	Create a shopping list
//	@Description	Creates a list, optionally linked to one of the caller's meal plans
//	@Tags		shopping-lists
//	@Accept		json
//	@Produce	json
//	@Param		request	body		shoppingapp.CreateShoppingListInput	true	"Shopping list creation request"
//	@Success	201		{object}	APIResponse[shoppingapp.ShoppingListResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists [post]
func (h *ShoppingListHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.CreateShoppingListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.listService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, list)
}

// Get godoc
//
//	@ID			getShoppingListById
//	@Summary	Get a shopping list with its items
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Shopping list ID"
//	@Success	200	{object}	APIResponse[shoppingapp.ShoppingListResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [get]
func (h *ShoppingListHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	list, err := h.listService.Get(c.Request.Context(), userID, listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// List godoc
//
//	@ID			listShoppingLists
//	@Summary	List the caller's shopping lists
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		search			query		string	false	"Search in list names"
//	@Param		is_completed	query		bool	false	"Filter by completion"
//	@Param		meal_plan_id	query		string	false	"Filter by linked meal plan"
//	@Param		page			query		int		false	"Page number"
//	@Param		page_size		query		int		false	"Page size"
//	@Success	200				{object}	APIResponse[[]shoppingapp.ShoppingListResponse]
//	@Failure	401				{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists [get]
func (h *ShoppingListHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter shoppingapp.ShoppingListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.listService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@ID			updateShoppingList
//	@Summary	Update a shopping list
//	@Tags		shopping-lists
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Shopping list ID"
//	@Param		request	body		shoppingapp.UpdateShoppingListInput	true	"Shopping list update request"
//	@Success	200		{object}	APIResponse[shoppingapp.ShoppingListResponse]
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [put]
func (h *ShoppingListHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	var req shoppingapp.UpdateShoppingListInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	list, err := h.listService.Update(c.Request.Context(), userID, listID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// Delete godoc
//
//	@ID			deleteShoppingList
//	@Summary	Delete a shopping list
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path	string	true	"Shopping list ID"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id} [delete]
func (h *ShoppingListHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	if err := h.listService.Delete(c.Request.Context(), userID, listID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Generate godoc
//
//	@ID			generateShoppingList
//	@Summary	Generate list items from the linked meal plan
//	@Description	Aggregates ingredient demand across the plan, nets it against the pantry, and fills the list
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Shopping list ID"
//	@Success	200	{object}	APIResponse[shoppingapp.GenerateListResult]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id}/generate [post]
func (h *ShoppingListHandler) Generate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	result, err := h.listService.GenerateFromMealPlan(c.Request.Context(), userID, listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Regenerate godoc
//
//	@ID			regenerateShoppingList
//	@Summary	Rebuild list items from the linked meal plan
//	@Description	Discards existing items, resets completion, and generates fresh items
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Shopping list ID"
//	@Success	200	{object}	APIResponse[shoppingapp.GenerateListResult]
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id}/regenerate [post]
func (h *ShoppingListHandler) Regenerate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	result, err := h.listService.RegenerateFromMealPlan(c.Request.Context(), userID, listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ToggleItem godoc
//
//	@ID			toggleShoppingListItem
//	@Summary	Toggle an item's purchased flag
//	@Description	Flips the purchased state and recomputes list completion
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id		path		string	true	"Shopping list ID"
//	@Param		itemId	path		string	true	"Item ID"
//	@Success	200		{object}	APIResponse[shoppingapp.ShoppingListResponse]
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id}/items/{itemId}/toggle [post]
func (h *ShoppingListHandler) ToggleItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	list, err := h.listService.ToggleItemPurchased(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// MarkAllPurchased godoc
//
//	@ID			markAllShoppingListItemsPurchased
//	@Summary	Mark every item in a list as purchased
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Shopping list ID"
//	@Success	200	{object}	APIResponse[shoppingapp.ShoppingListResponse]
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id}/purchase-all [post]
func (h *ShoppingListHandler) MarkAllPurchased(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	list, err := h.listService.MarkAllPurchased(c.Request.Context(), userID, listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, list)
}

// AddPurchasedToPantry godoc
//
//	@ID			addPurchasedToPantry
//	@Summary	Move purchased items into the pantry
//	@Description	Increments matching pantry items and creates entries for the rest, atomically
//	@Tags		shopping-lists
//	@Produce	json
//	@Param		id	path		string	true	"Shopping list ID"
//	@Success	200	{object}	APIResponse[shoppingapp.ReconcileResult]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/shopping-lists/{id}/add-to-pantry [post]
func (h *ShoppingListHandler) AddPurchasedToPantry(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shopping list ID")
		return
	}

	result, err := h.listService.AddPurchasedToPantry(c.Request.Context(), userID, listID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
