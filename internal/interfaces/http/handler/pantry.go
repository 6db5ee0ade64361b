package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	shoppingapp "github.com/mealplan/backend/internal/application/shopping"
)

// PantryHandler handles pantry-related API endpoints
type PantryHandler struct {
	BaseHandler
	pantryService *shoppingapp.PantryService
}

// NewPantryHandler creates a new PantryHandler
func NewPantryHandler(pantryService *shoppingapp.PantryService) *PantryHandler {
	return &PantryHandler{
		pantryService: pantryService,
	}
}

// Create godoc
//
//	@ID			createPantryItem
//	@Summary	Add an item to the pantry
//	@Tags		pantry
//	@Accept		json
//	@Produce	json
//	@Param		request	body		shoppingapp.CreatePantryItemInput	true	"Pantry item creation request"
//	@Success	201		{object}	APIResponse[shoppingapp.PantryItemResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry [post]
func (h *PantryHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req shoppingapp.CreatePantryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.pantryService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, item)
}

// Get godoc
//
//	@ID			getPantryItemById
//	@Summary	Get a pantry item by ID
//	@Tags		pantry
//	@Produce	json
//	@Param		id	path		string	true	"Pantry item ID"
//	@Success	200	{object}	APIResponse[shoppingapp.PantryItemResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry/{id} [get]
func (h *PantryHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pantry item ID")
		return
	}

	item, err := h.pantryService.Get(c.Request.Context(), userID, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// List godoc
//
//	@ID			listPantryItems
//	@Summary	List the caller's pantry items
//	@Tags		pantry
//	@Produce	json
//	@Param		search		query		string	false	"Search in item names"
//	@Param		category_id	query		string	false	"Filter by ingredient category"
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	APIResponse[[]shoppingapp.PantryItemResponse]
//	@Failure	401			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry [get]
func (h *PantryHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter shoppingapp.PantryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.pantryService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@ID			updatePantryItem
//	@Summary	Update a pantry item
//	@Tags		pantry
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string								true	"Pantry item ID"
//	@Param		request	body		shoppingapp.UpdatePantryItemInput	true	"Pantry item update request"
//	@Success	200		{object}	APIResponse[shoppingapp.PantryItemResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry/{id} [put]
func (h *PantryHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pantry item ID")
		return
	}

	var req shoppingapp.UpdatePantryItemInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	item, err := h.pantryService.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, item)
}

// Delete godoc
//
//	@ID			deletePantryItem
//	@Summary	Delete a pantry item
//	@Tags		pantry
//	@Produce	json
//	@Param		id	path	string	true	"Pantry item ID"
//	@Success	204
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry/{id} [delete]
func (h *PantryHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid pantry item ID")
		return
	}

	if err := h.pantryService.Delete(c.Request.Context(), userID, itemID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// ExpiringSoon godoc
//
//	@ID			listExpiringPantryItems
//	@Summary	List pantry items expiring soon
//	@Tags		pantry
//	@Produce	json
//	@Success	200	{object}	APIResponse[[]shoppingapp.PantryItemResponse]
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry/expiring-soon [get]
func (h *PantryHandler) ExpiringSoon(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.pantryService.ExpiringSoon(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}

// LowStock godoc
//
//	@ID			listLowStockPantryItems
//	@Summary	List pantry items running low
//	@Tags		pantry
//	@Produce	json
//	@Success	200	{object}	APIResponse[[]shoppingapp.PantryItemResponse]
//	@Failure	401	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/pantry/low-stock [get]
func (h *PantryHandler) LowStock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	items, err := h.pantryService.LowStock(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, items)
}
