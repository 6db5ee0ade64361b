package handler

import (
	"github.com/gin-gonic/gin"

	shoppingapp "github.com/mealplan/backend/internal/application/shopping"
)

// CategoryHandler handles ingredient category API endpoints
type CategoryHandler struct {
	BaseHandler
	categoryService *shoppingapp.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService *shoppingapp.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
	}
}

// List godoc
//
//	@ID			listIngredientCategories
//	@Summary	List ingredient categories
//	@Description	Categories in display order, used for grouping shopping list and pantry items
//	@Tags		categories
//	@Produce	json
//	@Success	200	{object}	APIResponse[[]shoppingapp.CategoryResponse]
//	@Security	BearerAuth
//	@Router		/categories [get]
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.categoryService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, categories)
}

// Create godoc
//
//	@ID			createIngredientCategory
//	@Summary	Create an ingredient category
//	@Tags		categories
//	@Accept		json
//	@Produce	json
//	@Param		request	body		shoppingapp.CreateCategoryInput	true	"Category creation request"
//	@Success	201		{object}	APIResponse[shoppingapp.CategoryResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/categories [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req shoppingapp.CreateCategoryInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, category)
}
