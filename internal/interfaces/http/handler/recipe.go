package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	recipesapp "github.com/mealplan/backend/internal/application/recipes"
)

// RecipeHandler handles recipe-related API endpoints
type RecipeHandler struct {
	BaseHandler
	recipeService *recipesapp.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipeService *recipesapp.RecipeService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
	}
}

// AdjustPortionsRequest represents a request to scale a recipe to a calorie target
type AdjustPortionsRequest struct {
	TargetCalories int `json:"target_calories" binding:"required"`
}

// Create godoc
//
//	@ID			createRecipe
//	@Summary	Create a new recipe
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		recipesapp.CreateRecipeInput	true	"Recipe creation request"
//	@Success	201		{object}	APIResponse[recipesapp.RecipeResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req recipesapp.CreateRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, recipe)
}

// Get godoc
//
//	@ID			getRecipeById
//	@Summary	Get a recipe by ID
//	@Tags		recipes
//	@Produce	json
//	@Param		id	path		string	true	"Recipe ID"
//	@Success	200	{object}	APIResponse[recipesapp.RecipeResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes/{id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), userID, recipeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}

// List godoc
//
//	@ID			listRecipes
//	@Summary	List visible recipes
//	@Description	Lists the caller's own recipes plus public recipes
//	@Tags		recipes
//	@Produce	json
//	@Param		search			query		string	false	"Search in title and description"
//	@Param		max_prep_time	query		int		false	"Maximum prep time in minutes"
//	@Param		max_calories	query		int		false	"Maximum calories per serving"
//	@Param		page			query		int		false	"Page number"
//	@Param		page_size		query		int		false	"Page size"
//	@Success	200				{object}	APIResponse[[]recipesapp.RecipeResponse]
//	@Failure	401				{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter recipesapp.RecipeListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.recipeService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@ID			updateRecipe
//	@Summary	Update a recipe
//	@Description	Only the recipe owner can update it. Omitted fields are left unchanged.
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Recipe ID"
//	@Param		request	body		recipesapp.UpdateRecipeInput	true	"Recipe update request"
//	@Success	200		{object}	APIResponse[recipesapp.RecipeResponse]
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes/{id} [put]
func (h *RecipeHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req recipesapp.UpdateRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), userID, recipeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, recipe)
}

// Delete godoc
//
//	@ID			deleteRecipe
//	@Summary	Delete a recipe
//	@Tags		recipes
//	@Produce	json
//	@Param		id	path	string	true	"Recipe ID"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes/{id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), userID, recipeID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Rate godoc
//
//	@ID			rateRecipe
//	@Summary	Rate a recipe
//	@Description	Submits a 1-5 rating. A second submission by the same user replaces the first.
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Recipe ID"
//	@Param		request	body		recipesapp.RateRecipeInput	true	"Rating submission"
//	@Success	200		{object}	APIResponse[recipesapp.RatingResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes/{id}/ratings [post]
func (h *RecipeHandler) Rate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req recipesapp.RateRecipeInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	rating, err := h.recipeService.Rate(c.Request.Context(), userID, recipeID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rating)
}

// AdjustPortions godoc
//
//	@ID			adjustRecipePortions
//	@Summary	Scale a recipe to a calorie target
//	@Description	Returns ingredient amounts multiplied to reach the target calories per serving
//	@Tags		recipes
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string					true	"Recipe ID"
//	@Param		request	body		AdjustPortionsRequest	true	"Calorie target"
//	@Success	200		{object}	APIResponse[recipesapp.AdjustedPortionsResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Failure	422		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/recipes/{id}/adjust-portions [post]
func (h *RecipeHandler) AdjustPortions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	recipeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}

	var req AdjustPortionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	adjusted, err := h.recipeService.AdjustPortions(c.Request.Context(), userID, recipeID, req.TargetCalories)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, adjusted)
}
