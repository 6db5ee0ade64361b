package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	mealplanapp "github.com/mealplan/backend/internal/application/mealplan"
)

// MealPlanHandler handles meal plan-related API endpoints
type MealPlanHandler struct {
	BaseHandler
	planService       *mealplanapp.MealPlanService
	generationService *mealplanapp.GenerationService
}

// NewMealPlanHandler creates a new MealPlanHandler
func NewMealPlanHandler(planService *mealplanapp.MealPlanService, generationService *mealplanapp.GenerationService) *MealPlanHandler {
	return &MealPlanHandler{
		planService:       planService,
		generationService: generationService,
	}
}

// Create godoc
//
//	@ID			createMealPlan
//	@Summary	Create a meal plan
//	@Tags		meal-plans
//	@Accept		json
//	@Produce	json
//	@Param		request	body		mealplanapp.CreateMealPlanInput	true	"Meal plan creation request"
//	@Success	201		{object}	APIResponse[mealplanapp.MealPlanResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans [post]
func (h *MealPlanHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mealplanapp.CreateMealPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// CreateWeekly godoc
//
//	@ID			createWeeklyMealPlan
//	@Summary	Create a week-long meal plan
//	@Description	Creates a plan spanning seven days from the start date, with an empty day for each date
//	@Tags		meal-plans
//	@Accept		json
//	@Produce	json
//	@Param		request	body		mealplanapp.CreateWeeklyPlanInput	true	"Weekly plan creation request"
//	@Success	201		{object}	APIResponse[mealplanapp.MealPlanResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	401		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/weekly [post]
func (h *MealPlanHandler) CreateWeekly(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mealplanapp.CreateWeeklyPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.CreateWeekly(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Generate godoc
//
//	@ID			generateMealPlan
//	@Summary	Generate a meal plan from preferences
//	@Description	Produces a full plan with generated recipes from calorie and dietary preferences
//	@Tags		meal-plans
//	@Accept		json
//	@Produce	json
//	@Param		request	body		mealplanapp.GeneratePlanInput	true	"Generation preferences"
//	@Success	201		{object}	APIResponse[mealplanapp.MealPlanResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	502		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/generate [post]
func (h *MealPlanHandler) Generate(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req mealplanapp.GeneratePlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.generationService.PlanFromPreferences(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, plan)
}

// Get godoc
//
//	@ID			getMealPlanById
//	@Summary	Get a meal plan with its days and meals
//	@Tags		meal-plans
//	@Produce	json
//	@Param		id	path		string	true	"Meal plan ID"
//	@Success	200	{object}	APIResponse[mealplanapp.MealPlanResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id} [get]
func (h *MealPlanHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	plan, err := h.planService.Get(c.Request.Context(), userID, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// List godoc
//
//	@ID			listMealPlans
//	@Summary	List the caller's meal plans
//	@Tags		meal-plans
//	@Produce	json
//	@Param		search		query		string	false	"Search in plan names"
//	@Param		is_template	query		bool	false	"Filter by template flag"
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Success	200			{object}	APIResponse[[]mealplanapp.MealPlanResponse]
//	@Failure	401			{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans [get]
func (h *MealPlanHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var filter mealplanapp.MealPlanListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.planService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update godoc
//
//	@ID			updateMealPlan
//	@Summary	Update a meal plan
//	@Tags		meal-plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string							true	"Meal plan ID"
//	@Param		request	body		mealplanapp.UpdateMealPlanInput	true	"Meal plan update request"
//	@Success	200		{object}	APIResponse[mealplanapp.MealPlanResponse]
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id} [put]
func (h *MealPlanHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	var req mealplanapp.UpdateMealPlanInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	plan, err := h.planService.Update(c.Request.Context(), userID, planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, plan)
}

// Delete godoc
//
//	@ID			deleteMealPlan
//	@Summary	Delete a meal plan
//	@Tags		meal-plans
//	@Produce	json
//	@Param		id	path	string	true	"Meal plan ID"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id} [delete]
func (h *MealPlanHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	if err := h.planService.Delete(c.Request.Context(), userID, planID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// AddMeal godoc
//
//	@ID			addMealToPlan
//	@Summary	Add or replace a meal in a plan
//	@Description	Fills the (date, meal type) slot with a recipe. An occupied slot is overwritten.
//	@Tags		meal-plans
//	@Accept		json
//	@Produce	json
//	@Param		id		path		string						true	"Meal plan ID"
//	@Param		request	body		mealplanapp.AddMealInput	true	"Meal slot assignment"
//	@Success	200		{object}	APIResponse[mealplanapp.MealResponse]
//	@Failure	400		{object}	ErrorResponse
//	@Failure	403		{object}	ErrorResponse
//	@Failure	404		{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id}/meals [post]
func (h *MealPlanHandler) AddMeal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	var req mealplanapp.AddMealInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	meal, err := h.planService.AddMeal(c.Request.Context(), userID, planID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, meal)
}

// RemoveMeal godoc
//
//	@ID			removeMealFromPlan
//	@Summary	Remove a meal from a plan
//	@Tags		meal-plans
//	@Produce	json
//	@Param		id		path	string	true	"Meal plan ID"
//	@Param		mealId	path	string	true	"Meal ID"
//	@Success	204
//	@Failure	403	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id}/meals/{mealId} [delete]
func (h *MealPlanHandler) RemoveMeal(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	mealID, err := uuid.Parse(c.Param("mealId"))
	if err != nil {
		h.BadRequest(c, "Invalid meal ID")
		return
	}

	if err := h.planService.RemoveMeal(c.Request.Context(), userID, mealID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// NutritionSummary godoc
//
//	@ID			getMealPlanNutrition
//	@Summary	Get per-day nutrition totals for a plan
//	@Tags		meal-plans
//	@Produce	json
//	@Param		id	path		string	true	"Meal plan ID"
//	@Success	200	{object}	APIResponse[mealplanapp.NutritionSummaryResponse]
//	@Failure	404	{object}	ErrorResponse
//	@Security	BearerAuth
//	@Router		/meal-plans/{id}/nutrition [get]
func (h *MealPlanHandler) NutritionSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	planID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid meal plan ID")
		return
	}

	summary, err := h.planService.NutritionSummary(c.Request.Context(), userID, planID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// MealTypes godoc
//
//	@ID			listMealTypes
//	@Summary	List meal types
//	@Tags		meal-plans
//	@Produce	json
//	@Success	200	{object}	APIResponse[[]mealplanapp.MealTypeResponse]
//	@Security	BearerAuth
//	@Router		/meal-types [get]
func (h *MealPlanHandler) MealTypes(c *gin.Context) {
	types, err := h.planService.MealTypes(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, types)
}
