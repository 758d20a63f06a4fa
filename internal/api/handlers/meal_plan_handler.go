package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type MealPlanHandler struct {
	mealPlanService service.MealPlanService
}

func NewMealPlanHandler(mealPlanService service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlanService: mealPlanService}
}

func (h *MealPlanHandler) Generate(c *gin.Context) {
	plan, err := h.mealPlanService.Generate(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.GeneratePlanResponse{Success: true, MealPlan: plan})
}

func (h *MealPlanHandler) Lock(c *gin.Context) {
	if _, err := h.mealPlanService.Lock(c.Request.Context(), c.Param("groupId")); err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
