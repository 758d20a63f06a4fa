package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	Group     *GroupHandler
	MealPlan  *MealPlanHandler
	Headcount *HeadcountHandler
	Cook      *CookHandler
}

// NewHandlers creates all handlers
func NewHandlers(services *service.Services) *Handlers {
	return &Handlers{
		Group:     NewGroupHandler(services.Group),
		MealPlan:  NewMealPlanHandler(services.MealPlan),
		Headcount: NewHeadcountHandler(services.Headcount),
		Cook:      NewCookHandler(services.Cook),
	}
}

// ============================================
// Error Mapping
// ============================================

// respondError maps service sentinels to status codes. resource names the
// thing a 404 refers to. Internal errors are logged and never echoed.
func respondError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInvalidState),
		errors.Is(err, service.ErrPlanLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		slog.ErrorContext(c.Request.Context(), "[HTTP] internal error",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

// ============================================
// Routes
// ============================================

// RegisterRoutes mounts the group API on rg.
func (h *Handlers) RegisterRoutes(rg *gin.RouterGroup) {
	groups := rg.Group("/groups")
	{
		groups.POST("", h.Group.Create)
		groups.GET("/:groupId", h.Group.Get)
		groups.POST("/:groupId/join", h.Group.Join)
		groups.PUT("/:groupId/settings", h.Group.UpdateSettings)

		// Meal plan
		groups.POST("/:groupId/generate-plan", h.MealPlan.Generate)
		groups.POST("/:groupId/lock-plan", h.MealPlan.Lock)

		// Headcount
		groups.POST("/:groupId/headcount", h.Headcount.Submit)
		groups.GET("/:groupId/headcount/:date", h.Headcount.Summary)

		// Cook
		groups.POST("/:groupId/notify-cook", h.Cook.Notify)
		groups.GET("/:groupId/notify-cook/:date", h.Cook.GetNotification)
	}

	rg.GET("/user/:userId/group", h.Group.GetUserGroup)
}
