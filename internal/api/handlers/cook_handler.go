package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type CookHandler struct {
	cookService service.CookService
}

func NewCookHandler(cookService service.CookService) *CookHandler {
	return &CookHandler{cookService: cookService}
}

// Notify composes the cook message. Without a summary in the body the
// stored headcount for the date is used.
func (h *CookHandler) Notify(c *gin.Context) {
	var req models.NotifyCookRequest
	if !bindJSON(c, &req) {
		return
	}

	message, err := h.cookService.Notify(c.Request.Context(), c.Param("groupId"), req.Date, req.Summary, service.TriggerManual)
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.NotifyCookResponse{Success: true, Message: message})
}

func (h *CookHandler) GetNotification(c *gin.Context) {
	notification, err := h.cookService.GetNotification(c.Request.Context(), c.Param("groupId"), c.Param("date"))
	if err != nil {
		respondError(c, err, "Notification")
		return
	}

	c.JSON(http.StatusOK, gin.H{"notification": notification})
}
