package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type HeadcountHandler struct {
	headcountService service.HeadcountService
}

func NewHeadcountHandler(headcountService service.HeadcountService) *HeadcountHandler {
	return &HeadcountHandler{headcountService: headcountService}
}

func (h *HeadcountHandler) Submit(c *gin.Context) {
	var req models.SubmitHeadcountRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.headcountService.Submit(c.Request.Context(), c.Param("groupId"), req.Date, req.UserID, req.Lunch, req.Dinner)
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.SubmitHeadcountResponse{Success: true, Headcount: record})
}

func (h *HeadcountHandler) Summary(c *gin.Context) {
	summary, err := h.headcountService.Summarize(c.Request.Context(), c.Param("groupId"), c.Param("date"))
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, summary)
}
