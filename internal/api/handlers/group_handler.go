package handlers

import (
	"net/http"

	"github.com/Marga-Ghale/flatmeals-backend/internal/models"
	"github.com/Marga-Ghale/flatmeals-backend/internal/service"
	"github.com/gin-gonic/gin"
)

type GroupHandler struct {
	groupService service.GroupService
}

func NewGroupHandler(groupService service.GroupService) *GroupHandler {
	return &GroupHandler{groupService: groupService}
}

// ============================================
// GROUPS
// ============================================

func (h *GroupHandler) Create(c *gin.Context) {
	var req models.CreateGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Create(c.Request.Context(), req.Name, req.CreatorID, *req.CreatorData)
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.CreateGroupResponse{
		Success:   true,
		GroupID:   group.ID,
		GroupData: group,
	})
}

func (h *GroupHandler) Join(c *gin.Context) {
	var req models.JoinGroupRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.Join(c.Request.Context(), c.Param("groupId"), req.UserID, *req.UserData)
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.JoinGroupResponse{Success: true, Group: group})
}

// GetUserGroup answers {"group": null} for users without a group.
func (h *GroupHandler) GetUserGroup(c *gin.Context) {
	group, err := h.groupService.GetForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.UserGroupResponse{Group: group})
}

func (h *GroupHandler) Get(c *gin.Context) {
	group, err := h.groupService.Get(c.Request.Context(), c.Param("groupId"))
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.UserGroupResponse{Group: group})
}

func (h *GroupHandler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.groupService.UpdateSettings(c.Request.Context(), c.Param("groupId"), models.GroupSettings{
		LunchDeadline:  req.LunchDeadline,
		DinnerDeadline: req.DinnerDeadline,
	})
	if err != nil {
		respondError(c, err, "Group")
		return
	}

	c.JSON(http.StatusOK, models.UpdateSettingsResponse{Success: true, Settings: group.Settings})
}
