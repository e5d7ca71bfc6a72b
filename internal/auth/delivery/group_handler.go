package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard-backend/internal/auth/dto"
	"taskboard-backend/internal/auth/usecase"
)

// GroupHandler handles group management HTTP requests
type GroupHandler struct {
	groupUsecase usecase.GroupUsecase
}

// NewGroupHandler creates a new GroupHandler
func NewGroupHandler(groupUsecase usecase.GroupUsecase) *GroupHandler {
	return &GroupHandler{groupUsecase: groupUsecase}
}

// GetGroups lists active groups
// GET /api/groups
func (h *GroupHandler) GetGroups(c *gin.Context) {
	groups, err := h.groupUsecase.GetGroups()
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"groups": groups})
}

// GetGroup returns one group with its members
// GET /api/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	group, err := h.groupUsecase.GetGroup(c.Param("id"))
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	if group == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "group not found"})
		return
	}
	c.JSON(http.StatusOK, group)
}

// CreateGroup creates a group
// POST /api/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	group, err := h.groupUsecase.CreateGroup(user.ID, req.Name, req.Color)
	if err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, group)
}

// AddMember adds a user to a group
// POST /api/groups/:id/members
func (h *GroupHandler) AddMember(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	var req dto.AddGroupMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.groupUsecase.AddMember(user.ID, c.Param("id"), req.UserID); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "member added"})
}

// RemoveMember removes a user from a group
// DELETE /api/groups/:id/members/:user_id
func (h *GroupHandler) RemoveMember(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.groupUsecase.RemoveMember(user.ID, c.Param("id"), c.Param("user_id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "member removed"})
}

// DeleteGroup deactivates a group
// DELETE /api/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.groupUsecase.DeactivateGroup(user.ID, c.Param("id")); err != nil {
		c.JSON(httpStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}
