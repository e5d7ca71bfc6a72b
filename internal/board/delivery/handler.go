package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	auditusecase "taskboard-backend/internal/audit/usecase"
	authdelivery "taskboard-backend/internal/auth/delivery"
	"taskboard-backend/internal/board/dto"
	boarddomain "taskboard-backend/internal/board/domain"
	"taskboard-backend/internal/board/usecase"
	"taskboard-backend/pkg/apperr"
)

// BoardHandler handles board HTTP requests
type BoardHandler struct {
	svc *usecase.Service
}

// NewBoardHandler creates a new BoardHandler
func NewBoardHandler(svc *usecase.Service) *BoardHandler {
	return &BoardHandler{svc: svc}
}

// manager scopes a board Manager to the authenticated request.
func (h *BoardHandler) manager(c *gin.Context) *usecase.Manager {
	user := authdelivery.CurrentUser(c)
	actor := auditusecase.Actor{}
	if user != nil {
		actor = auditusecase.Actor{ID: user.ID, Username: user.Username}
	}
	return h.svc.As(actor, authdelivery.ClientContext(c))
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperr.IsAuthentication(err):
		status = http.StatusUnauthorized
	case apperr.IsAuthorization(err):
		status = http.StatusForbidden
	case apperr.IsNotFound(err):
		status = http.StatusNotFound
	case apperr.IsValidation(err):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// CreateTask creates a new task
// POST /api/tasks
func (h *BoardHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.CreateTaskInput{
		Title:            req.Title,
		Description:      req.Description,
		ColumnID:         req.ColumnID,
		AssigneeID:       req.AssigneeID,
		GroupID:          req.GroupID,
		Priority:         boarddomain.Priority(req.Priority),
		Category:         req.Category,
		Tags:             req.Tags,
		Color:            req.Color,
		EstimatedHours:   req.EstimatedHours,
		WorkflowType:     req.WorkflowType,
		WorkflowRef:      req.WorkflowRef,
		WorkflowMetadata: req.WorkflowMetadata,
	}
	if req.Deadline != nil && *req.Deadline != "" {
		if t, err := time.Parse("2006-01-02", *req.Deadline); err == nil {
			input.Deadline = &t
		}
	}

	task, err := h.manager(c).CreateTask(input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// GetTask returns one task
// GET /api/tasks/:id
func (h *BoardHandler) GetTask(c *gin.Context) {
	task, err := h.manager(c).GetTask(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask patches a task
// PUT /api/tasks/:id
func (h *BoardHandler) UpdateTask(c *gin.Context) {
	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.UpdateTaskInput{
		Title:          req.Title,
		Description:    req.Description,
		AssigneeID:     req.AssigneeID,
		GroupID:        req.GroupID,
		Category:       req.Category,
		Tags:           req.Tags,
		Color:          req.Color,
		EstimatedHours: req.EstimatedHours,
		ActualHours:    req.ActualHours,
	}
	if req.Priority != nil {
		p := boarddomain.Priority(*req.Priority)
		input.Priority = &p
	}
	if req.Status != nil {
		s := boarddomain.TaskStatus(*req.Status)
		input.Status = &s
	}
	if req.Deadline != nil {
		if *req.Deadline == "" {
			input.ClearDeadline = true
		} else if t, err := time.Parse("2006-01-02", *req.Deadline); err == nil {
			input.Deadline = &t
		}
	}

	task, err := h.manager(c).UpdateTask(c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// DeleteTask soft-deletes a task; ?hard=true removes it permanently
// DELETE /api/tasks/:id
func (h *BoardHandler) DeleteTask(c *gin.Context) {
	hard, _ := strconv.ParseBool(c.DefaultQuery("hard", "false"))
	if err := h.manager(c).DeleteTask(c.Param("id"), hard); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// MoveTask moves a task to another column
// POST /api/tasks/:id/move
func (h *BoardHandler) MoveTask(c *gin.Context) {
	var req dto.MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.manager(c).MoveTask(c.Param("id"), req.ColumnID, req.Position)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// SearchTasks searches titles and descriptions
// GET /api/tasks/search?q=...
func (h *BoardHandler) SearchTasks(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter q is required"})
		return
	}
	tasks, err := h.manager(c).SearchTasks(query)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// GetStatistics returns the board aggregate
// GET /api/tasks/statistics
func (h *BoardHandler) GetStatistics(c *gin.Context) {
	stats, err := h.manager(c).GetTaskStatistics()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetTasksByColumn lists a column's tasks in board order
// GET /api/columns/:id/tasks
func (h *BoardHandler) GetTasksByColumn(c *gin.Context) {
	tasks, err := h.manager(c).GetTasksByColumn(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// GetMyTasks lists tasks assigned to the authenticated user
// GET /api/tasks?mine=true
func (h *BoardHandler) GetMyTasks(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	tasks, err := h.manager(c).GetTasksByUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// GetTasksByGroup lists tasks assigned to a group
// GET /api/groups/:id/tasks
func (h *BoardHandler) GetTasksByGroup(c *gin.Context) {
	tasks, err := h.manager(c).GetTasksByGroup(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tasks": tasks, "total": len(tasks)})
}

// GetColumns lists active columns in board order
// GET /api/columns
func (h *BoardHandler) GetColumns(c *gin.Context) {
	columns, err := h.manager(c).GetAllColumns()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"columns": columns})
}

// CreateColumn adds a column to the board
// POST /api/columns
func (h *BoardHandler) CreateColumn(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	column, err := h.manager(c).CreateColumn(req.Name, req.Position, req.WIPLimit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, column)
}

// UpdateColumn patches a column
// PUT /api/columns/:id
func (h *BoardHandler) UpdateColumn(c *gin.Context) {
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	column, err := h.manager(c).UpdateColumn(c.Param("id"), usecase.UpdateColumnInput{
		Name:     req.Name,
		Position: req.Position,
		WIPLimit: req.WIPLimit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, column)
}

// DeleteColumn deactivates a column
// DELETE /api/columns/:id
func (h *BoardHandler) DeleteColumn(c *gin.Context) {
	if err := h.manager(c).DeactivateColumn(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deactivated"})
}

// AddComment comments on a task
// POST /api/tasks/:id/comments
func (h *BoardHandler) AddComment(c *gin.Context) {
	var req dto.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	comment, err := h.manager(c).AddComment(c.Param("id"), req.Content, req.ParentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// GetComments lists a task's comments
// GET /api/tasks/:id/comments
func (h *BoardHandler) GetComments(c *gin.Context) {
	comments, err := h.manager(c).GetComments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// DeleteComment soft-deletes a comment
// DELETE /api/comments/:id
func (h *BoardHandler) DeleteComment(c *gin.Context) {
	if err := h.manager(c).DeleteComment(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddAttachment registers a stored file against a task
// POST /api/tasks/:id/attachments
func (h *BoardHandler) AddAttachment(c *gin.Context) {
	var req dto.AddAttachmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	att, err := h.manager(c).AddAttachment(usecase.AddAttachmentInput{
		TaskID:       c.Param("id"),
		Filename:     req.Filename,
		StoragePath:  req.StoragePath,
		SizeBytes:    req.SizeBytes,
		MimeType:     req.MimeType,
		FromWorkflow: req.FromWorkflow,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, att)
}

// GetAttachments lists a task's attachments
// GET /api/tasks/:id/attachments
func (h *BoardHandler) GetAttachments(c *gin.Context) {
	atts, err := h.manager(c).GetAttachments(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"attachments": atts})
}

// DeleteAttachment removes an attachment; ?remove_file=false keeps the file
// DELETE /api/attachments/:id
func (h *BoardHandler) DeleteAttachment(c *gin.Context) {
	removeFile, _ := strconv.ParseBool(c.DefaultQuery("remove_file", "true"))
	if err := h.manager(c).DeleteAttachment(c.Param("id"), removeFile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// AddDependency links two tasks
// POST /api/tasks/:id/dependencies
func (h *BoardHandler) AddDependency(c *gin.Context) {
	var req dto.AddDependencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	dep, err := h.manager(c).AddDependency(c.Param("id"), req.DependsOnTaskID, boarddomain.DependencyType(req.Type))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dep)
}

// GetDependencies lists a task's outgoing dependency edges
// GET /api/tasks/:id/dependencies
func (h *BoardHandler) GetDependencies(c *gin.Context) {
	deps, err := h.manager(c).GetDependencies(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"dependencies": deps})
}

// RemoveDependency unlinks two tasks
// DELETE /api/tasks/:id/dependencies/:depends_on
func (h *BoardHandler) RemoveDependency(c *gin.Context) {
	if err := h.manager(c).RemoveDependency(c.Param("id"), c.Param("depends_on")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}

// GetSetting returns one board setting
// GET /api/settings/:key
func (h *BoardHandler) GetSetting(c *gin.Context) {
	setting, err := h.manager(c).GetSetting(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	if setting == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// PutSetting stores a board setting
// PUT /api/settings/:key
func (h *BoardHandler) PutSetting(c *gin.Context) {
	var req dto.PutSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.manager(c).SetSetting(c.Param("key"), req.Value); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}
