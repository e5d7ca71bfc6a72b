package dto

type CreateTaskRequest struct {
	Title          string   `json:"title" binding:"required"`
	Description    string   `json:"description"`
	ColumnID       string   `json:"column_id" binding:"required"`
	AssigneeID     string   `json:"assignee_id"`
	GroupID        string   `json:"group_id"`
	Priority       string   `json:"priority" binding:"omitempty,taskpriority"`
	Category       string   `json:"category"`
	Tags           []string `json:"tags"`
	Color          string   `json:"color"`
	Deadline       *string  `json:"deadline"` // YYYY-MM-DD
	EstimatedHours float64  `json:"estimated_hours"`

	WorkflowType     string `json:"workflow_type"`
	WorkflowRef      string `json:"workflow_ref"`
	WorkflowMetadata string `json:"workflow_metadata"`
}

// UpdateTaskRequest is a patch; absent fields stay untouched. An empty
// deadline string clears the deadline.
type UpdateTaskRequest struct {
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	AssigneeID     *string   `json:"assignee_id"`
	GroupID        *string   `json:"group_id"`
	Priority       *string   `json:"priority" binding:"omitempty,taskpriority"`
	Status         *string   `json:"status" binding:"omitempty,taskstatus"`
	Category       *string   `json:"category"`
	Tags           *[]string `json:"tags"`
	Color          *string   `json:"color"`
	Deadline       *string   `json:"deadline"`
	EstimatedHours *float64  `json:"estimated_hours"`
	ActualHours    *float64  `json:"actual_hours"`
}

type MoveTaskRequest struct {
	ColumnID string   `json:"column_id" binding:"required"`
	Position *float64 `json:"position"`
}

type AddCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parent_id"`
}

type AddAttachmentRequest struct {
	Filename     string `json:"filename" binding:"required"`
	StoragePath  string `json:"storage_path" binding:"required"`
	SizeBytes    int64  `json:"size_bytes"`
	MimeType     string `json:"mime_type"`
	FromWorkflow bool   `json:"from_workflow"`
}

type AddDependencyRequest struct {
	DependsOnTaskID string `json:"depends_on_task_id" binding:"required"`
	Type            string `json:"type" binding:"omitempty,dependencytype"`
}

type PutSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

type CreateColumnRequest struct {
	Name     string `json:"name" binding:"required"`
	Position int    `json:"position"`
	WIPLimit int    `json:"wip_limit"`
}

type UpdateColumnRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
	WIPLimit *int    `json:"wip_limit"`
}
