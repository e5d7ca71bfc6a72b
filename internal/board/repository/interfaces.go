package repository

import boarddomain "taskboard-backend/internal/board/domain"

// TaskRepository defines the interface for task persistence. Soft-deleted
// rows are filtered out of every read; IncludeDeleted variants exist only
// for debugging and the audit trail.
type TaskRepository interface {
	Create(task *boarddomain.Task) error
	FindByID(id string) (*boarddomain.Task, error)
	FindByIDIncludeDeleted(id string) (*boarddomain.Task, error)
	FindByColumn(columnID string) ([]*boarddomain.Task, error)
	FindByUser(userID string) ([]*boarddomain.Task, error)
	FindByGroup(groupID string) ([]*boarddomain.Task, error)
	FindAll() ([]*boarddomain.Task, error)
	Search(query string) ([]*boarddomain.Task, error)
	Update(task *boarddomain.Task) error
	SoftDelete(id, actorID string) error
	HardDelete(id string) error
	MaxPositionInColumn(columnID string) (float64, error)
	NextTaskNumber() (string, error)
	CountActive() (int64, error)
	CountCompleted() (int64, error)
}

// ColumnRepository defines the interface for board columns.
type ColumnRepository interface {
	Create(column *boarddomain.Column) error
	FindByID(id string) (*boarddomain.Column, error)
	FindActive() ([]*boarddomain.Column, error)
	FindActiveByName(name string) (*boarddomain.Column, error)
	Update(column *boarddomain.Column) error
	Deactivate(id string) error
}

// CommentRepository defines the interface for task comments.
type CommentRepository interface {
	Create(comment *boarddomain.Comment) error
	FindByID(id string) (*boarddomain.Comment, error)
	FindByTask(taskID string) ([]*boarddomain.Comment, error)
	SoftDelete(id string) error
}

// AttachmentRepository defines the interface for task attachments.
type AttachmentRepository interface {
	Create(att *boarddomain.Attachment) error
	FindByID(id string) (*boarddomain.Attachment, error)
	FindByTask(taskID string) ([]*boarddomain.Attachment, error)
	SoftDelete(id, actorID string) error
}

// DependencyRepository defines the interface for task dependencies.
type DependencyRepository interface {
	Create(dep *boarddomain.Dependency) error
	FindByTask(taskID string) ([]*boarddomain.Dependency, error)
	Exists(taskID, dependsOnTaskID string) (bool, error)
	Delete(taskID, dependsOnTaskID string) error
}

// SettingRepository defines the interface for key/value settings.
type SettingRepository interface {
	Get(key string) (*boarddomain.Setting, error)
	Set(key, value string) error
}
