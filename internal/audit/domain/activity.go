package domain

import (
	"time"

	boarddomain "taskboard-backend/internal/board/domain"
)

// ActivityType classifies one recorded mutation.
type ActivityType string

const (
	ActivityTaskCreated       ActivityType = "task_created"
	ActivityTaskUpdated       ActivityType = "task_updated"
	ActivityTaskDeleted       ActivityType = "task_deleted"
	ActivityTaskMoved         ActivityType = "task_moved"
	ActivityCommentAdded      ActivityType = "comment_added"
	ActivityCommentDeleted    ActivityType = "comment_deleted"
	ActivityAttachmentAdded   ActivityType = "attachment_added"
	ActivityAttachmentRemoved ActivityType = "attachment_removed"
	ActivityUserLoggedIn      ActivityType = "user_logged_in"
	ActivityUserLoggedOut     ActivityType = "user_logged_out"
	ActivityPasswordChanged   ActivityType = "password_changed"
	ActivityPasswordReset     ActivityType = "password_reset"
)

// ActivityLog is one append-only audit row. Rows are never updated or
// deleted by the application; a hard-deleted task leaves its rows behind
// with the task reference nulled.
type ActivityLog struct {
	ID           string            `json:"id" gorm:"primaryKey"`
	Type         ActivityType      `json:"type" gorm:"index;not null"`
	UserID       string            `json:"user_id" gorm:"index;not null"`
	TaskID       *string           `json:"task_id,omitempty" gorm:"index"`
	Task         *boarddomain.Task `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:SET NULL"`
	FieldName    string            `json:"field_name,omitempty"`
	OldValue     string            `json:"old_value,omitempty" gorm:"type:text"`
	NewValue     string            `json:"new_value,omitempty" gorm:"type:text"`
	Comment      string            `json:"comment,omitempty" gorm:"type:text"`
	IPAddress    string            `json:"ip_address,omitempty"`
	UserAgent    string            `json:"user_agent,omitempty"`
	TaskSnapshot string            `json:"task_snapshot,omitempty" gorm:"type:text"`
	CreatedAt    time.Time         `json:"created_at"`
}
