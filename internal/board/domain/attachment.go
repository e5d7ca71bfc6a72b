package domain

import (
	"time"

	authdomain "taskboard-backend/internal/auth/domain"
)

// Attachment is a file attached to a task. StoragePath points at the file on
// disk; removing an attachment removes the file best-effort only.
type Attachment struct {
	ID          string           `json:"id" gorm:"primaryKey"`
	TaskID      string           `json:"task_id" gorm:"index;not null"`
	Task        *Task            `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	Filename    string           `json:"filename" gorm:"not null"`
	StoragePath string           `json:"storage_path" gorm:"not null"`
	SizeBytes   int64            `json:"size_bytes"`
	MimeType    string           `json:"mime_type,omitempty"`
	UploaderID  string           `json:"uploader_id" gorm:"not null"`
	Uploader    *authdomain.User `json:"uploader,omitempty" gorm:"foreignKey:UploaderID"`

	// FromWorkflow marks files that arrived through outside automation
	// rather than a user upload.
	FromWorkflow bool `json:"from_workflow" gorm:"default:false"`

	CreatedAt time.Time `json:"created_at"`

	IsDeleted bool       `json:"is_deleted" gorm:"index;default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy string     `json:"deleted_by,omitempty"`
}
