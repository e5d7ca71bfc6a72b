package domain

import (
	"time"

	authdomain "taskboard-backend/internal/auth/domain"
)

// Comment belongs to exactly one task and one author. ParentID threads
// replies under another comment on the same task.
type Comment struct {
	ID       string           `json:"id" gorm:"primaryKey"`
	TaskID   string           `json:"task_id" gorm:"index;not null"`
	Task     *Task            `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	AuthorID string           `json:"author_id" gorm:"not null"`
	Author   *authdomain.User `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	ParentID string           `json:"parent_id,omitempty" gorm:"index"`
	Content  string           `json:"content" gorm:"not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	IsDeleted bool       `json:"is_deleted" gorm:"index;default:false"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
