package domain

import "time"

type DependencyType string

const (
	DependencyBlocks      DependencyType = "blocks"
	DependencyRelatesTo   DependencyType = "relates_to"
	DependencyDuplicateOf DependencyType = "duplicate_of"
)

// Dependency is a directed edge between two tasks: TaskID depends on
// DependsOnTaskID. The ordered pair is unique.
type Dependency struct {
	ID              string         `json:"id" gorm:"primaryKey"`
	TaskID          string         `json:"task_id" gorm:"uniqueIndex:idx_task_depends;not null"`
	Task            *Task          `json:"-" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	DependsOnTaskID string         `json:"depends_on_task_id" gorm:"uniqueIndex:idx_task_depends;not null"`
	DependsOnTask   *Task          `json:"depends_on_task,omitempty" gorm:"foreignKey:DependsOnTaskID;constraint:OnDelete:CASCADE"`
	Type            DependencyType `json:"type" gorm:"default:blocks"`

	CreatedAt time.Time `json:"created_at"`
}
